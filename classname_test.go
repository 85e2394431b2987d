// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package resolver

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type classNameTestFoo struct{ V int }

func newTestClassNameCodec(t *testing.T) *ClassNameCodec {
	t.Helper()
	loader := NewMapTypeLoader()
	ft := reflect.TypeOf(classNameTestFoo{})
	loader.Add(fullName(ft), ft)
	return NewClassNameCodec(NewInternedStringTable(), loader, false)
}

func TestClassNameCodecRoundTrip(t *testing.T) {
	codec := newTestClassNameCodec(t)
	ft := reflect.TypeOf(classNameTestFoo{})
	info := newClassInfo(ft, NoClassID)

	buf := NewByteBuffer(nil)
	require.NoError(t, codec.WriteClassName(buf, info))

	readBuf := NewByteBuffer(buf.Bytes())
	var cache ClassInfoCache
	got, err := codec.ReadClassName(readBuf, &cache)
	require.NoError(t, err)
	require.Equal(t, ft, got.Type)
}

func TestClassNameCodecSecondWriteIsShorter(t *testing.T) {
	codec := newTestClassNameCodec(t)
	ft := reflect.TypeOf(classNameTestFoo{})
	info := newClassInfo(ft, NoClassID)

	buf := NewByteBuffer(nil)
	require.NoError(t, codec.WriteClassName(buf, info))
	firstLen := buf.Len()
	require.NoError(t, codec.WriteClassName(buf, info))
	require.Less(t, buf.Len()-firstLen, firstLen)
}

func TestClassNameCodecUnknownClassTolerant(t *testing.T) {
	loader := NewMapTypeLoader()
	codec := NewClassNameCodec(NewInternedStringTable(), loader, true)
	ft := reflect.TypeOf(classNameTestFoo{})
	info := newClassInfo(ft, NoClassID)

	buf := NewByteBuffer(nil)
	require.NoError(t, codec.WriteClassName(buf, info))

	readBuf := NewByteBuffer(buf.Bytes())
	var cache ClassInfoCache
	got, err := codec.ReadClassName(readBuf, &cache)
	require.NoError(t, err)
	require.True(t, IsUnexistedSkip(got.Type))
}

func TestClassNameCodecUnknownClassStrict(t *testing.T) {
	loader := NewMapTypeLoader()
	codec := NewClassNameCodec(NewInternedStringTable(), loader, false)
	ft := reflect.TypeOf(classNameTestFoo{})
	info := newClassInfo(ft, NoClassID)

	buf := NewByteBuffer(nil)
	require.NoError(t, codec.WriteClassName(buf, info))

	readBuf := NewByteBuffer(buf.Bytes())
	var cache ClassInfoCache
	_, err := codec.ReadClassName(readBuf, &cache)
	require.Error(t, err)
}

func TestCompositeTypeStringGrammar(t *testing.T) {
	type testCase struct {
		t    reflect.Type
		want string
	}
	ft := reflect.TypeOf(classNameTestFoo{})
	cases := []testCase{
		{reflect.TypeOf((*int)(nil)), "*int"},
		{reflect.TypeOf([]int{}), "[]int"},
		{reflect.TypeOf(map[string]int{}), "map[string]int"},
		{reflect.PtrTo(ft), "*" + fullName(ft)},
	}
	for _, c := range cases {
		_, simple := qualifiedName(c.t)
		require.Equal(t, c.want, simple)
	}
}
