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

type metaShareTestX struct{ A int }
type metaShareTestY struct{ B string }

// TestMetaShareRoundTrip covers writing X, Y, X under meta-sharing:
// readClassInfos[0] == X, readClassInfos[1] == Y, and the third write
// reuses session id 0 without a new ClassDef.
func TestMetaShareRoundTrip(t *testing.T) {
	loader := NewMapTypeLoader()
	xt, yt := reflect.TypeOf(metaShareTestX{}), reflect.TypeOf(metaShareTestY{})
	loader.Add(fullName(xt), xt)
	loader.Add(fullName(yt), yt)

	nameCodec := NewClassNameCodec(NewInternedStringTable(), loader, false)
	share := NewMetaShare(nameCodec)

	writeCtx := NewMetaContext()
	mainBuf := NewByteBuffer(nil)

	xInfo := newClassInfo(xt, NoClassID)
	yInfo := newClassInfo(yt, NoClassID)

	require.NoError(t, share.WriteClass(mainBuf, writeCtx, xInfo, SchemaConsistent, false))
	require.NoError(t, share.WriteClass(mainBuf, writeCtx, yInfo, SchemaConsistent, false))
	require.NoError(t, share.WriteClass(mainBuf, writeCtx, xInfo, SchemaConsistent, false))

	defsBuf := NewByteBuffer(nil)
	require.NoError(t, share.FlushClassDefs(defsBuf, writeCtx))

	// The caller is responsible for placing the defs section at a known
	// offset and restoring the main cursor afterward; here that means
	// reading defs from their own buffer before resolving any session id
	// against them.
	readCtx := NewMetaContext()
	require.NoError(t, share.ReadClassDefs(NewByteBuffer(defsBuf.Bytes()), readCtx))

	readBuf := NewByteBuffer(mainBuf.Bytes())
	first, err := share.ReadClassInfo(readBuf, readCtx, loader, false)
	require.NoError(t, err)
	second, err := share.ReadClassInfo(readBuf, readCtx, loader, false)
	require.NoError(t, err)
	third, err := share.ReadClassInfo(readBuf, readCtx, loader, false)
	require.NoError(t, err)

	require.Equal(t, xt, first.Type)
	require.Equal(t, yt, second.Type)
	require.Same(t, first, third)

	require.Len(t, readCtx.ReadClassDefs, 2)
	require.Equal(t, xt, readCtx.ReadClassInfos[0].Type)
	require.Equal(t, yt, readCtx.ReadClassInfos[1].Type)
}

func TestMetaContextIDsAreDenseInFirstUseOrder(t *testing.T) {
	ctx := NewMetaContext()
	xt, yt := reflect.TypeOf(metaShareTestX{}), reflect.TypeOf(metaShareTestY{})

	id0, existed0 := ctx.idForWrite(xt)
	id1, existed1 := ctx.idForWrite(yt)
	id2, existed2 := ctx.idForWrite(xt)

	require.Equal(t, uint32(0), id0)
	require.False(t, existed0)
	require.Equal(t, uint32(1), id1)
	require.False(t, existed1)
	require.Equal(t, uint32(0), id2)
	require.True(t, existed2)
}
