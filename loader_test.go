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

func TestCompositeLoaderTriesPrimaryThenFallback(t *testing.T) {
	primary := NewMapTypeLoader()
	fallback := NewMapTypeLoader()

	primaryOnly := reflect.TypeOf(0)
	fallbackOnly := reflect.TypeOf("")
	primary.Add("primary.Only", primaryOnly)
	fallback.Add("fallback.Only", fallbackOnly)

	composite := NewCompositeLoader(primary, fallback)

	got, ok := composite.TryLoad("primary.Only")
	require.True(t, ok)
	require.Equal(t, primaryOnly, got)

	got, ok = composite.TryLoad("fallback.Only")
	require.True(t, ok)
	require.Equal(t, fallbackOnly, got)

	_, ok = composite.TryLoad("missing")
	require.False(t, ok)
}

func TestTypeLoaderFuncAdapts(t *testing.T) {
	calls := 0
	var loader TypeLoader = TypeLoaderFunc(func(name string) (reflect.Type, bool) {
		calls++
		return reflect.TypeOf(0), name == "int"
	})
	_, ok := loader.TryLoad("int")
	require.True(t, ok)
	require.Equal(t, 1, calls)
}
