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

func TestBuiltinContainerTypesAreDistinctFromBareReflectTypes(t *testing.T) {
	require.NotEqual(t, reflect.TypeOf(List{}), reflect.TypeOf([]interface{}{}))
	require.NotEqual(t, reflect.TypeOf(HashMap{}), reflect.TypeOf(map[interface{}]interface{}{}))
	require.NotEqual(t, reflect.TypeOf(HashSet{}), reflect.TypeOf(map[interface{}]struct{}{}))
}

func TestBuiltinContainerTypesBindToReservedIDs(t *testing.T) {
	r := NewRegistry()
	listType := reflect.TypeOf(List{})
	mapType := reflect.TypeOf(HashMap{})
	setType := reflect.TypeOf(HashSet{})

	r.BindBuiltin(listType, ArrayListID)
	r.BindBuiltin(mapType, HashMapID)
	r.BindBuiltin(setType, HashSetID)

	info, ok := r.ClassInfoByID(ArrayListID)
	require.True(t, ok)
	require.Equal(t, listType, info.Type)

	info, ok = r.ClassInfoByType(mapType)
	require.True(t, ok)
	require.Equal(t, HashMapID, info.ClassID)

	info, ok = r.ClassInfoByType(setType)
	require.True(t, ok)
	require.Equal(t, HashSetID, info.ClassID)
}
