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

func TestClassDefShareFieldsInfo(t *testing.T) {
	fields := []FieldDescriptor{{Name: "x", DeclaredType: "int32", OwningClass: "classdeftest.Foo"}}

	withFlag := NewClassDef("classdeftest.Foo", fields, map[string]string{"shareFieldsInfo": "true"})
	require.True(t, withFlag.ShareFieldsInfo())

	withoutFlag := NewClassDef("classdeftest.Foo", fields, nil)
	require.False(t, withoutFlag.ShareFieldsInfo())
}

func TestClassDefIDIsDeterministic(t *testing.T) {
	fields := []FieldDescriptor{{Name: "x", DeclaredType: "int32", OwningClass: "classdeftest.Foo"}}
	a := NewClassDef("classdeftest.Foo", fields, nil)
	b := NewClassDef("classdeftest.Foo", fields, nil)
	require.Equal(t, a.ID, b.ID)

	c := NewClassDef("classdeftest.Bar", fields, nil)
	require.NotEqual(t, a.ID, c.ID)
}

func TestMetaContextIDForWriteAssignsDenseFirstUseIDs(t *testing.T) {
	ctx := NewMetaContext()
	xt := reflect.TypeOf(0)
	yt := reflect.TypeOf("")

	id, existed := ctx.idForWrite(xt)
	require.False(t, existed)
	require.Equal(t, uint32(0), id)

	id, existed = ctx.idForWrite(yt)
	require.False(t, existed)
	require.Equal(t, uint32(1), id)

	id, existed = ctx.idForWrite(xt)
	require.True(t, existed)
	require.Equal(t, uint32(0), id)
}

func TestMetaContextEnqueueAndCachedDef(t *testing.T) {
	ctx := NewMetaContext()
	xt := reflect.TypeOf(0)
	def := NewClassDef("classdeftest.X", nil, nil)

	_, ok := ctx.cachedDef(xt)
	require.False(t, ok)

	ctx.enqueueDef(xt, def)
	got, ok := ctx.cachedDef(xt)
	require.True(t, ok)
	require.Same(t, def, got)
	require.Equal(t, []*ClassDef{def}, ctx.writingClassDefs)
}

func TestMetaContextEnsureReadSlotGrowsBothSlicesInLockstep(t *testing.T) {
	ctx := NewMetaContext()
	ctx.ensureReadSlot(2)
	require.Len(t, ctx.ReadClassDefs, 3)
	require.Len(t, ctx.ReadClassInfos, 3)

	ctx.ensureReadSlot(0)
	require.Len(t, ctx.ReadClassDefs, 3)
}
