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

import "reflect"

// FieldDescriptor is one ordered field entry of a ClassDef.
type FieldDescriptor struct {
	Name         string
	DeclaredType string
	OwningClass  string
}

// ClassDef is the canonical structural description of a type:
// fully-qualified name, a stable content-addressed id, ordered field
// descriptors, and a small ext-meta map for protocol-level flags such as
// shareFieldsInfo.
type ClassDef struct {
	FullName string
	ID       uint64
	Fields   []FieldDescriptor
	ExtMeta  map[string]string
}

// NewClassDef builds a ClassDef and derives its content-addressed ID from
// the supplied structure: the id is stable across processes given
// identical structure.
func NewClassDef(fullName string, fields []FieldDescriptor, extMeta map[string]string) *ClassDef {
	if extMeta == nil {
		extMeta = map[string]string{}
	}
	return &ClassDef{
		FullName: fullName,
		Fields:   fields,
		ExtMeta:  extMeta,
		ID:       classDefContentHash(fullName, fields, extMeta),
	}
}

// ShareFieldsInfo reports the protocol-level shareFieldsInfo flag.
func (d *ClassDef) ShareFieldsInfo() bool {
	return d.ExtMeta["shareFieldsInfo"] == "true"
}

// MetaContext is the session-scoped state a caller attaches to share
// schemas across a long-lived peer session; meta-sharing assumes the
// MetaContext is supplied by the caller, not constructed internally.
type MetaContext struct {
	// Write side.
	writeIDs       map[reflect.Type]uint32
	writingClassDefs []*ClassDef
	defByType        map[reflect.Type]*ClassDef

	// Read side: readClassDefs[i] and readClassInfos[i] refer to the same
	// per-session id i.
	ReadClassDefs  []*ClassDef
	ReadClassInfos []*ClassInfo
}

// NewMetaContext returns an empty session-scoped meta-sharing context.
func NewMetaContext() *MetaContext {
	return &MetaContext{
		writeIDs: make(map[reflect.Type]uint32),
		defByType: make(map[reflect.Type]*ClassDef),
	}
}

// idForWrite returns the per-session id for t, assigning a new dense id
// in first-use order if this is the first time t is seen this session.
// The bool result reports whether the id already existed.
func (m *MetaContext) idForWrite(t reflect.Type) (id uint32, existed bool) {
	if id, ok := m.writeIDs[t]; ok {
		return id, true
	}
	id = uint32(len(m.writeIDs))
	m.writeIDs[t] = id
	return id, false
}

// enqueueDef records def as pending transmission, keyed by t so repeat
// writes of the same type reuse the cached def instead of rebuilding it.
func (m *MetaContext) enqueueDef(t reflect.Type, def *ClassDef) {
	m.defByType[t] = def
	m.writingClassDefs = append(m.writingClassDefs, def)
}

func (m *MetaContext) cachedDef(t reflect.Type) (*ClassDef, bool) {
	d, ok := m.defByType[t]
	return d, ok
}

// ensureReadSlot grows ReadClassDefs/ReadClassInfos so index i is valid,
// preserving the invariant that both slices stay the same length.
func (m *MetaContext) ensureReadSlot(i int) {
	for len(m.ReadClassDefs) <= i {
		m.ReadClassDefs = append(m.ReadClassDefs, nil)
		m.ReadClassInfos = append(m.ReadClassInfos, nil)
	}
}
