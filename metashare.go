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
	"fmt"
	"reflect"
)

// MetaShare is the session-scoped transmission and resolution of ClassDefs:
// maps per-session small ids to ClassInfo, and deduplicates ClassDef by
// content-hash id across every MetaContext sharing this resolver.
type MetaShare struct {
	nameCodec *ClassNameCodec
	classIdToDef map[uint64]*ClassDef
	defToInfo    map[uint64]*ClassInfo
}

func NewMetaShare(nameCodec *ClassNameCodec) *MetaShare {
	return &MetaShare{
		nameCodec:    nameCodec,
		classIdToDef: make(map[uint64]*ClassDef),
		defToInfo:    make(map[uint64]*ClassInfo),
	}
}

// buildClassDef derives a ClassDef for t. In Compatible mode with a
// schema-aware codec bound, it walks exported fields into a full
// field-bearing def; otherwise it builds a name-only def with
// shareFieldsInfo=false.
func buildClassDef(t reflect.Type, mode CompatMode, schemaAware bool) *ClassDef {
	name := fullName(t)
	if mode == Compatible && schemaAware && t.Kind() == reflect.Struct {
		fields := make([]FieldDescriptor, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue // unexported
			}
			fields = append(fields, FieldDescriptor{
				Name:         f.Name,
				DeclaredType: f.Type.String(),
				OwningClass:  name,
			})
		}
		return NewClassDef(name, fields, map[string]string{"shareFieldsInfo": "true"})
	}
	return NewClassDef(name, nil, map[string]string{"shareFieldsInfo": "false"})
}

// WriteClass is MetaShare's write side: a positive varint per-session id.
// The first time a type is seen this session its ClassDef is queued for
// FlushClassDefs rather than written inline.
func (m *MetaShare) WriteClass(buf Buffer, ctx *MetaContext, info *ClassInfo, mode CompatMode, schemaAware bool) error {
	if ctx == nil {
		return ErrMissingMetaContext
	}
	id, existed := ctx.idForWrite(info.Type)
	if err := m.writeID(buf, id); err != nil {
		return err
	}
	if existed {
		return nil
	}
	def, cached := ctx.cachedDef(info.Type)
	if !cached {
		def = buildClassDef(info.Type, mode, schemaAware)
		ctx.enqueueDef(info.Type, def)
	}
	if _, ok := m.classIdToDef[def.ID]; !ok {
		m.classIdToDef[def.ID] = def
	}
	info.StructuralDef = def
	return nil
}

func (m *MetaShare) writeID(buf Buffer, id uint32) error {
	buf.WriteVarUint64(uint64(id))
	return nil
}

// FlushClassDefs writes the session's pending ClassDefs: a count, then
// each def's body. Placement in the stream (typically end-of-stream,
// offset recorded in the envelope) is the caller's responsibility.
func (m *MetaShare) FlushClassDefs(buf Buffer, ctx *MetaContext) error {
	buf.WriteVarUint64(uint64(len(ctx.writingClassDefs)))
	for _, def := range ctx.writingClassDefs {
		if err := writeClassDefBody(buf, def); err != nil {
			return err
		}
	}
	ctx.writingClassDefs = nil
	return nil
}

// ReadClassDefs reads a previously flushed defs section. The caller is
// responsible for positioning buf at the absolute defs offset and
// restoring the main read cursor afterward. Each call appends its defs
// after the ones already read, so session ids keep counting across
// flushes.
func (m *MetaShare) ReadClassDefs(buf Buffer, ctx *MetaContext) error {
	count := int(buf.ReadVarUint64())
	base := len(ctx.ReadClassDefs)
	for i := 0; i < count; i++ {
		def, err := readClassDefBody(buf)
		if err != nil {
			return err
		}
		if shared, ok := m.classIdToDef[def.ID]; ok {
			def = shared
		} else {
			m.classIdToDef[def.ID] = def
		}
		ctx.ensureReadSlot(base + i)
		ctx.ReadClassDefs[base+i] = def
	}
	return nil
}

// ReadClassInfo is MetaShare's read-side resolution: resolves a
// per-session id to a ClassInfo, building and caching a meta-share-aware
// ClassInfo on first use.
func (m *MetaShare) ReadClassInfo(buf Buffer, ctx *MetaContext, loader TypeLoader, tolerateUnknown bool) (*ClassInfo, error) {
	if ctx == nil {
		return nil, ErrMissingMetaContext
	}
	id := int(buf.ReadVarUint64())
	ctx.ensureReadSlot(id)
	if ctx.ReadClassInfos[id] != nil {
		return ctx.ReadClassInfos[id], nil
	}

	def := ctx.ReadClassDefs[id]
	if def == nil {
		return nil, fmt.Errorf("%w: no ClassDef for session id %d", ErrMissingMetaContext, id)
	}

	if !def.ShareFieldsInfo() {
		t, ok := loader.TryLoad(def.FullName)
		if !ok {
			if !tolerateUnknown {
				return nil, ErrClassNotFound
			}
			t = unexistedSkipType
		}
		info := newClassInfo(t, NoClassID)
		info.StructuralDef = def
		ctx.ReadClassInfos[id] = info
		return info, nil
	}

	if info, ok := m.defToInfo[def.ID]; ok {
		ctx.ReadClassInfos[id] = info
		return info, nil
	}

	t, ok := loader.TryLoad(def.FullName)
	if !ok {
		if !tolerateUnknown {
			return nil, ErrClassNotFound
		}
		// Substitute the meta-shared placeholder so payload decoding
		// still progresses using the transmitted def.
		t = unexistedMetaSharedType
	}
	info := newClassInfo(t, NoClassID)
	info.StructuralDef = def
	m.defToInfo[def.ID] = info
	ctx.ReadClassInfos[id] = info
	return info, nil
}

func writeClassDefBody(buf Buffer, def *ClassDef) error {
	buf.WriteInt64(int64(def.ID))
	if err := writeLenPrefixed(buf, def.FullName); err != nil {
		return err
	}
	buf.WriteVarUint64(uint64(len(def.Fields)))
	for _, f := range def.Fields {
		if err := writeLenPrefixed(buf, f.Name); err != nil {
			return err
		}
		if err := writeLenPrefixed(buf, f.DeclaredType); err != nil {
			return err
		}
		if err := writeLenPrefixed(buf, f.OwningClass); err != nil {
			return err
		}
	}
	buf.WriteVarUint64(uint64(len(def.ExtMeta)))
	for _, k := range sortedKeys(def.ExtMeta) {
		if err := writeLenPrefixed(buf, k); err != nil {
			return err
		}
		if err := writeLenPrefixed(buf, def.ExtMeta[k]); err != nil {
			return err
		}
	}
	return nil
}

func readClassDefBody(buf Buffer) (*ClassDef, error) {
	id := uint64(buf.ReadInt64())
	fullName, err := readLenPrefixed(buf)
	if err != nil {
		return nil, err
	}
	fieldCount := int(buf.ReadVarUint64())
	fields := make([]FieldDescriptor, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		name, err := readLenPrefixed(buf)
		if err != nil {
			return nil, err
		}
		declaredType, err := readLenPrefixed(buf)
		if err != nil {
			return nil, err
		}
		owningClass, err := readLenPrefixed(buf)
		if err != nil {
			return nil, err
		}
		fields = append(fields, FieldDescriptor{Name: name, DeclaredType: declaredType, OwningClass: owningClass})
	}
	extCount := int(buf.ReadVarUint64())
	extMeta := make(map[string]string, extCount)
	for i := 0; i < extCount; i++ {
		k, err := readLenPrefixed(buf)
		if err != nil {
			return nil, err
		}
		v, err := readLenPrefixed(buf)
		if err != nil {
			return nil, err
		}
		extMeta[k] = v
	}
	return &ClassDef{ID: id, FullName: fullName, Fields: fields, ExtMeta: extMeta}, nil
}

func writeLenPrefixed(buf Buffer, s string) error {
	buf.WriteVarUint64(uint64(len(s)))
	buf.WriteBinary([]byte(s))
	return nil
}

func readLenPrefixed(buf Buffer) (string, error) {
	n := int(buf.ReadVarUint64())
	return string(buf.ReadBinary(n)), nil
}
