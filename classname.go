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
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// ClassInfoCache is the single-slot fast path every read side accepts:
// the previously-seen ClassInfo. If the two byte strings hash-equal the
// cached ClassInfo's bytes, return the cached ClassInfo without a map
// lookup. Deliberately branchless beyond the hash compare.
type ClassInfoCache struct {
	key  classNameBytesKey
	info *ClassInfo
}

// ClassNameCodec encodes/decodes a fully-qualified type name as two
// interned byte strings (package, simple name), with a hash-keyed cache
// of reconstructed types.
type ClassNameCodec struct {
	strings StringTable
	loader  TypeLoader
	tolerateUnknown bool

	// composite cache keyed by (packageHash, simpleNameHash) -> ClassInfo.
	composite map[classNameBytesKey]*ClassInfo
}

func NewClassNameCodec(st StringTable, loader TypeLoader, tolerateUnknown bool) *ClassNameCodec {
	return &ClassNameCodec{
		strings:         st,
		loader:          loader,
		tolerateUnknown: tolerateUnknown,
		composite:       make(map[classNameBytesKey]*ClassInfo),
	}
}

// qualifiedName splits t into (packageName, simpleName). Composite types
// (pointer/slice/map with no direct registration) get a structural simple
// name built the way type.go's encodeType does, with an empty package.
func qualifiedName(t reflect.Type) (pkg, simple string) {
	if name := t.Name(); name != "" {
		return norm.NFC.String(t.PkgPath()), norm.NFC.String(name)
	}
	return "", norm.NFC.String(compositeName(t))
}

func compositeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + elemQualified(t.Elem())
	case reflect.Slice:
		return "[]" + elemQualified(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + elemQualified(t.Elem()) // [N]T: distinct from "[]" so a fixed-size array never cache-collides with a slice, or with an array of another length
	case reflect.Map:
		return "map[" + elemQualified(t.Key()) + "]" + elemQualified(t.Elem())
	default:
		return t.String()
	}
}

func elemQualified(t reflect.Type) string {
	if name := t.Name(); name != "" {
		if pkg := t.PkgPath(); pkg != "" {
			return pkg + "." + name
		}
		return name
	}
	return compositeName(t)
}

// WriteClassName emits packageNameBytes then classNameBytes via
// StringTable.
func (c *ClassNameCodec) WriteClassName(buf Buffer, info *ClassInfo) error {
	if info.packageNameBytes == nil && info.classNameBytes == nil {
		pkg, simple := qualifiedName(info.Type)
		info.packageNameBytes = []byte(pkg)
		info.classNameBytes = []byte(simple)
	}
	if err := c.strings.WriteString(buf, string(info.packageNameBytes)); err != nil {
		return err
	}
	return c.strings.WriteString(buf, string(info.classNameBytes))
}

// ReadClassName reads the two interned byte strings and resolves a
// ClassInfo, consulting the fast single-slot cache first and the
// composite cache on a miss.
func (c *ClassNameCodec) ReadClassName(buf Buffer, cache *ClassInfoCache) (*ClassInfo, error) {
	pkg, err := c.strings.ReadString(buf)
	if err != nil {
		return nil, err
	}
	simple, err := c.strings.ReadString(buf)
	if err != nil {
		return nil, err
	}

	key := classNameBytesKey{packageHash: hashString(pkg), simpleNameHash: hashString(simple)}

	if cache != nil && cache.info != nil && cache.key == key {
		return cache.info, nil
	}

	if info, ok := c.composite[key]; ok {
		if cache != nil {
			cache.key, cache.info = key, info
		}
		return info, nil
	}

	fullName := simple
	if pkg != "" {
		fullName = pkg + "." + simple
	}
	t, ok := c.loader.TryLoad(fullName)
	if !ok {
		if !c.tolerateUnknown {
			return nil, ErrClassNotFound
		}
		t = unexistedSkipType
	}

	info := newClassInfo(t, NoClassID)
	info.packageNameBytes = []byte(pkg)
	info.classNameBytes = []byte(simple)
	c.composite[key] = info
	if cache != nil {
		cache.key, cache.info = key, info
	}
	return info, nil
}

// unexistedSkip is the designated placeholder type substituted when a
// class cannot be loaded in tolerant mode.
type unexistedSkip struct{}

var unexistedSkipType = reflect.TypeOf(unexistedSkip{})

// IsUnexistedSkip reports whether t is the tolerant-mode placeholder.
func IsUnexistedSkip(t reflect.Type) bool {
	return t == unexistedSkipType
}

// unexistedMetaShared is substituted in place of unexistedSkip when meta-
// sharing needs to keep decoding a payload whose structural def is known
// even though the local type isn't.
type unexistedMetaShared struct {
	Def *ClassDef
}

var unexistedMetaSharedType = reflect.TypeOf(unexistedMetaShared{})
