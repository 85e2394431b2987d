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
	"net"
	"reflect"
	"sync"
	"time"
)

// Marker interfaces a concrete Go type can implement to opt into one of
// the runtime contracts the selection cascade dispatches on. Java
// expresses these as marker classes/methods discovered through
// reflection; Go has no such ambient machinery, so TypeTraits discovers
// them through interface satisfaction instead, bound once per runtime.

// Externalizable is the runtime's externalizable contract: a type that
// declares its own binary in/out methods and bypasses the reflective
// field walk.
type Externalizable interface {
	WriteExternal(w Buffer) error
	ReadExternal(r Buffer) error
}

// ReplaceResolver is the replace/resolve hook pair: substitutes another
// object at write time and reconstructs one at read time.
type ReplaceResolver interface {
	WriteReplace() (interface{}, error)
	ReadResolve() (interface{}, error)
}

// JDKSerializable marks a type that participates in JDK-style custom
// serialization (glossary) when it additionally defines WriteObject/
// ReadObject below. A type can implement JDKSerializable without the
// object hooks; TypeTraits.RequiresJDKStyle checks both.
type JDKSerializable interface {
	jdkSerializableMarker()
}

// JDKObjectHooks is the pair of instance methods whose presence (on a
// JDKSerializable that is not Externalizable and has no replace/resolve
// hooks) triggers the JDK-style custom serialization codec.
type JDKObjectHooks interface {
	WriteObject(w Buffer) error
	ReadObject(r Buffer) error
}

// Lambda marks a function-valued type that should be dispatched through
// LambdaCodec. Go closures have no stable identity to reflect on the way
// Java's generated lambda classes do, so TypeTraits treats every
// reflect.Func kind, and any type implementing Lambda, as one.
type Lambda interface {
	forywireLambda()
}

// DynamicProxy marks a type generated to stand in for an interface at
// runtime, the Go analogue of java.lang.reflect.Proxy.
type DynamicProxy interface {
	forywireProxy()
}

// EnumSet marks a type representing a set of enum-like constants;
// CharSet similarly marks a character-set type.
type EnumSet interface {
	forywireEnumSet()
}
type CharSet interface {
	forywireCharSet()
}

// ImmutableList and ImmutableMap mark the built-in immutable container
// wrappers.
type ImmutableList interface {
	forywireImmutableList()
}
type ImmutableMap interface {
	forywireImmutableMap()
}

// TypeTraits reports the structural facts CodecSelector needs about a
// type, abstracting away deep class-literal reflection behind a small
// capability interface. One instance is bound per runtime/resolver.
type TypeTraits interface {
	IsEnum(t reflect.Type) bool
	IsEnumSet(t reflect.Type) bool
	IsCharSet(t reflect.Type) bool
	IsLambda(t reflect.Type) bool
	IsDynamicProxy(t reflect.Type) bool
	IsCalendarLike(t reflect.Type) bool
	IsExternalizable(t reflect.Type) bool
	IsImmutableList(t reflect.Type) bool
	IsImmutableMap(t reflect.Type) bool
	IsByteBuffer(t reflect.Type) bool
	HasReplaceResolve(t reflect.Type) bool
	RequiresJDKStyle(t reflect.Type) bool
	// IsGenerated reports whether t was produced by this framework's own
	// code generator (never true for user types); used to short-circuit
	// the JDK-style check for runtime-generated classes.
	IsGenerated(t reflect.Type) bool
	// IsStandardLibrary reports whether t's package path is rooted in the
	// Go standard library, the analogue of "in the runtime's standard
	// library" for rule 12's JDK-class-serializability gate.
	IsStandardLibrary(t reflect.Type) bool
	// IsMarkedSerializable reports whether a standard-library type has
	// opted into serialization (rule 12's "not marked serializable").
	IsMarkedSerializable(t reflect.Type) bool
}

var (
	externalizableType   = reflect.TypeOf((*Externalizable)(nil)).Elem()
	replaceResolverType  = reflect.TypeOf((*ReplaceResolver)(nil)).Elem()
	jdkSerializableType  = reflect.TypeOf((*JDKSerializable)(nil)).Elem()
	jdkObjectHooksType   = reflect.TypeOf((*JDKObjectHooks)(nil)).Elem()
	lambdaType           = reflect.TypeOf((*Lambda)(nil)).Elem()
	dynamicProxyType     = reflect.TypeOf((*DynamicProxy)(nil)).Elem()
	enumSetType          = reflect.TypeOf((*EnumSet)(nil)).Elem()
	charSetType          = reflect.TypeOf((*CharSet)(nil)).Elem()
	immutableListType    = reflect.TypeOf((*ImmutableList)(nil)).Elem()
	immutableMapType     = reflect.TypeOf((*ImmutableMap)(nil)).Elem()
	stringerType         = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	timeType             = reflect.TypeOf(time.Time{})
	timeLocationType     = reflect.TypeOf(time.Location{})
	zoneIDType           = reflect.TypeOf(ZoneID(""))
)

// defaultTypeTraits is the reflect-based TypeTraits implementation every
// Resolver uses unless a test substitutes a fake. generatedTypes records
// types the JIT/codegen path has produced so IsGenerated can recognize
// them without a naming convention. nonSerializableStdlib is rule 12's
// deny-set: standard-library types known to carry state (locks, file
// descriptors, live sockets) that can't round-trip through a reflective
// field walk, so IsMarkedSerializable has something concrete to reject.
type defaultTypeTraits struct {
	generatedTypes        map[reflect.Type]bool
	byteBufferType        reflect.Type
	nonSerializableStdlib map[reflect.Type]bool
}

func newDefaultTypeTraits() *defaultTypeTraits {
	d := &defaultTypeTraits{
		generatedTypes:        make(map[reflect.Type]bool),
		nonSerializableStdlib: make(map[reflect.Type]bool),
	}
	for _, t := range []reflect.Type{
		reflect.TypeOf(sync.Mutex{}),
		reflect.TypeOf(sync.RWMutex{}),
		reflect.TypeOf(sync.WaitGroup{}),
		reflect.TypeOf(sync.Once{}),
		reflect.TypeOf(net.TCPConn{}),
		reflect.TypeOf(net.UnixConn{}),
	} {
		d.nonSerializableStdlib[t] = true
	}
	return d
}

// MarkNonSerializable adds t to rule 12's deny-set, so a later
// IsMarkedSerializable check rejects it even if it
// wasn't one of the defaults above. Setup-time only, like Registry's
// register calls.
func (d *defaultTypeTraits) MarkNonSerializable(t reflect.Type) {
	d.nonSerializableStdlib[t] = true
}

func (d *defaultTypeTraits) markGenerated(t reflect.Type) {
	d.generatedTypes[t] = true
}

func (d *defaultTypeTraits) IsEnum(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		// A plain builtin integer kind is not itself an enum; only a named
		// type over one of these kinds that also reports itself via
		// Stringer is treated as an enum, the common Go idiom (stringer-
		// generated String() method on an iota block).
		return t.Name() != "" && t.Implements(stringerType)
	default:
		return false
	}
}

func (d *defaultTypeTraits) IsEnumSet(t reflect.Type) bool {
	return t.Implements(enumSetType)
}

func (d *defaultTypeTraits) IsCharSet(t reflect.Type) bool {
	return t.Implements(charSetType)
}

func (d *defaultTypeTraits) IsLambda(t reflect.Type) bool {
	return t.Kind() == reflect.Func || t.Implements(lambdaType)
}

func (d *defaultTypeTraits) IsDynamicProxy(t reflect.Type) bool {
	return t.Implements(dynamicProxyType)
}

func (d *defaultTypeTraits) IsCalendarLike(t reflect.Type) bool {
	return t == timeType || t == timeLocationType || t == reflect.PtrTo(timeLocationType) || t == zoneIDType
}

func (d *defaultTypeTraits) IsExternalizable(t reflect.Type) bool {
	return t.Implements(externalizableType) || reflect.PtrTo(t).Implements(externalizableType)
}

func (d *defaultTypeTraits) IsImmutableList(t reflect.Type) bool {
	return t.Implements(immutableListType)
}

func (d *defaultTypeTraits) IsImmutableMap(t reflect.Type) bool {
	return t.Implements(immutableMapType)
}

func (d *defaultTypeTraits) IsByteBuffer(t reflect.Type) bool {
	if d.byteBufferType != nil && t == d.byteBufferType {
		return true
	}
	return t == reflect.TypeOf((*byteBufferImpl)(nil))
}

func (d *defaultTypeTraits) HasReplaceResolve(t reflect.Type) bool {
	return t.Implements(replaceResolverType) || reflect.PtrTo(t).Implements(replaceResolverType)
}

func (d *defaultTypeTraits) RequiresJDKStyle(t reflect.Type) bool {
	implementsMarker := t.Implements(jdkSerializableType) || reflect.PtrTo(t).Implements(jdkSerializableType)
	if !implementsMarker {
		return false
	}
	if d.IsEnum(t) || t.Kind() == reflect.Array || t.Kind() == reflect.Slice || d.IsGenerated(t) {
		return false
	}
	if d.HasReplaceResolve(t) || d.IsExternalizable(t) {
		return false
	}
	return t.Implements(jdkObjectHooksType) || reflect.PtrTo(t).Implements(jdkObjectHooksType)
}

func (d *defaultTypeTraits) IsGenerated(t reflect.Type) bool {
	return d.generatedTypes[t]
}

func (d *defaultTypeTraits) IsStandardLibrary(t reflect.Type) bool {
	pkg := t.PkgPath()
	if pkg == "" {
		return false
	}
	// Standard library packages never contain a dot in their first path
	// segment (it's not a host name); everything else is a module path.
	for _, r := range pkg {
		if r == '/' {
			return true
		}
		if r == '.' {
			return false
		}
	}
	return true
}

func (d *defaultTypeTraits) IsMarkedSerializable(t reflect.Type) bool {
	return !d.nonSerializableStdlib[t]
}
