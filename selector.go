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

	"go.uber.org/zap"
)

// CompatMode selects between schema-consistent and compatible
// deserialization (glossary).
type CompatMode int

const (
	SchemaConsistent CompatMode = iota
	Compatible
)

func isPrimitiveKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func primitiveCodecFor(k reflect.Kind) Codec {
	return namedCodec(k.String() + "BoxedCodec")
}

// CodecSelector is a pure function from (type, mode, flags) to a codec
// class, applying the selection policy as a fixed-order cascade: the
// first matching predicate wins.
type CodecSelector struct {
	traits   TypeTraits
	jit      JitContext
	blacklist *BlackList
	registry *Registry
	logger   *zap.Logger

	requireRegistration bool
	jdkSerializabilityCheck bool

	warnedOnce map[reflect.Type]bool
	selecting  map[reflect.Type]bool

	childCollectionCodecs map[reflect.Type]Codec
	childMapCodecs        map[reflect.Type]Codec

	// resolveNested lets the struct fallback path recurse into field
	// types through the owning Resolver's getOrCreateClassInfo, closing
	// the loop the JIT recursion guard relies on. Set once via
	// SetNestedResolver before first use.
	resolveNested func(reflect.Type) (*ClassInfo, error)
}

// NewCodecSelector builds a CodecSelector. traits/jit/blacklist/registry
// must be non-nil; logger may be nil (falls back to a no-op logger).
func NewCodecSelector(traits TypeTraits, jit JitContext, blacklist *BlackList, registry *Registry, logger *zap.Logger) *CodecSelector {
	if logger == nil {
		logger = newNopLogger()
	}
	return &CodecSelector{
		traits:                traits,
		jit:                   jit,
		blacklist:             blacklist,
		registry:              registry,
		logger:                logger,
		warnedOnce:            make(map[reflect.Type]bool),
		selecting:             make(map[reflect.Type]bool),
		childCollectionCodecs: make(map[reflect.Type]Codec),
		childMapCodecs:        make(map[reflect.Type]Codec),
	}
}

// SetNestedResolver wires the callback used to recurse into field types.
func (s *CodecSelector) SetNestedResolver(f func(reflect.Type) (*ClassInfo, error)) {
	s.resolveNested = f
}

// RegisterChildCollectionCodec registers a subclass specialization for a
// collection type, consulted before falling back to the generic
// collection codec.
func (s *CodecSelector) RegisterChildCollectionCodec(t reflect.Type, c Codec) {
	s.childCollectionCodecs[t] = c
}

// RegisterChildMapCodec is RegisterChildCollectionCodec's map analogue.
func (s *CodecSelector) RegisterChildMapCodec(t reflect.Type, c Codec) {
	s.childMapCodecs[t] = c
}

// securityGate runs before selection proceeds for any unregistered type:
// consult the BlackList, or reject outright under required-registration
// mode.
func (s *CodecSelector) securityGate(t reflect.Type) error {
	_, registered := s.registry.RegisteredID(t)

	if !registered && s.blacklist.Contains(t) {
		return fmt.Errorf("%w: %v is blacklisted", ErrInsecure, t)
	}

	if s.requireRegistration && !registered && !s.implicitlyTrusted(t) {
		return fmt.Errorf("%w: %v must be registered under required-registration mode", ErrInsecure, t)
	}

	if !registered && !s.warnedOnce[t] {
		s.warnedOnce[t] = true
		s.logger.Warn("resolving unregistered class", zap.String("type", t.String()))
	}
	return nil
}

func (s *CodecSelector) implicitlyTrusted(t reflect.Type) bool {
	if s.traits.IsLambda(t) || s.traits.IsDynamicProxy(t) {
		return true
	}
	if t.Kind() == reflect.Array || t.Kind() == reflect.Slice {
		return s.implicitlyTrusted(t.Elem())
	}
	return isPrimitiveKind(t.Kind()) || t.Kind() == reflect.String
}

// SelectCodec runs the fixed-order selection cascade. info is the
// ClassInfo being materialized; mode/codegenEnabled/shareMeta are the
// resolver's current configuration.
func (s *CodecSelector) SelectCodec(info *ClassInfo, mode CompatMode, codegenEnabled, shareMeta bool) (Codec, error) {
	t := info.Type

	// Rule 1: primitive -> boxed form's codec. PkgPath is empty only for
	// the predeclared kind itself; a named type over the same kind (a
	// candidate enum) has a non-empty PkgPath and falls through instead.
	if isPrimitiveKind(t.Kind()) && t.PkgPath() == "" {
		return primitiveCodecFor(t.Kind()), nil
	}

	// Rule 2: pre-bound codec.
	if info.HasCodec() {
		return info.Codec(), nil
	}

	if err := s.securityGate(t); err != nil {
		return nil, err
	}

	if s.selecting[t] {
		// JIT recursion guard: a nested selection for a type currently
		// being selected returns a LazyInitCodec to break the cycle; the
		// outer frame finishes and installs the real codec.
		return NewLazyInitCodec(nil), nil
	}
	s.selecting[t] = true
	defer delete(s.selecting, t)

	switch {
	case s.traits.IsEnum(t):
		return EnumCodec, nil
	case s.traits.IsEnumSet(t):
		return EnumSetCodec, nil
	case s.traits.IsCharSet(t):
		return CharsetCodec, nil
	case t.Kind() == reflect.Array:
		return s.selectArray(t)
	case s.traits.IsLambda(t):
		return LambdaCodec, nil
	case s.traits.IsDynamicProxy(t):
		return ProxyCodec, nil
	case s.traits.IsCalendarLike(t):
		return s.selectCalendar(t), nil
	case s.traits.IsExternalizable(t):
		return ExternalizableCodec, nil
	case s.traits.IsImmutableList(t):
		return ImmutableListCodec, nil
	case s.traits.IsImmutableMap(t):
		return ImmutableMapCodec, nil
	case s.traits.IsByteBuffer(t):
		return ByteBufferCodec, nil
	}

	if s.jdkSerializabilityCheck && s.traits.IsStandardLibrary(t) && !s.traits.IsMarkedSerializable(t) {
		return nil, fmt.Errorf("%w: %v is a standard-library type not marked serializable", ErrUnsupported, t)
	}

	switch t.Kind() {
	case reflect.Slice:
		return s.selectCollection(t), nil
	case reflect.Map:
		return s.selectMap(t), nil
	}

	if s.traits.HasReplaceResolve(t) {
		return ReplaceResolveCodec, nil
	}

	if s.traits.RequiresJDKStyle(t) {
		return JdkStreamCodec, nil
	}

	return s.selectFallback(info, t, mode, codegenEnabled, shareMeta)
}

func (s *CodecSelector) selectArray(t reflect.Type) (Codec, error) {
	elem := t.Elem()
	if isPrimitiveKind(elem.Kind()) {
		if _, registered := s.registry.RegisteredID(t); !registered {
			return nil, fmt.Errorf("%w: primitive-element array %v must be pre-registered", ErrUnsupported, t)
		}
	}
	return ObjectArrayCodec, nil
}

func (s *CodecSelector) selectCalendar(t reflect.Type) Codec {
	switch {
	case t == zoneIDType:
		return ZoneIDCodec
	case t == timeLocationType || t == reflect.PtrTo(timeLocationType):
		return TimeZoneCodec
	default:
		return CalendarCodec
	}
}

func (s *CodecSelector) selectCollection(t reflect.Type) Codec {
	if c, ok := s.childCollectionCodecs[t]; ok {
		return c
	}
	if s.needsJDKStyleCollection(t) || s.traits.HasReplaceResolve(t) {
		return JdkCompatibleCollectionCodec
	}
	return DefaultCollectionCodec
}

func (s *CodecSelector) selectMap(t reflect.Type) Codec {
	if c, ok := s.childMapCodecs[t]; ok {
		return c
	}
	if s.needsJDKStyleCollection(t) || s.traits.HasReplaceResolve(t) {
		return JdkCompatibleMapCodec
	}
	return DefaultMapCodec
}

// needsJDKStyleCollection reports whether a slice/map needs "JDK-style"
// handling, i.e. it's a named type for which RequiresJDKStyle holds rather
// than a plain built-in slice/map literal. RequiresJDKStyle is false for
// every slice kind, so for slices this is always false.
func (s *CodecSelector) needsJDKStyleCollection(t reflect.Type) bool {
	return t.Name() != "" && s.traits.RequiresJDKStyle(t)
}

func (s *CodecSelector) selectFallback(info *ClassInfo, t reflect.Type, mode CompatMode, codegenEnabled, shareMeta bool) (Codec, error) {
	if t.Kind() == reflect.Struct && s.resolveNested != nil {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue // unexported
			}
			ft := f.Type
			for ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && ft != t {
				if _, err := s.resolveNested(ft); err != nil {
					return nil, err
				}
			}
		}
	}

	var base Codec
	if mode == Compatible || shareMeta {
		base = CompatibleObjectCodec
	} else {
		base = ObjectCodec
	}

	if !codegenEnabled {
		return base, nil
	}

	lazy := NewLazyInitCodec(nil)
	s.jit.RegisterSerializerJITCallback(t, func(compiled Codec) {
		lazy.installReady(compiled)
		info.SetCodec(compiled)
	})
	return lazy, nil
}
