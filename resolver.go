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

// ResolverConfig is the resolver's own knob set: no generic config-loader
// is built here, since configuration loading lives outside this module's
// scope.
type ResolverConfig struct {
	Mode                    CompatMode
	CodegenEnabled          bool
	ShareMetaEnabled        bool
	RequireRegistration     bool
	TolerateUnknownClasses  bool
	JDKSerializabilityCheck bool
	Logger                  *zap.Logger
	Loader                  TypeLoader
	Jit                     JitContext
}

func (c ResolverConfig) withDefaults() ResolverConfig {
	if c.Logger == nil {
		c.Logger = newNopLogger()
	}
	if c.Loader == nil {
		c.Loader = NewMapTypeLoader()
	}
	if c.Jit == nil {
		c.Jit = NoopJitContext{}
	}
	return c
}

// Resolver is the facade composing Registry, ClassNameCodec, CodecSelector
// and MetaShare, owning the hot-path caches and writeClass/readClass/
// getCodec entry points.
type Resolver struct {
	config ResolverConfig

	registry       *Registry
	strings        StringTable
	classNameCodec *ClassNameCodec
	selector       *CodecSelector
	metaShare      *MetaShare
	traits         *defaultTypeTraits
	blacklist      *BlackList

	// classInfoCache is the single-slot last-seen cache updated on every
	// successful lookup.
	classInfoCache ClassInfoCache
	lastLookupType reflect.Type
	lastLookupInfo *ClassInfo

	// metaCtx is the session-scoped MetaContext the caller attaches; the
	// resolver never negotiates or constructs one itself.
	metaCtx *MetaContext

	// currentReadClass is updated to the resolved type on every read.
	currentReadClass reflect.Type

	boxedLong   reflect.Type
	boxedInt    reflect.Type
	boxedDouble reflect.Type
}

// NewResolver builds a Resolver with the built-in reserved ids already
// occupied.
func NewResolver(config ResolverConfig) *Resolver {
	config = config.withDefaults()

	registry := NewRegistry()
	traits := newDefaultTypeTraits()
	blacklist := NewBlackList()
	strings := NewInternedStringTable()
	nameCodec := NewClassNameCodec(strings, config.Loader, config.TolerateUnknownClasses)
	selector := NewCodecSelector(traits, config.Jit, blacklist, registry, config.Logger)
	selector.requireRegistration = config.RequireRegistration
	selector.jdkSerializabilityCheck = config.JDKSerializabilityCheck
	metaShare := NewMetaShare(nameCodec)

	r := &Resolver{
		config:         config,
		registry:       registry,
		strings:        strings,
		classNameCodec: nameCodec,
		selector:       selector,
		metaShare:      metaShare,
		traits:         traits,
		blacklist:      blacklist,
	}
	selector.SetNestedResolver(r.getOrCreateClassInfo)
	r.bindBuiltins()
	return r
}

func (r *Resolver) bindBuiltins() {
	type binding struct {
		id ClassID
		t  reflect.Type
	}
	voidT := reflect.TypeOf(struct{}{})
	ptrVoidT := reflect.PtrTo(voidT)
	boolT := reflect.TypeOf(false)
	byteT := reflect.TypeOf(uint8(0))
	charT := reflect.TypeOf(uint16(0))
	shortT := reflect.TypeOf(int16(0))
	intT := reflect.TypeOf(int32(0))
	floatT := reflect.TypeOf(float32(0))
	longT := reflect.TypeOf(int64(0))
	doubleT := reflect.TypeOf(float64(0))
	stringT := reflect.TypeOf("")

	bindings := []binding{
		{VoidID, voidT},
		{BoolID, boolT},
		{ByteID, byteT},
		{CharID, charT},
		{ShortID, shortT},
		{IntID, intT},
		{FloatID, floatT},
		{LongID, longT},
		{DoubleID, doubleT},

		{BoxedVoidID, ptrVoidT},
		{BoxedBoolID, reflect.PtrTo(boolT)},
		{BoxedByteID, reflect.PtrTo(byteT)},
		{BoxedCharID, reflect.PtrTo(charT)},
		{BoxedShortID, reflect.PtrTo(shortT)},
		{BoxedIntID, reflect.PtrTo(intT)},
		{BoxedFloatID, reflect.PtrTo(floatT)},
		{BoxedLongID, reflect.PtrTo(longT)},
		{BoxedDoubleID, reflect.PtrTo(doubleT)},
		{StringID, stringT},

		{BoolArrayID, reflect.SliceOf(boolT)},
		{ByteArrayID, reflect.SliceOf(byteT)},
		{CharArrayID, reflect.SliceOf(charT)},
		{ShortArrayID, reflect.SliceOf(shortT)},
		{IntArrayID, reflect.SliceOf(intT)},
		{FloatArrayID, reflect.SliceOf(floatT)},
		{LongArrayID, reflect.SliceOf(longT)},
		{DoubleArrayID, reflect.SliceOf(doubleT)},

		{StringArrayID, reflect.SliceOf(stringT)},
		{ObjectArrayID, reflect.TypeOf([]interface{}{})},

		{ArrayListID, reflect.TypeOf(List{})},
		{HashMapID, reflect.TypeOf(HashMap{})},
		{HashSetID, reflect.TypeOf(HashSet{})},
		{ClassClassID, reflect.TypeOf((*reflect.Type)(nil)).Elem()},
	}

	for _, b := range bindings {
		r.registry.BindBuiltin(b.t, b.id)
	}

	r.boxedLong, r.boxedInt, r.boxedDouble = reflect.PtrTo(longT), reflect.PtrTo(intT), reflect.PtrTo(doubleT)
}

// SetMetaContext attaches the session-scoped MetaContext for subsequent
// meta-sharing reads/writes.
func (r *Resolver) SetMetaContext(ctx *MetaContext) {
	r.metaCtx = ctx
}

// MetaContext returns the currently attached MetaContext, if any.
func (r *Resolver) MetaContext() *MetaContext {
	return r.metaCtx
}

// Register is Registry.Register, exposed through the facade.
func (r *Resolver) Register(t reflect.Type) (*ClassInfo, error) {
	return r.registry.Register(t)
}

// RegisterWithID is Registry.RegisterWithID.
func (r *Resolver) RegisterWithID(t reflect.Type, id ClassID) (*ClassInfo, error) {
	return r.registry.RegisterWithID(t, id)
}

// RegisterWithCheck is Registry.RegisterWithCheck.
func (r *Resolver) RegisterWithCheck(t reflect.Type, id ClassID) (*ClassInfo, error) {
	return r.registry.RegisterWithCheck(t, id)
}

// RegisteredID is Registry.RegisteredID.
func (r *Resolver) RegisteredID(t reflect.Type) (ClassID, bool) {
	return r.registry.RegisteredID(t)
}

// RegisteredType is Registry.RegisteredType.
func (r *Resolver) RegisteredType(id ClassID) (reflect.Type, bool) {
	return r.registry.RegisteredType(id)
}

// RegisteredTypes is Registry.RegisteredTypes.
func (r *Resolver) RegisteredTypes() []reflect.Type {
	return r.registry.RegisteredTypes()
}

// BlackList exposes the security blacklist so callers can extend it at
// setup time.
func (r *Resolver) BlackList() *BlackList {
	return r.blacklist
}

// MarkNonSerializable extends rule 12's deny-set (§4.3): when
// JDKSerializabilityCheck is enabled, a standard-library type marked here
// fails codec selection with ErrUnsupported instead of silently falling
// through to the reflective object codec. Setup-time only.
func (r *Resolver) MarkNonSerializable(t reflect.Type) {
	r.traits.MarkNonSerializable(t)
}

// CurrentReadClass is the most recently resolved type from a read,
// observable by callers without explicit codec dispatch.
func (r *Resolver) CurrentReadClass() reflect.Type {
	return r.currentReadClass
}

// getOrCreateClassInfo is the sole codec-materialization entry point:
// single-slot identity check, falling back to the registry map, falling
// back to selectCodec on a miss or stale bare entry.
func (r *Resolver) getOrCreateClassInfo(t reflect.Type) (*ClassInfo, error) {
	if r.lastLookupType == t && r.lastLookupInfo != nil {
		return r.lastLookupInfo, nil
	}

	info, ok := r.registry.ClassInfoByType(t)
	if !ok {
		info = newClassInfo(t, NoClassID)
		r.registry.PutClassInfo(info)
	}

	if !info.HasCodec() {
		codec, err := r.selector.SelectCodec(info, r.config.Mode, r.config.CodegenEnabled, r.config.ShareMetaEnabled)
		if err != nil {
			return nil, err
		}
		info.SetCodec(codec)
	}

	r.lastLookupType, r.lastLookupInfo = t, info
	return info, nil
}

// GetCodec returns the codec bound to t, materializing its ClassInfo if
// necessary.
func (r *Resolver) GetCodec(t reflect.Type) (Codec, error) {
	info, err := r.getOrCreateClassInfo(t)
	if err != nil {
		return nil, err
	}
	codec := info.Codec()
	if lazy, ok := codec.(*LazyInitCodec); ok {
		return lazy.Resolve(), nil
	}
	return codec, nil
}

// WriteClassAndUpdate is the fully inlined hot path: the three most
// common boxed numerics emit their 3-byte USE_ID record directly without
// touching any cache; everything else delegates to WriteClass.
func (r *Resolver) WriteClassAndUpdate(buf Buffer, t reflect.Type) error {
	switch t {
	case r.boxedLong:
		writeUseID(buf, LongClassID)
		return nil
	case r.boxedInt:
		writeUseID(buf, IntegerClassID)
		return nil
	case r.boxedDouble:
		writeUseID(buf, DoubleClassID)
		return nil
	}
	info, err := r.getOrCreateClassInfo(t)
	if err != nil {
		return err
	}
	return r.WriteClass(buf, info)
}

func writeUseID(buf Buffer, id ClassID) {
	// Unchecked contiguous write: pre-advance the cursor once, then place
	// the tag byte and id by offset.
	dst := buf.Reserve(3)
	dst[0] = UseID
	dst[1] = byte(id)
	dst[2] = byte(id >> 8)
}

// WriteClass writes the 3-byte USE_ID record, or USE_CLASSVALUE plus
// either a meta-shared session id or two interned name byte strings.
func (r *Resolver) WriteClass(buf Buffer, info *ClassInfo) error {
	if info.ClassID != NoClassID {
		writeUseID(buf, info.ClassID)
		return nil
	}

	buf.WriteByte_(UseClassValue)
	if r.config.ShareMetaEnabled {
		return r.metaShare.WriteClass(buf, r.metaCtx, info, r.config.Mode, info.StructuralDef != nil || r.config.Mode == Compatible)
	}
	return r.classNameCodec.WriteClassName(buf, info)
}

// FlushClassDefs delegates to MetaShare.FlushClassDefs for the attached
// MetaContext.
func (r *Resolver) FlushClassDefs(buf Buffer) error {
	if r.metaCtx == nil {
		return ErrMissingMetaContext
	}
	return r.metaShare.FlushClassDefs(buf, r.metaCtx)
}

// ReadClassDefs delegates to MetaShare.ReadClassDefs for the attached
// MetaContext.
func (r *Resolver) ReadClassDefs(buf Buffer) error {
	if r.metaCtx == nil {
		return ErrMissingMetaContext
	}
	return r.metaShare.ReadClassDefs(buf, r.metaCtx)
}

// ReadClassInfo reads a class tag and resolves the corresponding
// ClassInfo.
func (r *Resolver) ReadClassInfo(buf Buffer) (*ClassInfo, error) {
	tag := buf.ReadByte_()
	switch tag {
	case UseID:
		id := buf.ReadUint16()
		info, ok := r.registry.ClassInfoByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrClassNotFound, id)
		}
		if !info.HasCodec() {
			codec, err := r.selector.SelectCodec(info, r.config.Mode, r.config.CodegenEnabled, r.config.ShareMetaEnabled)
			if err != nil {
				return nil, err
			}
			info.SetCodec(codec)
		}
		r.currentReadClass = info.Type
		return info, nil
	case UseClassValue:
		var info *ClassInfo
		var err error
		if r.config.ShareMetaEnabled {
			if r.metaCtx == nil {
				return nil, ErrMissingMetaContext
			}
			info, err = r.metaShare.ReadClassInfo(buf, r.metaCtx, r.config.Loader, r.config.TolerateUnknownClasses)
		} else {
			info, err = r.classNameCodec.ReadClassName(buf, &r.classInfoCache)
		}
		if err != nil {
			return nil, err
		}
		r.currentReadClass = info.Type
		return info, nil
	default:
		return nil, fmt.Errorf("%w: unknown class tag 0x%02x", ErrClassNotFound, tag)
	}
}

// ResetWrite resets the shared StringTable, used between independent
// streams sharing one Resolver but not one MetaContext. It clears the
// read-side interned strings as well as the write-side ids.
func (r *Resolver) ResetWrite() {
	r.strings.Reset()
}
