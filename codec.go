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

import "sync"

// Codec is the pluggable reader/writer for a single type (glossary). Its
// concrete read/write behavior is an out-of-scope collaborator —
// CodecSelector only ever needs to name and compare codec *classes*,
// never invoke them, so Codec here is reduced to the identity
// CodecSelector's cascade dispatches on.
type Codec interface {
	// Name identifies the codec class, e.g. "EnumCodec", "ObjectCodec".
	// Two codecs selected for structurally identical reasons report the
	// same Name, so selecting a codec for a given type stays stable
	// across calls.
	Name() string
}

type namedCodec string

func (n namedCodec) Name() string { return string(n) }

// Codec classes named by the selection cascade. Each is a stateless
// singleton value; CodecSelector never needs more than one instance per
// class since the concrete per-type behavior lives behind the Codec<T>
// boundary this package doesn't implement.
var (
	EnumCodec                 Codec = namedCodec("EnumCodec")
	EnumSetCodec               Codec = namedCodec("EnumSetCodec")
	CharsetCodec               Codec = namedCodec("CharsetCodec")
	ObjectArrayCodec           Codec = namedCodec("ObjectArrayCodec")
	LambdaCodec                Codec = namedCodec("LambdaCodec")
	ProxyCodec                 Codec = namedCodec("ProxyCodec")
	CalendarCodec              Codec = namedCodec("CalendarCodec")
	TimeZoneCodec              Codec = namedCodec("TimeZoneCodec")
	ZoneIDCodec                Codec = namedCodec("ZoneIDCodec")
	ExternalizableCodec        Codec = namedCodec("ExternalizableCodec")
	ImmutableListCodec         Codec = namedCodec("ImmutableListCodec")
	ImmutableMapCodec          Codec = namedCodec("ImmutableMapCodec")
	ByteBufferCodec            Codec = namedCodec("ByteBufferCodec")
	JdkCompatibleCollectionCodec Codec = namedCodec("JdkCompatibleCollectionCodec")
	DefaultCollectionCodec     Codec = namedCodec("DefaultCollectionCodec")
	JdkCompatibleMapCodec      Codec = namedCodec("JdkCompatibleMapCodec")
	DefaultMapCodec            Codec = namedCodec("DefaultMapCodec")
	ReplaceResolveCodec        Codec = namedCodec("ReplaceResolveCodec")
	JdkStreamCodec             Codec = namedCodec("JdkStreamCodec")
	ObjectCodec                Codec = namedCodec("ObjectCodec")
	CompatibleObjectCodec      Codec = namedCodec("CompatibleObjectCodec")
)

// CodecStatus is the Pending|Ready tagged union a CodecFactory reports.
type CodecStatus int

const (
	CodecPending CodecStatus = iota
	CodecReady
)

// CodecFactory polls a background compilation for completion.
type CodecFactory interface {
	Poll() (Codec, CodecStatus)
}

// JitContext is the just-in-time code generator, an out-of-scope
// collaborator. RegisterSerializerJITCallback requests compilation for t
// and arranges for onReady to be invoked — possibly from another
// goroutine — once a fast codec is available. The resolver never blocks
// on this; it returns a LazyInitCodec synchronously.
type JitContext interface {
	RegisterSerializerJITCallback(t interface{ String() string }, onReady func(Codec))
}

// NoopJitContext disables JIT entirely: onReady is never called, so any
// LazyInitCodec installed against it stays pending forever and its
// Resolve keeps returning the LazyInitCodec itself.
type NoopJitContext struct{}

func (NoopJitContext) RegisterSerializerJITCallback(_ interface{ String() string }, _ func(Codec)) {}

// SyncJitContext invokes onReady immediately with the given codec,
// useful for tests that want to exercise the JIT-upgrade path
// deterministically without goroutines.
type SyncJitContext struct {
	Compiled Codec
}

func (s SyncJitContext) RegisterSerializerJITCallback(_ interface{ String() string }, onReady func(Codec)) {
	if s.Compiled != nil {
		onReady(s.Compiled)
	}
}

// LazyInitCodec is installed synchronously wherever a real codec isn't
// available yet — either because JIT compilation hasn't completed, or
// because codec selection recursed into a type it is already resolving
// (the JIT recursion guard). It self-upgrades the first time Resolve
// observes the underlying codec has become ready; callers must always
// call Resolve rather than cache the *LazyInitCodec's behavior directly,
// since a cached codec reference is expected to be re-fetched through
// ClassInfo on each use.
type LazyInitCodec struct {
	mu      sync.Mutex
	ready   Codec
	factory CodecFactory
}

func NewLazyInitCodec(factory CodecFactory) *LazyInitCodec {
	return &LazyInitCodec{factory: factory}
}

func (l *LazyInitCodec) Name() string { return "LazyInitCodec" }

// Resolve returns the compiled codec if ready, else itself.
func (l *LazyInitCodec) Resolve() Codec {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready != nil {
		return l.ready
	}
	if l.factory == nil {
		return l
	}
	if codec, status := l.factory.Poll(); status == CodecReady {
		l.ready = codec
		return codec
	}
	return l
}

// installReady is called by the JIT callback path once compilation
// finishes, independent of whether anyone has polled Resolve yet.
func (l *LazyInitCodec) installReady(codec Codec) {
	l.mu.Lock()
	l.ready = codec
	l.mu.Unlock()
}
