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
	"sync/atomic"
)

// ClassInfo is the per-type record the resolver builds for a type. The
// Registry holds at most one ClassInfo per type and its lookups return
// that same instance. The by-name and meta-share read paths build their
// own ClassInfo records, which are separate from the Registry's instance.
type ClassInfo struct {
	Type    reflect.Type
	ClassID ClassID // NoClassID means "not registered, transmit by name"

	// Interned byte strings, populated lazily the first time the wire
	// format actually needs them.
	packageNameBytes   []byte
	classNameBytes     []byte
	fullClassNameBytes []byte
	typeTagBytes       []byte

	// codec is accessed atomically: the JIT callback may replace it from
	// another goroutine while the owning thread is mid-selection. The
	// slot always holds a *codecBox so repeated Store calls never change
	// the concrete type atomic.Value sees, even when the bound Codec's
	// own concrete type changes between a LazyInitCodec and the real one.
	codec atomic.Value // *codecBox

	// StructuralDef is the optional ClassDef used in compatible mode.
	StructuralDef *ClassDef
}

// codecBox is the fixed-type wrapper stored in ClassInfo.codec, so that
// atomic.Value.Store never sees a varying concrete type across calls.
type codecBox struct {
	c Codec
}

// newClassInfo builds a ClassInfo with no bound codec yet; Codec/SetCodec
// manage the atomic slot.
func newClassInfo(t reflect.Type, id ClassID) *ClassInfo {
	return &ClassInfo{Type: t, ClassID: id}
}

// Codec returns the currently bound codec, or nil if none has been
// selected yet.
func (c *ClassInfo) Codec() Codec {
	v := c.codec.Load()
	if v == nil {
		return nil
	}
	return v.(*codecBox).c
}

// SetCodec installs codec, overwriting any previous binding. Safe to call
// concurrently with Codec() — this is the entry point the JIT callback
// uses once a compiled codec becomes ready.
func (c *ClassInfo) SetCodec(codec Codec) {
	c.codec.Store(&codecBox{c: codec})
}

// HasCodec reports whether a codec has been bound, without materializing
// one.
func (c *ClassInfo) HasCodec() bool {
	return c.codec.Load() != nil
}
