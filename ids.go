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

// ClassID is the compact session-stable 16-bit type identifier used on the
// wire. Valid registered values lie in [1, 32767); 0 is reserved for
// NoClassID.
type ClassID = uint16

// Reserved id space. Stable across processes; part of the wire protocol.
// Never renumber these without a wire-format break.
const (
	NoClassID     ClassID = 0
	LambdaStubID  ClassID = 1
	ProxyStubID   ClassID = 2
	ReplaceStubID ClassID = 3

	// Primitives, 4..12.
	VoidID   ClassID = 4
	BoolID   ClassID = 5
	ByteID   ClassID = 6
	CharID   ClassID = 7
	ShortID  ClassID = 8
	IntID    ClassID = 9
	FloatID  ClassID = 10
	LongID   ClassID = 11
	DoubleID ClassID = 12

	// Boxed equivalents and String, 13..22. Order matters for wire
	// compatibility: INTEGER_CLASS_ID is fixed at 17.
	BoxedBoolID    ClassID = 13
	BoxedByteID    ClassID = 14
	BoxedCharID    ClassID = 15
	BoxedShortID   ClassID = 16
	BoxedIntID     ClassID = 17
	IntegerClassID ClassID = BoxedIntID
	BoxedFloatID   ClassID = 18
	BoxedLongID    ClassID = 19
	LongClassID    ClassID = BoxedLongID
	BoxedDoubleID  ClassID = 20
	DoubleClassID  ClassID = BoxedDoubleID
	StringID       ClassID = 21
	BoxedVoidID    ClassID = 22

	// Primitive 1-D arrays, 23..30.
	BoolArrayID   ClassID = 23
	ByteArrayID   ClassID = 24
	CharArrayID   ClassID = 25
	ShortArrayID  ClassID = 26
	IntArrayID    ClassID = 27
	FloatArrayID  ClassID = 28
	LongArrayID   ClassID = 29
	DoubleArrayID ClassID = 30

	// String[], Object[], 31..32.
	StringArrayID ClassID = 31
	ObjectArrayID ClassID = 32

	// Common containers, 33..36.
	ArrayListID  ClassID = 33
	HashMapID    ClassID = 34
	HashSetID    ClassID = 35
	ClassClassID ClassID = 36

	// InnerEndClassID is the highest reserved id. Ids <= InnerEndClassID are
	// frozen after Registry initialization; user registrations never reuse
	// them. The first free user id is InnerEndClassID+1.
	InnerEndClassID ClassID = ClassClassID

	// MaxClassID is the exclusive upper bound for any registered id;
	// registering at Short.MAX_VALUE is refused.
	MaxClassID ClassID = 32767
)

// WireTag is the leading byte of every class tag.
type WireTag = byte

const (
	UseClassValue WireTag = 0x00
	UseID         WireTag = 0x01
)
