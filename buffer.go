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

import "encoding/binary"

// Buffer is the narrow slice of the byte-level buffer the resolver
// depends on; the full buffer implementation is out of scope here and
// consumed through this narrow interface instead. Real serialize/
// deserialize entrypoints supply their own implementation;
// byteBufferImpl below is the minimal concrete type this package's own
// tests drive it with.
type Buffer interface {
	WriteByte_(b byte)
	ReadByte_() byte
	WriteUint16(v uint16)
	ReadUint16() uint16
	WriteVarUint64(v uint64)
	ReadVarUint64() uint64
	WriteInt64(v int64)
	ReadInt64() int64
	WriteBinary(b []byte)
	ReadBinary(n int) []byte
	// Reserve grows the buffer by n bytes in one cursor advance and
	// returns the slice to place them in, the unsafe-put-at-offset path
	// the writeClass USE_ID fast path needs: pre-advance the cursor once,
	// then place bytes by offset.
	Reserve(n int) []byte
	Len() int
}

// byteBufferImpl is a minimal, non-pooled Buffer backed by a growable
// slice with read/write cursors. It exists to exercise Buffer in this
// package's own tests; production embedders are expected to supply a
// faster, pooled implementation behind the same interface.
type byteBufferImpl struct {
	data   []byte
	readAt int
}

// NewByteBuffer wraps data for reading, or starts an empty writable buffer
// when data is nil.
func NewByteBuffer(data []byte) *byteBufferImpl {
	return &byteBufferImpl{data: data}
}

func (b *byteBufferImpl) Len() int { return len(b.data) }

func (b *byteBufferImpl) Bytes() []byte { return b.data }

func (b *byteBufferImpl) Reserve(n int) []byte {
	start := len(b.data)
	b.data = append(b.data, make([]byte, n)...)
	return b.data[start : start+n]
}

func (b *byteBufferImpl) WriteByte_(v byte) {
	b.data = append(b.data, v)
}

func (b *byteBufferImpl) ReadByte_() byte {
	v := b.data[b.readAt]
	b.readAt++
	return v
}

func (b *byteBufferImpl) WriteUint16(v uint16) {
	buf := b.Reserve(2)
	binary.LittleEndian.PutUint16(buf, v)
}

func (b *byteBufferImpl) ReadUint16() uint16 {
	v := binary.LittleEndian.Uint16(b.data[b.readAt : b.readAt+2])
	b.readAt += 2
	return v
}

func (b *byteBufferImpl) WriteInt64(v int64) {
	buf := b.Reserve(8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
}

func (b *byteBufferImpl) ReadInt64() int64 {
	v := binary.LittleEndian.Uint64(b.data[b.readAt : b.readAt+8])
	b.readAt += 8
	return int64(v)
}

// WriteVarUint64 writes v as a positive varint: 7 bits per byte, little
// endian, continuation bit in the high bit.
func (b *byteBufferImpl) WriteVarUint64(v uint64) {
	for v >= 0x80 {
		b.WriteByte_(byte(v) | 0x80)
		v >>= 7
	}
	b.WriteByte_(byte(v))
}

func (b *byteBufferImpl) ReadVarUint64() uint64 {
	var result uint64
	var shift uint
	for {
		chunk := b.ReadByte_()
		result |= uint64(chunk&0x7f) << shift
		if chunk&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result
}

func (b *byteBufferImpl) WriteBinary(v []byte) {
	buf := b.Reserve(len(v))
	copy(buf, v)
}

func (b *byteBufferImpl) ReadBinary(n int) []byte {
	v := b.data[b.readAt : b.readAt+n]
	b.readAt += n
	return v
}
