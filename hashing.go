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
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// hashBytes returns a 64-bit murmur3 hash of b, used throughout the
// resolver for cache keys and content-addressed ids.
func hashBytes(b []byte) uint64 {
	return murmur3.Sum64(b)
}

// hashString is a convenience wrapper for the common case of hashing a Go
// string; it converts s to a byte slice and hashes that.
func hashString(s string) uint64 {
	return murmur3.Sum64([]byte(s))
}

// classNameBytesKey identifies a reconstructed type without string
// comparison on the hot path: a pair of 64-bit hashes, one per interned
// byte string.
type classNameBytesKey struct {
	packageHash    uint64
	simpleNameHash uint64
}

// classDefContentHash derives a stable 64-bit id from a ClassDef's
// structure and name: two defs with the same fields (in order) and name
// hash identically regardless of process or host.
func classDefContentHash(fullName string, fields []FieldDescriptor, extMeta map[string]string) uint64 {
	h := murmur3.New64()
	_, _ = h.Write([]byte(fullName))
	var lenBuf [8]byte
	for _, f := range fields {
		binary.LittleEndian.PutUint32(lenBuf[:4], uint32(len(f.Name)))
		_, _ = h.Write(lenBuf[:4])
		_, _ = h.Write([]byte(f.Name))
		_, _ = h.Write([]byte(f.DeclaredType))
		_, _ = h.Write([]byte(f.OwningClass))
	}
	for _, k := range sortedKeys(extMeta) {
		_, _ = h.Write([]byte(k))
		_, _ = h.Write([]byte(extMeta[k]))
	}
	return h.Sum64()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Small maps (extMeta carries a handful of protocol flags); insertion
	// sort keeps this allocation-free without pulling in sort for one use.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
