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

import "reflect"

// defaultBlacklist is the built-in set of class names known to be
// deserialization gadgets. Like other general-purpose serializers that
// accept arbitrary type names, this resolver gates on an explicit
// registration/allowlist rather than trusting arbitrary names, and
// additionally carries a deny list of the handful of stdlib/runtime
// hook names attackers have historically abused through reflection-
// driven frameworks in other languages, kept here under their
// Go-qualified equivalents as a conservative default a caller can still
// register around.
var defaultBlacklist = map[string]bool{
	"os/exec.Cmd":            true,
	"net/rpc.Client":         true,
	"plugin.Plugin":          true,
	"reflect.Value":          true,
	"unsafe.Pointer":         true,
}

// BlackList gates unregistered types against known-dangerous class names
// before codec selection proceeds.
type BlackList struct {
	names map[string]bool
}

func NewBlackList() *BlackList {
	names := make(map[string]bool, len(defaultBlacklist))
	for k, v := range defaultBlacklist {
		names[k] = v
	}
	return &BlackList{names: names}
}

// Add extends the blacklist with an additional fully-qualified name.
func (b *BlackList) Add(fullyQualifiedName string) {
	b.names[fullyQualifiedName] = true
}

// Contains reports whether t's fully-qualified name is blacklisted.
func (b *BlackList) Contains(t reflect.Type) bool {
	return b.names[fullName(t)]
}
