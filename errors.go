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

import "errors"

// Error kinds the resolver can raise. The resolver never retries; these
// are always surfaced at the call site that caused them.
var (
	// ErrDuplicateRegistration is raised when two register calls conflict
	// on type or id. Fatal to setup, never to I/O.
	ErrDuplicateRegistration = errors.New("resolver: duplicate registration")

	// ErrInsecure is raised when an unregistered class is blacklisted, or
	// required-registration mode rejects it.
	ErrInsecure = errors.New("resolver: insecure class")

	// ErrClassNotFound is raised when name-to-type resolution fails and
	// tolerant mode is off.
	ErrClassNotFound = errors.New("resolver: class not found")

	// ErrUnsupported is raised when JDK-class-serializability checking is
	// enabled and the type is disallowed.
	ErrUnsupported = errors.New("resolver: unsupported type")

	// ErrMissingMetaContext is raised when meta-sharing read/write is
	// invoked without a MetaContext set.
	ErrMissingMetaContext = errors.New("resolver: missing meta context")

	// ErrUnknownInternedID is raised when a read references an interned
	// string id that was never assigned in the current direction's table,
	// distinct from having no table at all.
	ErrUnknownInternedID = errors.New("resolver: unknown interned string id")
)
