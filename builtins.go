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

// Go analogues of the Java built-in container types the reserved id table
// pins at 33..36. A bare []interface{} is already ObjectArrayID's type,
// and the reserved range needs each id bound to a distinguishable type,
// so these are named wrappers distinct from the bare reflect types.
type (
	// List is the Go analogue of java.util.ArrayList.
	List []interface{}
	// HashMap is the Go analogue of java.util.HashMap.
	HashMap map[interface{}]interface{}
	// HashSet is the Go analogue of java.util.HashSet.
	HashSet map[interface{}]struct{}
	// ZoneID is the Go analogue of java.time.ZoneId: a named timezone
	// identifier string ("America/New_York"), distinct from the resolved
	// time.Location value the calendar codec carries.
	ZoneID string
)
