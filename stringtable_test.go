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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringTableRoundTripShortAndLong(t *testing.T) {
	table := NewInternedStringTable()
	buf := NewByteBuffer(nil)

	short := "user"
	long := strings.Repeat("x", SmallStringThreshold+5)

	require.NoError(t, table.WriteString(buf, short))
	require.NoError(t, table.WriteString(buf, long))

	readTable := NewInternedStringTable()
	readBuf := NewByteBuffer(buf.Bytes())

	got1, err := readTable.ReadString(readBuf)
	require.NoError(t, err)
	require.Equal(t, short, got1)

	got2, err := readTable.ReadString(readBuf)
	require.NoError(t, err)
	require.Equal(t, long, got2)
}

func TestStringTableRepeatUsesInternedID(t *testing.T) {
	table := NewInternedStringTable()
	buf := NewByteBuffer(nil)

	s := "repeated.name"
	require.NoError(t, table.WriteString(buf, s))
	firstLen := buf.Len()
	require.NoError(t, table.WriteString(buf, s))
	require.Less(t, buf.Len()-firstLen, firstLen)
}

func TestStringTableResetClearsInterning(t *testing.T) {
	table := NewInternedStringTable()
	buf := NewByteBuffer(nil)
	require.NoError(t, table.WriteString(buf, "a"))
	table.Reset()

	buf2 := NewByteBuffer(nil)
	require.NoError(t, table.WriteString(buf2, "a"))
	require.Equal(t, buf.Bytes(), buf2.Bytes())
}
