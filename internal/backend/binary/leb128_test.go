/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package binary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestULEB128RoundTrips covers Property 6 (spec.md §8): encode then decode
// recovers the original value, and appendULEB128 never emits a redundant
// continuation byte.
func TestULEB128RoundTrips(t *testing.T) {
	values := []uint64{0, 1, 63, 64, 127, 128, 129, 300, 16384, 1 << 20, 1<<35 + 7, ^uint64(0)}
	for _, v := range values {
		buf := appendULEB128(nil, v)
		require.Len(t, buf, uleb128Size(v), "value %d", v)

		got, off := decodeULEB128(buf, 0)
		require.Equal(t, v, got, "value %d", v)
		require.Equal(t, len(buf), off)
	}
}

func TestSLEB128RoundTrips(t *testing.T) {
	values := []int64{0, 1, -1, 63, -64, 64, -65, 300, -300, 1 << 20, -(1 << 20)}
	for _, v := range values {
		buf := appendSLEB128(nil, v)
		got, off := decodeSLEB128(buf, 0)
		require.Equal(t, v, got, "value %d", v)
		require.Equal(t, len(buf), off)
	}
}

func TestULEB128MultiValueStreamDecodesInOrder(t *testing.T) {
	var buf []byte
	buf = appendULEB128(buf, 5)
	buf = appendULEB128(buf, 300)
	buf = appendULEB128(buf, 0)

	v1, off := decodeULEB128(buf, 0)
	require.Equal(t, uint64(5), v1)
	v2, off := decodeULEB128(buf, off)
	require.Equal(t, uint64(300), v2)
	v3, off := decodeULEB128(buf, off)
	require.Equal(t, uint64(0), v3)
	require.Equal(t, len(buf), off)
}
