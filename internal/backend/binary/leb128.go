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

// appendULEB128 encodes a nonnegative integer as unsigned LEB128: 7 data
// bits per byte, MSB set on every byte but the last (spec.md §4.1).
func appendULEB128(buf []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if v == 0 {
			return buf
		}
	}
}

// appendSLEB128 encodes a signed integer as signed LEB128: two's-complement
// groups of 7 bits, with the sign-bit discipline (bit 6 of the final byte)
// on the terminating byte (spec.md §4.1).
func appendSLEB128(buf []byte, v int64) []byte {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		buf = append(buf, b)
	}
	return buf
}

// decodeULEB128 decodes an unsigned LEB128 integer starting at buf[off],
// returning the value and the offset just past its last byte.
func decodeULEB128(buf []byte, off int) (uint64, int) {
	var result uint64
	var shift uint
	for {
		b := buf[off]
		off++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result, off
}

// decodeSLEB128 decodes a signed LEB128 integer starting at buf[off].
func decodeSLEB128(buf []byte, off int) (int64, int) {
	var result int64
	var shift uint
	var b byte
	for {
		b = buf[off]
		off++
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, off
}

// uleb128Size returns the canonical encoded length of v, used to confirm
// that appendULEB128 never emits a redundant continuation byte (spec.md
// §4.1's correctness contract, Property 6).
func uleb128Size(v uint64) int {
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}
