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

// Package rt implements the pixel-buffer data model (spec.md §3) and the
// reference scan-based oracle (spec.md §4.9, component C9) that every
// specialized routine is checked against.
package rt

// Buffer is a caller-owned sequence of 32-bit words, 32 pixels per word,
// LSB-first (spec.md §3 "Pixel buffer"). The engine never reallocates it.
type Buffer []uint32

// GetPixel implements spec.md §4.8's pixel indexing invariant:
//
//	getPixel(buf, width, x, y) = (buf[⌊x/32⌋ + y·⌈width/32⌉] >>> (x mod 32)) & 1
//
// Every reader in this module -- the oracle, the verifier, and the emitted
// bytecode -- must agree on this formula.
func GetPixel(buf Buffer, width, x, y int32) uint32 {
	stride := (width + 31) >> 5
	word := buf[(x>>5)+y*stride]
	return (word >> uint(x&31)) & 1
}

// SetPixel sets or clears the bit for pixel (x, y) in a width-px-wide
// buffer, using the same word/stride arithmetic as GetPixel.
func SetPixel(buf Buffer, width, x, y int32, bit uint32) {
	stride := (width + 31) >> 5
	idx := (x >> 5) + y*stride
	pos := uint(x & 31)
	if bit != 0 {
		buf[idx] |= 1 << pos
	} else {
		buf[idx] &^= 1 << pos
	}
}

// Stride returns the row stride, in words, of a widthPx-wide buffer.
func Stride(widthPx int32) int32 {
	return (widthPx + 31) >> 5
}

// WordCount returns the minimum number of words a widthPx x heightPx
// buffer must have, per spec.md §3's "word count ≥ stride·height_px"
// invariant.
func WordCount(widthPx, heightPx int32) int32 {
	return Stride(widthPx) * heightPx
}
