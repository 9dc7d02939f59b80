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

package rt

// Oracle performs the reference, scan-based BitBLT (spec.md §4.9,
// component C9). It is the ground truth every specialized artifact is
// checked against: for every input its output must equal the specialized
// output bit-for-bit within the copy rectangle, and it must leave bits
// outside the rectangle untouched.
//
// It walks the destination row-major, forward, so that aliased/overlapping
// source and destination buffers copy in a well-defined order (spec.md §5,
// "Buffer aliasing").
func Oracle(src Buffer, srcW, srcH, srcX, srcY int32, dst Buffer, dstW, dstX, dstY int32, width, height int32) {
	_ = srcH
	for y := int32(0); y < height; y++ {
		srcY0 := srcY + y
		dstY0 := dstY + y
		for x := int32(0); x < width; x++ {
			bit := GetPixel(src, srcW, srcX+x, srcY0)
			SetPixel(dst, dstW, dstX+x, dstY0, bit)
		}
	}
}
