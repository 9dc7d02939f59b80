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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrideAndWordCount(t *testing.T) {
	require.Equal(t, int32(1), Stride(1))
	require.Equal(t, int32(1), Stride(32))
	require.Equal(t, int32(2), Stride(33))
	require.Equal(t, int32(2), Stride(64))
	require.Equal(t, int32(3), Stride(65))

	require.Equal(t, int32(0), WordCount(64, 0))
	require.Equal(t, int32(2), WordCount(64, 1))
	require.Equal(t, int32(20), WordCount(64, 10))
}

func TestSetPixelThenGetPixelRoundTrips(t *testing.T) {
	const width, height = 37, 5
	buf := make(Buffer, WordCount(width, height))

	for y := int32(0); y < height; y++ {
		for x := int32(0); x < width; x++ {
			want := uint32((x + y) % 2)
			SetPixel(buf, width, x, y, want)
			require.Equal(t, want, GetPixel(buf, width, x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestSetPixelDoesNotDisturbNeighbors(t *testing.T) {
	const width, height = 32, 2
	buf := make(Buffer, WordCount(width, height))

	SetPixel(buf, width, 5, 0, 1)
	for y := int32(0); y < height; y++ {
		for x := int32(0); x < width; x++ {
			if x == 5 && y == 0 {
				require.Equal(t, uint32(1), GetPixel(buf, width, x, y))
			} else {
				require.Equal(t, uint32(0), GetPixel(buf, width, x, y))
			}
		}
	}
}

func TestGetPixelMatchesIndexingInvariant(t *testing.T) {
	// spec.md §4.8: getPixel(buf, width, x, y) = (buf[floor(x/32) + y*stride] >> (x mod 32)) & 1.
	const width = 96
	stride := Stride(width)
	buf := make(Buffer, stride*3)
	buf[1] = 1 << 3     // x=32+3=35, y=0
	buf[2+stride] = 1   // x=64, y=1

	require.Equal(t, uint32(1), GetPixel(buf, width, 35, 0))
	require.Equal(t, uint32(1), GetPixel(buf, width, 64, 1))
	require.Equal(t, uint32(0), GetPixel(buf, width, 34, 0))
}

func TestSetPixelClearsBit(t *testing.T) {
	const width = 32
	buf := make(Buffer, WordCount(width, 1))
	SetPixel(buf, width, 10, 0, 1)
	require.Equal(t, uint32(1), GetPixel(buf, width, 10, 0))
	SetPixel(buf, width, 10, 0, 0)
	require.Equal(t, uint32(0), GetPixel(buf, width, 10, 0))
}
