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

package bitblt

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/bitblt/debug"
	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/rt"
)

func randomWords(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = gofakeit.Uint32()
	}
	return out
}

func TestBitbltEndToEndAgainstOracle(t *testing.T) {
	Configure(WithVerify(true))
	defer ClearCache()

	const srcW, dstW = 64, 64
	src := randomWords(int(rt.WordCount(srcW, 10)))
	dst := randomWords(int(rt.WordCount(dstW, 10)))
	want := make([]uint32, len(dst))
	copy(want, dst)
	rt.Oracle(src, srcW, 10, 3, 1, want, dstW, 2, 0, 20, 6)

	err := Bitblt(src, srcW, 10, 3, 1, dst, dstW, 2, 0, 20, 6)
	require.NoError(t, err)
	require.Equal(t, want, dst)
}

func TestBitbltUnderEveryBackEnd(t *testing.T) {
	for _, be := range []defs.BackEnd{defs.Textual, defs.Binary, defs.AlignedBinary} {
		t.Run(string(be), func(t *testing.T) {
			Configure(WithBackEnd(be), WithVerify(true))
			defer ClearCache()

			const width = 64
			src := randomWords(int(rt.WordCount(width, 4)))
			dst := randomWords(int(rt.WordCount(width, 4)))
			want := make([]uint32, len(dst))
			copy(want, dst)
			rt.Oracle(src, width, 4, 0, 0, want, width, 0, 0, 32, 3)

			require.NoError(t, Bitblt(src, width, 4, 0, 0, dst, width, 0, 0, 32, 3))
			require.Equal(t, want, dst)
		})
	}
	Configure(WithBackEnd(defs.Textual))
}

func TestPretouchThenBitbltReusesCache(t *testing.T) {
	Configure(WithBackEnd(defs.Textual))
	defer ClearCache()
	ClearCache()

	// Cache hit/miss counters are cumulative across the whole test binary,
	// so this test measures the change from a snapshot taken up front.
	before := statsSnapshot(t)
	require.NoError(t, Pretouch(defs.Textual, 32, 4, 0, 0, 32, 0, 0, 16, 2))

	stats := statsSnapshot(t)
	require.EqualValues(t, before.miss+1, stats.miss)

	src := randomWords(int(rt.WordCount(32, 4)))
	dst := randomWords(int(rt.WordCount(32, 4)))
	require.NoError(t, Bitblt(src, 32, 4, 0, 0, dst, 32, 0, 0, 16, 2))

	stats = statsSnapshot(t)
	require.EqualValues(t, before.hit+1, stats.hit)
}

type snapshot struct{ hit, miss uint64 }

func statsSnapshot(t *testing.T) snapshot {
	t.Helper()
	all := debug.GetStats()
	return snapshot{hit: all.Textual.CacheHit, miss: all.Textual.CacheMiss}
}
