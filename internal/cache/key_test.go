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

package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/bitblt/internal/defs"
)

// TestFingerprintIgnoresUnfrozenDimensions covers Property 3 (spec.md §8):
// two parameter records differing only in a dimension neither froze must
// collide onto the same fingerprint.
func TestFingerprintIgnoresUnfrozenDimensions(t *testing.T) {
	freeze := defs.DimWidth | defs.DimHeight
	a := defs.OperationParams{Width: 16, Height: 16, SrcX: 1, DstX: 2, Flags: defs.CompilerFlags{Freeze: freeze}}
	b := defs.OperationParams{Width: 16, Height: 16, SrcX: 99, DstX: 100, Flags: defs.CompilerFlags{Freeze: freeze}}

	require.Equal(t, Fingerprint(defs.Binary, a), Fingerprint(defs.Binary, b))
}

func TestFingerprintDistinguishesFrozenDimensions(t *testing.T) {
	a := defs.OperationParams{Width: 16, Height: 16, Flags: defs.CompilerFlags{Freeze: defs.AllDims}}
	b := defs.OperationParams{Width: 17, Height: 16, Flags: defs.CompilerFlags{Freeze: defs.AllDims}}

	require.NotEqual(t, Fingerprint(defs.Binary, a), Fingerprint(defs.Binary, b))
}

func TestFingerprintIsBackEndPrefixed(t *testing.T) {
	p := defs.OperationParams{Width: 8, Height: 8, Flags: defs.CompilerFlags{Freeze: defs.AllDims}}
	require.NotEqual(t, Fingerprint(defs.Textual, p), Fingerprint(defs.Binary, p))
	require.Contains(t, Fingerprint(defs.Textual, p), string(defs.Textual))
	require.Contains(t, Fingerprint(defs.Binary, p), string(defs.Binary))
}

func TestFingerprintIsDeterministic(t *testing.T) {
	p := defs.OperationParams{
		SrcW: 64, SrcH: 8, SrcX: 3, SrcY: 1,
		DstW: 64, DstX: 5, DstY: 2,
		Width: 20, Height: 4,
		Flags: defs.CompilerFlags{Freeze: defs.AllDims, Unroll: true, InlineConstants: true, AlignOpt: true},
	}
	require.Equal(t, Fingerprint(defs.AlignedBinary, p), Fingerprint(defs.AlignedBinary, p))
}

func TestFingerprintIncludesAutospecializeFlagsOnlyWhenAnalyzed(t *testing.T) {
	base := defs.OperationParams{Width: 8, Height: 8, Flags: defs.CompilerFlags{Freeze: defs.AllDims}}
	analyzed := base
	analyzed.Analyzed = true
	analyzed.AnalyzerFlags = defs.FlagUnrollSmall

	require.NotEqual(t, Fingerprint(defs.Textual, base), Fingerprint(defs.Textual, analyzed))
}
