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

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/errs"
	"github.com/cloudwego/bitblt/internal/rt"
)

func randomBuffer(t *testing.T, width, height int32) rt.Buffer {
	t.Helper()
	buf := make(rt.Buffer, rt.WordCount(width, height))
	for i := range buf {
		buf[i] = gofakeit.Uint32()
	}
	return buf
}

// TestBinaryArtifactMatchesOracleScalarPath covers Property 1 (spec.md §8)
// for the "binary" back-end's scalar (non-word-aligned) inner loop.
func TestBinaryArtifactMatchesOracleScalarPath(t *testing.T) {
	be := NewBackEnd(false)
	params := defs.OperationParams{
		SrcW: 96, SrcH: 20, SrcX: 7, SrcY: 3,
		DstW: 80, DstX: 5, DstY: 2,
		Width: 37, Height: 11,
	}

	generated, err := be.Generate(params)
	require.NoError(t, err)
	art, err := be.Compile(generated, params)
	require.NoError(t, err)

	src := randomBuffer(t, params.SrcW, params.SrcY+params.Height)
	dst := randomBuffer(t, params.DstW, params.DstY+params.Height)
	want := make(rt.Buffer, len(dst))
	copy(want, dst)
	rt.Oracle(src, params.SrcW, params.SrcH, params.SrcX, params.SrcY, want, params.DstW, params.DstX, params.DstY, params.Width, params.Height)

	require.NoError(t, art.Invoke(src, dst))
	require.Equal(t, want, dst)
}

// TestAlignedBinaryArtifactMatchesOracle covers Property 1 for the
// "aligned-binary" back-end's whole-word-copy fast path, which spec.md
// §4.3 requires to be bit-identical to the scalar loop.
func TestAlignedBinaryArtifactMatchesOracle(t *testing.T) {
	be := NewBackEnd(true)
	params := defs.OperationParams{
		SrcW: 128, SrcH: 16, SrcX: 32, SrcY: 1,
		DstW: 96, DstX: 0, DstY: 4,
		Width: 64, Height: 9,
	}

	generated, err := be.Generate(params)
	require.NoError(t, err)
	art, err := be.Compile(generated, params)
	require.NoError(t, err)

	src := randomBuffer(t, params.SrcW, params.SrcY+params.Height)
	dst := randomBuffer(t, params.DstW, params.DstY+params.Height)
	want := make(rt.Buffer, len(dst))
	copy(want, dst)
	rt.Oracle(src, params.SrcW, params.SrcH, params.SrcX, params.SrcY, want, params.DstW, params.DstX, params.DstY, params.Width, params.Height)

	require.NoError(t, art.Invoke(src, dst))
	require.Equal(t, want, dst)
}

func TestAlignedBinaryGenerateRejectsUnalignedShape(t *testing.T) {
	be := NewBackEnd(true)
	params := defs.OperationParams{
		SrcW: 64, SrcH: 8, SrcX: 1, SrcY: 0,
		DstW: 64, DstX: 0, DstY: 0,
		Width: 16, Height: 4,
	}

	_, err := be.Generate(params)
	require.Error(t, err)
	require.IsType(t, errs.UnsupportedError{}, err)
}

func TestBinaryArtifactReportsMemoryCapacityError(t *testing.T) {
	be := NewBackEnd(false)
	params := defs.OperationParams{
		SrcW: 64, SrcH: 8, SrcX: 0, SrcY: 0,
		DstW: 64, DstX: 0, DstY: 0,
		Width: 32, Height: 8,
	}

	generated, err := be.Generate(params)
	require.NoError(t, err)
	art, err := be.Compile(generated, params)
	require.NoError(t, err)

	tooSmall := make(rt.Buffer, 1)
	dst := randomBuffer(t, params.DstW, params.DstY+params.Height)
	err = art.Invoke(tooSmall, dst)
	require.Error(t, err)
}

func TestBackEndName(t *testing.T) {
	require.Equal(t, defs.Binary, NewBackEnd(false).Name())
	require.Equal(t, defs.AlignedBinary, NewBackEnd(true).Name())
}
