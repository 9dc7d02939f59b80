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

// Package defs holds the value types shared by every component of the
// specialization pipeline: operation parameters, the analyzer's flag
// vocabulary, and the back-end name enumeration.
package defs

import (
	"fmt"

	"github.com/cloudwego/bitblt/internal/rt"
)

// Dim identifies one of the nine geometry dimensions that a specialization
// may freeze into its fingerprint.
type Dim uint16

const (
	DimSrcW Dim = 1 << iota
	DimSrcH
	DimDstW
	DimSrcX
	DimSrcY
	DimDstX
	DimDstY
	DimWidth
	DimHeight
)

// AllDims freezes every dimension, producing one specialization per
// distinct operation shape -- the default baseline behavior of spec.md §2.
const AllDims = DimSrcW | DimSrcH | DimDstW | DimSrcX | DimSrcY | DimDstX | DimDstY | DimWidth | DimHeight

// dimOrder gives the canonical short tag for each Dim, in the fixed
// canonical order; cache.Fingerprint writes the same tags in the same
// order from its own list.
var dimOrder = []struct {
	d   Dim
	tag string
}{
	{DimSrcW, "sw"},
	{DimSrcH, "sh"},
	{DimDstW, "dw"},
	{DimSrcX, "sx"},
	{DimSrcY, "sy"},
	{DimDstX, "dx"},
	{DimDstY, "dy"},
	{DimWidth, "w"},
	{DimHeight, "h"},
}

// Has reports whether d is a member of the set s.
func (s Dim) Has(d Dim) bool { return s&d != 0 }

// Flag is one bit of analyzer output (spec.md §3, §4.7).
type Flag uint8

const (
	FlagUnrollSmall Flag = 1 << iota
	FlagWordAligned
	FlagSIMDCandidate
)

func (f Flag) Has(bit Flag) bool { return f&bit != 0 }

func (f Flag) String() string {
	var tags []string
	if f.Has(FlagUnrollSmall) {
		tags = append(tags, "unroll-small")
	}
	if f.Has(FlagWordAligned) {
		tags = append(tags, "word-aligned")
	}
	if f.Has(FlagSIMDCandidate) {
		tags = append(tags, "simd-candidate")
	}
	return fmt.Sprint(tags)
}

// BackEnd names one of the three back-end variants of spec.md §4.5.
type BackEnd string

const (
	Textual       BackEnd = "textual"
	Binary        BackEnd = "binary"
	AlignedBinary BackEnd = "aligned-binary"
)

// CompilerFlags mirrors the "compiler_flags" sub-record of the global
// configuration in spec.md §3.
type CompilerFlags struct {
	Unroll          bool
	InlineConstants bool
	AlignOpt        bool
	Debug           bool

	// Freeze selects which dimensions are baked into the fingerprint and,
	// where the back-end supports it, inlined as literals. It defaults to
	// AllDims: spec.md §2 specializes "for each distinct operation shape",
	// i.e. every dimension frozen, unless the caller asks for less.
	Freeze Dim
}

// OperationParams is the full parameter record threaded through the
// analyzer, the cache key builder, and the back-ends (spec.md §3).
type OperationParams struct {
	SrcW, SrcH int32
	SrcX, SrcY int32
	DstW       int32
	DstX, DstY int32
	Width      int32
	Height     int32

	Flags CompilerFlags

	// Analyzed is set once the analyzer (C7) has run; AnalyzerFlags holds
	// its output. Only consulted by the fingerprint builder when the
	// dispatcher's "autospecialize" config bit is set (spec.md §4.8 step 3).
	Analyzed      bool
	AnalyzerFlags Flag
}

// Stride returns the row stride, in 32-bit words, of a buffer widthPx
// pixels wide (spec.md §3 "Stride (in words)").
func Stride(widthPx int32) int32 {
	return (widthPx + 31) >> 5
}

// AnalyzerOutput is the record produced by the operation analyzer (C7).
type AnalyzerOutput struct {
	CanOptimize bool
	Flags       Flag
}

// Artifact is a compiled specialization of one operation shape (spec.md
// §4.5's "compiled routine"), ready to be invoked repeatedly. It lives in
// this leaf package, rather than alongside the back-end factory, so that
// every back-end package can implement it without importing the package
// that names the back-end interface -- avoiding an import cycle.
type Artifact interface {
	// Invoke runs the specialization against the given buffers.
	Invoke(src rt.Buffer, dst rt.Buffer) error
	// IsAsync reports whether Invoke may return before the copy is
	// observable in dst (spec.md §4.8's async back-end note); the
	// baseline back-ends are all synchronous, but the interface leaves
	// room for one that is not.
	IsAsync() bool
}
