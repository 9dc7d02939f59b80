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

// Package textual implements the textual back-end (spec.md §4.4,
// component C4): source-text generation for one operation shape, plus an
// in-process compile/eval step that turns the text into a callable Go
// function.
package textual

import (
	"fmt"
	"strings"

	"github.com/oleiade/lane"

	"github.com/cloudwego/bitblt/internal/defs"
)

// entryFunc is the name every generated source defines and the textual
// back-end looks up after compiling it.
const entryFunc = "Bitblt"

// pkgName is the throwaway package name of every generated source unit;
// the textual back-end is always evaluated fresh, never imported by
// anything else, so there is no risk of collision across specializations.
const pkgName = "specialized"

// generateSource renders the Go source for one operation shape, per
// spec.md §4.4's three knobs: inline_constants substitutes p's geometry
// as literals instead of function parameters, unroll replaces both loops
// with one straight-line block per pixel when smallEnoughToUnroll holds, and
// debug adds a source comment banner naming the shape -- never executable
// behavior, purely for a human reading a cache dump (SPEC_FULL.md §12.1).
func generateSource(p defs.OperationParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n\n", pkgName)

	if p.Flags.Debug {
		fmt.Fprintf(&b, "// shape: src=%dx%d+%d,%d dst=%dx%d+%d,%d rect=%dx%d\n",
			p.SrcW, p.SrcH, p.SrcX, p.SrcY, p.DstW, 0, p.DstX, p.DstY, p.Width, p.Height)
	}

	sig, body := generateSignatureAndBody(p)
	fmt.Fprintf(&b, "func %s%s {\n%s}\n", entryFunc, sig, body)

	return b.String()
}

// generateSignatureAndBody returns the function signature and indented
// body. The signature always takes the full fixed parameter list -- one
// static shape lets the compile step (backend.go) build a single reflect
// function type once, instead of one per combination of frozen
// dimensions. When inline_constants is set, the nine geometry parameters
// are still declared but the body substitutes their literal values
// instead of referencing them (an unused function parameter is not a Go
// compile error, unlike an unused local variable), so evaluation never
// pays for the indirection.
func generateSignatureAndBody(p defs.OperationParams) (sig string, body string) {
	f := p.Flags.Freeze

	type param struct {
		name string
		val  int32
		dim  defs.Dim
	}
	params := []param{
		{"srcW", p.SrcW, defs.DimSrcW},
		{"srcH", p.SrcH, defs.DimSrcH},
		{"srcX", p.SrcX, defs.DimSrcX},
		{"srcY", p.SrcY, defs.DimSrcY},
		{"dstW", p.DstW, defs.DimDstW},
		{"dstX", p.DstX, defs.DimDstX},
		{"dstY", p.DstY, defs.DimDstY},
		{"width", p.Width, defs.DimWidth},
		{"height", p.Height, defs.DimHeight},
	}

	ref := func(pr param) string {
		if p.Flags.InlineConstants && f.Has(pr.dim) {
			return fmt.Sprintf("%d", pr.val)
		}
		return pr.name
	}

	sigParams := []string{"src []uint32", "dst []uint32"}
	for _, pr := range params {
		sigParams = append(sigParams, pr.name+" int32")
	}
	sig = "(" + strings.Join(sigParams, ", ") + ")"

	vals := map[string]string{}
	for _, pr := range params {
		vals[pr.name] = ref(pr)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\tsrcStride := int32((%s + 31) >> 5)\n", vals["srcW"])
	fmt.Fprintf(&b, "\tdstStride := int32((%s + 31) >> 5)\n", vals["dstW"])

	if p.Flags.Unroll && smallEnoughToUnroll(p) {
		generateUnrolled(&b, p, vals)
	} else {
		generateLoop(&b, vals)
	}

	return sig, b.String()
}

// smallEnoughToUnroll gates unrolling on width*height as well as on width
// and height both being frozen: unrolling bakes one straight-line block
// per pixel, so the number of blocks is fixed at generation time. If
// either dimension weren't frozen, Fingerprint (cache/key.go) wouldn't
// vary with it, and a later call with a different width or height would
// reuse an artifact built for the wrong pixel count.
func smallEnoughToUnroll(p defs.OperationParams) bool {
	f := p.Flags.Freeze
	return f.Has(defs.DimWidth) && f.Has(defs.DimHeight) &&
		p.Width > 0 && p.Height > 0 && p.Width*p.Height <= 64
}

// generateLoop emits the straightforward doubly-nested scalar loop --
// the textual back-end's equivalent of the bytecode back-end's scalar
// body (spec.md §4.3), expressed as Go source instead of opcodes.
func generateLoop(b *strings.Builder, v map[string]string) {
	fmt.Fprintf(b, "\tfor y := int32(0); y < %s; y++ {\n", v["height"])
	fmt.Fprintf(b, "\t\tsy := %s + y\n", v["srcY"])
	fmt.Fprintf(b, "\t\tdy := %s + y\n", v["dstY"])
	fmt.Fprintf(b, "\t\tfor x := int32(0); x < %s; x++ {\n", v["width"])
	fmt.Fprintf(b, "\t\t\tsx := %s + x\n", v["srcX"])
	fmt.Fprintf(b, "\t\t\tdx := %s + x\n", v["dstX"])
	fmt.Fprintf(b, "\t\t\tbit := (src[(sx>>5)+sy*srcStride] >> uint(sx&31)) & 1\n")
	fmt.Fprintf(b, "\t\t\tidx := (dx>>5)+dy*dstStride\n")
	fmt.Fprintf(b, "\t\t\tif bit != 0 {\n")
	fmt.Fprintf(b, "\t\t\t\tdst[idx] |= 1 << uint(dx&31)\n")
	fmt.Fprintf(b, "\t\t\t} else {\n")
	fmt.Fprintf(b, "\t\t\t\tdst[idx] &^= 1 << uint(dx&31)\n")
	fmt.Fprintf(b, "\t\t\t}\n")
	fmt.Fprintf(b, "\t\t}\n")
	fmt.Fprintf(b, "\t}\n")
}

// generateUnrolled emits one straight-line statement per pixel instead of
// a loop nest, for the small-operation case the analyzer flags with
// FlagUnrollSmall (spec.md §4.7). It uses a lane.Stack exactly as the
// loop-nest tracker it replaces would, so that the emission code reads
// as "close every row/col frame I opened" even though unrolling never
// actually closes a runtime loop -- mirroring the teacher corpus's
// convention of using an explicit stack for nested-scope bookkeeping
// during code emission (internal/atm/ssa's block builders in the teacher
// repo) rather than ad hoc counters.
//
// Every offset still goes through vals, exactly as generateLoop routes
// them: smallEnoughToUnroll only guarantees width and height are frozen,
// not srcX/srcY/dstX/dstY, so an unfrozen offset must stay a reference to
// the runtime parameter rather than the literal value captured at
// generation time -- otherwise two calls sharing this fingerprint but
// differing in an unfrozen offset would silently reuse the first one's
// offsets baked in as constants.
func generateUnrolled(b *strings.Builder, p defs.OperationParams, vals map[string]string) {
	frames := lane.NewStack()
	for y := int32(0); y < p.Height; y++ {
		frames.Push(y)
		for x := int32(0); x < p.Width; x++ {
			fmt.Fprintf(b, "\t{\n")
			fmt.Fprintf(b, "\t\tsx := %s + int32(%d)\n", vals["srcX"], x)
			fmt.Fprintf(b, "\t\tsy := %s + int32(%d)\n", vals["srcY"], y)
			fmt.Fprintf(b, "\t\tdx := %s + int32(%d)\n", vals["dstX"], x)
			fmt.Fprintf(b, "\t\tdy := %s + int32(%d)\n", vals["dstY"], y)
			fmt.Fprintf(b, "\t\tbit := (src[(sx>>5)+sy*srcStride] >> uint(sx&31)) & 1\n")
			fmt.Fprintf(b, "\t\tidx := (dx>>5)+dy*dstStride\n")
			fmt.Fprintf(b, "\t\tif bit != 0 {\n")
			fmt.Fprintf(b, "\t\t\tdst[idx] |= 1 << uint(dx&31)\n")
			fmt.Fprintf(b, "\t\t} else {\n")
			fmt.Fprintf(b, "\t\t\tdst[idx] &^= 1 << uint(dx&31)\n")
			fmt.Fprintf(b, "\t\t}\n")
			fmt.Fprintf(b, "\t}\n")
		}
		frames.Pop()
	}
}
