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
	"encoding/binary"

	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/errs"
	"github.com/cloudwego/bitblt/internal/rt"
)

// BackEnd implements the "binary" and "aligned-binary" back-ends
// (spec.md §4.5), which differ only in whether the body generator emits
// the whole-word-copy fast path and whether Generate enforces the
// word-alignment precondition that path requires.
type BackEnd struct {
	aligned bool
}

// NewBackEnd constructs the binary back-end. aligned selects
// "aligned-binary": Generate then refuses any operation shape that is not
// word-aligned, returning UnsupportedError so the dispatcher can fall
// back to the plain "binary" back-end (spec.md §12.4).
func NewBackEnd(aligned bool) *BackEnd {
	return &BackEnd{aligned: aligned}
}

func (b *BackEnd) Name() defs.BackEnd {
	if b.aligned {
		return defs.AlignedBinary
	}
	return defs.Binary
}

// Generate assembles the bytecode module for p (component C2 wrapping
// C3's body). It is the same module shape regardless of p's actual
// geometry -- the body only references locals and parameters, so one
// generated program serves every shape once compiled -- but Generate is
// still called per-fingerprint because the word-alignment precondition
// for the aligned variant depends on p.
func (b *BackEnd) Generate(p defs.OperationParams) (interface{}, error) {
	if b.aligned && !isWordAligned(p) {
		return nil, errs.UnsupportedError{Reason: "aligned-binary requires word-aligned src/dst x-offsets and width"}
	}

	body, err := GenerateBody(b.aligned)
	if err != nil {
		return nil, errs.GenerationFailureError{BackEnd: string(b.Name()), Reason: err.Error()}
	}

	mod := NewModule(body, requiredPages(p), 0)
	if err := mod.Validate(); err != nil {
		return nil, err
	}
	return mod, nil
}

func isWordAligned(p defs.OperationParams) bool {
	return p.Width%32 == 0 && p.SrcX%32 == 0 && p.DstX%32 == 0
}

// requiredPages sizes linear memory to hold both buffers' worst case
// contiguous footprint, staged back-to-back (srcBase at 0, dstBase right
// after). Invoke recomputes this per call since actual buffer
// sizes are only known at invocation, not at generation time -- this
// only sizes the module's memory import declaration, which only needs a
// lower bound.
func requiredPages(p defs.OperationParams) uint32 {
	srcWords := rt.WordCount(p.SrcW, p.SrcY+p.Height)
	dstWords := rt.WordCount(p.DstW, p.DstY+p.Height)
	bytes := (int64(srcWords) + int64(dstWords)) * 4
	pages := (bytes + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	return uint32(pages)
}

// Compile validates the generated module and wraps it in an Artifact
// that interprets its body directly (this package's Interp), rather than
// re-decoding the encoded bytes -- see the Interp type's doc comment.
func (b *BackEnd) Compile(generated interface{}, p defs.OperationParams) (defs.Artifact, error) {
	mod, ok := generated.(*Module)
	if !ok {
		return nil, errs.InstantiationFailureError{Reason: "generated value is not a *Module"}
	}
	if err := mod.Validate(); err != nil {
		return nil, errs.InstantiationFailureError{Reason: err.Error()}
	}
	return &artifact{mod: mod, params: p}, nil
}

// artifact is the binary back-end's defs.Artifact: it stages the caller's
// rt.Buffer pair into a freshly allocated Interp's linear memory, runs
// the module body, then copies the destination words back out (spec.md
// §4.8 step 6b's "stage / invoke / destage").
type artifact struct {
	mod    *Module
	params defs.OperationParams
}

func (a *artifact) IsAsync() bool { return false }

func (a *artifact) Invoke(src rt.Buffer, dst rt.Buffer) error {
	p := a.params
	srcWords := rt.WordCount(p.SrcW, p.SrcY+p.Height)
	dstWords := rt.WordCount(p.DstW, p.DstY+p.Height)
	if int32(len(src)) < srcWords {
		return errs.MemoryCapacityError{Needed: int(srcWords), Have: len(src)}
	}
	if int32(len(dst)) < dstWords {
		return errs.MemoryCapacityError{Needed: int(dstWords), Have: len(dst)}
	}

	srcBase := 0
	srcByteLen := len(src) * 4
	dstBase := srcByteLen
	dstByteLen := len(dst) * 4

	interp := NewInterp(requiredPagesForBytes(srcByteLen + dstByteLen))
	interp.Poke(srcBase, wordsToBytes(src))
	interp.Poke(dstBase, wordsToBytes(dst))

	args := []int32{
		int32(srcBase), p.SrcW, p.SrcH, p.SrcX, p.SrcY,
		int32(dstBase), p.DstW, p.DstX, p.DstY,
		p.Width, p.Height,
	}
	if err := interp.Run(a.mod.Body, args); err != nil {
		return err
	}

	copy(dst, bytesToWords(interp.Peek(dstBase, dstByteLen)))
	return nil
}

func requiredPagesForBytes(n int) uint32 {
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	return uint32(pages)
}

func wordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func bytesToWords(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}
