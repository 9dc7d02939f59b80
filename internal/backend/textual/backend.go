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

package textual

import (
	"github.com/traefik/yaegi/interp"

	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/errs"
	"github.com/cloudwego/bitblt/internal/rt"
)

// BackEnd implements the "textual" back-end (spec.md §4.4): Generate
// renders Go source for one operation shape, Compile evaluates it
// in-process with yaegi and extracts the entry function by reflection.
type BackEnd struct{}

// New constructs the textual back-end.
func New() *BackEnd { return &BackEnd{} }

func (b *BackEnd) Name() defs.BackEnd { return defs.Textual }

// Generate renders the source text for p. It never fails on well-formed
// input; generateSource is a pure string builder over p's fields.
func (b *BackEnd) Generate(p defs.OperationParams) (interface{}, error) {
	return generateSource(p), nil
}

// bitbltFunc is the fixed shape every generated entry function has,
// regardless of which dimensions were inlined as literals (gen.go keeps
// the parameter list constant for exactly this reason).
type bitbltFunc func(src []uint32, dst []uint32, srcW, srcH, srcX, srcY, dstW, dstX, dstY, width, height int32)

// Compile evaluates the generated source and extracts entryFunc. A
// syntax or type error from yaegi is reported as GenerationFailureError,
// matching spec.md §7's classification of "a textual back-end parse
// failure" (an error that would have been caught at Generate time by a
// real ahead-of-time compiler, surfaced here at Compile time because
// yaegi only parses on Eval).
func (b *BackEnd) Compile(generated interface{}, p defs.OperationParams) (defs.Artifact, error) {
	src, ok := generated.(string)
	if !ok {
		return nil, errs.InstantiationFailureError{Reason: "generated value is not source text"}
	}

	i := interp.New(interp.Options{})
	if _, err := i.Eval(src); err != nil {
		return nil, errs.GenerationFailureError{BackEnd: string(defs.Textual), Reason: err.Error()}
	}

	v, err := i.Eval(pkgName + "." + entryFunc)
	if err != nil {
		return nil, errs.InstantiationFailureError{Reason: "entry function not found: " + err.Error()}
	}

	fn, ok := v.Interface().(func([]uint32, []uint32, int32, int32, int32, int32, int32, int32, int32, int32, int32))
	if !ok {
		return nil, errs.InstantiationFailureError{Reason: "entry function has unexpected signature"}
	}

	return &artifact{fn: bitbltFunc(fn), params: p}, nil
}

// artifact wraps the yaegi-produced closure. Invocation is a direct Go
// call (spec.md §4.8 step 6a: "invoke directly, no stage/destage"), since
// the textual back-end's routine already operates on the caller's own
// []uint32 slices.
type artifact struct {
	fn     bitbltFunc
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

	a.fn(src, dst, p.SrcW, p.SrcH, p.SrcX, p.SrcY, p.DstW, p.DstX, p.DstY, p.Width, p.Height)
	return nil
}
