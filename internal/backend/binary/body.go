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

// Parameter slot order (spec.md §4.3): the eleven i32 arguments of the
// exported "bitblt" function, in declaration order.
const (
	locSrcPtr int32 = iota
	locSrcW
	locSrcH
	locSrcX
	locSrcY
	locDstPtr
	locDstW
	locDstX
	locDstY
	locWidth
	locHeight

	// Nine additional i32 locals declared after the parameters.
	locSrcStrideWords
	locDstStrideWords
	locY
	locSrcYAbs
	locDstYAbs
	locX
	locSrcBit
	locDstBitPos
	locWordTmp

	numLocals
)

const numParams = 11

// GenerateBody emits the opcode stream implementing one BitBLT call
// (spec.md §4.3, component C3). When aligned is true and the caller has
// established word alignment (spec.md §4.3's "Alignment-fast variant"),
// the whole-word copy path is emitted instead of the bit-scalar path; it
// is required to produce bit-identical results to the scalar loop.
func GenerateBody(aligned bool) (prog Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			prog, err = nil, &genPanic{r}
		}
	}()

	cs := newCtrlStack()
	var p Program

	// Prologue: stride computation (spec.md §4.3 "Prologue").
	emitStride(&p, locSrcW, locSrcStrideWords)
	emitStride(&p, locDstW, locDstStrideWords)

	// Outer loop over y in [0, height).
	p.op(OpBlock)
	cs.open(OpBlock)
	p.op(OpLoop)
	cs.open(OpLoop)

	emitGuard(&p, locY, locHeight, 1)

	// srcYAbs = srcY + y; dstYAbs = dstY + y.
	emitAdd(&p, locSrcY, locY, locSrcYAbs)
	emitAdd(&p, locDstY, locY, locDstYAbs)

	// x = 0 at the start of every row.
	p.constI32(0)
	p.local(OpLocalSet, locX)

	if aligned {
		emitAlignedInnerLoop(&p, cs)
	} else {
		emitScalarInnerLoop(&p, cs)
	}

	// y++; continue outer loop.
	emitInc(&p, locY)
	p.branch(OpBr, 0)

	p.op(OpEnd) // end outer loop
	cs.close()
	p.op(OpEnd) // end outer block
	cs.close()

	p.op(OpEnd) // function end
	cs.finish()

	return p, nil
}

// emitStride computes localOut = (widthLocal + 31) >> 5.
func emitStride(p *Program, widthLocal, out int32) {
	p.local(OpLocalGet, widthLocal)
	p.constI32(31)
	p.op(OpI32Add)
	p.constI32(5)
	p.op(OpI32ShrU)
	p.local(OpLocalSet, out)
}

// emitGuard emits the loop-continuation guard shared by the outer and
// inner loops: `iv < bound`, negated, and a br_if to exitDepth (spec.md
// §4.3: "guard as `y < height` -> negate -> `br_if` to exit block").
func emitGuard(p *Program, iv, bound int32, exitDepth int) {
	p.local(OpLocalGet, iv)
	p.local(OpLocalGet, bound)
	p.op(OpI32LtS)
	p.op(OpI32Eqz)
	p.branch(OpBrIf, exitDepth)
}

// emitAdd computes out = a + b, all locals.
func emitAdd(p *Program, a, b, out int32) {
	p.local(OpLocalGet, a)
	p.local(OpLocalGet, b)
	p.op(OpI32Add)
	p.local(OpLocalSet, out)
}

// emitInc computes iv = iv + 1.
func emitInc(p *Program, iv int32) {
	p.local(OpLocalGet, iv)
	p.constI32(1)
	p.op(OpI32Add)
	p.local(OpLocalSet, iv)
}

// emitWordAddress pushes base + (((xLocal + offLocal) >> shift) + rowIdxLocal*strideLocal) * 4
// onto the stack: the byte address, in linear memory, of the word holding
// pixel column (xLocal+offLocal) on the row indexed by rowIdxLocal.
func emitWordAddress(p *Program, base, offLocal, xLocal, rowIdxLocal, strideLocal int32) {
	p.local(OpLocalGet, offLocal)
	p.local(OpLocalGet, xLocal)
	p.op(OpI32Add)
	p.constI32(5)
	p.op(OpI32ShrU)
	p.local(OpLocalGet, rowIdxLocal)
	p.local(OpLocalGet, strideLocal)
	p.op(OpI32Mul)
	p.op(OpI32Add)
	p.constI32(4)
	p.op(OpI32Mul)
	p.local(OpLocalGet, base)
	p.op(OpI32Add)
}

// emitScalarInnerLoop emits the bit-by-bit inner loop of spec.md §4.3.
func emitScalarInnerLoop(p *Program, cs *ctrlStack) {
	p.op(OpBlock)
	cs.open(OpBlock)
	p.op(OpLoop)
	cs.open(OpLoop)

	emitGuard(p, locX, locWidth, 1)

	// srcBit = (srcPtr word) >>> (srcXAbs & 31) & 1
	emitWordAddress(p, locSrcPtr, locSrcX, locX, locSrcYAbs, locSrcStrideWords)
	p.op(OpI32Load)
	p.local(OpLocalGet, locSrcX)
	p.local(OpLocalGet, locX)
	p.op(OpI32Add)
	p.constI32(31)
	p.op(OpI32And)
	p.op(OpI32ShrU)
	p.constI32(1)
	p.op(OpI32And)
	p.local(OpLocalSet, locSrcBit)

	// dstBitPos = dstXAbs & 31
	p.local(OpLocalGet, locDstX)
	p.local(OpLocalGet, locX)
	p.op(OpI32Add)
	p.constI32(31)
	p.op(OpI32And)
	p.local(OpLocalSet, locDstBitPos)

	// wordTmp = *dstWordAddress
	emitWordAddress(p, locDstPtr, locDstX, locX, locDstYAbs, locDstStrideWords)
	p.op(OpI32Load)
	p.local(OpLocalSet, locWordTmp)

	// if srcBit != 0 { wordTmp |= 1<<dstBitPos } else { wordTmp &= (1<<dstBitPos) ^ -1 }
	p.local(OpLocalGet, locSrcBit)
	p.op(OpIf)
	cs.open(OpIf)

	p.local(OpLocalGet, locWordTmp)
	p.constI32(1)
	p.local(OpLocalGet, locDstBitPos)
	p.op(OpI32Shl)
	p.op(OpI32Or)
	p.local(OpLocalSet, locWordTmp)

	p.op(OpElse)

	p.local(OpLocalGet, locWordTmp)
	p.constI32(1)
	p.local(OpLocalGet, locDstBitPos)
	p.op(OpI32Shl)
	p.constI32(-1)
	p.op(OpI32Xor)
	p.op(OpI32And)
	p.local(OpLocalSet, locWordTmp)

	p.op(OpEnd) // end if/else
	cs.close()

	// store wordTmp back
	emitWordAddress(p, locDstPtr, locDstX, locX, locDstYAbs, locDstStrideWords)
	p.local(OpLocalGet, locWordTmp)
	p.op(OpI32Store)

	emitInc(p, locX)
	p.branch(OpBr, 0)

	p.op(OpEnd) // end inner loop
	cs.close()
	p.op(OpEnd) // end inner block
	cs.close()
}

// emitAlignedInnerLoop emits the whole-word copy variant used when the
// operation was analyzed as word-aligned (spec.md §4.3's "Alignment-fast
// variant"). It walks x in word-sized strides instead of one pixel at a
// time and copies each source word directly to the destination word,
// which spec.md requires to be bit-identical to the scalar loop -- true
// here because word alignment guarantees dstBitPos is always 0, so the
// OR/AND-NOT dance in the scalar loop degenerates to a plain overwrite.
func emitAlignedInnerLoop(p *Program, cs *ctrlStack) {
	p.op(OpBlock)
	cs.open(OpBlock)
	p.op(OpLoop)
	cs.open(OpLoop)

	emitGuard(p, locX, locWidth, 1)

	emitWordAddress(p, locDstPtr, locDstX, locX, locDstYAbs, locDstStrideWords)
	emitWordAddress(p, locSrcPtr, locSrcX, locX, locSrcYAbs, locSrcStrideWords)
	p.op(OpI32Load)
	p.op(OpI32Store)

	// x += 32 (one word of pixels per iteration)
	p.local(OpLocalGet, locX)
	p.constI32(32)
	p.op(OpI32Add)
	p.local(OpLocalSet, locX)
	p.branch(OpBr, 0)

	p.op(OpEnd)
	cs.close()
	p.op(OpEnd)
	cs.close()
}

type genPanic struct{ v interface{} }

func (g *genPanic) Error() string { return "bitblt: body generation panicked: " + errString(g.v) }

func errString(v interface{}) string {
	if e, ok := v.(error); ok {
		return e.Error()
	}
	return "panic"
}
