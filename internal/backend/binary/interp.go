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

	"github.com/cloudwego/bitblt/internal/errs"
)

// Interp is a minimal linear-memory, structured-control stack machine
// able to execute the exact opcode subset component C3 emits. No example
// in the retrieved corpus depends on a general-purpose bytecode runtime,
// so rather than pull in one this package interprets its own Program IR
// directly -- the encoded module bytes (Module.Encode) exist for
// well-formedness and round-trip verification (Properties 5 and 6), not
// as this interpreter's input.
//
// Values are all i32, stored as uint32 and reinterpreted per operator;
// linear memory is little-endian (spec.md §4.2).
type Interp struct {
	mem []byte
}

// NewInterp allocates pages*PageSize bytes of zeroed linear memory.
func NewInterp(pages uint32) *Interp {
	return &Interp{mem: make([]byte, uint64(pages)*PageSize)}
}

// Grow enlarges linear memory so that it holds at least needed bytes in
// total, rounding up to a whole number of pages; it does nothing if memory
// is already that large. It does not check any MemMax of a module.
func (in *Interp) Grow(needed int) {
	if needed <= len(in.mem) {
		return
	}
	pages := (needed + PageSize - 1) / PageSize
	grown := make([]byte, pages*PageSize)
	copy(grown, in.mem)
	in.mem = grown
}

// Poke copies src into linear memory starting at byte offset off.
func (in *Interp) Poke(off int, src []byte) { copy(in.mem[off:], src) }

// Peek reads n bytes from linear memory at offset off.
func (in *Interp) Peek(off, n int) []byte { return in.mem[off : off+n] }

func (in *Interp) loadI32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(in.mem[addr : addr+4])
}

func (in *Interp) storeI32(addr, v uint32) {
	binary.LittleEndian.PutUint32(in.mem[addr:addr+4], v)
}

// Run executes body with the given i32 arguments against in's linear
// memory. It returns InstantiationFailureError on an out-of-bounds load or
// store, which can only happen if the caller mis-sized linear memory
// relative to the arguments, and on an opcode it does not implement.
func (in *Interp) Run(body Program, args []int32) error {
	locals := make([]uint32, numLocals)
	for i, a := range args {
		locals[i] = uint32(a)
	}

	var stack []uint32
	push := func(v uint32) { stack = append(stack, v) }
	pop := func() uint32 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	// ends[i] holds the instruction index one past the matching end for
	// the block/loop/if opened at pc==i (for an if with an else, one past
	// the else); computed once up front so if/else jumps resolve in O(1).
	ends, loopHeads := scanControl(body)

	pc := 0
	for pc < len(body) {
		ins := body[pc]
		switch ins.Op {
		case OpBlock, OpLoop:
			pc++
			continue
		case OpIf:
			cond := pop()
			if cond == 0 {
				pc = ends[pc] // jump to matching else/end
			} else {
				pc++
			}
			continue
		case OpElse:
			pc = ends[pc] // an else reached by fallthrough skips to its end
			continue
		case OpEnd:
			pc++
			continue
		case OpBr, OpBrIf:
			if ins.Op == OpBrIf && pop() == 0 {
				pc++
				continue
			}
			target := resolveBranch(body, pc, ins.To, ends, loopHeads)
			pc = target
			continue
		case OpLocalGet:
			push(locals[ins.Idx])
		case OpLocalSet:
			locals[ins.Idx] = pop()
		case OpLocalTee:
			v := pop()
			locals[ins.Idx] = v
			push(v)
		case OpI32Const:
			push(uint32(int32(ins.Iv)))
		case OpI32Load:
			addr := pop()
			if int(addr)+4 > len(in.mem) {
				return errs.InstantiationFailureError{Reason: "i32.load out of bounds"}
			}
			push(in.loadI32(addr))
		case OpI32Store:
			v := pop()
			addr := pop()
			if int(addr)+4 > len(in.mem) {
				return errs.InstantiationFailureError{Reason: "i32.store out of bounds"}
			}
			in.storeI32(addr, v)
		case OpI32Eqz:
			if pop() == 0 {
				push(1)
			} else {
				push(0)
			}
		case OpI32LtS:
			b := int32(pop())
			a := int32(pop())
			if a < b {
				push(1)
			} else {
				push(0)
			}
		case OpI32Add:
			b := pop()
			push(pop() + b)
		case OpI32Sub:
			b := pop()
			push(pop() - b)
		case OpI32Mul:
			b := pop()
			push(pop() * b)
		case OpI32And:
			b := pop()
			push(pop() & b)
		case OpI32Or:
			b := pop()
			push(pop() | b)
		case OpI32Xor:
			b := pop()
			push(pop() ^ b)
		case OpI32Shl:
			b := pop()
			push(pop() << (b & 31))
		case OpI32ShrU:
			b := pop()
			push(pop() >> (b & 31))
		case OpI32Rotl:
			b := pop() & 31
			a := pop()
			push((a << b) | (a >> (32 - b)))
		default:
			return errs.InstantiationFailureError{Reason: "unsupported opcode in interpreter: " + ins.Op.String()}
		}
		pc++
	}
	return nil
}

// scanControl prescans body once, recording for every block/loop/if
// opener the index one past its matching end (or its else, for an if
// with an else clause), for every else the index one past its matching
// end (so the then-arm's fallthrough into OpElse jumps past the whole
// if, not back to the top of the program), and, keyed by the index of
// every end that closes a construct, the index of that construct's
// opener (loopHeads). The function body's own closing end has no opener
// and only gets an ends entry.
func scanControl(body Program) (ends map[int]int, loopHeads map[int]int) {
	ends = make(map[int]int)
	loopHeads = make(map[int]int)
	type frame struct {
		open      int
		isIf      bool
		elseIndex int
	}
	var stack []frame
	for i, ins := range body {
		switch ins.Op {
		case OpBlock, OpLoop, OpIf:
			stack = append(stack, frame{open: i, isIf: ins.Op == OpIf, elseIndex: -1})
		case OpElse:
			top := &stack[len(stack)-1]
			top.elseIndex = i
			ends[top.open] = i + 1
		case OpEnd:
			if len(stack) == 0 {
				// The function body's own closing end has no opener.
				ends[i] = i + 1
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.elseIndex >= 0 {
				ends[top.elseIndex] = i + 1
			}
			if _, already := ends[top.open]; !already {
				ends[top.open] = i + 1
			}
			ends[i] = i + 1
			loopHeads[i] = top.open
		}
	}
	return ends, loopHeads
}

// resolveBranch computes the instruction index a br/brIf at pc with
// relative depth `to` jumps to: depth 0 is the innermost enclosing
// construct, counted outward. Branching to a loop resumes at its head
// (re-testing the guard); branching to a block or if resumes just past
// its end.
func resolveBranch(body Program, pc int, to int, ends map[int]int, loopHeads map[int]int) int {
	depth := -1
	nesting := 0
	for i := pc; i >= 0; i-- {
		switch body[i].Op {
		case OpEnd:
			if i != pc {
				nesting++
			}
		case OpBlock, OpLoop, OpIf:
			if nesting > 0 {
				nesting--
				continue
			}
			depth++
			if depth == to {
				if body[i].Op == OpLoop {
					return i + 1 // resume just inside the loop body, guard re-runs each iteration via the guard's own br_if
				}
				return ends[i]
			}
		}
	}
	panic("bitblt: branch target not found -- malformed control stack")
}
