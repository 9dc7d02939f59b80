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
	"fmt"
	"strings"

	"github.com/oleiade/lane"
)

// Instr is one instruction of a function body, in the same flavor as the
// teacher's internal/jit/encoder.Instr: an opcode tag plus whichever of
// the operand fields that opcode needs.
type Instr struct {
	Op  OpCode
	Idx int32 // local index, for local.get/set/tee
	Iv  int64 // immediate, for i32.const
	To  int   // relative branch depth, for br/br_if; 0 for block/loop/if
}

// Program is a sequence of instructions implementing one function body,
// not yet wrapped in the LEB128 byte-count/locals header that the module
// assembler (C2) adds.
type Program []Instr

func (p *Program) op(o OpCode)              { *p = append(*p, Instr{Op: o}) }
func (p *Program) local(o OpCode, idx int32) { *p = append(*p, Instr{Op: o, Idx: idx}) }
func (p *Program) constI32(v int32)         { *p = append(*p, Instr{Op: OpI32Const, Iv: int64(v)}) }
func (p *Program) branch(o OpCode, depth int) { *p = append(*p, Instr{Op: o, To: depth}) }

// ctrlStack is pushed to every time this package opens a block, loop, or
// if and popped every time it closes one with `end`. Grounded on the
// teacher's use of github.com/oleiade/lane for stack-based bookkeeping
// across internal/atm/ssa's control-flow passes (e.g. blockiter.go,
// pass_regalloc_amd64.go): here the stack gives a mechanical proof that
// every block/loop opened by the body generator (C3) is matched by an
// `end` before the function closes -- spec.md §4.3's structured-control
// correctness contract -- instead of hoping the emission code is balanced
// by inspection.
type ctrlStack struct {
	s *lane.Stack
}

func newCtrlStack() *ctrlStack {
	return &ctrlStack{s: lane.NewStack()}
}

func (c *ctrlStack) open(kind OpCode) {
	c.s.Push(kind)
}

func (c *ctrlStack) close() OpCode {
	if c.s.Empty() {
		panic("bitblt: unmatched end: control stack already empty")
	}
	return c.s.Pop().(OpCode)
}

func (c *ctrlStack) depth() int {
	return c.s.Size()
}

// finish asserts the stack is empty -- every opened block/loop/if has a
// matching end -- and panics (caught by the caller as a GenerationFailure)
// otherwise.
func (c *ctrlStack) finish() {
	if !c.s.Empty() {
		panic(fmt.Sprintf("bitblt: %d unmatched block/loop/if at function end", c.s.Size()))
	}
}

// Disassemble renders the program as assembly-style text, one instruction
// per line, in the spirit of the teacher's
// internal/jit/encoder.Program.Disassemble.
func (p Program) Disassemble() string {
	var b strings.Builder
	depth := 0
	for _, ins := range p {
		switch ins.Op {
		case OpEnd, OpElse:
			depth--
		}
		b.WriteString(strings.Repeat("  ", maxInt(depth, 0)))
		b.WriteString(ins.String())
		b.WriteByte('\n')
		switch ins.Op {
		case OpBlock, OpLoop, OpIf:
			depth++
		}
	}
	return b.String()
}

func (ins Instr) String() string {
	switch ins.Op {
	case OpLocalGet, OpLocalSet, OpLocalTee:
		return fmt.Sprintf("%-12s %d", ins.Op, ins.Idx)
	case OpI32Const:
		return fmt.Sprintf("%-12s %d", ins.Op, ins.Iv)
	case OpBr, OpBrIf:
		return fmt.Sprintf("%-12s %d", ins.Op, ins.To)
	default:
		return ins.Op.String()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
