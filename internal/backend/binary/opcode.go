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

// Package binary implements the bytecode back-end: the primitive writers
// (spec.md §4.1, component C1), the module assembler (spec.md §4.2,
// component C2), and the body generator (spec.md §4.3, component C3),
// together with a small runtime capable of instantiating and executing
// the modules this package emits (spec.md §4.8 step 6b).
package binary

// OpCode is one instruction of the portable bytecode format's opcode
// encoding (spec.md §4.1).
type OpCode byte

// Control-flow and structural opcodes.
const (
	OpBlock  OpCode = 0x02
	OpLoop   OpCode = 0x03
	OpIf     OpCode = 0x04
	OpElse   OpCode = 0x05
	OpEnd    OpCode = 0x0b
	OpBr     OpCode = 0x0c
	OpBrIf   OpCode = 0x0d
	OpReturn OpCode = 0x0f
)

// Local/variable access opcodes.
const (
	OpLocalGet OpCode = 0x20
	OpLocalSet OpCode = 0x21
	OpLocalTee OpCode = 0x22
)

// Memory access opcodes. Loads and stores always address a 4-byte-aligned
// i32 in linear memory (spec.md §4.3's "Memory load uses 4-byte
// alignment").
const (
	OpI32Load  OpCode = 0x28
	OpI32Store OpCode = 0x36
)

// Constant and arithmetic/logic opcodes.
const (
	OpI32Const OpCode = 0x41

	OpI32Eqz  OpCode = 0x45
	OpI32LtS  OpCode = 0x48

	OpI32Add OpCode = 0x6a
	OpI32Sub OpCode = 0x6b
	OpI32Mul OpCode = 0x6c
	OpI32And OpCode = 0x71
	OpI32Or  OpCode = 0x72
	OpI32Xor OpCode = 0x73
	OpI32Shl OpCode = 0x74
	OpI32ShrU OpCode = 0x76
	OpI32Rotl OpCode = 0x77
)

// Value-type tags (spec.md §4.1: "value-type tags for 32-bit integers").
const (
	TypeI32  byte = 0x7f
	TypeFunc byte = 0x60
	TypeVoid byte = 0x40 // empty block type
)

// Section id tags, in the fixed order spec.md §4.2 requires.
const (
	SecType     byte = 1
	SecImport   byte = 2
	SecFunction byte = 3
	SecMemory   byte = 5
	SecExport   byte = 7
	SecCode     byte = 10
)

// External-kind tags used by the import and export sections.
const (
	ExtFunc   byte = 0x00
	ExtMemory byte = 0x02
)

// PageSize is one linear-memory page: 64 KiB (spec.md §4.2).
const PageSize = 64 * 1024

// isBranchTarget reports whether op either carries a branch-depth operand
// (br, br_if) or opens a construct a branch can target (block, loop, if),
// mirroring the teacher's OpCode._OpBranches disassembly table
// (internal/jit/encoder/opcode.go in the teacher repo).
func (op OpCode) isBranchTarget() bool {
	switch op {
	case OpBr, OpBrIf, OpBlock, OpLoop, OpIf:
		return true
	default:
		return false
	}
}

var opNames = map[OpCode]string{
	OpBlock:    "block",
	OpLoop:     "loop",
	OpIf:       "if",
	OpElse:     "else",
	OpEnd:      "end",
	OpBr:       "br",
	OpBrIf:     "br_if",
	OpReturn:   "return",
	OpLocalGet: "local.get",
	OpLocalSet: "local.set",
	OpLocalTee: "local.tee",
	OpI32Load:  "i32.load",
	OpI32Store: "i32.store",
	OpI32Const: "i32.const",
	OpI32Eqz:   "i32.eqz",
	OpI32LtS:   "i32.lt_s",
	OpI32Add:   "i32.add",
	OpI32Sub:   "i32.sub",
	OpI32Mul:   "i32.mul",
	OpI32And:   "i32.and",
	OpI32Or:    "i32.or",
	OpI32Xor:   "i32.xor",
	OpI32Shl:   "i32.shl",
	OpI32ShrU:  "i32.shr_u",
	OpI32Rotl:  "i32.rotl",
}

func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "op(0x" + hexByte(byte(op)) + ")"
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}
