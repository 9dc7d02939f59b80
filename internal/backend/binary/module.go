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
	"strconv"

	"github.com/cloudwego/bitblt/internal/errs"
)

// magic/version header (spec.md §4.2).
var (
	moduleMagic   = [4]byte{0x00, 0x61, 0x73, 0x6d}
	moduleVersion = [4]byte{0x01, 0x00, 0x00, 0x00}
)

// Module is the in-memory form of a bytecode module (component C2),
// assembled from a single function body (component C3) plus the fixed
// memory-import wiring spec.md §4.2 requires: one function taking
// numParams i32 arguments and returning none, one imported page-multiple
// linear memory, and an export of that function under "bitblt".
type Module struct {
	Body       Program
	MemPages   uint32 // initial page count of the imported memory
	MemMax     uint32 // 0 means unbounded
	FuncName   string
}

// NewModule builds the module wrapping body, per spec.md §4.2.
func NewModule(body Program, memPages, memMax uint32) *Module {
	return &Module{Body: body, MemPages: memPages, MemMax: memMax, FuncName: "bitblt"}
}

// Encode serializes m into the byte format spec.md §4.2 defines: magic,
// version, then type/import/function/memory/export/code sections in
// that fixed order, each section framed as [id byte][ULEB128 size][body].
func (m *Module) Encode() []byte {
	var out []byte
	out = append(out, moduleMagic[:]...)
	out = append(out, moduleVersion[:]...)

	out = append(out, m.encodeTypeSection()...)
	out = append(out, m.encodeImportSection()...)
	out = append(out, m.encodeFunctionSection()...)
	out = append(out, m.encodeMemorySection()...)
	out = append(out, m.encodeExportSection()...)
	out = append(out, m.encodeCodeSection()...)

	return out
}

func section(id byte, body []byte) []byte {
	out := []byte{id}
	out = appendULEB128(out, uint64(len(body)))
	return append(out, body...)
}

// encodeTypeSection emits the single function type: (i32 x numParams) -> ().
func (m *Module) encodeTypeSection() []byte {
	var body []byte
	body = appendULEB128(body, 1) // one type entry
	body = append(body, TypeFunc)
	body = appendULEB128(body, uint64(numParams))
	for i := 0; i < numParams; i++ {
		body = append(body, TypeI32)
	}
	body = appendULEB128(body, 0) // zero results
	return section(SecType, body)
}

// encodeImportSection emits the single imported linear memory "env.memory".
func (m *Module) encodeImportSection() []byte {
	var body []byte
	body = appendULEB128(body, 1) // one import
	body = appendName(body, "env")
	body = appendName(body, "memory")
	body = append(body, ExtMemory)
	body = appendLimits(body, m.MemPages, m.MemMax)
	return section(SecImport, body)
}

func (m *Module) encodeFunctionSection() []byte {
	var body []byte
	body = appendULEB128(body, 1) // one function
	body = appendULEB128(body, 0) // type index 0
	return section(SecFunction, body)
}

func (m *Module) encodeMemorySection() []byte {
	// spec.md §4.2: the memory is imported, not locally defined, so this
	// section is present but empty -- kept for positional well-formedness
	// (Property 5) rather than carrying a definition.
	var body []byte
	body = appendULEB128(body, 0)
	return section(SecMemory, body)
}

func (m *Module) encodeExportSection() []byte {
	var body []byte
	body = appendULEB128(body, 1) // one export
	body = appendName(body, m.FuncName)
	body = append(body, ExtFunc)
	body = appendULEB128(body, 0) // function index 0
	return section(SecExport, body)
}

func (m *Module) encodeCodeSection() []byte {
	var funcBody []byte
	funcBody = appendULEB128(funcBody, 1) // one local-decl group
	funcBody = appendULEB128(funcBody, uint64(numLocals-numParams))
	funcBody = append(funcBody, TypeI32)
	funcBody = append(funcBody, encodeInstrs(m.Body)...)

	var entry []byte
	entry = appendULEB128(entry, uint64(len(funcBody)))
	entry = append(entry, funcBody...)

	var body []byte
	body = appendULEB128(body, 1) // one code entry
	body = append(body, entry...)
	return section(SecCode, body)
}

// encodeInstrs lowers a Program into its byte encoding (spec.md §4.1's
// primitive writers applied instruction-by-instruction).
func encodeInstrs(p Program) []byte {
	var out []byte
	for _, ins := range p {
		out = append(out, byte(ins.Op))
		switch ins.Op {
		case OpLocalGet, OpLocalSet, OpLocalTee:
			out = appendULEB128(out, uint64(ins.Idx))
		case OpI32Const:
			out = appendSLEB128(out, ins.Iv)
		case OpBr, OpBrIf:
			out = appendULEB128(out, uint64(ins.To))
		case OpBlock, OpLoop, OpIf:
			out = append(out, TypeVoid)
		case OpI32Load, OpI32Store:
			out = appendULEB128(out, 2) // align = log2(4)
			out = appendULEB128(out, 0) // offset
		}
	}
	return out
}

func appendName(buf []byte, s string) []byte {
	buf = appendULEB128(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendLimits(buf []byte, min, max uint32) []byte {
	if max == 0 {
		buf = append(buf, 0x00)
		buf = appendULEB128(buf, uint64(min))
		return buf
	}
	buf = append(buf, 0x01)
	buf = appendULEB128(buf, uint64(min))
	buf = appendULEB128(buf, uint64(max))
	return buf
}

// Validate performs the structural well-formedness check spec.md §4.2
// requires a consumer be able to run (Property 5): magic, version, and
// section-id ordering.
func (m *Module) Validate() error {
	enc := m.Encode()
	if len(enc) < 8 {
		return errs.GenerationFailureError{BackEnd: "binary", Reason: "module shorter than header"}
	}
	if [4]byte(enc[0:4]) != moduleMagic {
		return errs.GenerationFailureError{BackEnd: "binary", Reason: "bad magic"}
	}
	if [4]byte(enc[4:8]) != moduleVersion {
		return errs.GenerationFailureError{BackEnd: "binary", Reason: "bad version"}
	}

	off := 8
	wantOrder := []byte{SecType, SecImport, SecFunction, SecMemory, SecExport, SecCode}
	for _, want := range wantOrder {
		if off >= len(enc) {
			return errs.GenerationFailureError{BackEnd: "binary", Reason: "truncated before section " + strconv.Itoa(int(want))}
		}
		id := enc[off]
		if id != want {
			return errs.GenerationFailureError{BackEnd: "binary", Reason: "section out of order"}
		}
		off++
		size, next := decodeULEB128(enc, off)
		off = next + int(size)
	}
	if off != len(enc) {
		return errs.GenerationFailureError{BackEnd: "binary", Reason: "trailing bytes after code section"}
	}
	return nil
}
