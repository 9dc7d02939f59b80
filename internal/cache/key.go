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

// Package cache implements the specialization cache and fingerprint key of
// spec.md §4.6 (component C6): a canonical string built from the subset of
// operation dimensions the caller froze, plus the optimization flags, and
// a map from that fingerprint to a compiled artifact, with at-most-one
// compilation per fingerprint on concurrent first access.
package cache

import (
	"strconv"
	"strings"

	"github.com/cloudwego/bitblt/internal/defs"
)

// Fingerprint builds the canonical key for p under the named back-end.
// Two parameter records that differ only in dimensions neither froze
// produce the same key (Property 3, spec.md §8); the key always starts
// with the back-end name so that per-back-end caches never collide even
// if they happened to share storage.
func Fingerprint(backend defs.BackEnd, p defs.OperationParams) string {
	var b strings.Builder
	b.WriteString(string(backend))

	freeze := p.Flags.Freeze
	writeDim := func(d defs.Dim, tag string, v int32) {
		if freeze.Has(d) {
			b.WriteByte(';')
			b.WriteString(tag)
			b.WriteByte(':')
			b.WriteString(strconv.FormatInt(int64(v), 10))
		}
	}

	writeDim(defs.DimSrcW, "sw", p.SrcW)
	writeDim(defs.DimSrcH, "sh", p.SrcH)
	writeDim(defs.DimDstW, "dw", p.DstW)
	writeDim(defs.DimSrcX, "sx", p.SrcX)
	writeDim(defs.DimSrcY, "sy", p.SrcY)
	writeDim(defs.DimDstX, "dx", p.DstX)
	writeDim(defs.DimDstY, "dy", p.DstY)
	writeDim(defs.DimWidth, "w", p.Width)
	writeDim(defs.DimHeight, "h", p.Height)

	if p.Flags.Unroll {
		b.WriteString(";unroll")
	}
	if p.Flags.InlineConstants {
		b.WriteString(";inline")
	}
	if p.Flags.AlignOpt {
		b.WriteString(";align")
	}
	if p.Analyzed {
		if p.AnalyzerFlags.Has(defs.FlagUnrollSmall) {
			b.WriteString(";a-unroll-small")
		}
		if p.AnalyzerFlags.Has(defs.FlagWordAligned) {
			b.WriteString(";a-word-aligned")
		}
		if p.AnalyzerFlags.Has(defs.FlagSIMDCandidate) {
			b.WriteString(";a-simd-candidate")
		}
	}

	return b.String()
}
