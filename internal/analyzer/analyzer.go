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

// Package analyzer implements the operation analyzer (spec.md §4.7,
// component C7): a pure function of an operation's parameters that
// proposes optimization flags. It never mutates the cache or decides
// whether to act on its own output -- that is the dispatcher's job,
// gated by the "autospecialize" configuration bit.
package analyzer

import (
	"github.com/klauspost/cpuid/v2"

	"github.com/cloudwego/bitblt/internal/defs"
)

// unrollSmallThreshold is the width*height cutoff at or below which a fully
// unrolled routine is considered small enough to be worthwhile (spec.md
// §3, "Analyzer output").
const unrollSmallThreshold = 64

// Analyze inspects p and returns the flags it proposes. It never modifies
// p itself: the caller decides whether to fold the result back into the
// specialization key (spec.md §4.8 step 3).
func Analyze(p defs.OperationParams) defs.AnalyzerOutput {
	var flags defs.Flag

	if p.Width*p.Height <= unrollSmallThreshold {
		flags |= defs.FlagUnrollSmall
	}

	if p.Width%32 == 0 && p.SrcX%32 == 0 && p.DstX%32 == 0 {
		flags |= defs.FlagWordAligned
	}

	if simdProbe() {
		flags |= defs.FlagSIMDCandidate
	}

	return defs.AnalyzerOutput{
		CanOptimize: flags != 0,
		Flags:       flags,
	}
}

// simdProbe stands in for spec.md §4.7's "SIMD feature-probe": it asks the
// host CPU whether it exposes a wide-enough vector unit that a future
// SIMD-specialized routine could target. Per spec.md §9's Open Questions,
// the source material never actually emits SIMD opcodes for this flag --
// it is advisory only, consumed by callers that want to know the host
// *could* support a SIMD back-end, not a promise that one exists.
func simdProbe() bool {
	return cpuid.CPU.Supports(cpuid.AVX2) || cpuid.CPU.Supports(cpuid.ASIMD)
}
