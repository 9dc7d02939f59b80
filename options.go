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

package bitblt

import (
	"fmt"

	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/opts"
)

// Option is the property setter function for the process-wide
// configuration (spec.md §3's "Global configuration").
type Option func(*opts.Config)

// Configure applies each Option to the active configuration, replacing
// it atomically. Reads during an in-flight call always see either the
// pre- or post-Configure snapshot, never a torn mix (spec.md §5).
func Configure(options ...Option) {
	c := opts.Current()
	for _, o := range options {
		o(&c)
	}
	opts.SetCurrent(c)
}

// WithVerify toggles oracle-shadow verification of every call (spec.md
// §3 "verify", §4.8 step 5/7).
func WithVerify(v bool) Option {
	return func(c *opts.Config) { c.Verify = v }
}

// WithUseSpecialized toggles whether calls use the specialization
// pipeline at all; false routes every call straight to the reference
// oracle (spec.md §4.8 step 1).
func WithUseSpecialized(v bool) Option {
	return func(c *opts.Config) { c.UseSpecialized = v }
}

// WithAnalyze toggles whether the operation analyzer (C7) runs at all
// (spec.md §4.8 step 3).
func WithAnalyze(v bool) Option {
	return func(c *opts.Config) { c.Analyze = v }
}

// WithAutospecialize toggles whether the analyzer's proposed flags are
// folded into the compile parameters (and therefore the fingerprint)
// when Analyze is also on (spec.md §4.7, §4.8 step 3).
func WithAutospecialize(v bool) Option {
	return func(c *opts.Config) { c.Autospecialize = v }
}

// WithBackEnd selects which of "textual", "binary", "aligned-binary" new
// specializations compile against. Panics on an unrecognized name, the
// same eager-validation discipline the teacher's WithMaxInlineDepth uses
// for a malformed depth.
func WithBackEnd(name defs.BackEnd) Option {
	switch name {
	case defs.Textual, defs.Binary, defs.AlignedBinary:
		return func(c *opts.Config) { c.BackEnd = name }
	default:
		panic(fmt.Sprintf("bitblt: invalid back-end: %q", name))
	}
}

// WithLogPerf toggles the one-line-per-call Info log naming the back-end
// and fingerprint used (SPEC_FULL.md §10.3).
func WithLogPerf(v bool) Option {
	return func(c *opts.Config) { c.LogPerf = v }
}

// WithUnroll toggles full unrolling, in the textual back-end, of small
// operations whose width and height are frozen (spec.md §4.4, §4.7
// "unroll-small").
func WithUnroll(v bool) Option {
	return func(c *opts.Config) { c.Compiler.Unroll = v }
}

// WithInlineConstants toggles substituting frozen dimensions with their
// literal values at every use site in generated source (spec.md §4.4).
func WithInlineConstants(v bool) Option {
	return func(c *opts.Config) { c.Compiler.InlineConstants = v }
}

// WithAlignOpt sets the align_opt compiler flag, which is recorded in the
// specialization fingerprint. It does not select the whole-word-copy fast
// path (spec.md §4.3's "Alignment-fast variant"): that path is emitted
// only by the "aligned-binary" back-end, chosen with WithBackEnd.
func WithAlignOpt(v bool) Option {
	return func(c *opts.Config) { c.Compiler.AlignOpt = v }
}

// WithDebug toggles logging the generated source or bytecode disassembly
// for every compiled specialization, at Debug level (spec.md §4.4's
// "debug" flag, SPEC_FULL.md §10.3).
func WithDebug(v bool) Option {
	return func(c *opts.Config) { c.Compiler.Debug = v }
}

// WithFreeze selects which of the nine operation dimensions are baked
// into the specialization fingerprint (spec.md §3's "Specialization
// key"). Panics if freeze is zero: a fingerprint that freezes nothing
// would collapse every operation shape onto one specialization, which is
// never the caller's intent.
func WithFreeze(freeze defs.Dim) Option {
	if freeze == 0 {
		panic("bitblt: invalid freeze set: must freeze at least one dimension")
	}
	return func(c *opts.Config) { c.Compiler.Freeze = freeze }
}
