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

// Package opts holds the global configuration record of spec.md §3, in the
// same spirit as the teacher's internal/opts package: a plain value type
// plus environment-derived defaults, threaded through calls rather than
// read from bare package variables.
package opts

import (
	"sync/atomic"

	"github.com/cloudwego/bitblt/internal/defs"
)

// Config is the "Global configuration" of spec.md §3 / §6.
type Config struct {
	Verify         bool
	UseSpecialized bool
	Analyze        bool
	Autospecialize bool
	BackEnd        defs.BackEnd
	LogPerf        bool
	Compiler       defs.CompilerFlags
}

// GetDefaultConfig returns the baseline configuration: specialization on,
// analysis and autospecialize on, textual back-end, verification per
// DefaultVerify (off unless BITBLT_VERIFY says otherwise), no perf
// logging, freeze every dimension.
func GetDefaultConfig() Config {
	return Config{
		Verify:         DefaultVerify,
		UseSpecialized: true,
		Analyze:        true,
		Autospecialize: true,
		BackEnd:        defs.Textual,
		LogPerf:        false,
		Compiler: defs.CompilerFlags{
			Freeze: defs.AllDims,
		},
	}
}

// current holds the process-wide default Config behind an atomic pointer
// (spec.md §5's requirement that a concurrent reader observe either the
// pre- or post-update snapshot, never a torn mix of old and new fields;
// grounded on gogpu-gg/logger.go's identical atomic.Pointer[slog.Logger]
// pattern) rather than the teacher's bare package vars
// (opts.MaxInlineDepth), because this configuration is expected to be
// mutated at run time far more often than the teacher's build-time-ish
// tuning knobs.
var current atomic.Pointer[Config]

func init() {
	c := GetDefaultConfig()
	current.Store(&c)
}

// Current returns the active process-wide default configuration.
func Current() Config {
	return *current.Load()
}

// SetCurrent installs c as the active process-wide default configuration.
func SetCurrent(c Config) {
	current.Store(&c)
}
