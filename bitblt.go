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

// Package bitblt implements a self-specializing BitBLT engine over 1-bpp
// packed bitmaps: for each distinct operation shape it synthesizes,
// caches, and dispatches to a parameter-specialized routine instead of
// running a generic scan loop every call.
package bitblt

import (
	"log/slog"

	"github.com/cloudwego/bitblt/internal/analyzer"
	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/dispatch"
	"github.com/cloudwego/bitblt/internal/opts"
	"github.com/cloudwego/bitblt/internal/rt"
	"github.com/cloudwego/bitblt/internal/xlog"
)

// Bitblt copies a width x height rectangle from src at (srcX, srcY) to
// dst at (dstX, dstY), using the process-wide configuration (set with the
// Option functions below). src and dst are caller-owned; this function
// never reallocates them (spec.md §3).
func Bitblt(src []uint32, srcW, srcH, srcX, srcY int32, dst []uint32, dstW, dstX, dstY, width, height int32) error {
	return dispatch.Default.Bitblt(opts.Current(), rt.Buffer(src), srcW, srcH, srcX, srcY, rt.Buffer(dst), dstW, dstX, dstY, width, height)
}

// ClearCache evicts every cached specialization across every back-end
// (spec.md §3's "clearCache" cache operation).
func ClearCache() {
	dispatch.Default.ClearCache()
}

// Pretouch ahead-of-time compiles the specialization for the given
// back-end and operation shape, so the first real Bitblt call against
// that shape does not pay generation/compilation latency
// (SPEC_FULL.md §12.2).
func Pretouch(backEnd defs.BackEnd, srcW, srcH, srcX, srcY, dstW, dstX, dstY, width, height int32) error {
	cfg := opts.Current()
	params := defs.OperationParams{
		SrcW: srcW, SrcH: srcH, SrcX: srcX, SrcY: srcY,
		DstW: dstW, DstX: dstX, DstY: dstY,
		Width: width, Height: height,
		Flags: cfg.Compiler,
	}
	// Fold in the analyzer's flags exactly as Bitblt does, so the
	// fingerprint compiled here is the one a matching Bitblt call looks up.
	if cfg.Analyze {
		if out := analyzer.Analyze(params); cfg.Autospecialize && out.CanOptimize {
			params.Analyzed = true
			params.AnalyzerFlags = out.Flags
		}
	}
	return dispatch.Default.Pretouch(backEnd, params)
}

// SetLogger installs l as the package's logger. By default bitblt
// produces no log output; pass nil to restore that silent default
// (SPEC_FULL.md §10.3).
func SetLogger(l *slog.Logger) {
	xlog.Set(l)
}
