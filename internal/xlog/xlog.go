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

// Package xlog holds the process-wide logger behind an atomic pointer, in
// the same shape as the teacher's gogpu-gg sibling repo's root
// logger.go, factored into an internal leaf package so both the root
// package's SetLogger and internal/dispatch's call-site logging share one
// instance without an import cycle.
//
// Log levels this module uses:
//   - Debug: generated source/bytecode dumps, gated by compiler.debug
//   - Info: the log_perf one-line-per-call record (spec.md §3, §6)
//   - Warn: aligned-binary falling back to binary (spec.md §7 Unsupported)
package xlog

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var ptr atomic.Pointer[slog.Logger]

func init() {
	ptr.Store(newNopLogger())
}

// Set installs l as the process-wide logger. Passing nil restores the
// silent default. Safe for concurrent use.
func Set(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	ptr.Store(l)
}

// Get returns the current logger.
func Get() *slog.Logger {
	return ptr.Load()
}
