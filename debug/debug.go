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

// Package debug exposes operational introspection into the
// specialization cache (SPEC_FULL.md §12.1), mirroring the teacher's
// debug/debug.go Stats type.
package debug

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/dispatch"
)

// A Stats records cache hit/miss/size counters for one back-end.
type Stats struct {
	CacheHit  uint64
	CacheMiss uint64
	TypeCount int
}

// A AllStats records Stats for every back-end variant.
type AllStats struct {
	Textual       Stats
	Binary        Stats
	AlignedBinary Stats
}

func statsFor(name defs.BackEnd) Stats {
	hit, miss := dispatch.Default.Stats(name)
	return Stats{
		CacheHit:  hit,
		CacheMiss: miss,
		TypeCount: len(dispatch.Default.Keys(name)),
	}
}

// GetStats returns cache statistics for every back-end.
func GetStats() AllStats {
	return AllStats{
		Textual:       statsFor(defs.Textual),
		Binary:        statsFor(defs.Binary),
		AlignedBinary: statsFor(defs.AlignedBinary),
	}
}

// Dump renders every currently cached fingerprint, per back-end, as a
// human-readable string via go-spew -- the same library the teacher's
// own tests use for struct diffs, repurposed here for an operator-facing
// cache dump rather than a test failure message.
func Dump() string {
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true}
	fingerprints := map[string][]string{
		string(defs.Textual):       dispatch.Default.Keys(defs.Textual),
		string(defs.Binary):        dispatch.Default.Keys(defs.Binary),
		string(defs.AlignedBinary): dispatch.Default.Keys(defs.AlignedBinary),
	}
	return cfg.Sdump(fingerprints)
}
