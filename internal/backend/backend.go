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

// Package backend defines the back-end interface (spec.md §4.5,
// component C5) and the factory that constructs one of the three named
// variants.
package backend

import (
	"github.com/cloudwego/bitblt/internal/backend/binary"
	"github.com/cloudwego/bitblt/internal/backend/textual"
	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/errs"
)

// Back is the back-end interface every variant implements (component
// C5). Generate and Compile are split so the cache (C6) can store the
// compiled Artifact keyed by fingerprint while letting Generate's
// intermediate form (source text, or a Module) be discarded once
// Compile succeeds.
type Back interface {
	Name() defs.BackEnd
	// Generate produces the back-end-specific intermediate representation
	// for p (bytecode Module, or source text), or a GenerationFailureError
	// (aligned-binary returns UnsupportedError for a shape that is not
	// word-aligned).
	Generate(p defs.OperationParams) (interface{}, error)
	// Compile turns a Generate result into a callable Artifact, or an
	// InstantiationFailureError (the textual back-end reports source that
	// fails to evaluate as GenerationFailureError).
	Compile(generated interface{}, p defs.OperationParams) (defs.Artifact, error)
}

// New constructs the named back-end, or UnknownBackEndError if name does
// not match one of the three spec.md §4.5 variants.
func New(name defs.BackEnd) (Back, error) {
	switch name {
	case defs.Textual:
		return textual.New(), nil
	case defs.Binary:
		return binary.NewBackEnd(false), nil
	case defs.AlignedBinary:
		return binary.NewBackEnd(true), nil
	default:
		return nil, errs.UnknownBackEndError{Name: string(name)}
	}
}
