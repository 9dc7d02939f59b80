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

// Package errs defines the error kinds spec.md §7 names, factored out of
// the root package so that both it and the back-end packages it depends
// on (internal/backend/binary, internal/backend/textual, internal/dispatch)
// can construct and inspect them without an import cycle. The root
// package re-exports every type here under the same name via a type
// alias, so callers of github.com/cloudwego/bitblt never see this
// package.
package errs

import (
	"fmt"
)

// UnknownBackEndError occurs when the back-end factory (C5) is asked to
// build a back-end whose name it does not recognize.
type UnknownBackEndError struct {
	Name string
}

func (self UnknownBackEndError) Error() string {
	return fmt.Sprintf("bitblt: unknown back-end %q", self.Name)
}

// GenerationFailureError occurs when a back-end produced a malformed
// artifact: a textual parse failure, or a binary module that failed
// validation. The specialization is never cached when this occurs.
type GenerationFailureError struct {
	BackEnd string
	Reason  string
}

func (self GenerationFailureError) Error() string {
	return fmt.Sprintf("bitblt: %s back-end generation failed: %s", self.BackEnd, self.Reason)
}

// InstantiationFailureError occurs when the binary runtime rejects a
// module at instantiate time, e.g. a memory-import mismatch.
type InstantiationFailureError struct {
	Reason string
}

func (self InstantiationFailureError) Error() string {
	return fmt.Sprintf("bitblt: module instantiation failed: %s", self.Reason)
}

// MemoryCapacityError occurs when an artifact is invoked with a source or
// destination buffer that holds fewer words than the operation's geometry
// needs. The binary back-end sizes its linear memory from those buffers,
// so that memory itself never runs short.
type MemoryCapacityError struct {
	Needed, Have int
}

func (self MemoryCapacityError) Error() string {
	return fmt.Sprintf("bitblt: buffer too small: need %d words, have %d", self.Needed, self.Have)
}

// VerificationMismatchError is raised when a specialized call's output
// differs from the oracle's. It names the first differing pixel in
// row-major scan order (spec.md §4.8, §7).
type VerificationMismatchError struct {
	X, Y             int32
	Expected, Actual uint32
}

func (self VerificationMismatchError) Error() string {
	return fmt.Sprintf("bitblt: verification mismatch at (%d, %d): expected %d, got %d", self.X, self.Y, self.Expected, self.Actual)
}

// OutOfRangeError occurs when a coordinate places the copy rectangle
// outside a source or destination buffer. It is always raised before any
// write to the destination.
type OutOfRangeError struct {
	Which  string
	Reason string
}

func (self OutOfRangeError) Error() string {
	return fmt.Sprintf("bitblt: %s rectangle out of range: %s", self.Which, self.Reason)
}

// UnsupportedError occurs when the "aligned-binary" back-end is requested
// but its precondition (word-aligned src/dst x-offsets and width) is not
// met. The dispatcher may fall back to the "binary" back-end and log a
// warning instead of surfacing this to the caller (spec.md §7, §12.4).
type UnsupportedError struct {
	Reason string
}

func (self UnsupportedError) Error() string {
	return fmt.Sprintf("bitblt: unsupported: %s", self.Reason)
}
