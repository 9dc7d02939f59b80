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
	"github.com/cloudwego/bitblt/internal/errs"
)

// The seven error kinds spec.md §7 names. Each is a type alias onto
// internal/errs so that the back-end and dispatch packages can construct
// and inspect them without importing this root package back (which would
// be an import cycle) while callers of this module see them as ordinary
// exported types of package bitblt.
type (
	UnknownBackEndError       = errs.UnknownBackEndError
	GenerationFailureError    = errs.GenerationFailureError
	InstantiationFailureError = errs.InstantiationFailureError
	MemoryCapacityError       = errs.MemoryCapacityError
	VerificationMismatchError = errs.VerificationMismatchError
	OutOfRangeError           = errs.OutOfRangeError
	UnsupportedError          = errs.UnsupportedError
)
