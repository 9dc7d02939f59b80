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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorTypesFormatAMessage(t *testing.T) {
	cases := []error{
		UnknownBackEndError{Name: "quux"},
		GenerationFailureError{BackEnd: "textual", Reason: "bad syntax"},
		InstantiationFailureError{Reason: "signature mismatch"},
		MemoryCapacityError{Needed: 10, Have: 2},
		VerificationMismatchError{X: 3, Y: 4, Expected: 1, Actual: 0},
		OutOfRangeError{Which: "src", Reason: "rectangle exceeds buffer width"},
		UnsupportedError{Reason: "not word-aligned"},
	}
	for _, err := range cases {
		require.NotEmpty(t, err.Error())
	}
}
