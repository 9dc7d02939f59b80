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

package backend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/bitblt/internal/defs"
)

func TestNewConstructsEachKnownBackEnd(t *testing.T) {
	for _, name := range []defs.BackEnd{defs.Textual, defs.Binary, defs.AlignedBinary} {
		b, err := New(name)
		require.NoError(t, err)
		require.Equal(t, name, b.Name())
	}
}

func TestNewRejectsUnknownBackEnd(t *testing.T) {
	_, err := New(defs.BackEnd("quantum"))
	require.Error(t, err)
}
