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

package opts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/bitblt/internal/defs"
)

func TestGetDefaultConfigFreezesEveryDimension(t *testing.T) {
	cfg := GetDefaultConfig()
	require.Equal(t, defs.AllDims, cfg.Compiler.Freeze)
	require.True(t, cfg.UseSpecialized)
	require.Equal(t, defs.Textual, cfg.BackEnd)
}

func TestCurrentReflectsSetCurrent(t *testing.T) {
	defer SetCurrent(GetDefaultConfig())

	c := GetDefaultConfig()
	c.Verify = true
	c.BackEnd = defs.Binary
	SetCurrent(c)

	got := Current()
	require.True(t, got.Verify)
	require.Equal(t, defs.Binary, got.BackEnd)
}

func TestCurrentReturnsACopyNotASharedPointer(t *testing.T) {
	defer SetCurrent(GetDefaultConfig())

	SetCurrent(GetDefaultConfig())
	a := Current()
	a.Verify = true

	b := Current()
	require.False(t, b.Verify, "mutating a snapshot must not affect the stored configuration")
}
