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
)

func TestParseBoolOrDefaultFallsBackWhenUnset(t *testing.T) {
	t.Setenv("BITBLT_TEST_UNSET_FLAG", "")
	require.False(t, parseBoolOrDefault("BITBLT_TEST_UNSET_FLAG", false))
	require.True(t, parseBoolOrDefault("BITBLT_TEST_UNSET_FLAG", true))
}

func TestParseBoolOrDefaultParsesSetValue(t *testing.T) {
	t.Setenv("BITBLT_TEST_FLAG", "1")
	require.True(t, parseBoolOrDefault("BITBLT_TEST_FLAG", false))

	t.Setenv("BITBLT_TEST_FLAG", "false")
	require.False(t, parseBoolOrDefault("BITBLT_TEST_FLAG", true))
}

func TestParseBoolOrDefaultPanicsOnInvalidValue(t *testing.T) {
	t.Setenv("BITBLT_TEST_FLAG_BAD", "not-a-bool")
	require.Panics(t, func() {
		parseBoolOrDefault("BITBLT_TEST_FLAG_BAD", false)
	})
}
