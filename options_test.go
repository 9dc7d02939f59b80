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

	"github.com/cloudwego/bitblt/internal/defs"
	"github.com/cloudwego/bitblt/internal/opts"
)

func TestConfigureAppliesEveryOption(t *testing.T) {
	defer Configure(WithVerify(false), WithBackEnd(defs.Textual), WithUnroll(false), WithInlineConstants(false))

	Configure(
		WithVerify(true),
		WithBackEnd(defs.Binary),
		WithUnroll(true),
		WithInlineConstants(true),
		WithAlignOpt(true),
		WithDebug(true),
		WithLogPerf(true),
		WithAnalyze(false),
		WithAutospecialize(false),
		WithUseSpecialized(false),
	)

	cfg := opts.Current()
	require.True(t, cfg.Verify)
	require.Equal(t, defs.Binary, cfg.BackEnd)
	require.True(t, cfg.Compiler.Unroll)
	require.True(t, cfg.Compiler.InlineConstants)
	require.True(t, cfg.Compiler.AlignOpt)
	require.True(t, cfg.Compiler.Debug)
	require.True(t, cfg.LogPerf)
	require.False(t, cfg.Analyze)
	require.False(t, cfg.Autospecialize)
	require.False(t, cfg.UseSpecialized)
}

func TestWithBackEndPanicsOnUnknownName(t *testing.T) {
	require.Panics(t, func() {
		WithBackEnd(defs.BackEnd("nonexistent"))
	})
}

func TestWithFreezePanicsOnEmptySet(t *testing.T) {
	require.Panics(t, func() {
		WithFreeze(0)
	})
}

func TestWithFreezeAppliesGivenSet(t *testing.T) {
	defer Configure(func(c *opts.Config) { c.Compiler.Freeze = defs.AllDims })

	Configure(WithFreeze(defs.DimWidth | defs.DimHeight))
	require.Equal(t, defs.DimWidth|defs.DimHeight, opts.Current().Compiler.Freeze)
}
