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

package xlog

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetDefaultsToANonNilSilentLogger(t *testing.T) {
	defer Set(nil)
	Set(nil)
	require.NotNil(t, Get())
	require.False(t, Get().Enabled(nil, slog.LevelError))
}

func TestSetInstallsTheGivenLogger(t *testing.T) {
	defer Set(nil)

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	Set(l)

	Get().Info("hello")
	require.Contains(t, buf.String(), "hello")
}

func TestSetNilRestoresSilentDefault(t *testing.T) {
	defer Set(nil)

	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, nil)))
	Set(nil)

	Get().Info("should not appear")
	require.Empty(t, buf.String())
}
