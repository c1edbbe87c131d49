// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package firmatasim

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closeSessionLogOnCleanup(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = CloseSessionLog() })
}

func TestInitSessionLog_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	closeSessionLogOnCleanup(t)

	path, err := InitSessionLog(dir)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, path, SessionLogPath())
	assert.Equal(t, dir, filepath.Dir(path))

	matched, err := regexp.MatchString(`^firmatasim_\d{8}_\d{6}\.log$`, filepath.Base(path))
	require.NoError(t, err)
	assert.True(t, matched, "unexpected log name %s", path)
}

func TestInitSessionLog_TrailingSeparator(t *testing.T) {
	dir := t.TempDir()
	closeSessionLogOnCleanup(t)

	path, err := InitSessionLog(dir + string(os.PathSeparator))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.NotContains(t, path, string(os.PathSeparator)+string(os.PathSeparator))
}

func TestSessionLog_HeaderBodyFooter(t *testing.T) {
	dir := t.TempDir()
	closeSessionLogOnCleanup(t)

	path, err := InitSessionLog(dir)
	require.NoError(t, err)

	Debugf("scripted reply queued")
	require.NoError(t, CloseSessionLog())
	assert.Empty(t, SessionLogPath())

	content, err := os.ReadFile(path) //nolint:gosec // path from InitSessionLog
	require.NoError(t, err)

	text := string(content)
	assert.True(t, strings.HasPrefix(text, "# firmatasim session log\n"))
	assert.Contains(t, text, "# platform ")
	assert.Contains(t, text, "DEBUG: scripted reply queued")
	assert.Regexp(t, `# [\d:.]+ session ended after \S+\n$`, text)
}

func TestInitSessionLog_ReplacesOpenSession(t *testing.T) {
	closeSessionLogOnCleanup(t)

	first, err := InitSessionLog(t.TempDir())
	require.NoError(t, err)
	second, err := InitSessionLog(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, second, SessionLogPath())

	content, err := os.ReadFile(first) //nolint:gosec // path from InitSessionLog
	require.NoError(t, err)
	assert.Contains(t, string(content), "session ended after")
}

func TestCloseSessionLog_NotOpen(t *testing.T) {
	closeSessionLogOnCleanup(t)
	require.NoError(t, CloseSessionLog())

	require.NoError(t, CloseSessionLog())
}

func TestInitSessionLog_BadDirectory(t *testing.T) {
	closeSessionLogOnCleanup(t)

	_, err := InitSessionLog(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create session log")
	assert.Empty(t, SessionLogPath())
}
