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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// sessionLog is a debug transcript of one run, e.g. a simreplay invocation.
type sessionLog struct {
	started time.Time
	w       io.Writer
	closer  io.Closer
	path    string
}

// InitSessionLog opens firmatasim_YYYYMMDD_HHMMSS.log in dir (the current
// directory when dir is empty) and routes every debug line to it. A session
// that is already open is closed first. It returns the file path.
func InitSessionLog(dir string) (string, error) {
	now := time.Now()
	path := filepath.Join(dir, "firmatasim_"+now.Format("20060102_150405")+".log")

	file, err := os.Create(path) //nolint:gosec // name is built here
	if err != nil {
		return "", fmt.Errorf("failed to create session log: %w", err)
	}

	if err := CloseSessionLog(); err != nil {
		Debugf("previous session log: %v", err)
	}

	session := &sessionLog{started: now, w: file, closer: file, path: path}
	session.writeHeader()

	debug.mu.Lock()
	debug.session = session
	debug.mu.Unlock()
	return path, nil
}

// CloseSessionLog ends the open session log. It is a no-op when none is open.
func CloseSessionLog() error {
	debug.mu.Lock()
	session := debug.session
	debug.session = nil
	debug.mu.Unlock()

	if session == nil {
		return nil
	}
	return session.close()
}

// SessionLogPath returns the path of the open session log, or "".
func SessionLogPath() string {
	debug.mu.Lock()
	defer debug.mu.Unlock()
	if debug.session == nil {
		return ""
	}
	return debug.session.path
}

func (s *sessionLog) writeHeader() {
	_, _ = fmt.Fprintf(s.w, "# firmatasim session log\n")
	_, _ = fmt.Fprintf(s.w, "# started  %s\n", s.started.Format(time.RFC3339))
	_, _ = fmt.Fprintf(s.w, "# pid      %d\n", os.Getpid())
	_, _ = fmt.Fprintf(s.w, "# platform %s/%s %s\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
	_, _ = fmt.Fprintf(s.w, "# args     %s\n\n", strings.Join(os.Args, " "))
}

func (s *sessionLog) close() error {
	elapsed := time.Since(s.started).Round(time.Millisecond)
	_, _ = fmt.Fprintf(s.w, "\n# %s session ended after %s\n", time.Now().Format(debugStamp), elapsed)

	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("failed to close session log %s: %w", s.path, err)
	}
	return nil
}
