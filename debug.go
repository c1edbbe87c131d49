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
	"strings"
	"time"

	"github.com/ZaparooProject/go-firmatasim/internal/syncutil"
)

const debugStamp = "15:04:05.000"

// debugLog fans debug lines out to the open session log and, when echo is
// on, to the console. Transports on different goroutines share it.
type debugLog struct {
	console io.Writer
	session *sessionLog
	mu      syncutil.Mutex
	echo    bool
}

var debug = &debugLog{
	console: os.Stdout,
	echo:    os.Getenv("FIRMATASIM_DEBUG") != "" || os.Getenv("DEBUG") != "",
}

func (d *debugLog) active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.echo || d.session != nil
}

func (d *debugLog) emit(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session != nil {
		_, _ = fmt.Fprintf(d.session.w, "%s DEBUG: %s\n", time.Now().Format(debugStamp), message)
	}
	if d.echo {
		_, _ = fmt.Fprintf(d.console, "DEBUG: %s\n", message)
	}
}

// Debugf records a debug line in the session log, if one is open, and echoes
// it to stdout when FIRMATASIM_DEBUG or DEBUG is set or SetDebugEnabled(true)
// was called.
func Debugf(format string, args ...any) {
	if !debug.active() {
		return
	}
	debug.emit(fmt.Sprintf(format, args...))
}

// Debugln is Debugf with Println spacing.
func Debugln(args ...any) {
	if !debug.active() {
		return
	}
	debug.emit(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// SetDebugEnabled switches the console echo.
func SetDebugEnabled(enabled bool) {
	debug.mu.Lock()
	debug.echo = enabled
	debug.mu.Unlock()
}

// DebugEnabled reports whether debug lines are echoed to the console.
func DebugEnabled() bool {
	debug.mu.Lock()
	defer debug.mu.Unlock()
	return debug.echo
}
