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
	"time"

	"github.com/ZaparooProject/go-firmatasim/internal/syncutil"
	"go.bug.st/serial"
)

// LockedTransport serializes every call to a SimulatedTransport. Use it when a
// reader goroutine and a writer goroutine share one simulated line.
type LockedTransport struct {
	sim *SimulatedTransport
	mu  syncutil.Mutex
}

var _ serial.Port = (*LockedTransport)(nil)

// NewLockedTransport wraps sim.
func NewLockedTransport(sim *SimulatedTransport) *LockedTransport {
	return &LockedTransport{sim: sim}
}

// Do runs fn with exclusive access to the underlying transport, for test setup
// such as registering rules or inspecting the log.
func (l *LockedTransport) Do(fn func(sim *SimulatedTransport)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.sim)
}

func (l *LockedTransport) Write(data []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.Write(data)
}

func (l *LockedTransport) WriteByte(b byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.WriteByte(b)
}

func (l *LockedTransport) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.Read(p)
}

// ReadBytes removes up to count pending bytes.
func (l *LockedTransport) ReadBytes(count int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.ReadBytes(count)
}

// BytesAvailable returns the pending reply length.
func (l *LockedTransport) BytesAvailable() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.BytesAvailable()
}

// ImitateMessage appends to the pending reply.
func (l *LockedTransport) ImitateMessage(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sim.ImitateMessage(data)
}

// DrainWrites consumes up to count written bytes.
func (l *LockedTransport) DrainWrites(count int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.DrainWrites(count)
}

// RegisterTrigger installs a rule.
func (l *LockedTransport) RegisterTrigger(pattern Pattern, responder Responder) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.RegisterTrigger(pattern, responder)
}

// Reset clears the underlying transport.
func (l *LockedTransport) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sim.Reset()
}

func (l *LockedTransport) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.Close()
}

func (l *LockedTransport) SetMode(mode *serial.Mode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.SetMode(mode)
}

func (l *LockedTransport) Drain() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.Drain()
}

func (l *LockedTransport) ResetInputBuffer() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.ResetInputBuffer()
}

func (l *LockedTransport) ResetOutputBuffer() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.ResetOutputBuffer()
}

func (l *LockedTransport) SetDTR(dtr bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.SetDTR(dtr)
}

func (l *LockedTransport) SetRTS(rts bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.SetRTS(rts)
}

func (l *LockedTransport) GetModemStatusBits() (*serial.ModemStatusBits, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.GetModemStatusBits()
}

func (l *LockedTransport) SetReadTimeout(t time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.SetReadTimeout(t)
}

func (l *LockedTransport) Break(d time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.Break(d)
}
