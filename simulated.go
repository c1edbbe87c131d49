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

	"github.com/eapache/queue"
	"go.bug.st/serial"
)

// DefaultBaudRate is the rate StandardFirmata runs at.
const DefaultBaudRate = 57600

const defaultPortName = "sim"

// SimulatedTransport stands in for the serial line to a board. Bytes written to
// it are logged and scanned for registered trigger patterns; a match queues a
// scripted reply for the next read.
//
// SimulatedTransport is not safe for concurrent use. Wrap it in a
// LockedTransport when more than one goroutine drives it.
type SimulatedTransport struct {
	rules       *RuleTable
	pending     *queue.Queue
	mode        serial.Mode
	portName    string
	log         []byte
	readTimeout time.Duration
	cursor      int
	drained     int
	dtr         bool
	rts         bool
}

var _ serial.Port = (*SimulatedTransport)(nil)

// NewSimulatedTransport creates a transport with a fresh rule table.
// portName and baudRate are recorded for callers that expect them.
func NewSimulatedTransport(portName string, baudRate int) *SimulatedTransport {
	return NewSimulatedTransportWithRules(portName, baudRate, NewRuleTable())
}

// NewSimulatedTransportWithRules creates a transport that evaluates a shared rule table.
func NewSimulatedTransportWithRules(portName string, baudRate int, rules *RuleTable) *SimulatedTransport {
	if portName == "" {
		portName = defaultPortName
	}
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	if rules == nil {
		rules = NewRuleTable()
	}
	return &SimulatedTransport{
		portName: portName,
		mode: serial.Mode{
			BaudRate: baudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
		rules:   rules,
		pending: queue.New(),
		dtr:     true,
		rts:     true,
	}
}

// PortName returns the simulated port identifier.
func (s *SimulatedTransport) PortName() string {
	return s.portName
}

// Mode returns the nominal line settings.
func (s *SimulatedTransport) Mode() serial.Mode {
	return s.mode
}

// Rules returns the rule table evaluated on every write.
func (s *SimulatedTransport) Rules() *RuleTable {
	return s.rules
}

// UseRules swaps in a rule table, typically one shared by a test fixture.
func (s *SimulatedTransport) UseRules(rules *RuleTable) {
	if rules == nil {
		rules = NewRuleTable()
	}
	s.rules = rules
}

// RegisterTrigger installs a rule in the transport's rule table.
func (s *SimulatedTransport) RegisterTrigger(pattern Pattern, responder Responder) error {
	return s.rules.Register(pattern, responder)
}

// MustRegisterTrigger is like RegisterTrigger but panics on a malformed rule.
func (s *SimulatedTransport) MustRegisterTrigger(pattern Pattern, responder Responder) {
	s.rules.MustRegister(pattern, responder)
}

// Write appends data to the outbound log and runs the matcher. It never fails.
func (s *SimulatedTransport) Write(data []byte) (int, error) {
	s.log = append(s.log, data...)
	Debugf("sim %s: write % X", s.portName, data)
	s.scan()
	return len(data), nil
}

// WriteByte appends a single byte. It never fails.
func (s *SimulatedTransport) WriteByte(b byte) error {
	_, _ = s.Write([]byte{b})
	return nil
}

// scan evaluates every rule from the cursor. The last matching rule decides the
// pending reply and the cursor moves to the furthest match end.
func (s *SimulatedTransport) scan() {
	if s.cursor >= len(s.log) {
		return
	}
	next := s.cursor
	for i, rule := range s.rules.rules {
		end, matched, ok := rule.Pattern.Find(s.log, s.cursor)
		if !ok {
			continue
		}
		Debugf("sim %s: rule %d [%s] matched % X ending at %d", s.portName, i, rule.Pattern, matched, end)
		next = max(next, end)
		s.replacePending(respond(rule.Responder, matched))
	}
	s.cursor = next
}

func (s *SimulatedTransport) replacePending(data []byte) {
	s.pending = queue.New()
	s.appendPending(data)
}

func (s *SimulatedTransport) appendPending(data []byte) {
	for _, b := range data {
		s.pending.Add(b)
	}
}

// ReadBytes removes up to count bytes from the pending reply. It never blocks
// and returns an empty slice when nothing is queued.
func (s *SimulatedTransport) ReadBytes(count int) []byte {
	n := min(max(count, 0), s.pending.Length())
	out := make([]byte, n)
	for i := range out {
		out[i], _ = s.pending.Remove().(byte)
	}
	return out
}

// Next removes one pending byte. It is ReadBytes(1).
func (s *SimulatedTransport) Next() []byte {
	return s.ReadBytes(1)
}

// Read implements io.Reader over the pending reply. An empty queue yields
// 0, nil, the same as a serial port read that timed out.
func (s *SimulatedTransport) Read(p []byte) (int, error) {
	return copy(p, s.ReadBytes(len(p))), nil
}

// BytesAvailable returns the number of pending reply bytes.
func (s *SimulatedTransport) BytesAvailable() int {
	return s.pending.Length()
}

// InWaiting is an alias of BytesAvailable.
func (s *SimulatedTransport) InWaiting() int {
	return s.BytesAvailable()
}

// ImitateMessage appends data to the pending reply without pattern matching.
func (s *SimulatedTransport) ImitateMessage(data []byte) {
	s.appendPending(data)
}

// SetResponse replaces the pending reply, discarding anything unread.
func (s *SimulatedTransport) SetResponse(data []byte) {
	s.replacePending(data)
}

// DrainWrites consumes up to count bytes of what has been written, oldest first.
// Its position is separate from the matcher cursor.
func (s *SimulatedTransport) DrainWrites(count int) []byte {
	n := min(max(count, 0), len(s.log)-s.drained)
	out := append([]byte(nil), s.log[s.drained:s.drained+n]...)
	s.drained += n
	return out
}

// Written returns a copy of the whole outbound log.
func (s *SimulatedTransport) Written() []byte {
	return append([]byte(nil), s.log...)
}

// Cursor returns how much of the outbound log the matcher has consumed.
func (s *SimulatedTransport) Cursor() int {
	return s.cursor
}

// Reset clears the outbound log, the cursor and the pending reply.
// The rule table is kept.
func (s *SimulatedTransport) Reset() {
	s.log = nil
	s.cursor = 0
	s.drained = 0
	s.pending = queue.New()
	Debugf("sim %s: reset", s.portName)
}

// Close is Reset; there is nothing to release.
func (s *SimulatedTransport) Close() error {
	s.Reset()
	return nil
}

// serial.Port plumbing. None of these touch the log or the rules.

// SetMode records new line settings.
func (s *SimulatedTransport) SetMode(mode *serial.Mode) error {
	if mode != nil {
		s.mode = *mode
	}
	return nil
}

// Drain is a no-op; writes complete immediately.
func (*SimulatedTransport) Drain() error {
	return nil
}

// ResetInputBuffer discards the pending reply.
func (s *SimulatedTransport) ResetInputBuffer() error {
	s.pending = queue.New()
	return nil
}

// ResetOutputBuffer is a no-op; nothing is ever left unsent.
func (*SimulatedTransport) ResetOutputBuffer() error {
	return nil
}

// SetDTR records the DTR line state.
func (s *SimulatedTransport) SetDTR(dtr bool) error {
	s.dtr = dtr
	return nil
}

// SetRTS records the RTS line state.
func (s *SimulatedTransport) SetRTS(rts bool) error {
	s.rts = rts
	return nil
}

// GetModemStatusBits reports a peer that mirrors our own output lines.
func (s *SimulatedTransport) GetModemStatusBits() (*serial.ModemStatusBits, error) {
	return &serial.ModemStatusBits{
		CTS: s.rts,
		DSR: s.dtr,
		DCD: s.dtr,
	}, nil
}

// SetReadTimeout records the timeout. Reads never wait.
func (s *SimulatedTransport) SetReadTimeout(t time.Duration) error {
	s.readTimeout = t
	return nil
}

// ReadTimeout returns the last timeout set with SetReadTimeout.
func (s *SimulatedTransport) ReadTimeout() time.Duration {
	return s.readTimeout
}

// Break is a no-op.
func (*SimulatedTransport) Break(time.Duration) error {
	return nil
}
