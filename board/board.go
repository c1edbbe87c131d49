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

package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	firmatasim "github.com/ZaparooProject/go-firmatasim"
	"github.com/ZaparooProject/go-firmatasim/internal/sevenbit"
)

// readChunk bounds how much Iterate pulls off the line per call.
const readChunk = 256

// Board is a Firmata board seen from the host: its pins, ports and the line
// used to talk to it.
type Board struct {
	sp              firmatasim.Transport
	sim             *firmatasim.SimulatedTransport
	values          Values
	taken           map[Kind]map[int]bool
	Name            string
	firmwareName    string
	Analog          []*Pin
	Digital         []*Pin
	DigitalPorts    []*Port
	Messages        []string
	rx              []byte
	layout          Layout
	ID              int
	firmataMajor    int
	firmataMinor    int
	firmwareMajor   int
	firmwareMinor   int
	hasFirmataVer   bool
	hasFirmwareInfo bool
}

// New builds a board on a fresh simulated line named portName.
func New(portName string, layout Layout, values Values) *Board {
	sim := firmatasim.NewSimulatedTransport(portName, firmatasim.DefaultBaudRate)
	return NewWithTransport(sim, layout, values)
}

// NewWithTransport builds a board on an existing line.
func NewWithTransport(sp firmatasim.Transport, layout Layout, values Values) *Board {
	if values == nil {
		values = Values{}
	}
	b := &Board{
		sp:     sp,
		values: values,
		layout: layout,
		ID:     1,
	}
	if sim, ok := sp.(*firmatasim.SimulatedTransport); ok {
		b.sim = sim
		b.Name = sim.PortName()
	}
	b.setupLayout()
	return b
}

func (b *Board) setupLayout() {
	b.Analog = make([]*Pin, 0, len(b.layout.Analog))
	for _, n := range b.layout.Analog {
		b.Analog = append(b.Analog, &Pin{board: b, number: n, kind: Analog, mode: ModeInput, values: b.values})
	}

	portCount := (len(b.layout.Digital) + pinsPerPort - 1) / pinsPerPort
	b.DigitalPorts = make([]*Port, 0, portCount)
	b.Digital = make([]*Pin, 0, len(b.layout.Digital))
	for i := range portCount {
		port := newPort(b, i)
		b.DigitalPorts = append(b.DigitalPorts, port)
		for _, pin := range port.pins {
			if pin.number < len(b.layout.Digital) {
				b.Digital = append(b.Digital, pin)
			} else {
				pin.mode = ModeUnavailable
			}
		}
	}

	for _, n := range b.layout.PWM {
		if n < len(b.Digital) {
			b.Digital[n].pwm = true
		}
	}
	for _, n := range b.layout.Disabled {
		if n < len(b.Digital) {
			b.Digital[n].mode = ModeUnavailable
		}
	}

	b.taken = map[Kind]map[int]bool{Analog: {}, Digital: {}}
	b.ResetTaken()
}

// Transport returns the line the board talks over.
func (b *Board) Transport() firmatasim.Transport { return b.sp }

// Simulated returns the simulated line, or nil when the board runs over a
// real port.
func (b *Board) Simulated() *firmatasim.SimulatedTransport { return b.sim }

// ResetTaken releases every pin handed out by GetPin.
func (b *Board) ResetTaken() {
	for _, pin := range b.Analog {
		b.taken[Analog][pin.number] = false
	}
	for _, pin := range b.Digital {
		b.taken[Digital][pin.number] = false
	}
}

// Taken reports whether GetPin has handed out the pin.
func (b *Board) Taken(kind Kind, number int) bool {
	return b.taken[kind][number]
}

// UpdateValues replaces the fallback value table on every pin.
func (b *Board) UpdateValues(values Values) {
	if values == nil {
		values = Values{}
	}
	b.values = values
	for _, port := range b.DigitalPorts {
		port.UpdateValues(values)
	}
	for _, pin := range b.Analog {
		pin.values = values
	}
}

// GetPin takes a pin by definition "kind:number:mode", e.g. "d:13:o" or
// "a:0:i". Modes are i(nput), o(utput), p(wm) and s(ervo).
func (b *Board) GetPin(def string) (*Pin, error) {
	parts := strings.Split(def, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPinDefinition, def)
	}

	var kind Kind
	var pins []*Pin
	switch parts[0] {
	case "a":
		kind, pins = Analog, b.Analog
	case "d":
		kind, pins = Digital, b.Digital
	default:
		return nil, fmt.Errorf("%w: %q: unknown pin kind", ErrInvalidPinDefinition, def)
	}

	number, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPinDefinition, def, err)
	}
	if number < 0 || number >= len(pins) {
		return nil, &PinError{Kind: kind, Number: number, Err: ErrNoSuchPin}
	}
	if b.taken[kind][number] {
		return nil, &PinError{Kind: kind, Number: number, Err: ErrPinAlreadyTaken}
	}

	var mode Mode
	switch parts[2] {
	case "i":
		mode = ModeInput
	case "o":
		mode = ModeOutput
	case "p":
		mode = ModePWM
	case "s":
		mode = ModeServo
	default:
		return nil, fmt.Errorf("%w: %q: unknown mode", ErrInvalidPinDefinition, def)
	}

	pin := pins[number]
	if err := pin.SetMode(mode); err != nil {
		return nil, err
	}
	b.taken[kind][number] = true
	return pin, nil
}

// SendSysex writes a sysex message. Payload bytes must be 7-bit clean.
func (b *Board) SendSysex(cmd byte, payload []byte) error {
	frame, err := sevenbit.BuildSysex(cmd, payload)
	if err != nil {
		return fmt.Errorf("sysex 0x%02X: %w", cmd, err)
	}
	return b.send(frame...)
}

// QueryFirmware asks the board for its firmware name and version. The reply
// is picked up by Iterate.
func (b *Board) QueryFirmware() error {
	return b.SendSysex(ReportFirmware, nil)
}

// SetSamplingInterval sets how often the board reports analog readings.
func (b *Board) SetSamplingInterval(ms int) error {
	lsb, msb, err := sevenbit.ToTwoBytes(ms)
	if err != nil {
		return fmt.Errorf("sampling interval: %w", err)
	}
	return b.SendSysex(SamplingInterval, []byte{lsb, msb})
}

// FirmataVersion returns the protocol version from the last REPORT_VERSION.
func (b *Board) FirmataVersion() (major, minor int, ok bool) {
	return b.firmataMajor, b.firmataMinor, b.hasFirmataVer
}

// Firmware returns the name and version from the last REPORT_FIRMWARE.
func (b *Board) Firmware() (name string, major, minor int, ok bool) {
	return b.firmwareName, b.firmwareMajor, b.firmwareMinor, b.hasFirmwareInfo
}

// Iterate reads whatever the line has and handles every complete message.
// A partial message stays buffered until the next call.
func (b *Board) Iterate() error {
	buf := make([]byte, readChunk)
	for {
		n, err := b.sp.Read(buf)
		if err != nil {
			return fmt.Errorf("board %s: read failed: %w", b.Name, err)
		}
		if n == 0 {
			break
		}
		b.rx = append(b.rx, buf[:n]...)
		if n < len(buf) {
			break
		}
	}

	for len(b.rx) > 0 {
		consumed, err := b.handleMessage(b.rx)
		if errors.Is(err, errNeedMore) {
			return nil
		}
		b.rx = b.rx[consumed:]
		if err != nil {
			return err
		}
	}
	return nil
}

// Exit releases all pins and closes the line.
func (b *Board) Exit() error {
	b.ResetTaken()
	if err := b.sp.Close(); err != nil {
		return fmt.Errorf("board %s: close failed: %w", b.Name, err)
	}
	return nil
}

func (b *Board) send(data ...byte) error {
	if _, err := b.sp.Write(data); err != nil {
		return fmt.Errorf("board %s: write failed: %w", b.Name, err)
	}
	return nil
}
