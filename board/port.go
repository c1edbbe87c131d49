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

import "github.com/ZaparooProject/go-firmatasim/internal/sevenbit"

// pinsPerPort is fixed by the Firmata digital message format.
const pinsPerPort = 8

// Port groups eight digital pins that Firmata reports and writes together.
type Port struct {
	board     *Board
	pins      []*Pin
	number    int
	reporting bool
}

func newPort(b *Board, number int) *Port {
	port := &Port{board: b, number: number}
	for i := range pinsPerPort {
		pin := &Pin{
			board:  b,
			port:   port,
			number: number*pinsPerPort + i,
			kind:   Digital,
			mode:   ModeOutput,
			values: b.values,
		}
		port.pins = append(port.pins, pin)
	}
	return port
}

// Number returns the port number.
func (p *Port) Number() int { return p.number }

// Pins returns the port's pins, lowest number first.
func (p *Port) Pins() []*Pin { return p.pins }

// Reporting reports whether the board asked for updates on this port.
func (p *Port) Reporting() bool { return p.reporting }

// EnableReporting asks the board to send digital messages for this port.
func (p *Port) EnableReporting() error {
	p.reporting = true
	return p.board.send(ReportDigital|byte(p.number), 1)
}

// DisableReporting stops digital messages for this port.
func (p *Port) DisableReporting() error {
	p.reporting = false
	return p.board.send(ReportDigital|byte(p.number), 0)
}

// WriteState sends a digital message carrying the levels of the port's
// output and PWM pins. A pin counts as high when its value is non-zero.
func (p *Port) WriteState() error {
	mask := 0
	for i, pin := range p.pins {
		if pin.mode != ModeOutput && pin.mode != ModePWM {
			continue
		}
		if v, ok := pin.Read(); ok && v != 0 {
			mask |= 1 << i
		}
	}
	lsb, msb, err := sevenbit.ToTwoBytes(mask)
	if err != nil {
		return err
	}
	return p.board.send(DigitalMessage|byte(p.number), lsb, msb)
}

// UpdateValues points every pin at a new fallback value table.
func (p *Port) UpdateValues(values Values) {
	for _, pin := range p.pins {
		pin.values = values
	}
}

// update applies a digital message mask to the port's input pins.
func (p *Port) update(mask int) {
	if !p.reporting {
		return
	}
	for i, pin := range p.pins {
		if pin.mode != ModeInput {
			continue
		}
		if mask&(1<<i) != 0 {
			pin.setValue(1)
		} else {
			pin.setValue(0)
		}
	}
}
