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

import "fmt"

// Kind tells analog and digital pins apart.
type Kind int

const (
	Digital Kind = iota
	Analog
)

func (k Kind) String() string {
	if k == Analog {
		return "analog"
	}
	return "digital"
}

// Mode is a Firmata pin mode.
type Mode int

const (
	ModeUnavailable Mode = -1
	ModeInput       Mode = 0
	ModeOutput      Mode = 1
	ModeAnalog      Mode = 2
	ModePWM         Mode = 3
	ModeServo       Mode = 4
)

// Values holds fallback readings per pin kind and number, used when a pin has
// no value of its own yet.
type Values map[Kind]map[int]float64

// Pin is one addressable line on the board.
type Pin struct {
	board     *Board
	port      *Port
	values    Values
	number    int
	value     float64
	kind      Kind
	mode      Mode
	hasValue  bool
	pwm       bool
	reporting bool
	active    bool
}

// Number returns the pin number.
func (p *Pin) Number() int { return p.number }

// Kind returns whether the pin is analog or digital.
func (p *Pin) Kind() Kind { return p.kind }

// Mode returns the current mode.
func (p *Pin) Mode() Mode { return p.mode }

// Reporting reports whether the board asked for updates on this pin.
func (p *Pin) Reporting() bool { return p.reporting }

// PWMCapable reports whether the layout lists the pin as PWM.
func (p *Pin) PWMCapable() bool { return p.pwm }

// SetMode changes the pin mode and tells the board about it. Digital inputs
// start reporting right away.
func (p *Pin) SetMode(mode Mode) error {
	if mode == ModeUnavailable {
		p.mode = ModeUnavailable
		return nil
	}
	if p.mode == ModeUnavailable {
		return p.errorf(ErrPinUnavailable)
	}
	if mode == ModePWM && !p.pwm {
		return p.errorf(ErrNotPWMCapable)
	}

	if p.kind == Analog {
		if mode != ModeInput {
			return fmt.Errorf("%w: analog pins are input only", p.errorf(ErrInvalidPinDefinition))
		}
		p.mode = mode
		return p.EnableReporting()
	}

	p.mode = mode
	if err := p.board.send(SetPinMode, byte(p.number), byte(mode)); err != nil {
		return err
	}
	if mode == ModeInput {
		return p.EnableReporting()
	}
	return nil
}

// EnableReporting asks the board to send updates for this pin. Digital pins
// report through their port and must be inputs.
func (p *Pin) EnableReporting() error {
	if p.kind == Analog {
		p.reporting = true
		return p.board.send(ReportAnalog|byte(p.number), 1)
	}
	if p.mode != ModeInput {
		return p.errorf(ErrPinNotInput)
	}
	p.reporting = true
	return p.port.EnableReporting()
}

// DisableReporting stops updates for an analog pin. Digital pins only stop
// when their whole port does.
func (p *Pin) DisableReporting() error {
	p.reporting = false
	if p.kind == Analog {
		return p.board.send(ReportAnalog|byte(p.number), 0)
	}
	return nil
}

// Read returns the pin value. A pin that never got a value falls back to the
// board's Values; ok is false when neither has one.
func (p *Pin) Read() (value float64, ok bool) {
	if p.hasValue {
		return p.value, true
	}
	if byKind, found := p.values[p.kind]; found {
		value, ok = byKind[p.number]
	}
	return value, ok
}

// Write stores a value on an output pin. Nothing is sent to the board.
func (p *Pin) Write(value float64) error {
	switch {
	case p.mode == ModeUnavailable:
		return p.errorf(ErrPinUnavailable)
	case p.kind == Analog:
		return p.errorf(ErrAnalogWrite)
	case p.mode == ModeInput:
		return p.errorf(ErrPinNotOutput)
	}
	p.setValue(value)
	return nil
}

// Direction returns 'i' for analog inputs and 'o' for everything else.
func (p *Pin) Direction() rune {
	if p.kind == Analog && p.mode == ModeInput {
		return 'i'
	}
	return 'o'
}

// SetActive marks the pin as in use by the test scenario.
func (p *Pin) SetActive(active bool) { p.active = active }

// Active returns the flag set by SetActive.
func (p *Pin) Active() bool { return p.active }

func (p *Pin) setValue(v float64) {
	p.value = v
	p.hasValue = true
}

func (p *Pin) errorf(err error) error {
	return &PinError{Kind: p.kind, Number: p.number, Err: err}
}
