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
	"time"

	"go.bug.st/serial"
)

// Transport is the byte-level contract a Firmata protocol layer needs from its
// line to the board. serial.Port, SimulatedTransport and LockedTransport all
// satisfy it.
type Transport interface {
	io.ReadWriteCloser

	// SetReadTimeout bounds how long Read may wait for data
	SetReadTimeout(timeout time.Duration) error

	// ResetInputBuffer drops any unread incoming bytes
	ResetInputBuffer() error
}

// TransportType names the kind of line behind a Transport.
type TransportType string

const (
	// TransportSerial is a real serial port opened through go.bug.st/serial.
	TransportSerial TransportType = "serial"
	// TransportSimulated is a SimulatedTransport.
	TransportSimulated TransportType = "simulated"
)

// PortFactory opens a line to a board. Tests swap the default for
// SimulatedFactory so the protocol layer never touches hardware.
type PortFactory func(portName string, mode *serial.Mode) (serial.Port, error)

// DefaultMode returns the 8N1 line settings StandardFirmata expects at baudRate.
func DefaultMode(baudRate int) *serial.Mode {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	return &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial opens a real serial port.
func OpenSerial(portName string, mode *serial.Mode) (serial.Port, error) {
	if mode == nil {
		mode = DefaultMode(DefaultBaudRate)
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, &TransportError{Op: "open", Port: portName, Err: err}
	}
	return port, nil
}

// SimulatedFactory returns a PortFactory that hands out simulated transports
// sharing rules. Every opened transport is passed to onOpen when it is non-nil,
// so a test can script replies before the protocol layer starts talking.
func SimulatedFactory(rules *RuleTable, onOpen func(*SimulatedTransport)) PortFactory {
	return func(portName string, mode *serial.Mode) (serial.Port, error) {
		baud := DefaultBaudRate
		if mode != nil {
			baud = mode.BaudRate
		}
		sim := NewSimulatedTransportWithRules(portName, baud, rules)
		if onOpen != nil {
			onOpen(sim)
		}
		return sim, nil
	}
}

// TypeOf reports which kind of line t is.
func TypeOf(t Transport) TransportType {
	switch t.(type) {
	case *SimulatedTransport, *LockedTransport:
		return TransportSimulated
	default:
		return TransportSerial
	}
}

// ListPorts returns the serial ports present on this machine.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}
