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

// Package board models the Firmata device side a protocol layer talks to:
// analog pins, digital pins grouped in 8-pin ports, and the board that owns
// them and the line to the microcontroller.
//
// Boards built with New run over a firmatasim.SimulatedTransport, so tests can
// script device replies with trigger rules and assert on every byte the board
// wrote. NewWithTransport accepts any firmatasim.Transport, including a real
// serial port.
package board

// Firmata message types
const (
	DigitalMessage = 0x90 // send data for a digital port
	AnalogMessage  = 0xE0 // send data for an analog pin (or PWM)
	ReportAnalog   = 0xC0 // enable analog input by pin number
	ReportDigital  = 0xD0 // enable digital input by port
	StartSysex     = 0xF0
	SetPinMode     = 0xF4
	EndSysex       = 0xF7
	ReportVersion  = 0xF9
	SystemReset    = 0xFF
)

// Sysex commands
const (
	ServoConfig      = 0x70
	StringData       = 0x71
	ReportFirmware   = 0x79
	SamplingInterval = 0x7A
)

// analogResolution is the full scale of a 10-bit ADC reading.
const analogResolution = 1023.0
