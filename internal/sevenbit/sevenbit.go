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

// Package sevenbit holds the Firmata data encoding helpers: 14-bit values
// split over two 7-bit bytes and sysex frame handling.
package sevenbit

import (
	"errors"
	"fmt"
)

// Sysex frame markers
const (
	StartSysex = 0xF0
	EndSysex   = 0xF7
)

// MaxValue is the largest value two 7-bit bytes can carry.
const MaxValue = 0x3FFF

var (
	// ErrValueRange is returned for values that do not fit in 14 bits.
	ErrValueRange = errors.New("value does not fit in two 7-bit bytes")
	// ErrIncompleteSysex is returned while a sysex frame is still being received.
	ErrIncompleteSysex = errors.New("incomplete sysex frame")
	// ErrDataByte is returned when a payload byte has its high bit set.
	ErrDataByte = errors.New("sysex payload byte has high bit set")
)

// ToTwoBytes splits v into LSB and MSB 7-bit bytes.
func ToTwoBytes(v int) (lsb, msb byte, err error) {
	if v < 0 || v > MaxValue {
		return 0, 0, fmt.Errorf("%w: %d", ErrValueRange, v)
	}
	return byte(v & 0x7F), byte(v >> 7), nil
}

// FromTwoBytes joins a 7-bit LSB/MSB pair.
func FromTwoBytes(lsb, msb byte) int {
	return int(msb&0x7F)<<7 | int(lsb&0x7F)
}

// TwoByteString decodes the LSB/MSB pairs Firmata uses for strings in sysex
// replies (REPORT_FIRMWARE, STRING_DATA). A trailing odd byte is ignored.
func TwoByteString(data []byte) string {
	out := make([]rune, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		out = append(out, rune(FromTwoBytes(data[i], data[i+1])))
	}
	return string(out)
}

// StringToTwoBytes is the inverse of TwoByteString for ASCII text.
func StringToTwoBytes(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r)&0x7F, byte(r>>7)&0x7F)
	}
	return out
}

// BuildSysex frames cmd and payload as F0 cmd payload... F7.
func BuildSysex(cmd byte, payload []byte) ([]byte, error) {
	for _, b := range payload {
		if b&0x80 != 0 {
			return nil, fmt.Errorf("%w: 0x%02X", ErrDataByte, b)
		}
	}
	frame := make([]byte, 0, len(payload)+3)
	frame = append(frame, StartSysex, cmd)
	frame = append(frame, payload...)
	frame = append(frame, EndSysex)
	return frame, nil
}

// ExtractSysex looks for a complete sysex frame in buf. It returns the command,
// the payload and how many bytes of buf the frame (and any junk before it)
// used. When no complete frame is present it returns ErrIncompleteSysex and
// consumed covers only the junk ahead of a partial frame.
func ExtractSysex(buf []byte) (cmd byte, payload []byte, consumed int, err error) {
	start := -1
	for i, b := range buf {
		if b == StartSysex {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, nil, len(buf), ErrIncompleteSysex
	}

	for i := start + 1; i < len(buf); i++ {
		if buf[i] != EndSysex {
			continue
		}
		if i == start+1 {
			// F0 F7 carries no command; drop it
			return 0, nil, i + 1, fmt.Errorf("%w: empty frame", ErrIncompleteSysex)
		}
		payload = append([]byte(nil), buf[start+2:i]...)
		return buf[start+1], payload, i + 1, nil
	}
	return 0, nil, start, ErrIncompleteSysex
}
