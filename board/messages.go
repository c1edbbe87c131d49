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
	"math"

	firmatasim "github.com/ZaparooProject/go-firmatasim"
	"github.com/ZaparooProject/go-firmatasim/internal/sevenbit"
)

var errNeedMore = errors.New("message incomplete")

// handleMessage decodes the message at the start of buf and returns how many
// bytes it used. errNeedMore means buf ends inside the message.
func (b *Board) handleMessage(buf []byte) (int, error) {
	status := buf[0]
	switch {
	case status < 0x80:
		// data byte without a status byte
		return 1, nil
	case status == StartSysex:
		cmd, payload, consumed, err := sevenbit.ExtractSysex(buf)
		if err != nil {
			if consumed == 0 {
				return 0, errNeedMore
			}
			return consumed, nil
		}
		b.handleSysex(cmd, payload)
		return consumed, nil
	case status == ReportVersion:
		if len(buf) < 3 {
			return 0, errNeedMore
		}
		b.firmataMajor, b.firmataMinor = int(buf[1]), int(buf[2])
		b.hasFirmataVer = true
		return 3, nil
	case status&0xF0 == AnalogMessage:
		if len(buf) < 3 {
			return 0, errNeedMore
		}
		b.handleAnalog(int(status&0x0F), sevenbit.FromTwoBytes(buf[1], buf[2]))
		return 3, nil
	case status&0xF0 == DigitalMessage:
		if len(buf) < 3 {
			return 0, errNeedMore
		}
		port := int(status & 0x0F)
		if port < len(b.DigitalPorts) {
			b.DigitalPorts[port].update(sevenbit.FromTwoBytes(buf[1], buf[2]))
		}
		return 3, nil
	default:
		firmatasim.Debugf("board %s: ignoring status byte 0x%02X", b.Name, status)
		return 1, nil
	}
}

func (b *Board) handleAnalog(pin, raw int) {
	if pin >= len(b.Analog) || !b.Analog[pin].reporting {
		return
	}
	b.Analog[pin].setValue(math.Round(float64(raw)/analogResolution*10000) / 10000)
}

func (b *Board) handleSysex(cmd byte, payload []byte) {
	switch cmd {
	case ReportFirmware:
		if len(payload) < 2 {
			return
		}
		b.firmwareMajor, b.firmwareMinor = int(payload[0]), int(payload[1])
		b.firmwareName = sevenbit.TwoByteString(payload[2:])
		b.hasFirmwareInfo = true
	case StringData:
		b.Messages = append(b.Messages, sevenbit.TwoByteString(payload))
	default:
		firmatasim.Debugf("board %s: unhandled sysex 0x%02X % X", b.Name, cmd, payload)
	}
}
