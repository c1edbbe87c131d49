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
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// reportVersion is the Firmata query a board answers with F9 major minor.
const reportVersion = 0xF9

// ErrNoVersionReply is returned by ProbeFirmata when the line stays silent
// or answers with something other than a version report.
var ErrNoVersionReply = errors.New("no firmata version reply")

// PortInfo describes one serial port found on the host.
type PortInfo struct {
	Name         string
	VIDPID       string
	Product      string
	SerialNumber string
	IsUSB        bool
	LikelyBoard  bool
}

func (p PortInfo) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	if p.VIDPID != "" {
		sb.WriteString(" " + p.VIDPID)
	}
	if p.Product != "" {
		sb.WriteString(" " + p.Product)
	}
	if p.LikelyBoard {
		sb.WriteString(" [board]")
	}
	return sb.String()
}

// DetectPorts enumerates serial ports with their USB details and flags the
// ones that look like Firmata capable boards.
func DetectPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, portInfoFromDetails(d))
	}
	return ports, nil
}

func portInfoFromDetails(d *enumerator.PortDetails) PortInfo {
	info := PortInfo{
		Name:         d.Name,
		IsUSB:        d.IsUSB,
		Product:      d.Product,
		SerialNumber: d.SerialNumber,
	}
	if d.IsUSB && d.VID != "" {
		info.VIDPID = strings.ToUpper(d.VID + ":" + d.PID)
	}
	info.LikelyBoard = isLikelyBoard(&info)
	return info
}

// isLikelyBoard checks VID:PID and product strings against common
// Arduino compatible boards and their USB serial bridges.
func isLikelyBoard(port *PortInfo) bool {
	knownVendors := []string{
		"2341", // Arduino
		"2A03", // Arduino.org
		"1B4F", // SparkFun
		"239A", // Adafruit
	}
	knownBridges := []string{
		"0403:6001", // FTDI FT232
		"10C4:EA60", // Silicon Labs CP210x
		"1A86:7523", // QinHeng CH340
	}

	vidpid := strings.ToUpper(port.VIDPID)
	for _, vid := range knownVendors {
		if strings.HasPrefix(vidpid, vid+":") {
			return true
		}
	}
	for _, known := range knownBridges {
		if vidpid == known {
			return true
		}
	}

	lowerProduct := strings.ToLower(port.Product)
	for _, keyword := range []string{"arduino", "firmata", "usbmodem"} {
		if strings.Contains(lowerProduct, keyword) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(port.Name), "usbmodem")
}

// ProbeFirmata opens name through open, sends a version query and waits
// up to timeout for the F9 major minor reply. It makes a single attempt.
func ProbeFirmata(ctx context.Context, open PortFactory, name string, timeout time.Duration) (major, minor byte, err error) {
	port, err := open(name, DefaultMode(DefaultBaudRate))
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = port.Close() }()

	if err := port.SetReadTimeout(timeout); err != nil {
		return 0, 0, fmt.Errorf("failed to set read timeout: %w", err)
	}
	if _, err := port.Write([]byte{reportVersion}); err != nil {
		return 0, 0, &TransportError{Op: "write", Port: name, Err: err}
	}

	reply, err := readVersionReply(ctx, port)
	if err != nil {
		return 0, 0, err
	}
	Debugf("probe %s: firmata %d.%d", name, reply[1], reply[2])
	return reply[1], reply[2], nil
}

func readVersionReply(ctx context.Context, port serial.Port) ([]byte, error) {
	reply := make([]byte, 0, 3)
	buf := make([]byte, 3)
	for len(reply) < 3 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		n, err := port.Read(buf[:3-len(reply)])
		if err != nil {
			return nil, fmt.Errorf("read failed: %w", err)
		}
		if n == 0 {
			return nil, ErrNoVersionReply
		}
		reply = append(reply, buf[:n]...)
		if reply[0] != reportVersion {
			return nil, fmt.Errorf("%w: got % X", ErrNoVersionReply, reply)
		}
	}
	return reply, nil
}
