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

// Command simreplay plays hex byte scripts against a simulated Firmata line
// driven by a scenario file, or against a real board on a serial port, and
// prints every reply.
//
//	simreplay -scenario handshake.yaml -send "F9, F0 79 F7"
//	simreplay -device /dev/ttyACM0 -send "F0 79 F7"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	firmatasim "github.com/ZaparooProject/go-firmatasim"
	"go.bug.st/serial"
)

type config struct {
	scenarioPath string
	send         string
	devicePath   string
	logDir       string
	baudRate     int
	readTimeout  time.Duration
	debug        bool
	list         bool
	probe        bool
	sessionLog   bool
}

// Package-level flag variables
var (
	flagScenario    string
	flagSend        string
	flagDevicePath  string
	flagLogDir      string
	flagBaudRate    int
	flagReadTimeout time.Duration
	flagDebug       bool
	flagList        bool
	flagProbe       bool
	flagSessionLog  bool
)

func init() {
	flag.StringVar(&flagScenario, "scenario", "", "YAML scenario with trigger rules for the simulated line")
	flag.StringVar(&flagSend, "send", "", "Comma separated hex messages to write, e.g. \"F9, F0 79 F7\"")
	flag.StringVar(&flagDevicePath, "device", "", "Serial port of a real board (simulated line if empty)")
	flag.StringVar(&flagLogDir, "log-dir", "", "Directory for the session log (current directory if empty)")
	flag.IntVar(&flagBaudRate, "baud", firmatasim.DefaultBaudRate, "Baud rate")
	flag.DurationVar(&flagReadTimeout, "timeout", 200*time.Millisecond, "How long to wait for a reply on a real port")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug output")
	flag.BoolVar(&flagList, "list", false, "List serial ports and exit")
	flag.BoolVar(&flagProbe, "probe", false, "Query the Firmata version before sending")
	flag.BoolVar(&flagSessionLog, "log", false, "Write a session log file")
}

func parseConfig() *config {
	cfg := &config{
		scenarioPath: flagScenario,
		send:         flagSend,
		devicePath:   flagDevicePath,
		logDir:       flagLogDir,
		baudRate:     flagBaudRate,
		readTimeout:  flagReadTimeout,
		debug:        flagDebug,
		list:         flagList,
		probe:        flagProbe,
		sessionLog:   flagSessionLog,
	}

	if cfg.debug {
		firmatasim.SetDebugEnabled(true)
	}

	return cfg
}

// parseScript splits the -send value into messages.
func parseScript(send string) ([][]byte, error) {
	var script [][]byte
	for i, part := range strings.Split(send, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		msg, err := firmatasim.ParseHex(part)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i+1, err)
		}
		script = append(script, msg)
	}
	if len(script) == 0 {
		return nil, errors.New("nothing to send")
	}
	return script, nil
}

// portFactory picks the real or simulated line.
func portFactory(cfg *config) (firmatasim.PortFactory, error) {
	if cfg.devicePath != "" {
		if cfg.scenarioPath != "" {
			return nil, errors.New("-scenario only applies to the simulated line")
		}
		return firmatasim.OpenSerial, nil
	}

	rules := firmatasim.NewRuleTable()
	if cfg.scenarioPath != "" {
		sc, err := firmatasim.LoadScenarioFile(cfg.scenarioPath)
		if err != nil {
			return nil, err
		}
		if err := sc.Install(rules); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.scenarioPath, err)
		}
		firmatasim.Debugf("loaded scenario %q with %d rules", sc.Name, rules.Len())
	}
	return firmatasim.SimulatedFactory(rules, nil), nil
}

// readReply collects everything the line returns until a read comes back empty.
func readReply(port serial.Port) ([]byte, error) {
	var reply []byte
	buf := make([]byte, 256)
	for {
		n, err := port.Read(buf)
		if err != nil {
			return reply, fmt.Errorf("read failed: %w", err)
		}
		if n == 0 {
			return reply, nil
		}
		reply = append(reply, buf[:n]...)
	}
}

func replay(ctx context.Context, port serial.Port, script [][]byte, out io.Writer) error {
	for _, msg := range script {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := port.Write(msg); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
		_, _ = fmt.Fprintf(out, "> %s\n", firmatasim.FormatHex(msg))

		reply, err := readReply(port)
		if err != nil {
			return err
		}
		if len(reply) == 0 {
			_, _ = fmt.Fprintln(out, "< (no reply)")
			continue
		}
		_, _ = fmt.Fprintf(out, "< %s\n", firmatasim.FormatHex(reply))
	}
	return nil
}

func run(ctx context.Context, cfg *config, out io.Writer) error {
	if cfg.list {
		ports, err := firmatasim.DetectPorts()
		if err != nil {
			return err
		}
		for _, p := range ports {
			_, _ = fmt.Fprintln(out, p)
		}
		return nil
	}

	open, err := portFactory(cfg)
	if err != nil {
		return err
	}

	if cfg.probe {
		major, minor, err := firmatasim.ProbeFirmata(ctx, open, cfg.devicePath, cfg.readTimeout)
		if err != nil {
			return fmt.Errorf("probe failed: %w", err)
		}
		_, _ = fmt.Fprintf(out, "firmata %d.%d\n", major, minor)
		if cfg.send == "" {
			return nil
		}
	}

	script, err := parseScript(cfg.send)
	if err != nil {
		return err
	}

	portName := cfg.devicePath
	port, err := open(portName, firmatasim.DefaultMode(cfg.baudRate))
	if err != nil {
		return err
	}
	defer func() {
		if err := port.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to close port: %v\n", err)
		}
	}()

	if err := port.SetReadTimeout(cfg.readTimeout); err != nil {
		return fmt.Errorf("failed to set read timeout: %w", err)
	}

	return replay(ctx, port, script, out)
}

func mainWithExitCode() int {
	cfg := parseConfig()

	if cfg.sessionLog {
		path, err := firmatasim.InitSessionLog(cfg.logDir)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintf(os.Stderr, "Session log: %s\n", path)
		defer func() { _ = firmatasim.CloseSessionLog() }()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	flag.Parse()
	os.Exit(mainWithExitCode())
}
