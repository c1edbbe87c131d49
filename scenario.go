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
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is a named set of trigger rules loaded from YAML:
//
//	name: firmware handshake
//	rules:
//	  - pattern: "F0 79 F7"
//	    response: "F0 79 02 05 F7"
//	  - pattern: "F0 ?? 00"
//	    echo: true
type Scenario struct {
	Name  string         `yaml:"name"`
	Rules []ScenarioRule `yaml:"rules"`
}

// ScenarioRule is one rule entry. Exactly one of Response and Echo must be set.
type ScenarioRule struct {
	Pattern  string `yaml:"pattern"`
	Response string `yaml:"response"`
	Echo     bool   `yaml:"echo"`
}

// LoadScenario decodes a scenario and checks every rule.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if _, err := sc.RuleTable(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadScenarioFile reads a scenario from path.
func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path) //nolint:gosec // caller picks the file
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc, err := LoadScenario(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// RuleTable builds a fresh rule table from the scenario.
func (sc *Scenario) RuleTable() (*RuleTable, error) {
	table := NewRuleTable()
	if err := sc.Install(table); err != nil {
		return nil, err
	}
	return table, nil
}

// Install appends the scenario's rules to table in order.
func (sc *Scenario) Install(table *RuleTable) error {
	for i, rule := range sc.Rules {
		pattern, err := ParsePattern(rule.Pattern)
		if err != nil {
			return &ScenarioError{Rule: i, Field: "pattern", Err: err}
		}

		var responder Responder
		switch {
		case rule.Echo && rule.Response != "":
			return &ScenarioError{Rule: i, Err: fmt.Errorf("%w: response and echo are exclusive", ErrInvalidScenario)}
		case rule.Echo:
			responder = Echo()
		case strings.TrimSpace(rule.Response) == "":
			return &ScenarioError{Rule: i, Field: "response", Err: fmt.Errorf("%w: response or echo required", ErrInvalidScenario)}
		default:
			data, err := ParseHex(rule.Response)
			if err != nil {
				return &ScenarioError{Rule: i, Field: "response", Err: err}
			}
			responder = Fixed(data)
		}

		if err := table.Register(pattern, responder); err != nil {
			return &ScenarioError{Rule: i, Err: err}
		}
	}
	return nil
}

// ParseHex decodes whitespace separated hex bytes such as "F0 79 F7".
// An optional 0x prefix on each byte is accepted.
func ParseHex(s string) ([]byte, error) {
	fields := strings.Fields(s)
	out := make([]byte, 0, len(fields))
	for _, field := range fields {
		decoded, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(field), "0x"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHex, field)
		}
		out = append(out, decoded...)
	}
	return out, nil
}

// FormatHex renders data the way ParseHex reads it.
func FormatHex(data []byte) string {
	return fmt.Sprintf("% X", data)
}
