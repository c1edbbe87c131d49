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
	"errors"
	"fmt"
)

// Rule errors. These signal a broken test scenario, never a transport condition.
var (
	ErrEmptyPattern     = errors.New("trigger pattern is empty")
	ErrInvalidPattern   = errors.New("invalid trigger pattern")
	ErrInvalidResponder = errors.New("responder must be Fixed or a non-nil Computed")
)

// Scenario errors
var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrInvalidHex      = errors.New("invalid hex data")
)

// RuleError reports a malformed trigger rule.
type RuleError struct {
	Err     error   // Underlying error
	Op      string  // Operation that rejected the rule
	Pattern Pattern // Offending pattern, may be empty
	Index   int     // Position the rule would have taken in the table
}

func (e *RuleError) Error() string {
	if len(e.Pattern) > 0 {
		return fmt.Sprintf("%s rule %d [%s]: %v", e.Op, e.Index, e.Pattern, e.Err)
	}
	return fmt.Sprintf("%s rule %d: %v", e.Op, e.Index, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// ScenarioError reports a problem in a scenario file entry.
type ScenarioError struct {
	Err   error
	Field string
	Rule  int
}

func (e *ScenarioError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("scenario rule %d, %s: %v", e.Rule, e.Field, e.Err)
	}
	return fmt.Sprintf("scenario rule %d: %v", e.Rule, e.Err)
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}

// TransportError wraps failures of real serial ports opened through OpenSerial.
type TransportError struct {
	Err  error  // Underlying error
	Op   string // Operation that failed
	Port string // Port or device identifier
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
