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

import "fmt"

// TriggerRule pairs a pattern with the reply produced when it matches.
type TriggerRule struct {
	Responder Responder
	Pattern   Pattern
}

// Validate checks that the rule can ever fire.
func (r TriggerRule) Validate() error {
	if len(r.Pattern) == 0 {
		return ErrEmptyPattern
	}
	return validateResponder(r.Responder)
}

// RuleTable is an ordered set of trigger rules. Every transport gets its own
// table unless one is handed over explicitly with UseRules or
// NewSimulatedTransportWithRules.
type RuleTable struct {
	rules []TriggerRule
}

// NewRuleTable creates an empty rule table.
func NewRuleTable() *RuleTable {
	return &RuleTable{}
}

// Register appends a rule. Malformed rules are rejected with a *RuleError.
func (t *RuleTable) Register(pattern Pattern, responder Responder) error {
	rule := TriggerRule{
		Pattern:   append(Pattern(nil), pattern...),
		Responder: responder,
	}
	if err := rule.Validate(); err != nil {
		return &RuleError{Op: "register", Index: len(t.rules), Pattern: pattern, Err: err}
	}
	t.rules = append(t.rules, rule)
	return nil
}

// MustRegister is like Register but panics on a malformed rule.
func (t *RuleTable) MustRegister(pattern Pattern, responder Responder) {
	if err := t.Register(pattern, responder); err != nil {
		panic(fmt.Sprintf("firmatasim: %v", err))
	}
}

// Rules returns the registered rules in registration order.
func (t *RuleTable) Rules() []TriggerRule {
	return append([]TriggerRule(nil), t.rules...)
}

// Len returns the number of registered rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Clear removes all rules.
func (t *RuleTable) Clear() {
	t.rules = nil
}
