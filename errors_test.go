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
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "rule error with pattern",
			err:  &RuleError{Op: "register", Index: 2, Pattern: Pattern{Exact(0xF0), Wildcard}, Err: ErrInvalidPattern},
			want: "register rule 2 [F0 ??]: invalid trigger pattern",
		},
		{
			name: "rule error without pattern",
			err:  &RuleError{Op: "register", Index: 0, Err: ErrEmptyPattern},
			want: "register rule 0: trigger pattern is empty",
		},
		{
			name: "scenario error with field",
			err:  &ScenarioError{Rule: 1, Field: "response", Err: ErrInvalidHex},
			want: "scenario rule 1, response: invalid hex data",
		},
		{
			name: "scenario error without field",
			err:  &ScenarioError{Rule: 3, Err: ErrInvalidScenario},
			want: "scenario rule 3: invalid scenario",
		},
		{
			name: "transport error with port",
			err:  &TransportError{Op: "open", Port: "/dev/ttyACM0", Err: io.EOF},
			want: "open /dev/ttyACM0: EOF",
		},
		{
			name: "transport error without port",
			err:  &TransportError{Op: "list", Err: io.EOF},
			want: "list: EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	nested := &ScenarioError{Rule: 0, Err: &RuleError{Op: "register", Err: ErrInvalidResponder}}
	assert.ErrorIs(t, nested, ErrInvalidResponder)

	var ruleErr *RuleError
	assert.True(t, errors.As(nested, &ruleErr))
	assert.Equal(t, "register", ruleErr.Op)

	assert.ErrorIs(t, &TransportError{Op: "open", Err: io.ErrClosedPipe}, io.ErrClosedPipe)
}
