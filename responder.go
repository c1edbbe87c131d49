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

// Responder produces the reply queued when a trigger rule matches.
// It is either Fixed bytes or a Computed function of the matched bytes.
type Responder interface {
	isResponder()
}

// Fixed is a literal reply.
type Fixed []byte

// Computed builds a reply from the concrete bytes the pattern matched,
// wildcard positions included.
type Computed func(matched []byte) []byte

func (Fixed) isResponder()    {}
func (Computed) isResponder() {}

// Echo returns a Computed responder that replies with the matched bytes.
func Echo() Computed {
	return func(matched []byte) []byte {
		return append([]byte(nil), matched...)
	}
}

// respond resolves the variant. The result never aliases the rule's own storage.
func respond(r Responder, matched []byte) []byte {
	switch resp := r.(type) {
	case Fixed:
		return append([]byte(nil), resp...)
	case Computed:
		return append([]byte(nil), resp(matched)...)
	default:
		// validated at registration
		panic("firmatasim: unknown responder type")
	}
}

func validateResponder(r Responder) error {
	switch resp := r.(type) {
	case Fixed:
		return nil
	case Computed:
		if resp == nil {
			return ErrInvalidResponder
		}
		return nil
	default:
		return ErrInvalidResponder
	}
}
