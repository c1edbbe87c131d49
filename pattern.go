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
	"fmt"
	"strings"
)

// OptionalByte is one position of a trigger pattern. It either holds a concrete
// byte value or is a wildcard that matches any byte.
type OptionalByte struct {
	value    byte
	wildcard bool
}

// Wildcard matches any single byte.
var Wildcard = OptionalByte{wildcard: true}

// Exact returns a pattern position that only matches b.
func Exact(b byte) OptionalByte {
	return OptionalByte{value: b}
}

// IsWildcard reports whether the position matches any byte.
func (o OptionalByte) IsWildcard() bool {
	return o.wildcard
}

// Value returns the concrete byte. It is meaningless for wildcards.
func (o OptionalByte) Value() byte {
	return o.value
}

// Matches reports whether b satisfies this position.
func (o OptionalByte) Matches(b byte) bool {
	return o.wildcard || o.value == b
}

func (o OptionalByte) String() string {
	if o.wildcard {
		return "??"
	}
	return fmt.Sprintf("%02X", o.value)
}

// Pattern is an ordered sequence of pattern positions matched as a contiguous run.
type Pattern []OptionalByte

// PatternOf builds a pattern of concrete bytes.
func PatternOf(data ...byte) Pattern {
	p := make(Pattern, len(data))
	for i, b := range data {
		p[i] = Exact(b)
	}
	return p
}

// ParsePattern parses whitespace separated hex bytes, where "??" (or "*")
// stands for a wildcard, e.g. "F0 ?? 00".
func ParsePattern(s string) (Pattern, error) {
	fields := strings.Fields(s)
	p := make(Pattern, 0, len(fields))
	for _, field := range fields {
		if field == "??" || field == "*" {
			p = append(p, Wildcard)
			continue
		}
		decoded, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(field), "0x"))
		if err != nil || len(decoded) != 1 {
			return nil, fmt.Errorf("%w: bad pattern byte %q", ErrInvalidPattern, field)
		}
		p = append(p, Exact(decoded[0]))
	}
	if len(p) == 0 {
		return nil, ErrEmptyPattern
	}
	return p, nil
}

func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, o := range p {
		parts[i] = o.String()
	}
	return strings.Join(parts, " ")
}

// Find returns the end offset (one past the match) and the concrete matched bytes
// of the earliest occurrence of p in data starting at or after from.
//
// The scan walks left to right. On a mismatch at pattern offset k the scan
// position falls back k-1 bytes, so every candidate start is tried once.
func (p Pattern) Find(data []byte, from int) (end int, matched []byte, ok bool) {
	if len(p) == 0 || from < 0 || from >= len(data) {
		return 0, nil, false
	}

	k := 0
	for v := from; v < len(data); {
		if p[k].Matches(data[v]) {
			k++
			v++
			if k == len(p) {
				matched = make([]byte, len(p))
				copy(matched, data[v-len(p):v])
				return v, matched, true
			}
			continue
		}
		v = v - k + 1
		k = 0
	}
	return 0, nil, false
}
