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

// Layout describes which pins a board exposes.
type Layout struct {
	Digital  []int
	Analog   []int
	PWM      []int
	Disabled []int
}

// ArduinoLayout is the Uno/Duemilanove pinout. Pins 0 and 1 carry the serial line.
func ArduinoLayout() Layout {
	return Layout{
		Digital:  seq(0, 14),
		Analog:   seq(0, 6),
		PWM:      []int{3, 5, 6, 9, 10, 11},
		Disabled: []int{0, 1},
	}
}

// ArduinoMegaLayout is the Mega 1280/2560 pinout.
func ArduinoMegaLayout() Layout {
	return Layout{
		Digital:  seq(0, 54),
		Analog:   seq(0, 16),
		PWM:      seq(2, 14),
		Disabled: []int{0, 1},
	}
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
