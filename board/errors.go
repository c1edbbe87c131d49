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
	"fmt"
)

var (
	ErrPinUnavailable       = errors.New("pin cannot be used through Firmata")
	ErrPinNotOutput         = errors.New("pin is not an output")
	ErrPinNotInput          = errors.New("pin is not an input")
	ErrAnalogWrite          = errors.New("analog pins cannot be written")
	ErrNotPWMCapable        = errors.New("pin does not have PWM capabilities")
	ErrPinAlreadyTaken      = errors.New("pin is already taken")
	ErrInvalidPinDefinition = errors.New("invalid pin definition")
	ErrNoSuchPin            = errors.New("no such pin")
)

// PinError ties a device-model error to the pin it came from.
type PinError struct {
	Err    error
	Kind   Kind
	Number int
}

func (e *PinError) Error() string {
	return fmt.Sprintf("%s pin %d: %v", e.Kind, e.Number, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}
