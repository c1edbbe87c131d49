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

//nolint:varnamelen // short names are fine in tests
package board

import (
	"testing"

	firmatasim "github.com/ZaparooProject/go-firmatasim"
	"github.com/ZaparooProject/go-firmatasim/internal/sevenbit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, values Values) (*Board, *firmatasim.SimulatedTransport) {
	t.Helper()
	b := New("", ArduinoLayout(), values)
	require.NotNil(t, b.Simulated())
	return b, b.Simulated()
}

func TestNew_ArduinoLayout(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	assert.Equal(t, "sim", b.Name)
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, 57600, sim.Mode().BaudRate)
	assert.Len(t, b.Analog, 6)
	assert.Len(t, b.Digital, 14)
	require.Len(t, b.DigitalPorts, 2)

	assert.Equal(t, ModeUnavailable, b.Digital[0].Mode())
	assert.Equal(t, ModeUnavailable, b.Digital[1].Mode())
	assert.Equal(t, ModeOutput, b.Digital[2].Mode())
	assert.True(t, b.Digital[3].PWMCapable())
	assert.False(t, b.Digital[4].PWMCapable())

	// pins 14 and 15 exist in port 1 but not on the board
	last := b.DigitalPorts[1].Pins()
	assert.Equal(t, 15, last[7].Number())
	assert.Equal(t, ModeUnavailable, last[7].Mode())
	assert.Empty(t, sim.Written(), "building the board sends nothing")
}

func TestNew_MegaLayout(t *testing.T) {
	t.Parallel()

	b := New("mega", ArduinoMegaLayout(), nil)
	assert.Len(t, b.Analog, 16)
	assert.Len(t, b.Digital, 54)
	assert.Len(t, b.DigitalPorts, 7)
	assert.True(t, b.Digital[13].PWMCapable())
}

func TestGetPin_DigitalOutput(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	pin, err := b.GetPin("d:13:o")
	require.NoError(t, err)
	assert.Equal(t, 13, pin.Number())
	assert.Equal(t, Digital, pin.Kind())
	assert.True(t, b.Taken(Digital, 13))
	assert.Equal(t, []byte{SetPinMode, 13, byte(ModeOutput)}, sim.DrainWrites(8))

	_, err = b.GetPin("d:13:o")
	require.ErrorIs(t, err, ErrPinAlreadyTaken)

	b.ResetTaken()
	assert.False(t, b.Taken(Digital, 13))
	_, err = b.GetPin("d:13:o")
	require.NoError(t, err)
}

func TestGetPin_DigitalInputStartsReporting(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	pin, err := b.GetPin("d:10:i")
	require.NoError(t, err)
	assert.True(t, pin.Reporting())
	assert.True(t, b.DigitalPorts[1].Reporting())
	assert.Equal(t, []byte{SetPinMode, 10, byte(ModeInput), ReportDigital | 1, 1}, sim.DrainWrites(16))
}

func TestGetPin_AnalogInput(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	pin, err := b.GetPin("a:2:i")
	require.NoError(t, err)
	assert.True(t, pin.Reporting())
	assert.Equal(t, 'i', pin.Direction())
	assert.Equal(t, []byte{ReportAnalog | 2, 1}, sim.DrainWrites(8))

	require.NoError(t, pin.DisableReporting())
	assert.False(t, pin.Reporting())
	assert.Equal(t, []byte{ReportAnalog | 2, 0}, sim.DrainWrites(8))
}

func TestGetPin_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr error
		def     string
	}{
		{def: "d:13", wantErr: ErrInvalidPinDefinition},
		{def: "x:1:o", wantErr: ErrInvalidPinDefinition},
		{def: "d:one:o", wantErr: ErrInvalidPinDefinition},
		{def: "d:13:z", wantErr: ErrInvalidPinDefinition},
		{def: "d:14:o", wantErr: ErrNoSuchPin},
		{def: "a:-1:i", wantErr: ErrNoSuchPin},
		{def: "d:0:o", wantErr: ErrPinUnavailable},
		{def: "d:2:p", wantErr: ErrNotPWMCapable},
		{def: "a:0:o", wantErr: ErrInvalidPinDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			t.Parallel()
			b, sim := newTestBoard(t, nil)
			_, err := b.GetPin(tt.def)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, sim.Written(), "rejected pins never reach the line")
		})
	}
}

func TestGetPin_PWM(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	pin, err := b.GetPin("d:3:p")
	require.NoError(t, err)
	assert.Equal(t, ModePWM, pin.Mode())
	assert.Equal(t, []byte{SetPinMode, 3, byte(ModePWM)}, sim.Written())
}

func TestPin_ReadFallsBackToValues(t *testing.T) {
	t.Parallel()

	b, _ := newTestBoard(t, Values{
		Digital: {13: 1},
		Analog:  {0: 0.5},
	})

	v, ok := b.Digital[13].Read()
	assert.True(t, ok)
	assert.InDelta(t, 1.0, v, 0)

	v, ok = b.Analog[0].Read()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 0)

	_, ok = b.Digital[12].Read()
	assert.False(t, ok)

	require.NoError(t, b.Digital[13].Write(0))
	v, _ = b.Digital[13].Read()
	assert.InDelta(t, 0.0, v, 0)

	b.UpdateValues(Values{Digital: {12: 1}})
	v, ok = b.Digital[12].Read()
	assert.True(t, ok)
	assert.InDelta(t, 1.0, v, 0)
	_, ok = b.Analog[0].Read()
	assert.False(t, ok)
}

func TestPin_WriteErrors(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)

	err := b.Digital[0].Write(1)
	require.ErrorIs(t, err, ErrPinUnavailable)
	assert.EqualError(t, err, "digital pin 0: pin cannot be used through Firmata")

	input, err := b.GetPin("d:7:i")
	require.NoError(t, err)
	require.ErrorIs(t, input.Write(1), ErrPinNotOutput)

	require.ErrorIs(t, b.Analog[1].Write(1), ErrAnalogWrite)
	assert.NotEmpty(t, sim.Written())
}

func TestPin_EnableReportingNeedsInput(t *testing.T) {
	t.Parallel()

	b, _ := newTestBoard(t, nil)
	require.ErrorIs(t, b.Digital[5].EnableReporting(), ErrPinNotInput)
}

func TestPin_ActiveAndDirection(t *testing.T) {
	t.Parallel()

	b, _ := newTestBoard(t, nil)
	pin := b.Digital[4]
	assert.False(t, pin.Active())
	pin.SetActive(true)
	assert.True(t, pin.Active())
	assert.Equal(t, 'o', pin.Direction())

	require.NoError(t, pin.SetMode(ModeUnavailable))
	assert.Equal(t, ModeUnavailable, pin.Mode())
	require.ErrorIs(t, pin.SetMode(ModeOutput), ErrPinUnavailable)
}

func TestPort_WriteState(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	require.NoError(t, b.Digital[9].Write(1))
	require.NoError(t, b.Digital[13].Write(1))
	require.NoError(t, b.Digital[10].Write(0))

	require.NoError(t, b.DigitalPorts[1].WriteState())
	// pins 9 and 13 are bits 1 and 5 of port 1
	assert.Equal(t, []byte{DigitalMessage | 1, 0x22, 0x00}, sim.Written())
}

func TestIterate_AnalogAndDigitalMessages(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	analog, err := b.GetPin("a:0:i")
	require.NoError(t, err)
	input, err := b.GetPin("d:2:i")
	require.NoError(t, err)

	sim.ImitateMessage([]byte{AnalogMessage | 0, 0x7F, 0x07})
	sim.ImitateMessage([]byte{AnalogMessage | 1, 0x7F, 0x07}) // a1 is not reporting
	sim.ImitateMessage([]byte{DigitalMessage | 0, 0x04, 0x00})
	require.NoError(t, b.Iterate())

	v, ok := analog.Read()
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-9)

	_, ok = b.Analog[1].Read()
	assert.False(t, ok)

	v, ok = input.Read()
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 0)

	sim.ImitateMessage([]byte{AnalogMessage | 0, 0x00, 0x04})
	require.NoError(t, b.Iterate())
	v, _ = analog.Read()
	assert.InDelta(t, 0.5005, v, 1e-9)
}

func TestIterate_KeepsPartialMessage(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	sim.ImitateMessage([]byte{ReportVersion, 0x02})
	require.NoError(t, b.Iterate())
	_, _, ok := b.FirmataVersion()
	assert.False(t, ok)

	sim.ImitateMessage([]byte{0x05})
	require.NoError(t, b.Iterate())
	major, minor, ok := b.FirmataVersion()
	require.True(t, ok)
	assert.Equal(t, 2, major)
	assert.Equal(t, 5, minor)
}

func TestIterate_SkipsNoise(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	sim.ImitateMessage([]byte{0x01, 0x02, 0xC3, StartSysex, EndSysex, ReportVersion, 0x02, 0x03})
	require.NoError(t, b.Iterate())

	major, minor, ok := b.FirmataVersion()
	require.True(t, ok)
	assert.Equal(t, 2, major)
	assert.Equal(t, 3, minor)
}

func TestQueryFirmware_RoundTrip(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	reply, err := sevenbit.BuildSysex(ReportFirmware, append([]byte{0x02, 0x05}, sevenbit.StringToTwoBytes("Std")...))
	require.NoError(t, err)
	sim.MustRegisterTrigger(
		firmatasim.PatternOf(StartSysex, ReportFirmware, EndSysex),
		firmatasim.Fixed(reply),
	)

	require.NoError(t, b.QueryFirmware())
	assert.Equal(t, len(reply), sim.BytesAvailable())
	require.NoError(t, b.Iterate())

	name, major, minor, ok := b.Firmware()
	require.True(t, ok)
	assert.Equal(t, "Std", name)
	assert.Equal(t, 2, major)
	assert.Equal(t, 5, minor)
	assert.Zero(t, sim.BytesAvailable())
}

func TestIterate_StringData(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	msg, err := sevenbit.BuildSysex(StringData, sevenbit.StringToTwoBytes("hello"))
	require.NoError(t, err)
	sim.ImitateMessage(msg)
	require.NoError(t, b.Iterate())
	assert.Equal(t, []string{"hello"}, b.Messages)
}

func TestSendSysex(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	require.NoError(t, b.SetSamplingInterval(19))
	assert.Equal(t, []byte{StartSysex, SamplingInterval, 19, 0, EndSysex}, sim.DrainWrites(8))

	require.ErrorIs(t, b.SendSysex(ServoConfig, []byte{0xFF}), sevenbit.ErrDataByte)
	require.ErrorIs(t, b.SetSamplingInterval(-1), sevenbit.ErrValueRange)
	assert.Empty(t, sim.DrainWrites(8))
}

func TestWildcardRuleEchoesPinMode(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	var seen []byte
	sim.MustRegisterTrigger(
		firmatasim.Pattern{firmatasim.Exact(SetPinMode), firmatasim.Wildcard, firmatasim.Exact(byte(ModeOutput))},
		firmatasim.Computed(func(m []byte) []byte {
			seen = m
			return []byte{ReportVersion, 0x02, 0x05}
		}),
	)

	_, err := b.GetPin("d:12:o")
	require.NoError(t, err)
	assert.Equal(t, []byte{SetPinMode, 12, byte(ModeOutput)}, seen)
	require.NoError(t, b.Iterate())
	_, minor, ok := b.FirmataVersion()
	require.True(t, ok)
	assert.Equal(t, 5, minor)
}

func TestExit(t *testing.T) {
	t.Parallel()

	b, sim := newTestBoard(t, nil)
	_, err := b.GetPin("d:13:o")
	require.NoError(t, err)
	sim.ImitateMessage([]byte{0x01})

	require.NoError(t, b.Exit())
	assert.False(t, b.Taken(Digital, 13))
	assert.Empty(t, sim.Written())
	assert.Zero(t, sim.BytesAvailable())
}

func TestNewWithTransport_LockedLine(t *testing.T) {
	t.Parallel()

	sim := firmatasim.NewSimulatedTransport("shared", 0)
	locked := firmatasim.NewLockedTransport(sim)
	b := NewWithTransport(locked, ArduinoLayout(), nil)
	assert.Nil(t, b.Simulated())
	assert.Equal(t, locked, b.Transport())

	_, err := b.GetPin("d:8:o")
	require.NoError(t, err)
	assert.Equal(t, []byte{SetPinMode, 8, byte(ModeOutput)}, sim.Written())
}

func TestIterator(t *testing.T) {
	t.Parallel()

	b, _ := newTestBoard(t, nil)
	it := NewIterator(b)
	assert.Same(t, b, it.Board())
	assert.False(t, it.Running())
	it.Start()
	assert.True(t, it.Running())
	it.Stop()
	assert.False(t, it.Running())
}
