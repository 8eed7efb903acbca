// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glucose

import (
	"encoding/binary"
	"time"

	"github.com/kortschak/glucose/internal/wire"
)

// MeasurementFlags is the flags field of a glucose measurement.
type MeasurementFlags uint8

const (
	TimeOffsetPresent         MeasurementFlags = 1 << 0
	ConcentrationPresent      MeasurementFlags = 1 << 1 // Also type and sample location.
	ConcentrationMolesPerL    MeasurementFlags = 1 << 2
	StatusPresent             MeasurementFlags = 1 << 3
	ContextInformationFollows MeasurementFlags = 1 << 4
)

// ConcentrationUnit is the unit of a glucose concentration.
type ConcentrationUnit uint8

//go:generate go tool golang.org/x/tools/cmd/stringer -type ConcentrationUnit,SampleType,SampleLocation -linecomment
const (
	KilogramsPerLiter ConcentrationUnit = 0 // kg/L
	MolesPerLiter     ConcentrationUnit = 1 // mol/L
)

// SampleType is the type of sample a measurement was made from.
type SampleType uint8

const (
	TypeReserved           SampleType = 0  // Reserved
	CapillaryWholeBlood    SampleType = 1  // Capillary Whole Blood
	CapillaryPlasma        SampleType = 2  // Capillary Plasma
	VenousWholeBlood       SampleType = 3  // Venous Whole Blood
	VenousPlasma           SampleType = 4  // Venous Plasma
	ArterialWholeBlood     SampleType = 5  // Arterial Whole Blood
	ArterialPlasma         SampleType = 6  // Arterial Plasma
	UndeterminedWholeBlood SampleType = 7  // Undetermined Whole Blood
	UndeterminedPlasma     SampleType = 8  // Undetermined Plasma
	InterstitialFluid      SampleType = 9  // Interstitial Fluid
	ControlSolution        SampleType = 10 // Control Solution
)

// SampleLocation is the location a sample was taken from.
type SampleLocation uint8

const (
	LocationReserved        SampleLocation = 0  // Reserved
	Finger                  SampleLocation = 1  // Finger
	AlternateSiteTest       SampleLocation = 2  // Alternate Site Test
	Earlobe                 SampleLocation = 3  // Earlobe
	LocationControlSolution SampleLocation = 4  // Control Solution
	LocationNotAvailable    SampleLocation = 15 // Not Available
)

// sampleLocation returns the location for a raw nibble. Values
// reserved for future use are returned as LocationReserved.
func sampleLocation(v uint8) SampleLocation {
	switch {
	case v <= uint8(LocationControlSolution):
		return SampleLocation(v)
	case v == uint8(LocationNotAvailable):
		return LocationNotAvailable
	default:
		return LocationReserved
	}
}

// Annunciation is the sensor status annunciation of a measurement.
type Annunciation uint16

const (
	StatusBatteryLow             Annunciation = 1 << 0
	StatusSensorMalfunction      Annunciation = 1 << 1
	StatusSampleSizeInsufficient Annunciation = 1 << 2
	StatusStripInsertionError    Annunciation = 1 << 3
	StatusStripTypeIncorrect     Annunciation = 1 << 4
	StatusResultTooHigh          Annunciation = 1 << 5
	StatusResultTooLow           Annunciation = 1 << 6
	StatusTemperatureTooHigh     Annunciation = 1 << 7
	StatusTemperatureTooLow      Annunciation = 1 << 8
	StatusReadInterrupted        Annunciation = 1 << 9
	StatusGeneralDeviceFault     Annunciation = 1 << 10
	StatusTimeFault              Annunciation = 1 << 11

	annunciationMask = 1<<12 - 1
)

var annunciationNames = []string{
	"device battery low",
	"sensor malfunction",
	"sample size insufficient",
	"strip insertion error",
	"strip type incorrect",
	"result higher than device can process",
	"result lower than device can process",
	"temperature too high",
	"temperature too low",
	"read interrupted",
	"general device fault",
	"time fault",
}

// Has returns whether all the bits of s are set in a.
func (a Annunciation) Has(s Annunciation) bool { return a&s == s }

func (a Annunciation) String() string {
	return flagString(uint(a), annunciationNames)
}

// Measurement is a glucose measurement record.
type Measurement struct {
	Flags    MeasurementFlags
	Sequence uint16

	// BaseTime is the time the meter reported and Time is
	// BaseTime adjusted by the time offset. The meter does not
	// report a time zone, so both are in UTC.
	BaseTime time.Time
	Time     time.Time

	TimeOffset int16 // minutes

	Concentration float32
	Unit          ConcentrationUnit
	Type          SampleType
	Location      SampleLocation

	Status Annunciation
}

// HasTimeOffset returns whether the time offset field was present.
func (m Measurement) HasTimeOffset() bool { return m.Flags&TimeOffsetPresent != 0 }

// HasConcentration returns whether the concentration, type and sample
// location fields were present.
func (m Measurement) HasConcentration() bool { return m.Flags&ConcentrationPresent != 0 }

// HasStatus returns whether the sensor status annunciation field was
// present.
func (m Measurement) HasStatus() bool { return m.Flags&StatusPresent != 0 }

// ContextFollows returns whether the meter will send a measurement
// context record with the same sequence number.
func (m Measurement) ContextFollows() bool { return m.Flags&ContextInformationFollows != 0 }

// MillimolesPerLiter returns the concentration in mmol/L.
func (m Measurement) MillimolesPerLiter() float32 {
	if m.Unit == MolesPerLiter {
		return m.Concentration * 1000
	}
	// kg/L to mg/dL, then mg/dL to mmol/L.
	return m.Concentration * 100000 / 18
}

// Packet offsets.
const (
	flagsOffset           = 0
	sequenceOffset        = 1
	baseTimeOffset        = 3
	measurementHeaderSize = 10
)

func (m *Measurement) UnmarshalBinary(data []byte) error {
	// https://www.bluetooth.com/specifications/specs/glucose-service-1-0/
	// 3.1 Glucose Measurement

	// | 0x10 | 0x8 | 0x4  | 0x2  | 0x1 |
	// | ctx  | sts | unit | conc | off |
	if len(data) < measurementHeaderSize {
		return &TruncatedError{Record: "measurement", Field: "header", Need: measurementHeaderSize, Have: len(data)}
	}
	flags := MeasurementFlags(data[flagsOffset])
	base := dateTime(data[baseTimeOffset:])
	v := Measurement{
		Flags:    flags,
		Sequence: binary.LittleEndian.Uint16(data[sequenceOffset:]),
		BaseTime: base,
		Unit:     ConcentrationUnit(wire.Bit(uint(flags), 2)),
	}
	_, err := walk("measurement", &v, uint8(flags), data, measurementHeaderSize, measurementFields)
	if err != nil {
		return err
	}
	v.Time = base.Add(time.Duration(v.TimeOffset) * time.Minute)
	*m = v
	return nil
}

var measurementFields = []field[Measurement]{
	{
		name: "time offset",
		mask: uint8(TimeOffsetPresent),
		size: 2,
		decode: func(m *Measurement, b []byte) error {
			var err error
			m.TimeOffset, err = wire.Int16(b, 0)
			return err
		},
	},
	{
		name: "concentration",
		mask: uint8(ConcentrationPresent),
		size: 3,
		decode: func(m *Measurement, b []byte) error {
			conc, err := wire.ReadSFloat(b, 0)
			if err != nil {
				return err
			}
			typ := wire.LowNibble(b[2])
			if typ > uint8(ControlSolution) {
				return &RangeError{Field: "sample type", Value: typ}
			}
			m.Concentration = conc.Float32()
			m.Type = SampleType(typ)
			m.Location = sampleLocation(wire.HighNibble(b[2]))
			return nil
		},
	},
	{
		name: "sensor status annunciation",
		mask: uint8(StatusPresent),
		size: 2,
		decode: func(m *Measurement, b []byte) error {
			status, err := wire.Uint16(b, 0)
			m.Status = Annunciation(status & annunciationMask)
			return err
		},
	},
}

// dateTime returns the Date Time characteristic value at the start of
// b. The fields are not validated; out of range values are normalized
// by time.Date.
func dateTime(b []byte) time.Time {
	_ = b[6] // bounds check hint to compiler; see golang.org/issue/14808
	return time.Date(
		int(binary.LittleEndian.Uint16(b)),
		time.Month(b[2]),
		int(b[3]),
		int(b[4]),
		int(b[5]),
		int(b[6]),
		0,
		time.UTC,
	)
}
