// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glucose

import (
	"encoding/binary"

	"github.com/kortschak/glucose/internal/wire"
)

// ContextFlags is the flags field of a glucose measurement context.
type ContextFlags uint8

const (
	CarbohydratePresent  ContextFlags = 1 << 0 // Carbohydrate ID and weight.
	MealPresent          ContextFlags = 1 << 1
	TesterHealthPresent  ContextFlags = 1 << 2
	ExercisePresent      ContextFlags = 1 << 3 // Duration and intensity.
	MedicationPresent    ContextFlags = 1 << 4 // Medication ID and value.
	MedicationLiters     ContextFlags = 1 << 5
	HbA1cPresent         ContextFlags = 1 << 6
	ExtendedFlagsPresent ContextFlags = 1 << 7
)

// CarbohydrateID is the meal a carbohydrate intake is associated with.
type CarbohydrateID uint8

//go:generate go tool golang.org/x/tools/cmd/stringer -type CarbohydrateID,Meal,Tester,Health,MedicationID,MedicationUnit -linecomment
const (
	CarbohydrateReserved CarbohydrateID = 0 // Reserved
	Breakfast            CarbohydrateID = 1 // Breakfast
	Lunch                CarbohydrateID = 2 // Lunch
	Dinner               CarbohydrateID = 3 // Dinner
	Snack                CarbohydrateID = 4 // Snack
	Drink                CarbohydrateID = 5 // Drink
	Supper               CarbohydrateID = 6 // Supper
	Brunch               CarbohydrateID = 7 // Brunch
)

// Meal is the relationship of a measurement to a meal.
type Meal uint8

const (
	MealReserved Meal = 0 // Reserved
	Preprandial  Meal = 1 // Preprandial
	Postprandial Meal = 2 // Postprandial
	Fasting      Meal = 3 // Fasting
	Casual       Meal = 4 // Casual
	Bedtime      Meal = 5 // Bedtime
)

// Tester is who performed a measurement.
type Tester uint8

const (
	TesterReserved     Tester = 0  // Reserved
	Self               Tester = 1  // Self
	HealthCareProvider Tester = 2  // Health Care Professional
	LabTest            Tester = 3  // Lab Test
	TesterNotAvailable Tester = 15 // Not Available
)

// Health is the health of the subject at the time of a measurement.
type Health uint8

const (
	HealthReserved     Health = 0  // Reserved
	MinorHealthIssues  Health = 1  // Minor Health Issues
	MajorHealthIssues  Health = 2  // Major Health Issues
	DuringMenses       Health = 3  // During Menses
	UnderStress        Health = 4  // Under Stress
	NoHealthIssues     Health = 5  // No Health Issues
	HealthNotAvailable Health = 15 // Not Available
)

// MedicationID is the type of medication taken.
type MedicationID uint8

const (
	MedicationReserved  MedicationID = 0 // Reserved
	RapidActingInsulin  MedicationID = 1 // Rapid Acting Insulin
	ShortActingInsulin  MedicationID = 2 // Short Acting Insulin
	IntermediateInsulin MedicationID = 3 // Intermediate Acting Insulin
	LongActingInsulin   MedicationID = 4 // Long Acting Insulin
	PreMixedInsulin     MedicationID = 5 // Pre-mixed Insulin

	maxMedicationID = PreMixedInsulin
)

// MedicationUnit is the unit of a medication value.
type MedicationUnit uint8

const (
	Kilograms MedicationUnit = 0 // kg
	Liters    MedicationUnit = 1 // L
)

// MeasurementContext is a glucose measurement context record. It
// carries additional information about the measurement with the same
// sequence number.
type MeasurementContext struct {
	Flags    ContextFlags
	Sequence uint16

	Carbohydrate       CarbohydrateID
	CarbohydrateWeight float32 // kg

	Meal Meal

	Tester Tester
	Health Health

	ExerciseDuration  uint16 // seconds; 0xffff is overrun
	ExerciseIntensity uint8  // percent

	Medication      MedicationID
	MedicationValue float32
	MedicationUnit  MedicationUnit

	HbA1c float32 // percent
}

func (c MeasurementContext) HasExtendedFlags() bool { return c.Flags&ExtendedFlagsPresent != 0 }
func (c MeasurementContext) HasCarbohydrate() bool  { return c.Flags&CarbohydratePresent != 0 }
func (c MeasurementContext) HasMeal() bool          { return c.Flags&MealPresent != 0 }
func (c MeasurementContext) HasTesterHealth() bool  { return c.Flags&TesterHealthPresent != 0 }
func (c MeasurementContext) HasExercise() bool      { return c.Flags&ExercisePresent != 0 }
func (c MeasurementContext) HasMedication() bool    { return c.Flags&MedicationPresent != 0 }
func (c MeasurementContext) HasHbA1c() bool         { return c.Flags&HbA1cPresent != 0 }

const contextHeaderSize = 3

func (c *MeasurementContext) UnmarshalBinary(data []byte) error {
	// https://www.bluetooth.com/specifications/specs/glucose-service-1-0/
	// 3.2 Glucose Measurement Context

	// | 0x80 | 0x40  | 0x20 | 0x10 | 0x8 | 0x4   | 0x2  | 0x1  |
	// | ext  | hba1c | L/kg | med  | ex  | t/h   | meal | carb |
	if len(data) < contextHeaderSize {
		return &TruncatedError{Record: "context", Field: "header", Need: contextHeaderSize, Have: len(data)}
	}
	flags := ContextFlags(data[flagsOffset])
	v := MeasurementContext{
		Flags:          flags,
		Sequence:       binary.LittleEndian.Uint16(data[sequenceOffset:]),
		MedicationUnit: MedicationUnit(wire.Bit(uint(flags), 5)),
	}
	_, err := walk("context", &v, uint8(flags), data, contextHeaderSize, contextFields)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

var contextFields = []field[MeasurementContext]{
	{
		// The extended flags field is reserved for future use
		// and has no defined width.
		name: "extended flags",
		mask: uint8(ExtendedFlagsPresent),
		size: 0,
		decode: func(*MeasurementContext, []byte) error {
			return nil
		},
	},
	{
		name: "carbohydrate",
		mask: uint8(CarbohydratePresent),
		size: 3,
		decode: func(c *MeasurementContext, b []byte) error {
			weight, err := wire.ReadSFloat(b, 1)
			if err != nil {
				return err
			}
			c.Carbohydrate = carbohydrateID(b[0])
			c.CarbohydrateWeight = weight.Float32()
			return nil
		},
	},
	{
		name: "meal",
		mask: uint8(MealPresent),
		size: 1,
		decode: func(c *MeasurementContext, b []byte) error {
			c.Meal = meal(b[0])
			return nil
		},
	},
	{
		name: "tester and health",
		mask: uint8(TesterHealthPresent),
		size: 1,
		decode: func(c *MeasurementContext, b []byte) error {
			c.Tester = tester(wire.LowNibble(b[0]))
			c.Health = health(wire.HighNibble(b[0]))
			return nil
		},
	},
	{
		name: "exercise",
		mask: uint8(ExercisePresent),
		size: 3,
		decode: func(c *MeasurementContext, b []byte) error {
			c.ExerciseDuration = binary.LittleEndian.Uint16(b)
			c.ExerciseIntensity = b[2]
			return nil
		},
	},
	{
		name: "medication",
		mask: uint8(MedicationPresent),
		size: 3,
		decode: func(c *MeasurementContext, b []byte) error {
			if b[0] > uint8(maxMedicationID) {
				return &RangeError{Field: "medication id", Value: b[0]}
			}
			value, err := wire.ReadSFloat(b, 1)
			if err != nil {
				return err
			}
			c.Medication = MedicationID(b[0])
			c.MedicationValue = value.Float32()
			return nil
		},
	},
	{
		name: "HbA1c",
		mask: uint8(HbA1cPresent),
		size: 2,
		decode: func(c *MeasurementContext, b []byte) error {
			hba1c, err := wire.ReadSFloat(b, 0)
			c.HbA1c = hba1c.Float32()
			return err
		},
	},
}

func carbohydrateID(v uint8) CarbohydrateID {
	if v > uint8(Brunch) {
		return CarbohydrateReserved
	}
	return CarbohydrateID(v)
}

func meal(v uint8) Meal {
	if v > uint8(Bedtime) {
		return MealReserved
	}
	return Meal(v)
}

// tester maps a raw tester nibble. Values above 3 are reserved except
// 15, which the GATT assigned numbers reserve for "not available".
func tester(v uint8) Tester {
	switch {
	case v <= uint8(LabTest):
		return Tester(v)
	case v == uint8(TesterNotAvailable):
		return TesterNotAvailable
	default:
		return TesterReserved
	}
}

// health maps a raw health nibble. Values above 5 are reserved except
// 15, which means "not available".
func health(v uint8) Health {
	switch {
	case v <= uint8(NoHealthIssues):
		return Health(v)
	case v == uint8(HealthNotAvailable):
		return HealthNotAvailable
	default:
		return HealthReserved
	}
}
