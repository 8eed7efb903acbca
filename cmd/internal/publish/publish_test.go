// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kortschak/glucose/cmd/internal/collate"
	"github.com/kortschak/glucose/glucose"
)

var messageTests = []struct {
	name string
	rec  collate.Record
	want string
}{
	{
		name: "measurement",
		rec: collate.Record{Measurement: &glucose.Measurement{
			Flags:         glucose.ConcentrationPresent | glucose.StatusPresent,
			Sequence:      34,
			Time:          time.Date(2016, time.September, 21, 7, 0, 0, 0, time.UTC),
			Concentration: 0.0009,
			Type:          glucose.CapillaryWholeBlood,
			Location:      glucose.Finger,
			Status:        glucose.StatusReadInterrupted,
		}},
		want: `{
			"meter": "meter",
			"sequence": 34,
			"time": "2016-09-21T07:00:00Z",
			"concentration": 0.0009,
			"unit": "kg/L",
			"mmol_per_l": 5,
			"sample_type": "Capillary Whole Blood",
			"sample_location": "Finger",
			"status": "read interrupted"
		}`,
	},
	{
		name: "nan_concentration",
		rec: collate.Record{Measurement: &glucose.Measurement{
			Flags:         glucose.ConcentrationPresent | glucose.TimeOffsetPresent,
			Sequence:      2,
			Time:          time.Date(2016, time.September, 21, 7, 0, 0, 0, time.UTC),
			TimeOffset:    -5,
			Concentration: float32(math.NaN()),
			Type:          glucose.VenousPlasma,
			Location:      glucose.LocationNotAvailable,
		}},
		want: `{
			"meter": "meter",
			"sequence": 2,
			"time": "2016-09-21T07:00:00Z",
			"time_offset_minutes": -5,
			"unit": "kg/L",
			"sample_type": "Venous Plasma",
			"sample_location": "Not Available"
		}`,
	},
	{
		name: "context_only",
		rec: collate.Record{Context: &glucose.MeasurementContext{
			Flags:             glucose.MealPresent | glucose.ExercisePresent | glucose.HbA1cPresent,
			Sequence:          9,
			Meal:              glucose.Bedtime,
			ExerciseDuration:  600,
			ExerciseIntensity: 40,
			HbA1c:             6.5,
		}},
		want: `{
			"meter": "meter",
			"sequence": 9,
			"context": {
				"meal": "Bedtime",
				"exercise_seconds": 600,
				"exercise_intensity_percent": 40,
				"hba1c_percent": 6.5
			}
		}`,
	},
}

func TestNewMessage(t *testing.T) {
	for _, test := range messageTests {
		t.Run(test.name, func(t *testing.T) {
			got, err := json.Marshal(NewMessage("meter", test.rec))
			require.NoError(t, err)
			require.JSONEq(t, test.want, string(got))
		})
	}
}

func TestHistoryKey(t *testing.T) {
	require.Equal(t, "glucose:AA:BB:CC:DD:EE:FF:records", HistoryKey("AA:BB:CC:DD:EE:FF"))
}
