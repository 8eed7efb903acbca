// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/kortschak/glucose/cmd/internal/collate"
	"github.com/kortschak/glucose/cmd/internal/publish"
	"github.com/kortschak/glucose/glucose"
	"github.com/kortschak/glucose/racp"
)

// Output formats.
const (
	textFormat = "text"
	jsonFormat = "json"
	dumpFormat = "dump"
)

var dumper = spew.ConfigState{
	Indent:                  "\t",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// writeValue writes v to w in the requested format. The text form is
// produced by text, and json by the value returned by jsonValue.
func writeValue(w io.Writer, format string, v any, text func() string, jsonValue func() any) error {
	switch format {
	case textFormat:
		_, err := fmt.Fprintln(w, text())
		return err
	case jsonFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(jsonValue())
	case dumpFormat:
		dumper.Fdump(w, v)
		return nil
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

func writeRecord(w io.Writer, format, meter string, r collate.Record) error {
	return writeValue(w, format, r,
		func() string { return recordText(r) },
		func() any { return publish.NewMessage(meter, r) },
	)
}

func writeFeatures(w io.Writer, format string, f glucose.Features) error {
	return writeValue(w, format, f,
		func() string { return fmt.Sprintf("features %#04x: %s", uint16(f), f) },
		func() any {
			return struct {
				Value     uint16 `json:"value"`
				Supported string `json:"supported"`
			}{uint16(f), f.String()}
		},
	)
}

func writeResponse(w io.Writer, format string, r racp.Response) error {
	return writeValue(w, format, r,
		r.String,
		func() any {
			v := struct {
				Opcode  string `json:"opcode"`
				Count   *int   `json:"count,omitempty"`
				Request string `json:"request,omitempty"`
				Status  string `json:"status,omitempty"`
			}{Opcode: r.Opcode.String()}
			if r.Opcode == racp.NumberOfRecordsResponse {
				n := int(r.Count)
				v.Count = &n
			} else {
				v.Request = r.Request.String()
				v.Status = r.Status.String()
			}
			return v
		},
	)
}

// recordText returns a single line summary of r.
func recordText(r collate.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d", r.Sequence())
	if m := r.Measurement; m != nil {
		fmt.Fprintf(&b, " %s", m.Time.Format(time.DateTime))
		if m.HasTimeOffset() {
			fmt.Fprintf(&b, " (offset %dm)", m.TimeOffset)
		}
		if m.HasConcentration() {
			fmt.Fprintf(&b, " %g %s (%.1f mmol/L) %s/%s", m.Concentration, m.Unit, m.MillimolesPerLiter(), m.Type, m.Location)
		}
		if m.HasStatus() && m.Status != 0 {
			fmt.Fprintf(&b, " status=%q", m.Status)
		}
	}
	if c := r.Context; c != nil {
		if c.HasCarbohydrate() {
			fmt.Fprintf(&b, " carbohydrate=%s:%gkg", c.Carbohydrate, c.CarbohydrateWeight)
		}
		if c.HasMeal() {
			fmt.Fprintf(&b, " meal=%s", c.Meal)
		}
		if c.HasTesterHealth() {
			fmt.Fprintf(&b, " tester=%q health=%q", c.Tester, c.Health)
		}
		if c.HasExercise() {
			fmt.Fprintf(&b, " exercise=%ds@%d%%", c.ExerciseDuration, c.ExerciseIntensity)
		}
		if c.HasMedication() {
			fmt.Fprintf(&b, " medication=%q:%g%s", c.Medication, c.MedicationValue, c.MedicationUnit)
		}
		if c.HasHbA1c() {
			fmt.Fprintf(&b, " hba1c=%g%%", c.HbA1c)
		}
	}
	return b.String()
}
