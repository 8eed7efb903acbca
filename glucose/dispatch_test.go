// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glucose

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/glucose/internal/wire"
	"github.com/kortschak/glucose/racp"
)

type recorder struct {
	features     []Features
	measurements []Measurement
	contexts     []MeasurementContext
	responses    []racp.Response
	errors       []Role
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnFeatures:    func(f Features) { r.features = append(r.features, f) },
		OnMeasurement: func(m Measurement) { r.measurements = append(r.measurements, m) },
		OnContext:     func(c MeasurementContext) { r.contexts = append(r.contexts, c) },
		OnResponse:    func(resp racp.Response) { r.responses = append(r.responses, resp) },
		OnError:       func(role Role, _ []byte, _ error) { r.errors = append(r.errors, role) },
	}
}

func TestDispatcher(t *testing.T) {
	var (
		rec recorder
		buf bytes.Buffer
	)
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	d := NewDispatcher(rec.handlers(), log)

	for _, v := range []struct {
		role    Role
		in      string
		wantErr bool
	}{
		{role: RoleFeature, in: "0104"},
		{role: RoleMeasurement, in: "0B2200E007091507000000005AB0110002"},
		{role: RoleMeasurement, in: "000100E007091507000000005AB011"},
		{role: RoleContext, in: "402200" + "41F0"},
		{role: RoleControlPoint, in: "05000500"},
		{role: RoleControlPoint, in: "06000106"},
		{role: RoleControlPoint, in: "060001FF", wantErr: true},
		{role: RoleMeasurement, in: "0B2200E0070915", wantErr: true},
		{role: RoleContext, in: "102200060000", wantErr: true},
		{role: RoleUnknown, in: "00", wantErr: true},
	} {
		data, err := wire.FromHex(v.in)
		require.NoError(t, err)
		err = d.Receive(v.role, data)
		if v.wantErr {
			require.Error(t, err, "%s %s", v.role, v.in)
		} else {
			require.NoError(t, err, "%s %s", v.role, v.in)
		}
	}

	require.Equal(t, []Features{Features(FeatureLowBattery | FeatureMultipleBond)}, rec.features)
	require.Len(t, rec.measurements, 1)
	require.Equal(t, uint16(34), rec.measurements[0].Sequence)
	require.Len(t, rec.contexts, 1)
	require.Equal(t, uint16(34), rec.contexts[0].Sequence)
	require.Equal(t, []racp.Response{
		{Opcode: racp.NumberOfRecordsResponse, Count: 5},
		{Opcode: racp.ResponseCode, Request: racp.ReportStoredRecords, Status: racp.NoRecordsFound},
	}, rec.responses)
	require.Equal(t, []Role{RoleControlPoint, RoleMeasurement, RoleContext, RoleUnknown}, rec.errors)
	require.Contains(t, buf.String(), "drop measurement with empty flags")
	require.Contains(t, buf.String(), "decode failed")
}

func TestDispatcherNilLogger(t *testing.T) {
	var n int
	d := NewDispatcher(Handlers{OnMeasurement: func(Measurement) { n++ }}, nil)
	data, err := wire.FromHex("030100E007091507000000005AB011")
	require.NoError(t, err)
	require.NoError(t, d.Receive(RoleMeasurement, data))
	require.Equal(t, 1, n)

	// Handlers without a function for a role ignore the record.
	require.NoError(t, d.Receive(RoleFeature, []byte{0, 0}))
}
