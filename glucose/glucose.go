// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glucose implements handling of the standard 1808 Bluetooth
// Glucose Service characteristics.
//
// The decoders are pure and may be used concurrently on independent
// buffers. A Listener connects them to a tinygo bluetooth device.
//
// [Glucose Service]: https://www.bluetooth.com/specifications/specs/glucose-service-1-0/
// [Glucose Profile]: https://www.bluetooth.com/specifications/specs/glucose-profile-1-0/
package glucose

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tinygo.org/x/bluetooth"

	"github.com/kortschak/glucose/racp"
)

// Service and characteristic identifiers.
const (
	ServiceID            = "1808"
	MeasurementID        = "2a18"
	MeasurementContextID = "2a34"
	FeatureID            = "2a51"
	ControlPointID       = racp.CharacteristicID
)

var (
	glucoseService     = must(bluetooth.ParseUUID(ServiceID))
	glucoseMeasurement = must(bluetooth.ParseUUID(MeasurementID))
	glucoseContext     = must(bluetooth.ParseUUID(MeasurementContextID))
	glucoseFeature     = must(bluetooth.ParseUUID(FeatureID))
	glucoseRACP        = must(bluetooth.ParseUUID(ControlPointID))
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Role is the role of a Glucose Service characteristic.
type Role uint8

//go:generate go tool golang.org/x/tools/cmd/stringer -type Role -trimprefix Role
const (
	RoleUnknown Role = iota
	RoleFeature
	RoleMeasurement
	RoleContext
	RoleControlPoint
)

// RoleOf returns the role of the characteristic with the given UUID.
func RoleOf(uuid bluetooth.UUID) Role {
	switch uuid {
	case glucoseFeature:
		return RoleFeature
	case glucoseMeasurement:
		return RoleMeasurement
	case glucoseContext:
		return RoleContext
	case glucoseRACP:
		return RoleControlPoint
	default:
		return RoleUnknown
	}
}

// ErrTruncated is wrapped by TruncatedError.
var ErrTruncated = io.ErrUnexpectedEOF

// TruncatedError is returned when a record's flags claim a field is
// present but the buffer ends before it.
type TruncatedError struct {
	Record string
	Field  string
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("glucose: truncated %s: %s at offset %d needs %d bytes, have %d", e.Record, e.Field, e.Offset, e.Need, e.Have)
}

func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// ErrRange is wrapped by RangeError.
var ErrRange = errors.New("value out of range")

// RangeError is returned when an enumerated field holds a value that
// the protocol does not allow.
type RangeError struct {
	Field string
	Value uint8
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("glucose: invalid %s: %d", e.Field, e.Value)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// field is an optional record field. Its size bytes are present in the
// record when any of the bits in mask are set in the record's flags.
type field[T any] struct {
	name   string
	mask   uint8
	size   int
	decode func(dst *T, b []byte) error
}

// walk decodes the optional fields of a record into dst in the order
// they are given. The offset of each field is the sum of the sizes of
// the present fields preceding it; absent fields take no space.
// It returns the offset following the last present field.
func walk[T any](record string, dst *T, flags uint8, data []byte, off int, fields []field[T]) (int, error) {
	for _, f := range fields {
		if flags&f.mask == 0 {
			continue
		}
		if len(data)-off < f.size {
			return off, &TruncatedError{Record: record, Field: f.name, Offset: off, Need: f.size, Have: max(len(data)-off, 0)}
		}
		err := f.decode(dst, data[off:off+f.size])
		if err != nil {
			return off, err
		}
		off += f.size
	}
	return off, nil
}

// flagString returns the names of the set bits of v joined with '|'.
func flagString(v uint, names []string) string {
	var s strings.Builder
	for i, n := range names {
		if v&(1<<i) == 0 {
			continue
		}
		if s.Len() != 0 {
			s.WriteByte('|')
		}
		s.WriteString(n)
	}
	if s.Len() == 0 {
		return "none"
	}
	return s.String()
}
