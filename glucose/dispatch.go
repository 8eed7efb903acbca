// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glucose

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kortschak/glucose/racp"
)

// DataSink receives raw characteristic values tagged with the role of
// the characteristic that delivered them.
type DataSink interface {
	Receive(Role, []byte) error
}

// CommandSink accepts control point commands for writing to a meter.
type CommandSink interface {
	WriteCommand(racp.Command) error
}

// Handler receives decoded Glucose Service records.
type Handler interface {
	Features(Features)
	Measurement(Measurement)
	MeasurementContext(MeasurementContext)
	ControlPoint(racp.Response)

	// DecodeError is called with the raw value when a
	// record could not be decoded.
	DecodeError(Role, []byte, error)
}

// Handlers is a Handler built from functions. Nil functions are
// not called.
type Handlers struct {
	OnFeatures    func(Features)
	OnMeasurement func(Measurement)
	OnContext     func(MeasurementContext)
	OnResponse    func(racp.Response)
	OnError       func(Role, []byte, error)
}

func (h Handlers) Features(f Features) {
	if h.OnFeatures != nil {
		h.OnFeatures(f)
	}
}

func (h Handlers) Measurement(m Measurement) {
	if h.OnMeasurement != nil {
		h.OnMeasurement(m)
	}
}

func (h Handlers) MeasurementContext(c MeasurementContext) {
	if h.OnContext != nil {
		h.OnContext(c)
	}
}

func (h Handlers) ControlPoint(r racp.Response) {
	if h.OnResponse != nil {
		h.OnResponse(r)
	}
}

func (h Handlers) DecodeError(role Role, buf []byte, err error) {
	if h.OnError != nil {
		h.OnError(role, buf, err)
	}
}

// Dispatcher is a DataSink that decodes values with the decoder for
// their role and passes the result to a Handler.
type Dispatcher struct {
	handler Handler
	log     logrus.FieldLogger
}

// NewDispatcher returns a Dispatcher sending records to h. If log is
// nil, nothing is logged.
func NewDispatcher(h Handler, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = discard()
	}
	return &Dispatcher{handler: h, log: log}
}

// Receive decodes buf according to role. Decode failures are passed to
// the handler and returned. Measurement values with a zero flags byte
// are dropped without being decoded.
func (d *Dispatcher) Receive(role Role, buf []byte) error {
	log := d.log.WithField("role", role)
	log.WithField("data", fmt.Sprintf("%#x", buf)).Trace("receive")

	var err error
	switch role {
	case RoleFeature:
		var f Features
		err = f.UnmarshalBinary(buf)
		if err == nil {
			d.handler.Features(f)
		}
	case RoleMeasurement:
		if len(buf) != 0 && buf[flagsOffset] == 0 {
			log.Debug("drop measurement with empty flags")
			return nil
		}
		var m Measurement
		err = m.UnmarshalBinary(buf)
		if err == nil {
			log.WithField("sequence", m.Sequence).Debug("measurement")
			d.handler.Measurement(m)
		}
	case RoleContext:
		var c MeasurementContext
		err = c.UnmarshalBinary(buf)
		if err == nil {
			log.WithField("sequence", c.Sequence).Debug("context")
			d.handler.MeasurementContext(c)
		}
	case RoleControlPoint:
		var r racp.Response
		err = r.UnmarshalBinary(buf)
		if err == nil {
			log.WithField("response", r).Debug("control point")
			d.handler.ControlPoint(r)
		}
	default:
		err = fmt.Errorf("glucose: no decoder for role %s", role)
	}
	if err != nil {
		log.WithError(err).Warn("decode failed")
		d.handler.DecodeError(role, buf, err)
	}
	return err
}

func discard() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
