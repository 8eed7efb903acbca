// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glucose

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/kortschak/glucose/internal/forkbeard"
	"github.com/kortschak/glucose/racp"
)

// Listener implements Glucose Service notification listening. Values
// received from the meter are passed to a DataSink, and control point
// commands are written with WriteCommand.
type Listener struct {
	dev *bluetooth.Device

	feature, measurement, context, control bluetooth.DeviceCharacteristic
	hasContext                              bool

	// write sends an encoded command to the control point.
	write func([]byte) (int, error)

	sink DataSink
	log  logrus.FieldLogger

	// mu serializes control point procedures; only one
	// may be in progress at a time.
	mu sync.Mutex

	wmu    sync.Mutex
	waiter chan racp.Response
}

// NewListener returns a new Listener for the provided Bluetooth device.
// Notifications from the measurement and measurement context
// characteristics and control point indications are sent to sink.
// If log is nil, nothing is logged.
func NewListener(dev *bluetooth.Device, sink DataSink, log logrus.FieldLogger) (*Listener, error) {
	if log == nil {
		log = discard()
	}
	chars, err := forkbeard.Characteristics(dev, glucoseService, glucoseFeature, glucoseMeasurement, glucoseContext, glucoseRACP)
	if err != nil {
		return nil, fmt.Errorf("failed to get glucose service characteristics: %w", err)
	}
	l := &Listener{dev: dev, sink: sink, log: log}
	for _, c := range []struct {
		id  bluetooth.UUID
		dst *bluetooth.DeviceCharacteristic
	}{
		{id: glucoseFeature, dst: &l.feature},
		{id: glucoseMeasurement, dst: &l.measurement},
		{id: glucoseRACP, dst: &l.control},
	} {
		char, ok := chars[c.id]
		if !ok {
			return nil, fmt.Errorf("glucose characteristic %s %w", c.id, forkbeard.ErrNotFound)
		}
		*c.dst = char
	}
	l.write = l.control.WriteWithoutResponse
	l.context, l.hasContext = chars[glucoseContext]
	if !l.hasContext {
		log.Info("meter does not provide measurement context")
	}

	err = l.measurement.EnableNotifications(l.forward(RoleMeasurement))
	if err != nil {
		return nil, fmt.Errorf("failed to enable measurement notifications: %w", err)
	}
	if l.hasContext {
		err = l.context.EnableNotifications(l.forward(RoleContext))
		if err != nil {
			l.measurement.EnableNotifications(nil)
			return nil, fmt.Errorf("failed to enable context notifications: %w", err)
		}
	}
	err = l.control.EnableNotifications(l.controlPoint)
	if err != nil {
		l.disable()
		return nil, fmt.Errorf("failed to enable control point indications: %w", err)
	}
	return l, nil
}

func (l *Listener) forward(role Role) func([]byte) {
	return func(buf []byte) {
		// Errors are reported to the sink's handler.
		l.sink.Receive(role, buf)
	}
}

func (l *Listener) controlPoint(buf []byte) {
	l.sink.Receive(RoleControlPoint, buf)
	var r racp.Response
	if r.UnmarshalBinary(buf) != nil {
		return
	}
	l.wmu.Lock()
	w := l.waiter
	l.wmu.Unlock()
	if w == nil {
		l.log.WithField("response", r).Warn("unsolicited control point response")
		return
	}
	select {
	case w <- r:
	default:
	}
}

// WriteCommand writes cmd to the record access control point.
func (l *Listener) WriteCommand(cmd racp.Command) error {
	l.log.WithField("command", cmd).Debug("write control point")
	_, err := l.write(cmd.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write control point command %s: %w", cmd, err)
	}
	return nil
}

// ReadFeatures reads the features supported by the meter. The value is
// also sent to the Listener's sink.
func (l *Listener) ReadFeatures() (Features, error) {
	buf, err := forkbeard.ReadCharacteristic(l.feature)
	if err != nil {
		return 0, fmt.Errorf("failed read glucose feature characteristic: %w", err)
	}
	err = l.sink.Receive(RoleFeature, buf)
	if err != nil {
		return 0, err
	}
	var f Features
	err = f.UnmarshalBinary(buf)
	return f, err
}

// RecordCount returns the number of records stored by the meter.
func (l *Listener) RecordCount(ctx context.Context) (int, error) {
	r, err := l.request(ctx, racp.ReportNumber())
	if err != nil {
		return 0, err
	}
	if r.Opcode != racp.NumberOfRecordsResponse {
		err = r.Err()
		if err == nil {
			err = fmt.Errorf("unexpected response to record count request: %s", r)
		}
		return 0, err
	}
	return int(r.Count), nil
}

// Download sends a report stored records command and waits for the
// meter to complete the procedure. Records are sent to the Listener's
// sink as they arrive. If ctx is cancelled before the procedure is
// complete, an abort command is sent to the meter.
func (l *Listener) Download(ctx context.Context, cmd racp.Command) error {
	if cmd.Opcode != racp.ReportStoredRecords {
		return fmt.Errorf("not a report stored records command: %s", cmd)
	}
	r, err := l.request(ctx, cmd)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			l.log.Info("aborting record transfer")
			if err := l.WriteCommand(racp.Abort()); err != nil {
				l.log.WithError(err).Warn("failed to abort record transfer")
			}
		}
		return err
	}
	if r.Opcode != racp.ResponseCode || r.Request != racp.ReportStoredRecords {
		return fmt.Errorf("unexpected response to record request: %s", r)
	}
	return r.Err()
}

func (l *Listener) request(ctx context.Context, cmd racp.Command) (racp.Response, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	resp := make(chan racp.Response, 1)
	l.setWaiter(resp)
	defer l.setWaiter(nil)

	err := l.WriteCommand(cmd)
	if err != nil {
		return racp.Response{}, err
	}
	select {
	case <-ctx.Done():
		return racp.Response{}, ctx.Err()
	case r := <-resp:
		return r, nil
	}
}

func (l *Listener) setWaiter(c chan racp.Response) {
	l.wmu.Lock()
	l.waiter = c
	l.wmu.Unlock()
}

// Close disables notifications from the connected meter.
func (l *Listener) Close() error {
	return l.disable()
}

func (l *Listener) disable() error {
	err := l.measurement.EnableNotifications(nil)
	if l.hasContext {
		err = errors.Join(err, l.context.EnableNotifications(nil))
	}
	return errors.Join(err, l.control.EnableNotifications(nil))
}
