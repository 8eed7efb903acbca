// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collate pairs glucose measurements with the measurement
// context records that follow them.
package collate

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kortschak/glucose/cmd/internal/ring"
	"github.com/kortschak/glucose/glucose"
)

// Record is a measurement and its context. Either may be nil, but not
// both.
type Record struct {
	Measurement *glucose.Measurement
	Context     *glucose.MeasurementContext
}

// Sequence returns the sequence number of the record.
func (r Record) Sequence() uint16 {
	if r.Measurement != nil {
		return r.Measurement.Sequence
	}
	return r.Context.Sequence
}

// Collator pairs measurements and contexts by sequence number.
// Measurements that do not announce a context are emitted immediately.
// Measurements waiting for a context are held until it arrives, until
// more than the collator's window of measurements are waiting, or until
// Flush is called.
type Collator struct {
	mu      sync.Mutex
	pending *ring.Buffer[glucose.Measurement]
	emit    func(Record)
	log     logrus.FieldLogger
}

// New returns a Collator holding at most window measurements waiting for
// a context. Paired records are passed to emit after the Collator's lock
// is released. If log is nil, the logrus standard logger is used.
func New(window int, emit func(Record), log logrus.FieldLogger) *Collator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Collator{
		pending: ring.NewBuffer[glucose.Measurement](window),
		emit:    emit,
		log:     log,
	}
}

// Measurement adds a measurement to the collator.
func (c *Collator) Measurement(m glucose.Measurement) {
	if !m.ContextFollows() {
		c.emit(Record{Measurement: &m})
		return
	}
	c.mu.Lock()
	old, evicted := c.pending.Push(m)
	c.mu.Unlock()
	if evicted {
		c.log.WithField("sequence", old.Sequence).Warn("context did not arrive")
		c.emit(Record{Measurement: &old})
	}
}

// MeasurementContext adds a context to the collator.
func (c *Collator) MeasurementContext(ctx glucose.MeasurementContext) {
	c.mu.Lock()
	i := c.pending.Index(func(m glucose.Measurement) bool {
		return m.Sequence == ctx.Sequence
	})
	var m glucose.Measurement
	if i >= 0 {
		m = c.pending.Remove(i)
	}
	c.mu.Unlock()
	if i < 0 {
		c.log.WithField("sequence", ctx.Sequence).Warn("context without measurement")
		c.emit(Record{Context: &ctx})
		return
	}
	c.emit(Record{Measurement: &m, Context: &ctx})
}

// Flush emits all measurements still waiting for a context.
func (c *Collator) Flush() {
	c.mu.Lock()
	pending := c.pending.Drain()
	c.mu.Unlock()
	for _, m := range pending {
		c.log.WithField("sequence", m.Sequence).Debug("flush measurement without context")
		c.emit(Record{Measurement: &m})
	}
}

// Pending returns the number of measurements waiting for a context.
func (c *Collator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.Len()
}
