// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collate

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/kortschak/glucose/glucose"
)

func meas(seq uint16, ctx bool) glucose.Measurement {
	m := glucose.Measurement{Sequence: seq}
	if ctx {
		m.Flags = glucose.ContextInformationFollows
	}
	return m
}

func mctx(seq uint16) glucose.MeasurementContext {
	return glucose.MeasurementContext{Sequence: seq, Flags: glucose.MealPresent, Meal: glucose.Preprandial}
}

type summary struct {
	Seq         uint16
	Measurement bool
	Context     bool
}

var collateTests = []struct {
	name    string
	window  int
	ops     func(c *Collator)
	want    []summary
	pending int
}{
	{
		name:   "no_context",
		window: 2,
		ops: func(c *Collator) {
			c.Measurement(meas(1, false))
			c.Measurement(meas(2, false))
		},
		want: []summary{{1, true, false}, {2, true, false}},
	},
	{
		name:   "paired",
		window: 2,
		ops: func(c *Collator) {
			c.Measurement(meas(1, true))
			c.MeasurementContext(mctx(1))
			c.Measurement(meas(2, false))
		},
		want: []summary{{1, true, true}, {2, true, false}},
	},
	{
		name:   "out_of_order",
		window: 4,
		ops: func(c *Collator) {
			c.Measurement(meas(1, true))
			c.Measurement(meas(2, true))
			c.Measurement(meas(3, true))
			c.MeasurementContext(mctx(2))
			c.MeasurementContext(mctx(1))
		},
		want:    []summary{{2, true, true}, {1, true, true}},
		pending: 1,
	},
	{
		name:   "evicted",
		window: 1,
		ops: func(c *Collator) {
			c.Measurement(meas(1, true))
			c.Measurement(meas(2, true))
			c.MeasurementContext(mctx(2))
		},
		want: []summary{{1, true, false}, {2, true, true}},
	},
	{
		name:   "orphan_context",
		window: 1,
		ops: func(c *Collator) {
			c.MeasurementContext(mctx(9))
		},
		want: []summary{{9, false, true}},
	},
	{
		name:   "flush",
		window: 3,
		ops: func(c *Collator) {
			c.Measurement(meas(1, true))
			c.Measurement(meas(2, true))
			c.Flush()
		},
		want: []summary{{1, true, false}, {2, true, false}},
	},
}

func TestCollator(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	for _, test := range collateTests {
		t.Run(test.name, func(t *testing.T) {
			var got []summary
			c := New(test.window, func(r Record) {
				if r.Measurement != nil && r.Context != nil && r.Measurement.Sequence != r.Context.Sequence {
					t.Errorf("mismatched pair: %d %d", r.Measurement.Sequence, r.Context.Sequence)
				}
				got = append(got, summary{
					Seq:         r.Sequence(),
					Measurement: r.Measurement != nil,
					Context:     r.Context != nil,
				})
			}, log)
			test.ops(c)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected records (-want +got):\n%s", diff)
			}
			if c.Pending() != test.pending {
				t.Errorf("unexpected pending count: got:%d want:%d", c.Pending(), test.pending)
			}
		})
	}
}

func TestCollatorEmitUnlocked(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	// The emit function may use the Collator; it would
	// deadlock if records were emitted under its lock.
	var (
		c       *Collator
		pending []int
	)
	c = New(1, func(r Record) {
		pending = append(pending, c.Pending())
	}, log)
	c.Measurement(meas(1, true))
	c.Measurement(meas(2, true))
	c.MeasurementContext(mctx(2))
	c.Measurement(meas(3, true))
	c.Flush()
	if diff := cmp.Diff([]int{1, 0, 0}, pending); diff != "" {
		t.Errorf("unexpected pending counts seen by emit (-want +got):\n%s", diff)
	}
}
