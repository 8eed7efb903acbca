// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics provides prometheus metrics for glucose record
// transfers.
package metrics

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/kortschak/glucose/glucose"
)

// Metrics holds the collectors for a meter connection.
type Metrics struct {
	received      *prometheus.CounterVec
	decodeErrors  *prometheus.CounterVec
	bytes         *prometheus.CounterVec
	storedRecords prometheus.Gauge
	battery       prometheus.Gauge
	concentration prometheus.Histogram
}

// New returns a new Metrics registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glucose_records_received_total",
			Help: "Number of records decoded by characteristic role.",
		}, []string{"role"}),
		decodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glucose_decode_errors_total",
			Help: "Number of records that could not be decoded by characteristic role.",
		}, []string{"role"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glucose_bytes_received_total",
			Help: "Number of characteristic value bytes received by characteristic role.",
		}, []string{"role"}),
		storedRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "glucose_stored_records",
			Help: "Number of records stored by the meter.",
		}),
		battery: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "glucose_battery_percent",
			Help: "Meter battery level.",
		}),
		concentration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "glucose_concentration_mmol_per_liter",
			Help:    "Measured glucose concentration.",
			Buckets: []float64{2.8, 3.9, 5.6, 7.8, 10, 13.9, 20},
		}),
	}
	reg.MustRegister(
		m.received,
		m.decodeErrors,
		m.bytes,
		m.storedRecords,
		m.battery,
		m.concentration,
	)
	return m
}

// Received records receipt of a characteristic value.
func (m *Metrics) Received(role glucose.Role, n int) {
	m.bytes.WithLabelValues(role.String()).Add(float64(n))
}

// Decoded records a successfully decoded record.
func (m *Metrics) Decoded(role glucose.Role) {
	m.received.WithLabelValues(role.String()).Inc()
}

// DecodeError records a failed decode.
func (m *Metrics) DecodeError(role glucose.Role) {
	m.decodeErrors.WithLabelValues(role.String()).Inc()
}

// Measurement records the concentration of a measurement if present.
func (m *Metrics) Measurement(r glucose.Measurement) {
	if !r.HasConcentration() {
		return
	}
	v := r.MillimolesPerLiter()
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return
	}
	m.concentration.Observe(float64(v))
}

// StoredRecords sets the number of records stored by the meter.
func (m *Metrics) StoredRecords(n int) { m.storedRecords.Set(float64(n)) }

// Battery sets the meter battery level.
func (m *Metrics) Battery(percent int) { m.battery.Set(float64(percent)) }

// Serve serves the metrics gathered by g on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, log logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()
	log.WithField("addr", addr).Info("serving metrics")
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
