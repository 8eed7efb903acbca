// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish sends collated glucose records to a Redis channel
// as JSON messages.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kortschak/glucose/cmd/internal/collate"
	"github.com/kortschak/glucose/glucose"
)

// Message is the JSON form of a collated record. Non-finite values are
// omitted.
type Message struct {
	Meter    string `json:"meter,omitempty"`
	Sequence uint16 `json:"sequence"`

	Time          *time.Time `json:"time,omitempty"`
	TimeOffset    *int16     `json:"time_offset_minutes,omitempty"`
	Concentration *float32   `json:"concentration,omitempty"`
	Unit          string     `json:"unit,omitempty"`
	MmolPerL      *float32   `json:"mmol_per_l,omitempty"`
	SampleType    string     `json:"sample_type,omitempty"`
	Location      string     `json:"sample_location,omitempty"`
	Status        string     `json:"status,omitempty"`

	Context *ContextMessage `json:"context,omitempty"`
}

// ContextMessage is the JSON form of a measurement context.
type ContextMessage struct {
	Carbohydrate       string   `json:"carbohydrate,omitempty"`
	CarbohydrateWeight *float32 `json:"carbohydrate_kg,omitempty"`
	Meal               string   `json:"meal,omitempty"`
	Tester             string   `json:"tester,omitempty"`
	Health             string   `json:"health,omitempty"`
	ExerciseDuration   *uint16  `json:"exercise_seconds,omitempty"`
	ExerciseIntensity  *uint8   `json:"exercise_intensity_percent,omitempty"`
	Medication         string   `json:"medication,omitempty"`
	MedicationValue    *float32 `json:"medication_value,omitempty"`
	MedicationUnit     string   `json:"medication_unit,omitempty"`
	HbA1c              *float32 `json:"hba1c_percent,omitempty"`
}

// NewMessage returns the message for r from the named meter.
func NewMessage(meter string, r collate.Record) Message {
	msg := Message{Meter: meter, Sequence: r.Sequence()}
	if m := r.Measurement; m != nil {
		msg.Time = &m.Time
		if m.HasTimeOffset() {
			msg.TimeOffset = &m.TimeOffset
		}
		if m.HasConcentration() {
			msg.Concentration = finite(m.Concentration)
			msg.Unit = m.Unit.String()
			msg.MmolPerL = finite(m.MillimolesPerLiter())
			msg.SampleType = m.Type.String()
			msg.Location = m.Location.String()
		}
		if m.HasStatus() && m.Status != 0 {
			msg.Status = m.Status.String()
		}
	}
	if c := r.Context; c != nil {
		msg.Context = newContextMessage(c)
	}
	return msg
}

func newContextMessage(c *glucose.MeasurementContext) *ContextMessage {
	var msg ContextMessage
	if c.HasCarbohydrate() {
		msg.Carbohydrate = c.Carbohydrate.String()
		msg.CarbohydrateWeight = finite(c.CarbohydrateWeight)
	}
	if c.HasMeal() {
		msg.Meal = c.Meal.String()
	}
	if c.HasTesterHealth() {
		msg.Tester = c.Tester.String()
		msg.Health = c.Health.String()
	}
	if c.HasExercise() {
		msg.ExerciseDuration = &c.ExerciseDuration
		msg.ExerciseIntensity = &c.ExerciseIntensity
	}
	if c.HasMedication() {
		msg.Medication = c.Medication.String()
		msg.MedicationValue = finite(c.MedicationValue)
		msg.MedicationUnit = c.MedicationUnit.String()
	}
	if c.HasHbA1c() {
		msg.HbA1c = finite(c.HbA1c)
	}
	return &msg
}

func finite(v float32) *float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return nil
	}
	return &v
}

// Config is the Redis connection configuration.
type Config struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
	// Keep is the number of messages retained in each
	// meter's history list. Zero disables the list.
	Keep int64 `yaml:"keep"`
}

// Publisher publishes records to a Redis channel.
type Publisher struct {
	client  *redis.Client
	channel string
	keep    int64
	log     logrus.FieldLogger
}

// New returns a new Publisher connected to the Redis server in cfg.
func New(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.WithField("addr", cfg.Addr).Info("connected to redis")
	return &Publisher{
		client:  client,
		channel: cfg.Channel,
		keep:    cfg.Keep,
		log:     log,
	}, nil
}

// Publish sends r from the named meter to the publisher's channel and
// appends it to the meter's history list.
func (p *Publisher) Publish(ctx context.Context, meter string, r collate.Record) error {
	data, err := json.Marshal(NewMessage(meter, r))
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish record: %w", err)
	}
	if p.keep <= 0 {
		return nil
	}
	key := HistoryKey(meter)
	pipe := p.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, p.keep-1)
	if _, err := pipe.Exec(ctx); err != nil {
		p.log.WithError(err).WithField("key", key).Warn("failed to save record history")
	}
	return nil
}

// HistoryKey returns the Redis list key holding the history of the
// named meter.
func HistoryKey(meter string) string {
	return fmt.Sprintf("glucose:%s:records", meter)
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
