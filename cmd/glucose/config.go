// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kortschak/glucose/cmd/internal/publish"
)

// Config is the glucose command configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Scan     ScanConfig     `yaml:"scan"`
	Download DownloadConfig `yaml:"download"`
	Redis    RedisConfig    `yaml:"redis"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type ScanConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type DownloadConfig struct {
	// Timeout is the time allowed for the
	// meter to complete a record transfer.
	Timeout time.Duration `yaml:"timeout"`
	// Window is the number of measurements
	// held while waiting for their context.
	Window int `yaml:"window"`
}

type RedisConfig struct {
	Enabled        bool `yaml:"enabled"`
	publish.Config `yaml:",inline"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Scan: ScanConfig{
			Timeout: 30 * time.Second,
		},
		Download: DownloadConfig{
			Timeout: 2 * time.Minute,
			Window:  16,
		},
		Redis: RedisConfig{
			Config: publish.Config{
				Addr:    "localhost:6379",
				Channel: "glucose_records",
				Keep:    1000,
			},
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
	}
}

// LoadConfig returns the configuration in the YAML file at path.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func setupLogger(cfg LogConfig, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}
	return log
}
