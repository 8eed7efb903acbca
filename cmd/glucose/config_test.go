// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glucose.yaml")
	err := os.WriteFile(path, []byte(`
log:
  level: debug
download:
  timeout: 45s
redis:
  enabled: true
  addr: redis:6379
  keep: 10
metrics:
  enabled: true
`), 0o644)
	require.NoError(t, err)

	got, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Log.Level = "debug"
	want.Download.Timeout = 45 * time.Second
	want.Redis.Enabled = true
	want.Redis.Addr = "redis:6379"
	want.Redis.Keep = 10
	want.Metrics.Enabled = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadConfigError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan: [\n"), 0o644))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	log := setupLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	require.Equal(t, logrus.WarnLevel, log.GetLevel())
	log.Info("hidden")
	log.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)

	log = setupLogger(LogConfig{Level: "nonsense"}, &buf)
	require.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestCLISetup(t *testing.T) {
	cli := CLI{LogLevel: "debug", LogFormat: "json"}
	require.NoError(t, cli.setup())
	require.Equal(t, "debug", cli.cfg.Log.Level)
	require.Equal(t, "json", cli.cfg.Log.Format)
	require.Equal(t, logrus.DebugLevel, cli.log.GetLevel())

	cli = CLI{LogFormat: "xml"}
	require.Error(t, cli.setup())
}
