// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/kortschak/glucose/glucose"
)

var glucoseService = must(bluetooth.ParseUUID(glucose.ServiceID))

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// ScanCmd lists advertising glucose meters.
type ScanCmd struct {
	Timeout time.Duration `help:"Scan duration; overrides the configuration."`
}

func (c *ScanCmd) Run(cli *CLI) error {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = cli.cfg.Scan.Timeout
	}
	adapter := bluetooth.DefaultAdapter
	err := adapter.Enable()
	if err != nil {
		return fmt.Errorf("failed to enable bluetooth: %w", err)
	}
	cli.log.WithField("timeout", timeout).Info("scanning")

	stop := time.AfterFunc(timeout, func() { adapter.StopScan() })
	defer stop.Stop()
	seen := make(map[bluetooth.Address]bool)
	return adapter.Scan(func(adapter *bluetooth.Adapter, found bluetooth.ScanResult) {
		if !found.HasServiceUUID(glucoseService) || seen[found.Address] {
			return
		}
		seen[found.Address] = true
		fmt.Fprintf(cli.out, "%s\t%d\t%q\n", found.Address, found.RSSI, found.LocalName())
	})
}

// connect scans for the meter at addr and connects to it. The scan is
// abandoned after timeout.
func connect(addr bluetooth.Address, timeout time.Duration, log logrus.FieldLogger) (bluetooth.Device, error) {
	adapter := bluetooth.DefaultAdapter
	err := adapter.Enable()
	if err != nil {
		return bluetooth.Device{}, fmt.Errorf("failed to enable bluetooth: %w", err)
	}
	log.WithField("addr", addr).Info("scanning")

	var (
		result bluetooth.ScanResult
		found  bool
	)
	stop := time.AfterFunc(timeout, func() { adapter.StopScan() })
	defer stop.Stop()
	err = adapter.Scan(func(adapter *bluetooth.Adapter, r bluetooth.ScanResult) {
		if r.Address != addr {
			return
		}
		result = r
		found = true
		adapter.StopScan()
	})
	if err != nil {
		return bluetooth.Device{}, fmt.Errorf("scan failed: %w", err)
	}
	if !found {
		return bluetooth.Device{}, fmt.Errorf("meter %s not found", addr)
	}
	log.WithFields(logrus.Fields{
		"addr": result.Address,
		"rssi": result.RSSI,
		"name": result.LocalName(),
	}).Info("found meter")

	dev, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return bluetooth.Device{}, fmt.Errorf("failed to connect: %w", err)
	}
	return dev, nil
}
