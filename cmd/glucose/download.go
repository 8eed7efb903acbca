// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/kortschak/glucose/cmd/internal/collate"
	"github.com/kortschak/glucose/cmd/internal/metrics"
	"github.com/kortschak/glucose/cmd/internal/publish"
	"github.com/kortschak/glucose/device"
	"github.com/kortschak/glucose/glucose"
	"github.com/kortschak/glucose/racp"
)

// DownloadCmd downloads stored records from a meter.
type DownloadCmd struct {
	Addr   string  `required:"" help:"Meter bluetooth address."`
	From   *uint16 `help:"First sequence number to download."`
	To     *uint16 `help:"Last sequence number to download."`
	Format string  `short:"f" enum:"text,json,dump" default:"text" help:"Output format (${enum})."`
}

// command returns the report stored records command for the requested
// sequence number bounds.
func (c *DownloadCmd) command() (racp.Command, error) {
	switch {
	case c.From != nil && c.To != nil:
		if *c.From > *c.To {
			return racp.Command{}, fmt.Errorf("invalid range: %d > %d", *c.From, *c.To)
		}
		return racp.ReportRange(*c.From, *c.To), nil
	case c.From != nil:
		return racp.ReportAtLeast(*c.From), nil
	case c.To != nil:
		return racp.ReportAtMost(*c.To), nil
	default:
		return racp.ReportAll(), nil
	}
}

func (c *DownloadCmd) Run(cli *CLI) error {
	cmd, err := c.command()
	if err != nil {
		return err
	}
	var addr bluetooth.Address
	err = addr.UnmarshalText([]byte(c.Addr))
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", c.Addr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := cli.log
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cli.cfg.Metrics.Enabled {
		go func() {
			err := metrics.Serve(ctx, cli.cfg.Metrics.Addr, reg, log)
			if err != nil {
				log.WithError(err).Error("metrics server failed")
			}
		}()
	}

	var pub *publish.Publisher
	if cli.cfg.Redis.Enabled {
		pub, err = publish.New(ctx, cli.cfg.Redis.Config, log)
		if err != nil {
			return err
		}
		defer pub.Close()
	}

	dev, err := connect(addr, cli.cfg.Scan.Timeout, log)
	if err != nil {
		return err
	}
	defer dev.Disconnect()

	info, err := device.Read(&dev)
	if err != nil {
		log.WithError(err).Warn("failed to read device information")
	}
	if info.Battery >= 0 {
		m.Battery(info.Battery)
	}
	log.WithFields(logrus.Fields{
		"manufacturer": info.Manufacturer,
		"model":        info.Model,
		"serial":       info.Serial,
		"firmware":     info.Firmware,
		"battery":      info.Battery,
	}).Info("connected")
	meter := info.Serial
	if meter == "" {
		meter = addr.String()
	}

	col := collate.New(cli.cfg.Download.Window, func(r collate.Record) {
		err := writeRecord(cli.out, c.Format, meter, r)
		if err != nil {
			log.WithError(err).Error("failed to write record")
		}
		if pub == nil {
			return
		}
		err = pub.Publish(ctx, meter, r)
		if err != nil {
			log.WithError(err).WithField("sequence", r.Sequence()).Error("failed to publish record")
		}
	}, log)
	d := glucose.NewDispatcher(glucose.Handlers{
		OnFeatures: func(glucose.Features) { m.Decoded(glucose.RoleFeature) },
		OnMeasurement: func(r glucose.Measurement) {
			m.Decoded(glucose.RoleMeasurement)
			m.Measurement(r)
			col.Measurement(r)
		},
		OnContext: func(r glucose.MeasurementContext) {
			m.Decoded(glucose.RoleContext)
			col.MeasurementContext(r)
		},
		OnResponse: func(racp.Response) { m.Decoded(glucose.RoleControlPoint) },
		OnError:    func(role glucose.Role, _ []byte, _ error) { m.DecodeError(role) },
	}, log)

	l, err := glucose.NewListener(&dev, countingSink{d, m}, log)
	if err != nil {
		return err
	}
	defer l.Close()

	f, err := l.ReadFeatures()
	if err != nil {
		return err
	}
	log.WithField("features", f).Info("meter features")

	n, err := l.RecordCount(ctx)
	if err != nil {
		return err
	}
	m.StoredRecords(n)
	log.WithField("records", n).Info("stored records")
	if n == 0 {
		return nil
	}

	dctx, cancel := context.WithTimeout(ctx, cli.cfg.Download.Timeout)
	defer cancel()
	err = l.Download(dctx, cmd)
	col.Flush()
	if errors.Is(err, racp.NoRecordsFound) {
		log.Info("no records in requested range")
		return nil
	}
	return err
}

// countingSink is a glucose.DataSink that counts received bytes.
type countingSink struct {
	glucose.DataSink
	m *metrics.Metrics
}

func (s countingSink) Receive(role glucose.Role, buf []byte) error {
	s.m.Received(role, len(buf))
	return s.DataSink.Receive(role, buf)
}
