// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/kortschak/glucose/cmd/internal/collate"
	"github.com/kortschak/glucose/glucose"
	"github.com/kortschak/glucose/internal/wire"
	"github.com/kortschak/glucose/racp"
)

// DecodeCmd decodes single characteristic values.
type DecodeCmd struct {
	Measurement decodeMeasurementCmd `cmd:"" help:"Decode a glucose measurement."`
	Context     decodeContextCmd     `cmd:"" help:"Decode a glucose measurement context."`
	Features    decodeFeaturesCmd    `cmd:"" help:"Decode a glucose feature value."`
	RACP        decodeRACPCmd        `cmd:"" name:"racp" help:"Decode a record access control point response."`
}

// HexArgs holds the arguments common to the decode subcommands.
type HexArgs struct {
	Hex    string `arg:"" help:"Characteristic value in hex."`
	Format string `short:"f" enum:"text,json,dump" default:"text" help:"Output format (${enum})."`
}

func (a HexArgs) bytes() ([]byte, error) {
	b, err := wire.FromHex(a.Hex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value: %w", err)
	}
	return b, nil
}

type decodeMeasurementCmd struct {
	HexArgs `embed:""`
}

func (c *decodeMeasurementCmd) Run(cli *CLI) error {
	b, err := c.bytes()
	if err != nil {
		return err
	}
	var m glucose.Measurement
	err = m.UnmarshalBinary(b)
	if err != nil {
		return err
	}
	return writeRecord(cli.out, c.Format, "", collate.Record{Measurement: &m})
}

type decodeContextCmd struct {
	HexArgs `embed:""`
}

func (c *decodeContextCmd) Run(cli *CLI) error {
	b, err := c.bytes()
	if err != nil {
		return err
	}
	var mc glucose.MeasurementContext
	err = mc.UnmarshalBinary(b)
	if err != nil {
		return err
	}
	return writeRecord(cli.out, c.Format, "", collate.Record{Context: &mc})
}

type decodeFeaturesCmd struct {
	HexArgs `embed:""`
}

func (c *decodeFeaturesCmd) Run(cli *CLI) error {
	b, err := c.bytes()
	if err != nil {
		return err
	}
	var f glucose.Features
	err = f.UnmarshalBinary(b)
	if err != nil {
		return err
	}
	return writeFeatures(cli.out, c.Format, f)
}

type decodeRACPCmd struct {
	HexArgs `embed:""`
}

func (c *decodeRACPCmd) Run(cli *CLI) error {
	b, err := c.bytes()
	if err != nil {
		return err
	}
	var r racp.Response
	err = r.UnmarshalBinary(b)
	if err != nil {
		return err
	}
	return writeResponse(cli.out, c.Format, r)
}
