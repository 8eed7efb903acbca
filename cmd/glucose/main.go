// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The glucose command decodes Bluetooth Glucose Service records and
// downloads stored records from a glucose meter.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

// CLI is the root command structure for glucose.
type CLI struct {
	Config    string `short:"c" type:"path" help:"YAML configuration file."`
	LogLevel  string `help:"Log level (${enum_levels}); overrides the configuration."`
	LogFormat string `help:"Log format (text or json); overrides the configuration."`

	Decode   DecodeCmd   `cmd:"" help:"Decode a characteristic value given in hex."`
	Encode   EncodeCmd   `cmd:"" help:"Encode a record access control point command."`
	Scan     ScanCmd     `cmd:"" help:"List meters advertising the glucose service."`
	Download DownloadCmd `cmd:"" help:"Download stored records from a meter."`

	cfg *Config        `kong:"-"`
	log *logrus.Logger `kong:"-"`
	out io.Writer      `kong:"-"`
}

// setup loads the configuration and builds the logger.
func (c *CLI) setup() error {
	cfg, err := LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	switch c.LogFormat {
	case "":
	case "text", "json":
		cfg.Log.Format = c.LogFormat
	default:
		return fmt.Errorf("invalid log format: %q", c.LogFormat)
	}
	c.cfg = cfg
	c.log = setupLogger(cfg.Log, os.Stderr)
	if c.out == nil {
		c.out = os.Stdout
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("glucose"),
		kong.Description("Bluetooth glucose meter tool."),
		kong.UsageOnError(),
		kong.Vars{"enum_levels": "trace,debug,info,warn,error"},
	)
	ctx.FatalIfErrorf(cli.setup())
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
