// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/kortschak/glucose/racp"
)

// EncodeCmd prints record access control point commands in hex.
type EncodeCmd struct {
	Count   struct{} `cmd:"" help:"Report the stored record count."`
	Number  struct{} `cmd:"" help:"Report the number of stored records using the Report Number of Stored Records op code."`
	All     struct{} `cmd:"" help:"Report all stored records."`
	Index   indexCmd `cmd:"" help:"Report the record with a sequence number."`
	Range   rangeCmd `cmd:"" help:"Report records within a sequence number range."`
	AtLeast indexCmd `cmd:"" name:"atleast" help:"Report records at or after a sequence number."`
	AtMost  indexCmd `cmd:"" name:"atmost" help:"Report records at or before a sequence number."`
	First   struct{} `cmd:"" help:"Report the first record."`
	Last    struct{} `cmd:"" help:"Report the last record."`
	Abort   struct{} `cmd:"" help:"Abort the current procedure."`
}

type indexCmd struct {
	N uint16 `arg:"" help:"Sequence number."`
}

type rangeCmd struct {
	From uint16 `arg:"" help:"First sequence number."`
	To   uint16 `arg:"" help:"Last sequence number."`
}

// Run prints the selected command.
func (c *EncodeCmd) Run(ctx *kong.Context, cli *CLI) error {
	cmd, err := c.command(ctx.Selected().Name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, cmd)
	return err
}

func (c *EncodeCmd) command(name string) (racp.Command, error) {
	switch name {
	case "count":
		return racp.ReportCount(), nil
	case "number":
		return racp.ReportNumber(), nil
	case "all":
		return racp.ReportAll(), nil
	case "index":
		return racp.ReportIndex(c.Index.N), nil
	case "range":
		if c.Range.From > c.Range.To {
			return racp.Command{}, fmt.Errorf("invalid range: %d > %d", c.Range.From, c.Range.To)
		}
		return racp.ReportRange(c.Range.From, c.Range.To), nil
	case "atleast":
		return racp.ReportAtLeast(c.AtLeast.N), nil
	case "atmost":
		return racp.ReportAtMost(c.AtMost.N), nil
	case "first":
		return racp.ReportFirst(), nil
	case "last":
		return racp.ReportLast(), nil
	case "abort":
		return racp.Abort(), nil
	default:
		return racp.Command{}, fmt.Errorf("unknown command: %s", name)
	}
}
