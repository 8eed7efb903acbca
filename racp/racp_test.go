// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package racp

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/glucose/internal/wire"
)

var commandTests = []struct {
	name string
	cmd  Command
	want string
}{
	{name: "count", cmd: ReportCount(), want: "010401"},
	{name: "number", cmd: ReportNumber(), want: "0401"},
	{name: "all", cmd: ReportAll(), want: "010101"},
	{name: "index_7", cmd: ReportIndex(7), want: "01040107000700"},
	{name: "index_0x1234", cmd: ReportIndex(0x1234), want: "01040134123412"},
	{name: "range_1_10", cmd: ReportRange(1, 10), want: "0104010100" + "0A00"},
	{name: "range_255_256", cmd: ReportRange(255, 256), want: "010401FF000001"},
	{name: "at_least_3", cmd: ReportAtLeast(3), want: "0103010300"},
	{name: "at_most_0x0201", cmd: ReportAtMost(0x0201), want: "0102010102"},
	{name: "first", cmd: ReportFirst(), want: "0105"},
	{name: "last", cmd: ReportLast(), want: "0106"},
	{name: "abort", cmd: Abort(), want: "0300"},
}

func TestCommand(t *testing.T) {
	for _, test := range commandTests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.cmd.MarshalBinary()
			require.NoError(t, err)
			require.Equal(t, test.want, wire.Hex(got))
			require.Equal(t, test.cmd.Size(), len(got))
			require.Equal(t, test.want, test.cmd.String())
		})
	}
}

func TestCommandAppend(t *testing.T) {
	prefix := []byte{0xff}
	got, err := ReportAtLeast(1).AppendBinary(prefix)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0x01, 0x03, 0x01, 0x01, 0x00}, got)
}

var responseTests = []struct {
	name    string
	in      string
	want    Response
	wantErr error
	malform bool
}{
	{
		name: "count_5",
		in:   "05000500",
		want: Response{Opcode: NumberOfRecordsResponse, Count: 5},
	},
	{
		name: "count_0x0102",
		in:   "05000201",
		want: Response{Opcode: NumberOfRecordsResponse, Count: 0x0102},
	},
	{
		name: "success",
		in:   "06000101",
		want: Response{Opcode: ResponseCode, Request: ReportStoredRecords, Status: Success},
	},
	{
		name:    "reserved",
		in:      "06000100",
		want:    Response{Opcode: ResponseCode, Request: ReportStoredRecords, Status: Reserved},
		wantErr: Reserved,
	},
	{
		name:    "no_records",
		in:      "06000106",
		want:    Response{Opcode: ResponseCode, Request: ReportStoredRecords, Status: NoRecordsFound},
		wantErr: NoRecordsFound,
	},
	{
		name:    "opcode_not_supported",
		in:      "06000202",
		want:    Response{Opcode: ResponseCode, Request: DeleteStoredRecords, Status: OpCodeNotSupported},
		wantErr: OpCodeNotSupported,
	},
	{
		name:    "operand_not_supported",
		in:      "06000109",
		want:    Response{Opcode: ResponseCode, Request: ReportStoredRecords, Status: OperandNotSupported},
		wantErr: OperandNotSupported,
	},
	{name: "unknown_status", in: "0600010a", malform: true},
	{name: "unknown_opcode", in: "07000101", malform: true},
	{name: "short", in: "0600", malform: true},
	{name: "empty", in: "", malform: true},
}

func TestResponse(t *testing.T) {
	for _, test := range responseTests {
		t.Run(test.name, func(t *testing.T) {
			data, err := wire.FromHex(test.in)
			require.NoError(t, err)
			var got Response
			err = got.UnmarshalBinary(data)
			if test.malform {
				require.ErrorIs(t, err, ErrMalformed)
				var merr *MalformedError
				require.True(t, errors.As(err, &merr))
				var status Status
				require.False(t, errors.As(err, &status), "malformed response reported as status")
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected response (-want +got):\n%s", diff)
			}
			if test.wantErr == nil {
				require.NoError(t, got.Err())
			} else {
				require.ErrorIs(t, got.Err(), test.wantErr)
			}
		})
	}
}

func TestStatusTaxonomy(t *testing.T) {
	want := []string{
		"Reserved",
		"Success",
		"Op Code Not Supported",
		"Invalid Operator",
		"Operator Not Supported",
		"Invalid Operand",
		"No Records Found",
		"Abort Unsuccessful",
		"Procedure Not Completed",
		"Operand Not Supported",
	}
	for i, w := range want {
		s := Status(i)
		require.Equal(t, w, s.String())
		require.Equal(t, "racp: "+w, s.Error())
	}
	require.Equal(t, "Status(10)", Status(10).String())
}
