// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glucose

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/glucose/internal/wire"
	"github.com/kortschak/glucose/racp"
)

type sinkFunc func(Role, []byte) error

func (f sinkFunc) Receive(role Role, buf []byte) error { return f(role, buf) }

// controlPointMeter answers control point writes with a canned
// indication and records the commands it was sent.
type controlPointMeter struct {
	l       *Listener
	reply   string
	err     error
	written []string
}

func (m *controlPointMeter) write(b []byte) (int, error) {
	m.written = append(m.written, wire.Hex(b))
	if m.err != nil {
		return 0, m.err
	}
	if m.reply != "" {
		buf, err := wire.FromHex(m.reply)
		if err != nil {
			return 0, err
		}
		m.l.controlPoint(buf)
	}
	return len(b), nil
}

func newTestListener(reply string, writeErr error) (*Listener, *controlPointMeter, *[]Role) {
	var received []Role
	l := &Listener{
		sink: sinkFunc(func(role Role, _ []byte) error {
			received = append(received, role)
			return nil
		}),
		log: discard(),
	}
	m := &controlPointMeter{l: l, reply: reply, err: writeErr}
	l.write = m.write
	return l, m, &received
}

var recordCountTests = []struct {
	name    string
	reply   string
	err     error
	want    int
	wantIs  error
	wantErr bool
}{
	{name: "count", reply: "05000500", want: 5},
	{name: "count_zero", reply: "05000000", want: 0},
	{name: "not_supported", reply: "06000402", wantIs: racp.OpCodeNotSupported},
	{name: "success_without_count", reply: "06000401", wantErr: true},
	{name: "write_error", err: errors.New("disconnected"), wantErr: true},
}

func TestListenerRecordCount(t *testing.T) {
	for _, test := range recordCountTests {
		t.Run(test.name, func(t *testing.T) {
			l, m, received := newTestListener(test.reply, test.err)
			got, err := l.RecordCount(context.Background())
			require.Equal(t, []string{"0401"}, m.written)
			switch {
			case test.wantIs != nil:
				require.ErrorIs(t, err, test.wantIs)
			case test.wantErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.Equal(t, test.want, got)
			}
			if test.reply != "" {
				require.Equal(t, []Role{RoleControlPoint}, *received)
			}
		})
	}
}

var downloadTests = []struct {
	name    string
	cmd     racp.Command
	reply   string
	written []string
	wantIs  error
	wantErr bool
}{
	{
		name:    "success",
		cmd:     racp.ReportAll(),
		reply:   "06000101",
		written: []string{"010101"},
	},
	{
		name:    "range_success",
		cmd:     racp.ReportRange(1, 10),
		reply:   "06000101",
		written: []string{"01040101000A00"},
	},
	{
		name:    "no_records",
		cmd:     racp.ReportAtLeast(3),
		reply:   "06000106",
		written: []string{"0103010300"},
		wantIs:  racp.NoRecordsFound,
	},
	{
		name:    "count_response",
		cmd:     racp.ReportAll(),
		reply:   "05000500",
		written: []string{"010101"},
		wantErr: true,
	},
	{
		name:    "wrong_request",
		cmd:     racp.ReportAll(),
		reply:   "06000401",
		written: []string{"010101"},
		wantErr: true,
	},
	{
		name:    "not_a_report",
		cmd:     racp.Abort(),
		written: nil,
		wantErr: true,
	},
}

func TestListenerDownload(t *testing.T) {
	for _, test := range downloadTests {
		t.Run(test.name, func(t *testing.T) {
			l, m, _ := newTestListener(test.reply, nil)
			err := l.Download(context.Background(), test.cmd)
			require.Equal(t, test.written, m.written)
			switch {
			case test.wantIs != nil:
				require.ErrorIs(t, err, test.wantIs)
			case test.wantErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestListenerDownloadCancel(t *testing.T) {
	l, m, _ := newTestListener("", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Download(ctx, racp.ReportAll())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []string{"010101", racp.Abort().String()}, m.written)
	require.Nil(t, l.waiter, "waiter left registered")
}

func TestListenerUnsolicitedResponse(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	l, m, received := newTestListener("", nil)
	l.log = log
	l.controlPoint([]byte{0x05, 0x00, 0x07, 0x00})
	require.Empty(t, m.written)
	require.Equal(t, []Role{RoleControlPoint}, *received)
	require.Contains(t, buf.String(), "unsolicited control point response")

	// Malformed indications are passed to the sink but not
	// delivered to a waiter.
	buf.Reset()
	l.controlPoint([]byte{0x06})
	require.Equal(t, []Role{RoleControlPoint, RoleControlPoint}, *received)
	require.NotContains(t, buf.String(), "unsolicited")
}
