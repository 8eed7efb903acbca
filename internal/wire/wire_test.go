// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwap16(t *testing.T) {
	got, err := Swap16([]byte{0xe0, 0x07})
	require.NoError(t, err)
	require.Equal(t, [2]byte{0x07, 0xe0}, got)

	_, err = Swap16([]byte{0x01})
	require.Error(t, err)
	_, err = Swap16([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
}

var fromHexTests = []struct {
	in      string
	want    []byte
	wantErr bool
}{
	{in: "", want: []byte{}},
	{in: "0104010100", want: []byte{0x01, 0x04, 0x01, 0x01, 0x00}},
	{in: "0104 01|0100_0A00", want: []byte{0x01, 0x04, 0x01, 0x01, 0x00, 0x0a, 0x00}},
	{in: "e007", want: []byte{0xe0, 0x07}},
	{in: "ABC", wantErr: true},
	{in: "0G", wantErr: true},
	{in: "zz", wantErr: true},
}

func TestFromHex(t *testing.T) {
	for _, test := range fromHexTests {
		t.Run(test.in, func(t *testing.T) {
			got, err := FromHex(test.in)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"030100E007091507000000005AB011", "0B2200E007091507000000005AB0110002", "00"} {
		b, err := FromHex(s)
		require.NoError(t, err)
		require.Equal(t, s, Hex(b))
	}
}

func TestBitsAndNibbles(t *testing.T) {
	require.Equal(t, uint(1), Bit(0x0200, 9))
	require.Equal(t, uint(0), Bit(0x0200, 8))
	require.Equal(t, uint(1), Bit(0x01, 0))
	require.Equal(t, uint8(0x1), LowNibble(0x51))
	require.Equal(t, uint8(0x5), HighNibble(0x51))
	require.Equal(t, uint8(0xf), HighNibble(0xf0))
	require.Equal(t, uint8(0x0), LowNibble(0xf0))
}

func TestInt16(t *testing.T) {
	v, err := Int16([]byte{0x00, 0x00, 0x80}, 1)
	require.NoError(t, err)
	require.Equal(t, int16(-32768), v)

	u, err := Uint16([]byte{0x05, 0x00}, 0)
	require.NoError(t, err)
	require.Equal(t, uint16(5), u)

	_, err = Uint16([]byte{0x05}, 0)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	_, err = Int16([]byte{0x05, 0x00}, 1)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	_, err = Int16([]byte{0x05, 0x00}, -1)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
