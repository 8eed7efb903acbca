// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire provides the byte and bit level helpers shared by the
// Bluetooth GATT characteristic decoders.
package wire

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Swap16 returns the two bytes of b in reverse order.
func Swap16(b []byte) ([2]byte, error) {
	if len(b) != 2 {
		return [2]byte{}, fmt.Errorf("swap16: need 2 bytes, have %d", len(b))
	}
	return [2]byte{b[1], b[0]}, nil
}

// Hex returns the upper-case hexadecimal encoding of b.
func Hex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// FromHex decodes a hexadecimal string. Spaces, underscores, commas and
// vertical bars are ignored so that annotated captures such as
// "0104 01|0100 0A00" can be used directly. Odd length or non-hex
// input is an error.
func FromHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '_', ',', '|':
			return -1
		}
		return r
	}, s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd length hex string: %d", len(s))
	}
	return hex.DecodeString(s)
}

// Bit returns bit pos of v as 0 or 1.
func Bit(v uint, pos uint) uint {
	return (v >> pos) & 1
}

// LowNibble returns the least significant four bits of b.
func LowNibble(b byte) uint8 { return b & 0x0f }

// HighNibble returns the most significant four bits of b.
func HighNibble(b byte) uint8 { return b >> 4 }

// Uint16 returns the little-endian unsigned 16-bit value at off.
func Uint16(b []byte, off int) (uint16, error) {
	if off < 0 || len(b)-off < 2 {
		return 0, io.ErrUnexpectedEOF
	}
	return binary.LittleEndian.Uint16(b[off:]), nil
}

// Int16 returns the little-endian signed 16-bit value at off.
func Int16(b []byte, off int) (int16, error) {
	v, err := Uint16(b, off)
	return int16(v), err
}
