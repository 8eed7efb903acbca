// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// SFloat is an IEEE 11073-20601 16-bit floating point value. The upper
// four bits hold a two's complement base 10 exponent and the lower twelve
// bits a two's complement mantissa.
type SFloat uint16

// Special SFLOAT values. They are recognised by their mantissa bits.
const (
	SFloatNaN    SFloat = 0x07ff
	SFloatPosInf SFloat = 0x0800
	SFloatNegInf SFloat = 0x0801
	SFloatNRes   SFloat = 0x0802
)

// Finite SFLOAT limits. Mantissas outside these bounds are special.
const (
	MaxSFloatMantissa = 0x07fe
	MinSFloatMantissa = -0x07fd
	MaxSFloatExponent = 7
	MinSFloatExponent = -8
)

// ErrSFloatRange is returned when a value cannot be represented as a
// finite SFLOAT.
var ErrSFloatRange = errors.New("sfloat: value out of range")

// MakeSFloat returns the SFLOAT mantissa×10^exponent.
func MakeSFloat(mantissa, exponent int) (SFloat, error) {
	if mantissa < MinSFloatMantissa || MaxSFloatMantissa < mantissa {
		return 0, fmt.Errorf("%w: mantissa %d", ErrSFloatRange, mantissa)
	}
	if exponent < MinSFloatExponent || MaxSFloatExponent < exponent {
		return 0, fmt.Errorf("%w: exponent %d", ErrSFloatRange, exponent)
	}
	return SFloat(uint16(exponent&0xf)<<12 | uint16(mantissa&0xfff)), nil
}

// ReadSFloat returns the little-endian SFLOAT at off.
func ReadSFloat(b []byte, off int) (SFloat, error) {
	v, err := Uint16(b, off)
	return SFloat(v), err
}

// Mantissa returns the signed mantissa of f.
func (f SFloat) Mantissa() int {
	m := int(f & 0x0fff)
	if m >= 0x0800 {
		m -= 0x1000
	}
	return m
}

// Exponent returns the signed base 10 exponent of f.
func (f SFloat) Exponent() int {
	e := int(f >> 12)
	if e >= 8 {
		e -= 16
	}
	return e
}

// IsSpecial returns whether f is one of the NaN, NRes or infinity
// encodings.
func (f SFloat) IsSpecial() bool {
	switch f & 0x0fff {
	case SFloatNaN, SFloatNRes, SFloatPosInf, SFloatNegInf:
		return true
	}
	return false
}

// Float32 returns the value of f. NaN and NRes are returned as NaN.
func (f SFloat) Float32() float32 {
	switch f & 0x0fff {
	case SFloatNaN, SFloatNRes:
		return float32(math.NaN())
	case SFloatPosInf:
		return float32(math.Inf(1))
	case SFloatNegInf:
		return float32(math.Inf(-1))
	}
	return float32(scale(float64(f.Mantissa()), f.Exponent()))
}

func (f SFloat) String() string {
	return fmt.Sprint(f.Float32())
}

// SFloatFromFloat32 returns the SFLOAT closest to v. Values that are
// exactly representable are encoded exactly with the smallest mantissa
// magnitude.
func SFloatFromFloat32(v float32) (SFloat, error) {
	switch {
	case math.IsNaN(float64(v)):
		return SFloatNaN, nil
	case math.IsInf(float64(v), 1):
		return SFloatPosInf, nil
	case math.IsInf(float64(v), -1):
		return SFloatNegInf, nil
	case v == 0:
		return 0, nil
	}
	var (
		best  SFloat
		found bool
	)
	for e := MinSFloatExponent; e <= MaxSFloatExponent; e++ {
		m := math.Round(scale(float64(v), -e))
		if m < MinSFloatMantissa || MaxSFloatMantissa < m {
			continue
		}
		s, err := MakeSFloat(int(m), e)
		if err != nil {
			continue
		}
		if s.Float32() == v {
			mi := int(m)
			for mi != 0 && mi%10 == 0 && e < MaxSFloatExponent {
				mi /= 10
				e++
			}
			return MakeSFloat(mi, e)
		}
		if !found {
			best, found = s, true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %v", ErrSFloatRange, v)
	}
	return best, nil
}

// scale returns v×10^e, dividing for negative exponents so that
// decimal fractions round correctly.
func scale(v float64, e int) float64 {
	if e < 0 {
		return v / math.Pow10(-e)
	}
	return v * math.Pow10(e)
}

// PutSFloat writes f to dst in little-endian order.
func PutSFloat(dst []byte, f SFloat) error {
	if len(dst) < 2 {
		return io.ErrShortBuffer
	}
	dst[0] = byte(f)
	dst[1] = byte(f >> 8)
	return nil
}
