// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shamir.
//
// go-shamir is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package field

import (
	"encoding/hex"
	"fmt"
	"io"
)

// GF256 is the finite field GF(2^8) using AES's representation. The field is
// defined by the irreducible polynomial x^8 + x^4 + x^3 + x + 1 (0x11B).
//
// Addition and subtraction are XOR; multiplication goes through the
// pre-computed logarithm and exponentiation tables below.
type GF256 struct{}

// NewGF256 returns the GF(2^8) field.
func NewGF256() *GF256 { return &GF256{} }

func (GF256) Name() string { return "gf256" }

func (GF256) Zero() byte { return 0 }

func (GF256) One() byte { return 1 }

// FromInt64 keeps the low 8 bits of v.
func (GF256) FromInt64(v int64) byte { return byte(v) }

func (GF256) Add(a, b byte) byte { return a ^ b }

func (GF256) Sub(a, b byte) byte { return a ^ b }

// Neg is the identity in characteristic 2.
func (GF256) Neg(a byte) byte { return a }

func (GF256) Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExpTable[(int(gfLogTable[a])+int(gfLogTable[b]))%255]
}

func (GF256) Inv(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	return gfExpTable[255-int(gfLogTable[a])], nil
}

func (GF256) Equal(a, b byte) bool { return a == b }

func (GF256) IsZero(a byte) bool { return a == 0 }

func (GF256) Rand(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("failed to generate random byte: %w", err)
	}
	return buf[0], nil
}

// Format returns two lowercase hex digits.
func (GF256) Format(a byte) string { return hex.EncodeToString([]byte{a}) }

func (GF256) Parse(s string) (byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 1 {
		return 0, fmt.Errorf("%w: %q is not a hex byte", ErrInvalidElement, s)
	}
	return b[0], nil
}

var (
	gfLogTable [256]byte
	gfExpTable [256]byte
)

func init() {
	// Generator 0x03 walks every non-zero element exactly once.
	var x byte = 1
	for i := 0; i < 255; i++ {
		gfExpTable[i] = x
		gfLogTable[x] = byte(i)
		x = gfMultiply(x, 0x03)
	}
	gfExpTable[255] = gfExpTable[0]
}

// gfMultiply is carry-less "peasant" multiplication, used only to build the
// tables.
func gfMultiply(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		highBit := a & 0x80
		a <<= 1
		if highBit != 0 {
			a ^= 0x1B
		}
		b >>= 1
	}
	return p
}
