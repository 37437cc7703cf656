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
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRational_Arithmetic(t *testing.T) {
	q := NewRational(0)

	a := big.NewRat(3, 2)
	b := big.NewRat(-1, 4)

	assert.Equal(t, "5/4", q.Format(q.Add(a, b)))
	assert.Equal(t, "7/4", q.Format(q.Sub(a, b)))
	assert.Equal(t, "-3/8", q.Format(q.Mul(a, b)))
	assert.Equal(t, "-3/2", q.Format(q.Neg(a)))

	inv, err := q.Inv(b)
	require.NoError(t, err)
	assert.Equal(t, "-4", q.Format(inv))

	// Inputs are never mutated
	assert.Equal(t, "3/2", a.RatString())
	assert.Equal(t, "-1/4", b.RatString())
}

func TestRational_InvZero(t *testing.T) {
	q := NewRational(0)
	_, err := q.Inv(q.Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Div[*big.Rat](q, q.One(), q.Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestRational_Parse(t *testing.T) {
	q := NewRational(0)

	tests := []struct {
		in   string
		want string
	}{
		{"5", "5"},
		{"-3", "-3"},
		{"3/2", "3/2"},
		{"-2.5", "-5/2"},
		{"0.001", "1/1000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := q.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Format(v))
		})
	}

	_, err := q.Parse("two")
	assert.ErrorIs(t, err, ErrInvalidElement)
}

func TestRational_FromFloat64(t *testing.T) {
	q := NewRational(0)

	v, err := q.FromFloat64(-2.5)
	require.NoError(t, err)
	assert.Equal(t, "-5/2", q.Format(v))
	assert.Equal(t, -2.5, q.Float64(v))
}

func TestRational_RandWithinBound(t *testing.T) {
	q := NewRational(3)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		v, err := q.Rand(testReader(i))
		require.NoError(t, err)
		require.True(t, v.IsInt())
		n := v.Num().Int64()
		require.GreaterOrEqual(t, n, int64(-3))
		require.LessOrEqual(t, n, int64(3))
		seen[q.Format(v)] = true
	}
	assert.Len(t, seen, 7)
}

func TestNewPrime(t *testing.T) {
	f, err := NewPrime(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Modulus().Cmp(DefaultModulus))

	_, err = NewPrime(big.NewInt(15))
	assert.ErrorIs(t, err, ErrInvalidModulus)

	_, err = NewPrime(big.NewInt(2))
	assert.ErrorIs(t, err, ErrInvalidModulus)

	small, err := NewPrime(big.NewInt(257))
	require.NoError(t, err)
	assert.Equal(t, "257", small.Modulus().String())
}

func TestPrime_Arithmetic(t *testing.T) {
	f, err := NewPrime(big.NewInt(13))
	require.NoError(t, err)

	assert.Equal(t, "12", f.Format(f.FromInt64(-1)))
	assert.Equal(t, "2", f.Format(f.Add(big.NewInt(7), big.NewInt(8))))
	assert.Equal(t, "12", f.Format(f.Sub(big.NewInt(3), big.NewInt(4))))
	assert.Equal(t, "4", f.Format(f.Mul(big.NewInt(5), big.NewInt(6))))
	assert.Equal(t, "9", f.Format(f.Neg(big.NewInt(4))))
	assert.True(t, f.Equal(big.NewInt(14), big.NewInt(1)))
	assert.True(t, f.IsZero(big.NewInt(26)))

	for a := int64(1); a < 13; a++ {
		inv, err := f.Inv(big.NewInt(a))
		require.NoError(t, err)
		assert.True(t, f.Equal(f.Mul(big.NewInt(a), inv), f.One()), "a=%d", a)
	}

	_, err = f.Inv(big.NewInt(13))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPrime_ParseAndBytes(t *testing.T) {
	f, err := NewPrime(big.NewInt(101))
	require.NoError(t, err)

	v, err := f.Parse("100")
	require.NoError(t, err)
	assert.Equal(t, "100", f.Format(v))

	for _, out := range []string{"101", "205", "-1"} {
		_, err = f.Parse(out)
		assert.ErrorIs(t, err, ErrInvalidElement, out)
	}

	_, err = f.Parse("0x10")
	assert.ErrorIs(t, err, ErrInvalidElement)

	v, err = f.FromBytes([]byte{100})
	require.NoError(t, err)
	assert.Equal(t, "100", f.Format(v))

	_, err = f.FromBytes([]byte{101})
	assert.ErrorIs(t, err, ErrInvalidElement)
}

func TestPrime_RandBelowModulus(t *testing.T) {
	f, err := NewPrime(big.NewInt(7))
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		v, err := f.Rand(testReader(i))
		require.NoError(t, err)
		assert.True(t, v.Sign() >= 0 && v.Cmp(big.NewInt(7)) < 0)
	}
}

func TestGF256_Arithmetic(t *testing.T) {
	f := NewGF256()

	assert.Equal(t, byte(0), f.Add(0x53, 0x53))
	assert.Equal(t, byte(0x53^0xCA), f.Sub(0x53, 0xCA))
	assert.Equal(t, byte(0), f.Mul(0, 0x42))
	assert.Equal(t, byte(0x42), f.Mul(1, 0x42))

	// Known AES field pair: 0x53 * 0xCA = 0x01
	assert.Equal(t, byte(0x01), f.Mul(0x53, 0xCA))

	for a := 1; a < 256; a++ {
		inv, err := f.Inv(byte(a))
		require.NoError(t, err)
		assert.Equal(t, byte(1), f.Mul(byte(a), inv), "a=%#x", a)
		assert.Equal(t, gfMultiply(byte(a), inv), f.Mul(byte(a), inv))
	}

	_, err := f.Inv(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestGF256_FormatParse(t *testing.T) {
	f := NewGF256()
	for a := 0; a < 256; a++ {
		v, err := f.Parse(f.Format(byte(a)))
		require.NoError(t, err)
		assert.Equal(t, byte(a), v)
	}
	_, err := f.Parse("abcd")
	assert.ErrorIs(t, err, ErrInvalidElement)
}

func TestPow(t *testing.T) {
	q := NewRational(0)
	assert.Equal(t, "1", q.Format(Pow[*big.Rat](q, big.NewRat(5, 1), 0)))
	assert.Equal(t, "-8", q.Format(Pow[*big.Rat](q, big.NewRat(-2, 1), 3)))
	assert.Equal(t, "1/16", q.Format(Pow[*big.Rat](q, big.NewRat(1, 2), 4)))

	f := NewGF256()
	assert.Equal(t, f.Mul(f.Mul(0x57, 0x57), 0x57), Pow[byte](f, 0x57, 3))
}

// testReader returns a deterministic byte stream for reproducible draws.
func testReader(seed int) *bytes.Reader {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(seed*31 + i*17 + 7)
	}
	return bytes.NewReader(buf)
}
