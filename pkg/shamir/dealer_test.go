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

package shamir

import (
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-shamir/pkg/crypto/rand"
	"github.com/jeremyhahn/go-shamir/pkg/field"
)

func seeded(t *testing.T, seed string) io.Reader {
	t.Helper()
	r, err := rand.NewResolver(&rand.Config{Mode: rand.ModeDeterministic, Seed: seed})
	require.NoError(t, err)
	return r
}

func TestNewDealer(t *testing.T) {
	_, err := NewDealer[*big.Rat](nil, nil)
	assert.ErrorIs(t, err, ErrNilField)

	d, err := NewDealer[*big.Rat](field.NewRational(0), nil)
	require.NoError(t, err)
	assert.Equal(t, "rational", d.Field().Name())
}

func TestDealer_SplitCombine_AllFields(t *testing.T) {
	t.Run("rational", func(t *testing.T) {
		f := field.NewRational(0)
		d, err := NewDealer[*big.Rat](f, &DealerConfig{Rand: seeded(t, "rational")})
		require.NoError(t, err)
		secret := big.NewRat(-7, 3)
		shares, err := d.Split(secret, 3, 5)
		require.NoError(t, err)
		require.Len(t, shares, 5)

		got, err := d.Combine(shares[2:])
		require.NoError(t, err)
		assert.Equal(t, 0, secret.Cmp(got))
	})

	t.Run("prime", func(t *testing.T) {
		f := field.DefaultPrime()
		d, err := NewDealer[*big.Int](f, &DealerConfig{Rand: seeded(t, "prime")})
		require.NoError(t, err)
		secret := big.NewInt(123456789)
		shares, err := d.Split(secret, 4, 6)
		require.NoError(t, err)

		got, err := d.Combine([]*Share[*big.Int]{shares[5], shares[0], shares[3], shares[1]})
		require.NoError(t, err)
		assert.Equal(t, 0, secret.Cmp(got))
	})

	t.Run("gf256", func(t *testing.T) {
		f := field.NewGF256()
		d, err := NewDealer[byte](f, &DealerConfig{Rand: seeded(t, "gf256")})
		require.NoError(t, err)
		shares, err := d.Split(0xA7, 2, 3)
		require.NoError(t, err)

		got, err := d.Combine(shares[1:])
		require.NoError(t, err)
		assert.Equal(t, byte(0xA7), got)
	})
}

func TestDealer_EveryThresholdSubsetRecovers(t *testing.T) {
	f := field.DefaultPrime()
	d, err := NewDealer[*big.Int](f, &DealerConfig{Rand: seeded(t, "subsets")})
	require.NoError(t, err)

	secret := big.NewInt(42)
	for threshold := 1; threshold <= 5; threshold++ {
		shares, err := d.Split(secret, threshold, 5)
		require.NoError(t, err)
		for start := 0; start+threshold <= len(shares); start++ {
			got, err := d.Combine(shares[start : start+threshold])
			require.NoError(t, err, "threshold %d start %d", threshold, start)
			assert.Equal(t, 0, secret.Cmp(got))
		}
	}
}

func TestDealer_Split_InvalidParameters(t *testing.T) {
	d, err := NewDealer[*big.Rat](field.NewRational(0), nil)
	require.NoError(t, err)

	tests := []struct {
		name      string
		threshold int
		total     int
		wantErr   error
	}{
		{"zero threshold", 0, 5, ErrInvalidThreshold},
		{"negative threshold", -1, 5, ErrInvalidThreshold},
		{"threshold above total", 4, 3, ErrInvalidTotal},
		{"negative total", 2, -1, ErrInvalidTotal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Split(big.NewRat(1, 1), tt.threshold, tt.total)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDealer_Deal(t *testing.T) {
	f := field.NewRational(0)
	d, err := NewDealer[*big.Rat](f, &DealerConfig{Rand: seeded(t, "deal")})
	require.NoError(t, err)

	xs := []*big.Rat{big.NewRat(-5, 2), big.NewRat(-3, 2), big.NewRat(3, 2), big.NewRat(5, 2)}
	poly, shares, err := d.Deal(big.NewRat(5, 1), 4, xs)
	require.NoError(t, err)
	assert.Equal(t, 0, big.NewRat(5, 1).Cmp(poly.Secret()))
	for i, share := range shares {
		assert.Equal(t, 0, xs[i].Cmp(share.X))
		assert.Equal(t, 0, poly.Evaluate(xs[i]).Cmp(share.Y))
		assert.Equal(t, shares[0].SetID, share.SetID)
	}

	_, _, err = d.Deal(big.NewRat(5, 1), 2, []*big.Rat{big.NewRat(1, 1), new(big.Rat)})
	assert.ErrorIs(t, err, ErrInvalidShareX)

	_, _, err = d.Deal(big.NewRat(5, 1), 2, []*big.Rat{big.NewRat(2, 1), big.NewRat(4, 2)})
	assert.ErrorIs(t, err, ErrDuplicateShare)
}

func TestDealer_Combine_Errors(t *testing.T) {
	f := field.DefaultPrime()
	d, err := NewDealer[*big.Int](f, &DealerConfig{Rand: seeded(t, "errors")})
	require.NoError(t, err)

	shares, err := d.Split(big.NewInt(99), 3, 5)
	require.NoError(t, err)
	other, err := d.Split(big.NewInt(99), 3, 5)
	require.NoError(t, err)

	t.Run("no shares", func(t *testing.T) {
		_, err := d.Combine(nil)
		assert.ErrorIs(t, err, ErrInsufficientShares)
	})

	t.Run("below threshold", func(t *testing.T) {
		_, err := d.Combine(shares[:2])
		assert.ErrorIs(t, err, ErrInsufficientShares)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := d.Combine([]*Share[*big.Int]{shares[0], shares[1], shares[0]})
		assert.ErrorIs(t, err, ErrDuplicateShare)
	})

	t.Run("mixed splits", func(t *testing.T) {
		_, err := d.Combine([]*Share[*big.Int]{shares[0], shares[1], other[2]})
		assert.ErrorIs(t, err, ErrInconsistentShares)
	})

	t.Run("nil share", func(t *testing.T) {
		_, err := d.Combine([]*Share[*big.Int]{shares[0], nil, shares[2]})
		assert.Error(t, err)
	})
}

func TestDealer_Verify(t *testing.T) {
	f := field.NewRational(0)
	d, err := NewDealer[*big.Rat](f, &DealerConfig{Rand: seeded(t, "verify")})
	require.NoError(t, err)

	shares, err := d.Split(big.NewRat(5, 1), 3, 5)
	require.NoError(t, err)
	assert.NoError(t, d.Verify(shares))

	tampered := *shares[4]
	tampered.Y = new(big.Rat).Add(tampered.Y, big.NewRat(1, 1))
	bad := append(append([]*Share[*big.Rat]{}, shares[:4]...), &tampered)
	assert.ErrorIs(t, d.Verify(bad), ErrInconsistentShares)
}

func TestDealer_EvaluationIsDeterministic(t *testing.T) {
	f := field.NewRational(0)
	d, err := NewDealer[*big.Rat](f, &DealerConfig{Rand: seeded(t, "determinism")})
	require.NoError(t, err)

	poly, _, err := d.Deal(big.NewRat(3, 1), 3, []*big.Rat{big.NewRat(1, 1), big.NewRat(2, 1), big.NewRat(3, 1)})
	require.NoError(t, err)

	x := big.NewRat(7, 4)
	assert.Equal(t, 0, poly.Evaluate(x).Cmp(poly.Evaluate(x)))
}

func TestDealer_SameSeedSameShares(t *testing.T) {
	f := field.DefaultPrime()
	d1, err := NewDealer[*big.Int](f, &DealerConfig{Rand: seeded(t, "same")})
	require.NoError(t, err)
	d2, err := NewDealer[*big.Int](f, &DealerConfig{Rand: seeded(t, "same")})
	require.NoError(t, err)

	s1, err := d1.Split(big.NewInt(7), 3, 3)
	require.NoError(t, err)
	s2, err := d2.Split(big.NewInt(7), 3, 3)
	require.NoError(t, err)
	for i := range s1 {
		assert.Equal(t, 0, s1[i].Y.Cmp(s2[i].Y))
		assert.Equal(t, s1[i].SetID, s2[i].SetID)
	}
}

func TestShare_Validate(t *testing.T) {
	s := &Share[byte]{Index: 1, Threshold: 2, Total: 3}
	assert.NoError(t, s.Validate())

	s.Index = 4
	assert.Error(t, s.Validate())

	s = &Share[byte]{Index: 1, Threshold: 0, Total: 3}
	assert.ErrorIs(t, s.Validate(), ErrInvalidThreshold)

	s = &Share[byte]{Index: 1, Threshold: 4, Total: 3}
	assert.ErrorIs(t, s.Validate(), ErrInvalidTotal)
}
