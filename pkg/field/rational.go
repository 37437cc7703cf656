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
	"fmt"
	"io"
	"math/big"
)

// DefaultRationalBound is the default magnitude limit for random rational
// coefficients.
const DefaultRationalBound = 10

// Rational is the field of rational numbers backed by *big.Rat.
//
// Rational numbers make the "real valued" polynomials of a chart exact: a
// share taken at x = -2.5 interpolates back to the secret without rounding.
// Random elements are small integers, which keeps curves plottable but makes
// the field unsuitable for protecting real secrets; use Prime or GF256.
type Rational struct {
	// Bound limits random elements to integers in [-Bound, Bound].
	// Zero means DefaultRationalBound.
	Bound int64
}

// NewRational returns a rational field whose random elements are integers in
// [-bound, bound].
func NewRational(bound int64) *Rational {
	return &Rational{Bound: bound}
}

func (q *Rational) Name() string { return "rational" }

func (q *Rational) Zero() *big.Rat { return new(big.Rat) }

func (q *Rational) One() *big.Rat { return big.NewRat(1, 1) }

func (q *Rational) FromInt64(v int64) *big.Rat { return big.NewRat(v, 1) }

func (q *Rational) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }

func (q *Rational) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }

func (q *Rational) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }

func (q *Rational) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func (q *Rational) Inv(a *big.Rat) (*big.Rat, error) {
	if a.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Rat).Inv(a), nil
}

func (q *Rational) Equal(a, b *big.Rat) bool { return a.Cmp(b) == 0 }

func (q *Rational) IsZero(a *big.Rat) bool { return a.Sign() == 0 }

// Rand returns a uniformly random integer in [-Bound, Bound].
func (q *Rational) Rand(r io.Reader) (*big.Rat, error) {
	bound := q.Bound
	if bound <= 0 {
		bound = DefaultRationalBound
	}
	n, err := randInt(r, big.NewInt(2*bound+1))
	if err != nil {
		return nil, fmt.Errorf("failed to generate random rational: %w", err)
	}
	n.Sub(n, big.NewInt(bound))
	return new(big.Rat).SetInt(n), nil
}

// Format returns "a/b", or just "a" for integers.
func (q *Rational) Format(a *big.Rat) string { return a.RatString() }

// Parse accepts integers, fractions ("3/2") and decimals ("-2.5").
func (q *Rational) Parse(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a rational number", ErrInvalidElement, s)
	}
	return r, nil
}

// FromFloat64 converts a finite float64 into an exact rational.
func (q *Rational) FromFloat64(v float64) (*big.Rat, error) {
	r := new(big.Rat)
	if r.SetFloat64(v) == nil {
		return nil, fmt.Errorf("%w: %v is not finite", ErrInvalidElement, v)
	}
	return r, nil
}

// Float64 returns the nearest float64 to a.
func (q *Rational) Float64(a *big.Rat) float64 {
	f, _ := a.Float64()
	return f
}
