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

// Package field defines the arithmetic domains Shamir polynomials are built
// over.
//
// Three fields are provided:
//
//   - Rational: exact arithmetic over the rationals (*big.Rat). This is the
//     "real number" domain used for plotting; results never lose precision.
//   - Prime: integers modulo a prime (*big.Int), the classic setting for
//     Shamir's scheme. The default modulus is the Mersenne prime 2^127-1.
//   - GF256: GF(2^8) with the AES reduction polynomial, used to share byte
//     strings one byte at a time.
//
// All operations are value semantic: inputs are never mutated and every
// result is a freshly allocated element.
package field

import (
	"errors"
	"io"
)

var (
	// ErrDivisionByZero is returned when inverting the additive identity.
	ErrDivisionByZero = errors.New("field: division by zero")

	// ErrInvalidElement is returned when a string cannot be parsed into a
	// field element.
	ErrInvalidElement = errors.New("field: invalid element")

	// ErrInvalidModulus is returned when a prime field is constructed with a
	// modulus that is not an odd prime.
	ErrInvalidModulus = errors.New("field: invalid modulus")
)

// Field is the set of operations a polynomial needs from its coefficient
// domain.
type Field[E any] interface {
	// Name returns a short identifier, e.g. "rational", "prime", "gf256".
	Name() string

	Zero() E
	One() E

	// FromInt64 maps an integer into the field.
	FromInt64(v int64) E

	Add(a, b E) E
	Sub(a, b E) E
	Neg(a E) E
	Mul(a, b E) E

	// Inv returns the multiplicative inverse of a, or ErrDivisionByZero.
	Inv(a E) (E, error)

	Equal(a, b E) bool
	IsZero(a E) bool

	// Rand draws a random element using r as the entropy source.
	Rand(r io.Reader) (E, error)

	// Format and Parse convert elements to and from their canonical text
	// form. Parse(Format(e)) is equal to e.
	Format(a E) string
	Parse(s string) (E, error)
}

// Div returns a / b in f.
func Div[E any](f Field[E], a, b E) (E, error) {
	inv, err := f.Inv(b)
	if err != nil {
		var zero E
		return zero, err
	}
	return f.Mul(a, inv), nil
}

// Pow returns a^n in f for n >= 0 using square and multiply.
func Pow[E any](f Field[E], a E, n int) E {
	result := f.One()
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = f.Mul(result, base)
		}
		base = f.Mul(base, base)
		n >>= 1
	}
	return result
}
