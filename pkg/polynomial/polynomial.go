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

// Package polynomial implements polynomials over an arbitrary field together
// with the two numerical procedures Shamir's scheme is built on: evaluation
// (Horner's method) and Lagrange interpolation.
//
// A polynomial of degree t-1 is stored as its coefficients, lowest degree
// first:
//
//	p(x) = a0 + a1*x + a2*x^2 + ... + a(t-1)*x^(t-1)
//
// The constant term a0 is the secret. Any t distinct points on the curve
// determine it uniquely, which is what InterpolateAtZero recovers.
package polynomial

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-shamir/pkg/field"
)

var (
	// ErrNoCoefficients is returned when constructing a polynomial without
	// any coefficients.
	ErrNoCoefficients = errors.New("polynomial: at least one coefficient is required")

	// ErrInvalidThreshold is returned when a random polynomial is requested
	// for a threshold below one.
	ErrInvalidThreshold = errors.New("polynomial: threshold must be at least 1")

	// ErrNoPoints is returned when interpolating an empty point set.
	ErrNoPoints = errors.New("polynomial: no points to interpolate")

	// ErrDuplicatePoint is returned when two points share an x coordinate.
	ErrDuplicatePoint = errors.New("polynomial: duplicate x coordinate")
)

// Point is a sample (X, Y) of a polynomial.
type Point[E any] struct {
	X E
	Y E
}

// Polynomial is an immutable polynomial over a field.
type Polynomial[E any] struct {
	field        field.Field[E]
	coefficients []E
}

// New returns the polynomial with the given coefficients, lowest degree
// first. The slice is copied.
func New[E any](f field.Field[E], coefficients ...E) (*Polynomial[E], error) {
	if len(coefficients) == 0 {
		return nil, ErrNoCoefficients
	}
	c := make([]E, len(coefficients))
	copy(c, coefficients)
	return &Polynomial[E]{field: f, coefficients: c}, nil
}

// Random returns a polynomial of degree threshold-1 whose constant term is
// secret and whose remaining coefficients are drawn from r.
func Random[E any](f field.Field[E], secret E, threshold int, r io.Reader) (*Polynomial[E], error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidThreshold, threshold)
	}

	coefficients := make([]E, threshold)
	coefficients[0] = secret
	for i := 1; i < threshold; i++ {
		c, err := f.Rand(r)
		if err != nil {
			return nil, fmt.Errorf("failed to generate coefficient %d: %w", i, err)
		}
		coefficients[i] = c
	}

	return &Polynomial[E]{field: f, coefficients: coefficients}, nil
}

// Field returns the coefficient field.
func (p *Polynomial[E]) Field() field.Field[E] {
	return p.field
}

// Coefficients returns a copy of the coefficients, lowest degree first.
func (p *Polynomial[E]) Coefficients() []E {
	c := make([]E, len(p.coefficients))
	copy(c, p.coefficients)
	return c
}

// Secret returns the constant term.
func (p *Polynomial[E]) Secret() E {
	return p.coefficients[0]
}

// Degree returns the index of the highest non-zero coefficient. Constant
// polynomials, including the zero polynomial, have degree 0.
func (p *Polynomial[E]) Degree() int {
	for i := len(p.coefficients) - 1; i > 0; i-- {
		if !p.field.IsZero(p.coefficients[i]) {
			return i
		}
	}
	return 0
}

// Evaluate returns p(x) using Horner's method:
// p(x) = a0 + x(a1 + x(a2 + ... + x*an))
func (p *Polynomial[E]) Evaluate(x E) E {
	f := p.field
	result := p.coefficients[len(p.coefficients)-1]
	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result = f.Add(f.Mul(result, x), p.coefficients[i])
	}
	return result
}

// Sample evaluates p at every x in xs.
func (p *Polynomial[E]) Sample(xs []E) []Point[E] {
	points := make([]Point[E], len(xs))
	for i, x := range xs {
		points[i] = Point[E]{X: x, Y: p.Evaluate(x)}
	}
	return points
}

// Equal reports whether p and q have the same coefficients once trailing
// zero coefficients are ignored.
func (p *Polynomial[E]) Equal(q *Polynomial[E]) bool {
	a, b := p.coefficients, q.coefficients
	if len(a) < len(b) {
		a, b = b, a
	}
	for i := range a {
		if i < len(b) {
			if !p.field.Equal(a[i], b[i]) {
				return false
			}
			continue
		}
		if !p.field.IsZero(a[i]) {
			return false
		}
	}
	return true
}

// String renders the polynomial with the field's element format, highest
// degree first, e.g. "2*x^3 + -3*x^2 + 2*x + 5".
func (p *Polynomial[E]) String() string {
	s := ""
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		c := p.coefficients[i]
		if p.field.IsZero(c) && !(i == 0 && s == "") {
			continue
		}
		if s != "" {
			s += " + "
		}
		switch i {
		case 0:
			s += p.field.Format(c)
		case 1:
			s += p.field.Format(c) + "*x"
		default:
			s += fmt.Sprintf("%s*x^%d", p.field.Format(c), i)
		}
	}
	return s
}
