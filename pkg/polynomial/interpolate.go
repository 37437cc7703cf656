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

package polynomial

import (
	"fmt"

	"github.com/jeremyhahn/go-shamir/pkg/field"
)

// Interpolate evaluates at x the unique polynomial of degree len(points)-1
// passing through points, using the Lagrange form:
//
//	L(x) = sum_i y_i * prod_{j != i} (x - x_j) / (x_i - x_j)
func Interpolate[E any](f field.Field[E], points []Point[E], x E) (E, error) {
	var zero E
	if err := checkPoints(f, points); err != nil {
		return zero, err
	}

	result := f.Zero()
	for i := range points {
		numerator := f.One()
		denominator := f.One()
		for j := range points {
			if i == j {
				continue
			}
			numerator = f.Mul(numerator, f.Sub(x, points[j].X))
			denominator = f.Mul(denominator, f.Sub(points[i].X, points[j].X))
		}

		basis, err := field.Div(f, numerator, denominator)
		if err != nil {
			return zero, fmt.Errorf("lagrange basis %d: %w", i, err)
		}
		result = f.Add(result, f.Mul(points[i].Y, basis))
	}

	return result, nil
}

// InterpolateAtZero recovers the constant term of the polynomial through
// points. With points taken from a Shamir split this is the secret.
func InterpolateAtZero[E any](f field.Field[E], points []Point[E]) (E, error) {
	return Interpolate(f, points, f.Zero())
}

// Fit returns the coefficients of the unique polynomial of degree at most
// len(points)-1 passing through points.
//
// Each Lagrange basis polynomial is expanded by multiplying the running
// product with (x - x_j) one factor at a time.
func Fit[E any](f field.Field[E], points []Point[E]) (*Polynomial[E], error) {
	if err := checkPoints(f, points); err != nil {
		return nil, err
	}

	n := len(points)
	coefficients := make([]E, n)
	for k := range coefficients {
		coefficients[k] = f.Zero()
	}

	for i := range points {
		basis := []E{f.One()}
		denominator := f.One()
		for j := range points {
			if i == j {
				continue
			}
			basis = mulLinear(f, basis, points[j].X)
			denominator = f.Mul(denominator, f.Sub(points[i].X, points[j].X))
		}

		scale, err := field.Div(f, points[i].Y, denominator)
		if err != nil {
			return nil, fmt.Errorf("lagrange basis %d: %w", i, err)
		}
		for k := range basis {
			coefficients[k] = f.Add(coefficients[k], f.Mul(basis[k], scale))
		}
	}

	return &Polynomial[E]{field: f, coefficients: coefficients}, nil
}

// mulLinear returns c(x) * (x - root).
func mulLinear[E any](f field.Field[E], c []E, root E) []E {
	out := make([]E, len(c)+1)
	for k := range out {
		out[k] = f.Zero()
	}
	for k, ck := range c {
		out[k+1] = f.Add(out[k+1], ck)
		out[k] = f.Sub(out[k], f.Mul(ck, root))
	}
	return out
}

func checkPoints[E any](f field.Field[E], points []Point[E]) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if f.Equal(points[i].X, points[j].X) {
				return fmt.Errorf("%w: %s", ErrDuplicatePoint, f.Format(points[i].X))
			}
		}
	}
	return nil
}
