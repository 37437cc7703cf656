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
	"math/big"
	"strconv"
	"strings"
)

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

// FormatRational renders a rational polynomial the way it is written on a
// chart legend: highest degree first, unicode exponents, unit coefficients
// elided and subtraction instead of negative terms.
//
//	[5 2 -3 2] -> "2x³ - 3x² + 2x + 5"
//	[0 1]      -> "x"
func FormatRational(p *Polynomial[*big.Rat]) string {
	var b strings.Builder
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		c := p.coefficients[i]
		if c.Sign() == 0 {
			continue
		}

		abs := new(big.Rat).Abs(c)
		switch {
		case b.Len() == 0 && c.Sign() < 0:
			b.WriteString("-")
		case b.Len() > 0 && c.Sign() < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}

		unit := abs.Cmp(big.NewRat(1, 1)) == 0
		if i == 0 || !unit {
			b.WriteString(abs.RatString())
		}
		if i > 0 {
			b.WriteString("x")
		}
		if i > 1 {
			b.WriteString(superscript(i))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

func superscript(n int) string {
	digits := strconv.Itoa(n)
	out := make([]rune, 0, len(digits))
	for _, d := range digits {
		out = append(out, superscripts[d])
	}
	return string(out)
}

// Float64Func returns a float64 evaluator for a rational polynomial. It is
// meant for dense curve sampling where exactness does not matter; use
// Evaluate for share values.
func Float64Func(p *Polynomial[*big.Rat]) func(float64) float64 {
	coefficients := make([]float64, len(p.coefficients))
	for i, c := range p.coefficients {
		coefficients[i], _ = c.Float64()
	}
	return func(x float64) float64 {
		result := coefficients[len(coefficients)-1]
		for i := len(coefficients) - 2; i >= 0; i-- {
			result = result*x + coefficients[i]
		}
		return result
	}
}
