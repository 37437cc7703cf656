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

package plot

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/jeremyhahn/go-shamir/pkg/field"
	"github.com/jeremyhahn/go-shamir/pkg/polynomial"
)

// Preset names.
const (
	PresetLine                    = "line"
	PresetQuadratic               = "quadratic"
	PresetCubic                   = "cubic"
	PresetShamir                  = "shamir"
	PresetShamirAlternateSingle   = "shamir_alternate_single"
	PresetShamirAlternateMultiple = "shamir_alternate_multiple"
)

// presetOrder is the order charts appear in the walkthrough.
var presetOrder = []string{
	PresetLine,
	PresetQuadratic,
	PresetCubic,
	PresetShamir,
	PresetShamirAlternateSingle,
	PresetShamirAlternateMultiple,
}

type presetDef struct {
	title        string
	x, y         Range
	coefficients []int64
	shares       []*big.Rat
	showSecret   bool
}

// secretPolynomial is 2x³ - 3x² + 2x + 5, secret 5.
var secretPolynomial = []int64{5, 2, -3, 2}

var presets = map[string]presetDef{
	PresetLine: {
		title:        "Two Points are Uniquely Determined by a Line",
		x:            Range{2.5, 4.5},
		y:            Range{2.0, 4.5},
		coefficients: []int64{0, 1},
		shares:       integers(3, 4),
	},
	PresetQuadratic: {
		title:        "Three Points are Uniquely Determined by a Parabola",
		x:            Range{-5.1, 5.1},
		y:            Range{-1, 26},
		coefficients: []int64{0, 0, 1},
		shares:       integers(-4, 1, 4),
	},
	PresetCubic: {
		title:        "Four Points are Uniquely Determined by a Cubic",
		x:            Range{-2.5, 2.5},
		y:            Range{-20, 20},
		coefficients: []int64{0, 0, 0, 1},
		shares:       integers(-2, -1, 1, 2),
	},
	PresetShamir: {
		title:        "Shamir's Secret Sharing",
		x:            Range{-2.1, 2.4},
		y:            Range{-30, 20},
		coefficients: secretPolynomial,
		shares:       integers(-2, -1, 1, 2),
		showSecret:   true,
	},
	PresetShamirAlternateSingle: {
		title:        "Shamir's Secret Sharing: Alternate Single Share",
		x:            Range{-1.1, 3.4},
		y:            Range{-30, 60},
		coefficients: secretPolynomial,
		shares:       integers(-1, 1, 2, 3),
		showSecret:   true,
	},
	PresetShamirAlternateMultiple: {
		title:        "Shamir's Secret Sharing: Alternate Multiple Shares",
		x:            Range{-2.7, 3.0},
		y:            Range{-70, 60},
		coefficients: secretPolynomial,
		shares: []*big.Rat{
			big.NewRat(-5, 2), big.NewRat(-3, 2), big.NewRat(3, 2), big.NewRat(5, 2),
		},
		showSecret: true,
	},
}

func integers(values ...int64) []*big.Rat {
	out := make([]*big.Rat, len(values))
	for i, v := range values {
		out[i] = big.NewRat(v, 1)
	}
	return out
}

// PresetNames returns the preset names in walkthrough order.
func PresetNames() []string {
	names := make([]string, len(presetOrder))
	copy(names, presetOrder)
	return names
}

// Preset returns a fresh copy of the named chart.
func Preset(name string) (*Chart, error) {
	def, ok := presets[name]
	if !ok {
		known := make([]string, 0, len(presets))
		for k := range presets {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownPreset, name, known)
	}

	q := field.NewRational(0)
	coefficients := make([]*big.Rat, len(def.coefficients))
	for i, c := range def.coefficients {
		coefficients[i] = q.FromInt64(c)
	}
	poly, err := polynomial.New[*big.Rat](q, coefficients...)
	if err != nil {
		return nil, err
	}

	shares := make([]*big.Rat, len(def.shares))
	for i, x := range def.shares {
		shares[i] = new(big.Rat).Set(x)
	}

	return &Chart{
		Name:       name,
		Title:      def.title,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		X:          def.x,
		Y:          def.y,
		Polynomial: poly,
		Shares:     shares,
		ShowSecret: def.showSecret,
		Step:       DefaultStep,
	}, nil
}

// Presets returns every preset chart in walkthrough order.
func Presets() []*Chart {
	charts := make([]*Chart, 0, len(presetOrder))
	for _, name := range presetOrder {
		c, err := Preset(name)
		if err != nil {
			panic(err) // presets are static
		}
		charts = append(charts, c)
	}
	return charts
}
