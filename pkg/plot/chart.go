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

// Package plot turns a polynomial and a set of share x coordinates into the
// coordinates and labels needed to draw a secret sharing chart. It produces
// data only; rendering is left to the consumer.
package plot

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/jeremyhahn/go-shamir/pkg/field"
	"github.com/jeremyhahn/go-shamir/pkg/polynomial"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultStep   = 1e-3

	// MaxCurvePoints bounds the number of curve samples per chart.
	MaxCurvePoints = 1_000_000

	// YLabels is the number of y axis labels on every chart.
	YLabels = 5

	// TickFormat formats axis labels with zero decimals.
	TickFormat = "%.0f"
)

// Legend colors.
const (
	ColorCurve  = "blue"
	ColorShares = "red"
	ColorSecret = "green"
)

var (
	ErrInvalidChart  = errors.New("plot: invalid chart")
	ErrUnknownPreset = errors.New("plot: unknown preset")
)

// Range is a closed interval on one axis.
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Chart describes one chart to build.
type Chart struct {
	Name   string
	Title  string
	Width  int
	Height int
	X      Range
	Y      Range

	Polynomial *polynomial.Polynomial[*big.Rat]

	// Label is the legend text for the curve. Defaults to the formatted
	// polynomial.
	Label string

	// Shares are the x coordinates of the plotted shares.
	Shares []*big.Rat

	ShowSecret bool

	// Step is the x distance between curve samples. Defaults to DefaultStep.
	Step float64
}

// Point is a plotted coordinate with an optional text label.
type Point struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

type LegendEntry struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// ChartData is everything a renderer needs to draw a chart.
type ChartData struct {
	Name   string `json:"name" yaml:"name"`
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	X      Range  `json:"x_range" yaml:"x_range"`
	Y      Range  `json:"y_range" yaml:"y_range"`

	Polynomial string `json:"polynomial" yaml:"polynomial"`

	// Axis is the vertical line at x = 0.
	Axis   []Point `json:"axis" yaml:"axis"`
	Curve  []Point `json:"curve" yaml:"curve"`
	Shares []Point `json:"shares" yaml:"shares"`
	Secret *Point  `json:"secret,omitempty" yaml:"secret,omitempty"`

	XLabels int      `json:"x_labels" yaml:"x_labels"`
	YLabels int      `json:"y_labels" yaml:"y_labels"`
	XTicks  []string `json:"x_ticks" yaml:"x_ticks"`
	YTicks  []string `json:"y_ticks" yaml:"y_ticks"`

	Legend []LegendEntry `json:"legend" yaml:"legend"`

	// Recovered is the secret interpolated from the share points and
	// RecoveredMatches reports whether it equals p(0).
	Recovered        string `json:"recovered,omitempty" yaml:"recovered,omitempty"`
	RecoveredMatches bool   `json:"recovered_matches" yaml:"recovered_matches"`
}

// Validate reports the first problem with the chart. Zero width, height
// and step mean "use the default".
func (c *Chart) Validate() error {
	if c.Polynomial == nil {
		return fmt.Errorf("%w: %s: no polynomial", ErrInvalidChart, c.Name)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: %s: dimensions %dx%d", ErrInvalidChart, c.Name, c.Width, c.Height)
	}
	if c.Step < 0 || math.IsNaN(c.Step) || math.IsInf(c.Step, 0) {
		return fmt.Errorf("%w: %s: step %v", ErrInvalidChart, c.Name, c.Step)
	}
	if !validRange(c.X) {
		return fmt.Errorf("%w: %s: empty x range %v..%v", ErrInvalidChart, c.Name, c.X.Start, c.X.End)
	}
	if !validRange(c.Y) {
		return fmt.Errorf("%w: %s: empty y range %v..%v", ErrInvalidChart, c.Name, c.Y.Start, c.Y.End)
	}
	step := c.Step
	if step == 0 {
		step = DefaultStep
	}
	if samples := (c.X.End - c.X.Start) / step; !(samples <= MaxCurvePoints) {
		return fmt.Errorf("%w: %s: step %v gives more than %d curve points",
			ErrInvalidChart, c.Name, step, MaxCurvePoints)
	}
	for i, x := range c.Shares {
		if x == nil {
			return fmt.Errorf("%w: %s: share %d is nil", ErrInvalidChart, c.Name, i)
		}
	}
	return nil
}

func validRange(r Range) bool {
	for _, v := range []float64{r.Start, r.End} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Start < r.End
}

// Build computes the chart's coordinates.
func Build(c *Chart) (*ChartData, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil chart", ErrInvalidChart)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	width, height, step := c.Width, c.Height, c.Step
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if step == 0 {
		step = DefaultStep
	}
	label := c.Label
	if label == "" {
		label = polynomial.FormatRational(c.Polynomial)
	}

	data := &ChartData{
		Name:       c.Name,
		Title:      c.Title,
		Width:      width,
		Height:     height,
		X:          c.X,
		Y:          c.Y,
		Polynomial: polynomial.FormatRational(c.Polynomial),
		Axis:       []Point{{X: 0, Y: c.Y.Start}, {X: 0, Y: c.Y.End}},
		Curve:      sampleCurve(c.Polynomial, c.X, step),
		XLabels:    len(c.Shares),
		YLabels:    YLabels,
		Legend:     []LegendEntry{{Label: label, Color: ColorCurve}},
	}

	points := make([]polynomial.Point[*big.Rat], len(c.Shares))
	data.Shares = make([]Point, len(c.Shares))
	for i, x := range c.Shares {
		y := c.Polynomial.Evaluate(x)
		points[i] = polynomial.Point[*big.Rat]{X: x, Y: y}
		data.Shares[i] = labelled(x, y)
	}
	if len(c.Shares) > 0 {
		data.Legend = append(data.Legend, LegendEntry{Label: "Shares", Color: ColorShares})
	}

	secret := c.Polynomial.Secret()
	if c.ShowSecret {
		p := labelled(new(big.Rat), secret)
		data.Secret = &p
		data.XLabels++
		data.Legend = append(data.Legend, LegendEntry{Label: "Secret", Color: ColorSecret})
	}

	data.XTicks = ticks(c.X, data.XLabels)
	data.YTicks = ticks(c.Y, data.YLabels)

	if len(points) > 0 {
		recovered, err := polynomial.InterpolateAtZero[*big.Rat](field.NewRational(0), points)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidChart, c.Name, err)
		}
		data.Recovered = recovered.RatString()
		data.RecoveredMatches = recovered.Cmp(secret) == 0
	}

	return data, nil
}

// sampleCurve evaluates p at start, start+step, ... up to end. Each x is
// computed from its index so rounding does not accumulate.
func sampleCurve(p *polynomial.Polynomial[*big.Rat], r Range, step float64) []Point {
	eval := polynomial.Float64Func(p)
	n := int(math.Floor((r.End-r.Start)/step + 1e-9))
	curve := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		x := r.Start + float64(i)*step
		curve = append(curve, Point{X: x, Y: eval(x)})
	}
	return curve
}

// ticks spreads n labels evenly across r.
func ticks(r Range, n int) []string {
	switch {
	case n <= 0:
		return []string{}
	case n == 1:
		return []string{formatTick((r.Start + r.End) / 2)}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = formatTick(r.Start + float64(i)*(r.End-r.Start)/float64(n-1))
	}
	return out
}

func formatTick(v float64) string {
	s := fmt.Sprintf(TickFormat, v)
	if s == "-0" {
		return "0"
	}
	return s
}

func labelled(x, y *big.Rat) Point {
	fx, _ := x.Float64()
	fy, _ := y.Float64()
	return Point{X: fx, Y: fy, Label: CoordinateLabel(fx, fy)}
}

// CoordinateLabel formats a point the way the chart annotates shares, in
// single precision with at least one decimal: "(3.0, 3.0)", "(-2.5, -50.0)".
func CoordinateLabel(x, y float64) string {
	return "(" + formatCoordinate(x) + ", " + formatCoordinate(y) + ")"
}

func formatCoordinate(v float64) string {
	s := strconv.FormatFloat(float64(float32(v)), 'f', -1, 32)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
