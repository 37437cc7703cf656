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

package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shamir/pkg/adapters/logger"
	"github.com/jeremyhahn/go-shamir/pkg/field"
	"github.com/jeremyhahn/go-shamir/pkg/plot"
	"github.com/jeremyhahn/go-shamir/pkg/polynomial"
)

func newEvalCmd(a *app) *cobra.Command {
	var coefficients, xs []string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a rational polynomial exactly",
		Long: `Evaluate a rational polynomial at the given x coordinates.
Coefficients are listed lowest degree first, so the default
5,2,-3,2 is 2x³ - 3x² + 2x + 5.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := field.NewRational(0)
			cs := make([]*big.Rat, len(coefficients))
			for i, s := range coefficients {
				c, err := q.Parse(s)
				if err != nil {
					return fmt.Errorf("invalid coefficient %q: %w", s, err)
				}
				cs[i] = c
			}
			poly, err := polynomial.New[*big.Rat](q, cs...)
			if err != nil {
				return err
			}

			result := &EvalResult{
				Polynomial: polynomial.FormatRational(poly),
				Degree:     poly.Degree(),
				Secret:     q.Format(poly.Secret()),
				Points:     make([]EvalPoint, len(xs)),
			}
			for i, s := range xs {
				x, err := q.Parse(s)
				if err != nil {
					return fmt.Errorf("invalid x coordinate %q: %w", s, err)
				}
				y := poly.Evaluate(x)
				result.Points[i] = EvalPoint{
					X:     q.Format(x),
					Y:     q.Format(y),
					Label: plot.CoordinateLabel(q.Float64(x), q.Float64(y)),
				}
			}
			a.logger.Debug("evaluated polynomial",
				logger.String("polynomial", result.Polynomial),
				logger.Int("points", len(xs)))
			return a.printer(cmd).PrintEvaluation(result)
		},
	}

	cmd.Flags().StringSliceVarP(&coefficients, "coefficients", "c", []string{"5", "2", "-3", "2"},
		"coefficients, lowest degree first")
	cmd.Flags().StringSliceVar(&xs, "x", []string{"-2", "-1", "1", "2"}, "x coordinates")

	return cmd
}

func newChartsCmd(a *app) *cobra.Command {
	chartsCmd := &cobra.Command{
		Use:   "charts",
		Short: "Generate secret sharing chart data",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			charts, err := a.settings.ChartList()
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintChartList(charts)
		},
	}

	buildCmd := &cobra.Command{
		Use:   "build [name...]",
		Short: "Build chart coordinates",
		Long: `Build the coordinates, labels and legend of the named charts, or of
every configured chart when no name is given. Use -o json or -o yaml for
the full data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			charts, err := a.settings.ChartList()
			if err != nil {
				return err
			}
			charts, err = selectCharts(charts, args)
			if err != nil {
				return err
			}

			generator := plot.NewGenerator(&plot.GeneratorConfig{Logger: a.logger})
			data, err := generator.Build(charts)
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintCharts(data)
		},
	}

	chartsCmd.AddCommand(listCmd, buildCmd)
	return chartsCmd
}

func selectCharts(charts []*plot.Chart, names []string) ([]*plot.Chart, error) {
	if len(names) == 0 {
		return charts, nil
	}
	byName := make(map[string]*plot.Chart, len(charts))
	for _, c := range charts {
		byName[c.Name] = c
	}
	selected := make([]*plot.Chart, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", plot.ErrUnknownPreset, name)
		}
		selected = append(selected, c)
	}
	return selected, nil
}
