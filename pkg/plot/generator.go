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
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-shamir/pkg/adapters/logger"
	"github.com/jeremyhahn/go-shamir/pkg/metrics"
)

// Generator builds batches of charts.
type Generator struct {
	logger logger.Logger
}

type GeneratorConfig struct {
	Logger logger.Logger
}

func NewGenerator(config *GeneratorConfig) *Generator {
	g := &Generator{}
	if config != nil {
		g.logger = config.Logger
	}
	if g.logger == nil {
		g.logger = logger.NewNoOpLogger()
	}
	return g
}

// Build builds every chart, stopping at the first failure.
func (g *Generator) Build(charts []*Chart) ([]*ChartData, error) {
	out := make([]*ChartData, 0, len(charts))
	for _, c := range charts {
		start := time.Now()
		data, err := Build(c)
		if err != nil {
			metrics.RecordOperation(metrics.OpChart, "rational", metrics.StatusError, time.Since(start))
			metrics.RecordError(metrics.OpChart, "rational", "invalid_chart")
			g.logger.Error("failed to build chart", logger.Error(err))
			return nil, err
		}
		metrics.RecordOperation(metrics.OpChart, "rational", metrics.StatusSuccess, time.Since(start))
		metrics.RecordChart(len(data.Curve))

		g.logger.Info("built chart",
			logger.String("name", data.Name),
			logger.String("polynomial", data.Polynomial),
			logger.Int("curve_points", len(data.Curve)),
			logger.Int("shares", len(data.Shares)))
		if len(data.Shares) > 0 && !data.RecoveredMatches {
			g.logger.Warn("shares do not determine the secret",
				logger.String("name", data.Name),
				logger.String("recovered", data.Recovered))
		}
		out = append(out, data)
	}
	return out, nil
}

// WriteJSON writes chart data as indented JSON.
func WriteJSON(w io.Writer, data []*ChartData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode charts: %w", err)
	}
	return nil
}

// WriteYAML writes chart data as YAML.
func WriteYAML(w io.Writer, data []*ChartData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode charts: %w", err)
	}
	return enc.Close()
}
