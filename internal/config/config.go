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

package config

import (
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-shamir/pkg/crypto/rand"
	"github.com/jeremyhahn/go-shamir/pkg/field"
	"github.com/jeremyhahn/go-shamir/pkg/plot"
	"github.com/jeremyhahn/go-shamir/pkg/polynomial"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHAMIR_"

// Config represents the complete tool configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	RNG     RNGConfig     `yaml:"rng"`
	Metrics MetricsConfig `yaml:"metrics"`

	// Field is the default field for split/combine: rational, prime or gf256
	Field string `yaml:"field"`

	// Charts replaces the built-in presets when non-empty
	Charts []ChartConfig `yaml:"charts,omitempty"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RNGConfig selects the coefficient source
type RNGConfig struct {
	Mode string `yaml:"mode"` // software, deterministic
	Seed string `yaml:"seed"`
}

// MetricsConfig controls metrics collection
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RangeConfig is an axis range
type RangeConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// ChartConfig defines a chart. A chart that only names a preset uses it
// unchanged; any coefficients turn it into a custom chart.
type ChartConfig struct {
	Name   string      `yaml:"name"`
	Title  string      `yaml:"title"`
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	X      RangeConfig `yaml:"x"`
	Y      RangeConfig `yaml:"y"`

	// Coefficients are rationals, lowest degree first ("5", "-3/2", "0.5")
	Coefficients []string `yaml:"coefficients"`
	Label        string   `yaml:"label"`
	Shares       []string `yaml:"shares"`
	ShowSecret   bool     `yaml:"show_secret"`
	Step         float64  `yaml:"step"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		RNG:     RNGConfig{Mode: string(rand.ModeSoftware)},
		Field:   "prime",
	}
}

// Load reads configuration from a YAML file and applies environment variable
// overrides. An empty path yields the defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 - Config file path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv(EnvPrefix + "LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if mode := os.Getenv(EnvPrefix + "RNG_MODE"); mode != "" {
		cfg.RNG.Mode = mode
	}
	if seed := os.Getenv(EnvPrefix + "SEED"); seed != "" {
		cfg.RNG.Seed = seed
	}
	if f := os.Getenv(EnvPrefix + "FIELD"); f != "" {
		cfg.Field = f
	}
	if enabled := os.Getenv(EnvPrefix + "METRICS"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			log.Printf("Warning: invalid %sMETRICS value %q, using %t: %v",
				EnvPrefix, enabled, cfg.Metrics.Enabled, err)
		} else {
			cfg.Metrics.Enabled = v
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	switch rand.Mode(c.RNG.Mode) {
	case rand.ModeSoftware:
	case rand.ModeDeterministic:
		if c.RNG.Seed == "" {
			return fmt.Errorf("rng seed is required in %s mode", rand.ModeDeterministic)
		}
	default:
		return fmt.Errorf("invalid rng mode: %s (must be software or deterministic)", c.RNG.Mode)
	}

	switch c.Field {
	case "rational", "prime", "gf256":
	default:
		return fmt.Errorf("invalid field: %s (must be rational, prime or gf256)", c.Field)
	}

	names := make(map[string]bool, len(c.Charts))
	for i := range c.Charts {
		chart := &c.Charts[i]
		if chart.Name == "" {
			return fmt.Errorf("chart %d: name is required", i)
		}
		if names[chart.Name] {
			return fmt.Errorf("chart %s: duplicate name", chart.Name)
		}
		names[chart.Name] = true
		if _, err := chart.Chart(); err != nil {
			return err
		}
	}

	return nil
}

// RandConfig returns the resolver configuration for the RNG section
func (c *Config) RandConfig() *rand.Config {
	return &rand.Config{Mode: rand.Mode(c.RNG.Mode), Seed: c.RNG.Seed}
}

// ChartList returns the configured charts, or every preset when none are
// configured.
func (c *Config) ChartList() ([]*plot.Chart, error) {
	if len(c.Charts) == 0 {
		return plot.Presets(), nil
	}
	charts := make([]*plot.Chart, 0, len(c.Charts))
	for i := range c.Charts {
		chart, err := c.Charts[i].Chart()
		if err != nil {
			return nil, err
		}
		charts = append(charts, chart)
	}
	return charts, nil
}

// Chart converts the definition into a plot chart.
func (c *ChartConfig) Chart() (*plot.Chart, error) {
	if len(c.Coefficients) == 0 {
		chart, err := plot.Preset(c.Name)
		if err != nil {
			return nil, fmt.Errorf("chart %s: no coefficients and %w", c.Name, err)
		}
		return chart, nil
	}

	q := field.NewRational(0)
	coefficients, err := parseRationals(q, c.Coefficients)
	if err != nil {
		return nil, fmt.Errorf("chart %s: coefficients: %w", c.Name, err)
	}
	shares, err := parseRationals(q, c.Shares)
	if err != nil {
		return nil, fmt.Errorf("chart %s: shares: %w", c.Name, err)
	}
	poly, err := polynomial.New[*big.Rat](q, coefficients...)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", c.Name, err)
	}

	chart := &plot.Chart{
		Name:       c.Name,
		Title:      c.Title,
		Width:      c.Width,
		Height:     c.Height,
		X:          plot.Range{Start: c.X.Start, End: c.X.End},
		Y:          plot.Range{Start: c.Y.Start, End: c.Y.End},
		Polynomial: poly,
		Label:      c.Label,
		Shares:     shares,
		ShowSecret: c.ShowSecret,
		Step:       c.Step,
	}
	if err := chart.Validate(); err != nil {
		return nil, err
	}
	return chart, nil
}

func parseRationals(q *field.Rational, values []string) ([]*big.Rat, error) {
	out := make([]*big.Rat, len(values))
	for i, v := range values {
		r, err := q.Parse(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
