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
	"io"
	"strings"

	"github.com/jeremyhahn/go-shamir/internal/config"
	"github.com/jeremyhahn/go-shamir/pkg/adapters/logger"
	"github.com/jeremyhahn/go-shamir/pkg/crypto/rand"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// OutputFormat controls output formatting (text, json, yaml)
	OutputFormat string

	// Verbose enables debug logging
	Verbose bool

	// Seed switches the RNG to deterministic mode
	Seed string

	// Metrics prints collected metrics after the command
	Metrics bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: string(OutputFormatText),
	}
}

// Settings loads the configuration file and applies the command line flags
// on top of it.
func (c *Config) Settings() (*config.Config, error) {
	switch OutputFormat(strings.ToLower(c.OutputFormat)) {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format: %s", c.OutputFormat)
	}

	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, err
	}
	if c.Seed != "" {
		cfg.RNG.Mode = string(rand.ModeDeterministic)
		cfg.RNG.Seed = c.Seed
	}
	if c.Verbose {
		cfg.Logging.Level = "debug"
	}
	if c.Metrics {
		cfg.Metrics.Enabled = true
	}
	return cfg, nil
}

// CreateLogger creates the logger described by cfg, writing to w
func CreateLogger(cfg *config.Config, w io.Writer) (logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logger.NewSlogAdapter(&logger.SlogConfig{
		Level:  level,
		Format: logger.Format(strings.ToLower(cfg.Logging.Format)),
		Output: w,
	}), nil
}

// CreateResolver creates the coefficient source described by cfg
func CreateResolver(cfg *config.Config) (rand.Resolver, error) {
	return rand.NewResolver(cfg.RandConfig())
}
