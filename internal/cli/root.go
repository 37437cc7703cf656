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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-shamir/internal/config"
	"github.com/jeremyhahn/go-shamir/pkg/adapters/logger"
	"github.com/jeremyhahn/go-shamir/pkg/crypto/rand"
	"github.com/jeremyhahn/go-shamir/pkg/metrics"
)

// app is the state shared by every command of one invocation.
type app struct {
	config   *Config
	v        *viper.Viper
	settings *config.Config
	logger   logger.Logger
	rng      rand.Resolver
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{config: NewConfig(), v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "shamir",
		Short: "go-shamir CLI - Shamir's Secret Sharing toolkit",
		Long: `go-shamir CLI splits secrets into shares, reconstructs them by
Lagrange interpolation and generates the coordinates behind the
secret sharing charts.

Supported fields:
  - rational: exact rational numbers (curves you can plot)
  - prime:    integers modulo 2^127-1
  - gf256:    bytes in GF(2^8)`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (YAML)")
	flags.StringP("output", "o", "text", "output format (text, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("seed", "", "seed for deterministic coefficients (reproducible output, never for real secrets)")
	flags.Bool("metrics", false, "print collected metrics to stderr after the command")

	_ = a.v.BindPFlags(flags)
	a.v.SetEnvPrefix("SHAMIR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newSplitCmd(a))
	rootCmd.AddCommand(newCombineCmd(a))
	rootCmd.AddCommand(newEvalCmd(a))
	rootCmd.AddCommand(newChartsCmd(a))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		format, _ := cmd.PersistentFlags().GetString("output")
		_ = NewPrinter(format, os.Stderr).PrintError(err) // best-effort
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.config.ConfigFile = a.v.GetString("config")
	a.config.OutputFormat = a.v.GetString("output")
	a.config.Verbose = a.v.GetBool("verbose")
	a.config.Seed = a.v.GetString("seed")
	a.config.Metrics = a.v.GetBool("metrics")

	settings, err := a.config.Settings()
	if err != nil {
		return err
	}
	a.settings = settings

	a.logger, err = CreateLogger(settings, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if settings.Metrics.Enabled {
		metrics.Enable()
	} else {
		metrics.Disable()
	}

	a.rng, err = CreateResolver(settings)
	if err != nil {
		return fmt.Errorf("failed to create RNG: %w", err)
	}
	a.logger.Debug("configured",
		logger.String("rng", string(a.rng.Mode())),
		logger.String("field", settings.Field),
		logger.Bool("metrics", settings.Metrics.Enabled))
	return nil
}

func (a *app) teardown(cmd *cobra.Command) error {
	var errs []error
	if a.settings != nil && a.settings.Metrics.Enabled {
		text, err := metrics.Gather()
		if err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), text)
		}
	}
	if a.rng != nil {
		errs = append(errs, a.rng.Close())
	}
	return errors.Join(errs...)
}

func (a *app) printer(cmd *cobra.Command) *Printer {
	return NewPrinter(a.config.OutputFormat, cmd.OutOrStdout())
}

// printVerbose prints a message if verbose mode is enabled
func (a *app) printVerbose(cmd *cobra.Command, format string, args ...interface{}) {
	if a.config.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] "+format+"\n", args...)
	}
}
