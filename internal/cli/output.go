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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-shamir/pkg/plot"
	"github.com/jeremyhahn/go-shamir/pkg/shamir"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(strings.ToLower(format)),
		writer: writer,
	}
}

// SplitResult is the output of the split command
type SplitResult struct {
	Polynomial string                `json:"polynomial,omitempty" yaml:"polynomial,omitempty"`
	Document   *shamir.ShareDocument `json:"document" yaml:"document"`
}

// EvalResult is the output of the eval command
type EvalResult struct {
	Polynomial string      `json:"polynomial" yaml:"polynomial"`
	Degree     int         `json:"degree" yaml:"degree"`
	Secret     string      `json:"secret" yaml:"secret"`
	Points     []EvalPoint `json:"points" yaml:"points"`
}

// EvalPoint is one exact evaluation with its chart label
type EvalPoint struct {
	X     string `json:"x" yaml:"x"`
	Y     string `json:"y" yaml:"y"`
	Label string `json:"label" yaml:"label"`
}

// PrintShares prints a share set. JSON and YAML output can be read back by
// the combine command.
func (p *Printer) PrintShares(result *SplitResult) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		// combine reads the bare document
		if result.Polynomial == "" {
			return p.print(result.Document)
		}
		return p.print(result)
	case OutputFormatText:
		doc := result.Document
		fmt.Fprintf(p.writer, "Set:       %s\n", doc.SetID)
		fmt.Fprintf(p.writer, "Field:     %s\n", doc.Field)
		fmt.Fprintf(p.writer, "Threshold: %d of %d\n", doc.Threshold, doc.Total)
		if result.Polynomial != "" {
			fmt.Fprintf(p.writer, "Polynomial: %s\n", result.Polynomial)
		}
		fmt.Fprintln(p.writer, "Shares:")
		for _, s := range doc.Shares {
			fmt.Fprintf(p.writer, "  %d: (%s, %s)\n", s.Index, s.X, s.Y)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintShareSet prints byte or SSSA shares
func (p *Printer) PrintShareSet(set *ShareSet) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.print(set)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Format:    %s\n", set.Format)
		fmt.Fprintf(p.writer, "Threshold: %d of %d\n", set.Threshold, set.Total)
		fmt.Fprintln(p.writer, "Shares:")
		for _, s := range set.Bytes {
			fmt.Fprintf(p.writer, "  %d: %s\n", s.Index, s.Value)
		}
		for _, s := range set.Text {
			fmt.Fprintf(p.writer, "  %d: %s\n", s.Index, s.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret prints a reconstructed secret
func (p *Printer) PrintSecret(fieldName, secret string, verified bool) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.print(map[string]interface{}{
			"field":    fieldName,
			"secret":   secret,
			"verified": verified,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Secret: %s\n", secret)
		if verified {
			fmt.Fprintln(p.writer, "All shares lie on one polynomial")
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintEvaluation prints polynomial values
func (p *Printer) PrintEvaluation(result *EvalResult) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.print(result)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "p(x) = %s\n", result.Polynomial)
		fmt.Fprintf(p.writer, "Degree: %d\n", result.Degree)
		fmt.Fprintf(p.writer, "Secret: %s\n", result.Secret)
		for _, pt := range result.Points {
			fmt.Fprintf(p.writer, "  p(%s) = %s  %s\n", pt.X, pt.Y, pt.Label)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintChartList prints the available charts
func (p *Printer) PrintChartList(charts []*plot.Chart) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		list := make([]map[string]interface{}, len(charts))
		for i, c := range charts {
			list[i] = map[string]interface{}{
				"name":  c.Name,
				"title": c.Title,
			}
		}
		return p.print(map[string]interface{}{"charts": list})
	case OutputFormatText:
		fmt.Fprintln(p.writer, "Charts:")
		for _, c := range charts {
			fmt.Fprintf(p.writer, "  - %-27s %s\n", c.Name, c.Title)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintCharts prints built chart data. Text output is a summary; use JSON
// or YAML for the coordinates.
func (p *Printer) PrintCharts(charts []*plot.ChartData) error {
	switch p.format {
	case OutputFormatJSON:
		return plot.WriteJSON(p.writer, charts)
	case OutputFormatYAML:
		return plot.WriteYAML(p.writer, charts)
	case OutputFormatText:
		for i, c := range charts {
			if i > 0 {
				fmt.Fprintln(p.writer)
			}
			fmt.Fprintf(p.writer, "%s: %s\n", c.Name, c.Title)
			fmt.Fprintf(p.writer, "  Polynomial: %s\n", c.Polynomial)
			fmt.Fprintf(p.writer, "  Curve:      %d points\n", len(c.Curve))
			labels := make([]string, len(c.Shares))
			for j, s := range c.Shares {
				labels[j] = s.Label
			}
			fmt.Fprintf(p.writer, "  Shares:     %s\n", strings.Join(labels, " "))
			if c.Secret != nil {
				fmt.Fprintf(p.writer, "  Secret:     %s\n", c.Secret.Label)
			}
			if c.Recovered != "" {
				fmt.Fprintf(p.writer, "  Recovered:  %s (matches: %t)\n", c.Recovered, c.RecoveredMatches)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.print(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

func (p *Printer) print(data interface{}) error {
	switch p.format {
	case OutputFormatYAML:
		return p.printYAML(data)
	default:
		return p.printJSON(data)
	}
}

func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (p *Printer) printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}
