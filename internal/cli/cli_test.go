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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-shamir/pkg/field"
	"github.com/jeremyhahn/go-shamir/pkg/plot"
	"github.com/jeremyhahn/go-shamir/pkg/shamir"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shamir version dev")

	out, _, err = run(t, "", "version", "-o", "json")
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
}

func TestSplitCombine_RoundTrip(t *testing.T) {
	fields := []struct {
		name   string
		secret string
	}{
		{"prime", "1234"},
		{"rational", "-7/3"},
		{"gf256", "a7"},
	}

	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			out, _, err := run(t, "", "split", "--seed", "cli-test",
				"--field", f.name, "--secret", f.secret, "-t", "3", "-n", "5", "-o", "yaml")
			require.NoError(t, err)

			var doc shamir.ShareDocument
			require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
			assert.Equal(t, f.name, doc.Field)
			require.Len(t, doc.Shares, 5)

			doc.Shares = doc.Shares[2:]
			subset, err := yaml.Marshal(&doc)
			require.NoError(t, err)

			out, _, err = run(t, string(subset), "combine", "-o", "json")
			require.NoError(t, err)
			var result map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.Equal(t, f.secret, result["secret"])
		})
	}
}

func TestSplit_SeedIsReproducible(t *testing.T) {
	args := []string{"split", "--seed", "same", "--secret", "99", "-t", "2", "-n", "3", "-o", "json"}
	first, _, err := run(t, "", args...)
	require.NoError(t, err)
	second, _, err := run(t, "", args...)
	require.NoError(t, err)

	var a, b shamir.ShareDocument
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, a.Shares, b.Shares)
	assert.Equal(t, a.SetID, b.SetID)
}

func TestSplit_ExplicitCoordinatesAndReveal(t *testing.T) {
	out, _, err := run(t, "", "split", "--field", "rational", "--secret", "5",
		"-t", "4", "--x", "-2,-1,1,2", "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "Threshold: 4 of 4")
	assert.Contains(t, out, "Polynomial:")
	assert.Contains(t, out, "1: (-2, ")
}

func TestSplit_Errors(t *testing.T) {
	_, _, err := run(t, "", "split", "--secret", "1", "-t", "4", "-n", "3")
	assert.ErrorIs(t, err, shamir.ErrInvalidTotal)

	_, _, err = run(t, "", "split", "--secret", "1", "-t", "0")
	assert.ErrorIs(t, err, shamir.ErrInvalidThreshold)

	_, _, err = run(t, "", "split", "--secret", "not-a-number")
	assert.Error(t, err)

	// 2^127 + 3 and -1 lie outside the prime field
	_, _, err = run(t, "", "split", "--field", "prime",
		"--secret", "170141183460469231731687303715884105731", "-t", "2", "-n", "3")
	assert.ErrorIs(t, err, field.ErrInvalidElement)

	_, _, err = run(t, "", "split", "--field", "prime", "--secret", "-1", "-t", "2", "-n", "3")
	assert.ErrorIs(t, err, field.ErrInvalidElement)

	_, _, err = run(t, "", "split", "--secret", "1", "--field", "complex")
	assert.Error(t, err)

	_, _, err = run(t, "", "split", "--field", "rational", "--secret", "1", "-t", "2", "--x", "0,1")
	assert.ErrorIs(t, err, shamir.ErrInvalidShareX)
}

func TestCombine_InsufficientShares(t *testing.T) {
	out, _, err := run(t, "", "split", "--secret", "42", "-t", "3", "-n", "5", "-o", "json")
	require.NoError(t, err)

	var doc shamir.ShareDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	doc.Shares = doc.Shares[:2]
	data, err := json.Marshal(&doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "shares.json")
	require.NoError(t, os.WriteFile(path, data, 0600))

	_, _, err = run(t, "", "combine", "--in", path)
	assert.ErrorIs(t, err, shamir.ErrInsufficientShares)
}

func TestCombine_Verify(t *testing.T) {
	out, _, err := run(t, "", "split", "--secret", "42", "-t", "2", "-n", "4", "-o", "json")
	require.NoError(t, err)

	out, _, err = run(t, out, "combine", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Secret: 42")
	assert.Contains(t, out, "All shares lie on one polynomial")
}

func TestEval(t *testing.T) {
	out, _, err := run(t, "", "eval", "-o", "json", "--x", "-2.5,0,1.5")
	require.NoError(t, err)

	var result EvalResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "2x³ - 3x² + 2x + 5", result.Polynomial)
	assert.Equal(t, 3, result.Degree)
	assert.Equal(t, "5", result.Secret)
	assert.Equal(t, []EvalPoint{
		{X: "-5/2", Y: "-50", Label: "(-2.5, -50.0)"},
		{X: "0", Y: "5", Label: "(0.0, 5.0)"},
		{X: "3/2", Y: "8", Label: "(1.5, 8.0)"},
	}, result.Points)
}

func TestCharts(t *testing.T) {
	out, _, err := run(t, "", "charts", "list")
	require.NoError(t, err)
	for _, name := range plot.PresetNames() {
		assert.Contains(t, out, name)
	}

	out, _, err = run(t, "", "charts", "build", "shamir", "-o", "json")
	require.NoError(t, err)
	var charts []plot.ChartData
	require.NoError(t, json.Unmarshal([]byte(out), &charts))
	require.Len(t, charts, 1)
	assert.Equal(t, "5", charts[0].Recovered)
	assert.True(t, charts[0].RecoveredMatches)

	out, _, err = run(t, "", "charts", "build", "line")
	require.NoError(t, err)
	assert.Contains(t, out, "Shares:     (3.0, 3.0) (4.0, 4.0)")

	_, _, err = run(t, "", "charts", "build", "missing")
	assert.ErrorIs(t, err, plot.ErrUnknownPreset)
}

func TestConfigFileAndMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
metrics:
  enabled: true
charts:
  - name: parabola
    title: Parabola
    x: {start: -3, end: 3}
    y: {start: 0, end: 10}
    coefficients: ["0", "0", "1"]
    shares: ["-1", "2"]
`), 0600))

	out, stderr, err := run(t, "", "--config", path, "charts", "build", "-o", "yaml")
	require.NoError(t, err)

	var charts []plot.ChartData
	require.NoError(t, yaml.Unmarshal([]byte(out), &charts))
	require.Len(t, charts, 1)
	assert.Equal(t, "parabola", charts[0].Name)
	assert.Equal(t, "x²", charts[0].Polynomial)

	assert.Contains(t, stderr, `"msg":"built chart"`)
	assert.Contains(t, stderr, "shamir_operations_total")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, _, err := run(t, "", "version", "-o", "xml")
	assert.Error(t, err)
}

func TestSplitCombine_ByteFormats(t *testing.T) {
	tests := []struct {
		format string
		output string
	}{
		{"bytes", "json"},
		{"bytes", "yaml"},
		{"sssa", "json"},
		{"sssa", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.output, func(t *testing.T) {
			out, _, err := run(t, "", "split", "--format", tt.format,
				"--secret", "correct horse battery staple", "-t", "2", "-n", "3", "-o", tt.output)
			require.NoError(t, err)

			var set ShareSet
			require.NoError(t, yaml.Unmarshal([]byte(out), &set))
			assert.Equal(t, tt.format, set.Format)
			assert.Equal(t, 3, len(set.Bytes)+len(set.Text))

			set.Bytes = set.Bytes[len(set.Bytes)/2:]
			if len(set.Text) > 0 {
				set.Text = set.Text[1:]
			}
			subset, err := yaml.Marshal(&set)
			require.NoError(t, err)

			out, _, err = run(t, string(subset), "combine", "-o", "json")
			require.NoError(t, err)
			var result map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.Equal(t, "correct horse battery staple", result["secret"])
			assert.Equal(t, tt.format, result["field"])
		})
	}
}

func TestCombine_ByteShareTampered(t *testing.T) {
	out, _, err := run(t, "", "split", "--format", "bytes", "--secret", "abc", "-t", "2", "-n", "2", "-o", "json")
	require.NoError(t, err)

	var set ShareSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	set.Bytes[0].Value = "000000"
	data, err := json.Marshal(&set)
	require.NoError(t, err)

	_, _, err = run(t, string(data), "combine")
	assert.ErrorIs(t, err, shamir.ErrChecksumMismatch)
}

func TestSplit_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "", "split", "--format", "zip", "--secret", "x")
	assert.Error(t, err)

	_, _, err = run(t, "", "split", "--format", "bytes", "--secret", "x", "-t", "2", "--x", "1,2")
	assert.Error(t, err)
}
