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
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shamir/pkg/field"
	"github.com/jeremyhahn/go-shamir/pkg/shamir"
)

// Share formats accepted by split and combine.
const (
	formatPoints = "points"
	formatBytes  = "bytes"
	formatSSSA   = "sssa"
)

type splitOptions struct {
	format    string
	field     string
	secret    string
	threshold int
	total     int
	xs        []string
	reveal    bool
}

func newSplitCmd(a *app) *cobra.Command {
	opts := &splitOptions{}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into shares",
		Long: `Split a secret into shares; any threshold of them reconstruct it.

With the default points format the secret is written in the field's text
form: an integer or fraction for rational, a decimal integer in [0, p) for
prime and two hex digits for gf256. The bytes and sssa formats split the
secret as a byte string, the first in GF(256) with checksummed shares and
the second as SSSA share strings.

Examples:
  shamir split --secret 1234 -t 3 -n 5 -o yaml > shares.yaml
  shamir split --field rational --secret 5 -t 4 --x -2,-1,1,2 --reveal
  shamir split --format bytes --secret "correct horse" -t 2 -n 3 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatBytes, formatSSSA:
				set, err := splitSecretBytes(a, opts)
				if err != nil {
					return err
				}
				return a.printer(cmd).PrintShareSet(set)
			case formatPoints, "":
			default:
				return fmt.Errorf("unknown share format: %s", opts.format)
			}

			name := opts.field
			if name == "" {
				name = a.settings.Field
			}

			var (
				result *SplitResult
				err    error
			)
			switch name {
			case "rational":
				result, err = splitIn[*big.Rat](a, field.NewRational(0), opts)
			case "prime":
				result, err = splitIn[*big.Int](a, field.DefaultPrime(), opts)
			case "gf256":
				result, err = splitIn[byte](a, field.NewGF256(), opts)
			default:
				return fmt.Errorf("unknown field: %s", name)
			}
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintShares(result)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatPoints, "share format (points, bytes, sssa)")
	cmd.Flags().StringVar(&opts.field, "field", "", "field (rational, prime, gf256); defaults to the configured field")
	cmd.Flags().StringVarP(&opts.secret, "secret", "s", "", "secret to split")
	cmd.Flags().IntVarP(&opts.threshold, "threshold", "t", 3, "shares required to reconstruct")
	cmd.Flags().IntVarP(&opts.total, "shares", "n", 5, "shares to create (ignored with --x)")
	cmd.Flags().StringSliceVar(&opts.xs, "x", nil, "explicit share x coordinates")
	cmd.Flags().BoolVar(&opts.reveal, "reveal", false, "include the generated polynomial in the output")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func splitIn[E any](a *app, f field.Field[E], opts *splitOptions) (*SplitResult, error) {
	secret, err := f.Parse(opts.secret)
	if err != nil {
		return nil, fmt.Errorf("invalid secret: %w", err)
	}

	var xs []E
	if len(opts.xs) > 0 {
		xs = make([]E, len(opts.xs))
		for i, s := range opts.xs {
			if xs[i], err = f.Parse(s); err != nil {
				return nil, fmt.Errorf("invalid x coordinate %q: %w", s, err)
			}
		}
	} else {
		if opts.total < 0 {
			return nil, fmt.Errorf("%w: %d", shamir.ErrInvalidTotal, opts.total)
		}
		xs = make([]E, opts.total)
		for i := range xs {
			xs[i] = f.FromInt64(int64(i + 1))
		}
	}

	dealer, err := shamir.NewDealer[E](f, &shamir.DealerConfig{Rand: a.rng, Logger: a.logger})
	if err != nil {
		return nil, err
	}
	poly, shares, err := dealer.Deal(secret, opts.threshold, xs)
	if err != nil {
		return nil, err
	}

	doc, err := shamir.Encode[E](f, shares)
	if err != nil {
		return nil, err
	}
	result := &SplitResult{Document: doc}
	if opts.reveal {
		result.Polynomial = poly.String()
	}
	return result, nil
}

func newCombineCmd(a *app) *cobra.Command {
	var (
		in     string
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Reconstruct a secret from a share document",
		Long: `Reconstruct a secret from a JSON or YAML share document as written
by "shamir split -o json" or "-o yaml", in any share format. Remove shares
from the document to combine a subset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			format, err := detectFormat(data)
			if err != nil {
				return err
			}
			if format != formatPoints {
				secret, err := combineSecretBytes(a, format, data)
				if err != nil {
					return err
				}
				return a.printer(cmd).PrintSecret(format, string(secret), false)
			}

			doc, err := shamir.ParseDocument(data)
			if err != nil {
				return err
			}
			a.printVerbose(cmd, "combining %d shares of set %s", len(doc.Shares), doc.SetID)

			var secret string
			switch doc.Field {
			case "rational":
				secret, err = combineIn[*big.Rat](a, field.NewRational(0), doc, verify)
			case "prime":
				secret, err = combineIn[*big.Int](a, field.DefaultPrime(), doc, verify)
			case "gf256":
				secret, err = combineIn[byte](a, field.NewGF256(), doc, verify)
			default:
				return fmt.Errorf("unknown field: %s", doc.Field)
			}
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintSecret(doc.Field, secret, verify)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "-", "share document path, - for stdin")
	cmd.Flags().BoolVar(&verify, "verify", false, "check that every share lies on the reconstructed polynomial")

	return cmd
}

func combineIn[E any](a *app, f field.Field[E], doc *shamir.ShareDocument, verify bool) (string, error) {
	shares, err := shamir.Decode[E](f, doc)
	if err != nil {
		return "", err
	}
	dealer, err := shamir.NewDealer[E](f, &shamir.DealerConfig{Rand: a.rng, Logger: a.logger})
	if err != nil {
		return "", err
	}
	if verify {
		if err := dealer.Verify(shares); err != nil {
			return "", err
		}
	}
	secret, err := dealer.Combine(shares)
	if err != nil {
		return "", err
	}
	return f.Format(secret), nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" || path == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	// #nosec G304 - path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read share document: %w", err)
	}
	return data, nil
}
