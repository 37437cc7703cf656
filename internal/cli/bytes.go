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
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-shamir/pkg/adapters/logger"
	"github.com/jeremyhahn/go-shamir/pkg/shamir"
)

// ShareSet is the document form of byte and SSSA shares.
type ShareSet struct {
	Format    string              `json:"format" yaml:"format"`
	Threshold int                 `json:"threshold" yaml:"threshold"`
	Total     int                 `json:"total" yaml:"total"`
	Bytes     []ByteRecord        `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Text      []*shamir.TextShare `json:"text,omitempty" yaml:"text,omitempty"`
}

// ByteRecord is a byte share with hex encoded value and checksum, so JSON
// and YAML documents read back identically.
type ByteRecord struct {
	SetID     string `json:"set_id" yaml:"set_id"`
	Index     byte   `json:"index" yaml:"index"`
	Threshold int    `json:"threshold" yaml:"threshold"`
	Value     string `json:"value" yaml:"value"`
	Checksum  string `json:"checksum" yaml:"checksum"`
}

func toRecords(shares []shamir.ByteShare) []ByteRecord {
	records := make([]ByteRecord, len(shares))
	for i, s := range shares {
		records[i] = ByteRecord{
			SetID:     s.SetID,
			Index:     s.Index,
			Threshold: s.Threshold,
			Value:     hex.EncodeToString(s.Value),
			Checksum:  hex.EncodeToString(s.Checksum),
		}
	}
	return records
}

func fromRecords(records []ByteRecord) ([]shamir.ByteShare, error) {
	shares := make([]shamir.ByteShare, len(records))
	for i, r := range records {
		value, err := hex.DecodeString(r.Value)
		if err != nil {
			return nil, fmt.Errorf("share %d value: %w", i, err)
		}
		checksum, err := hex.DecodeString(r.Checksum)
		if err != nil {
			return nil, fmt.Errorf("share %d checksum: %w", i, err)
		}
		shares[i] = shamir.ByteShare{
			SetID:     r.SetID,
			Index:     r.Index,
			Threshold: r.Threshold,
			Value:     value,
			Checksum:  checksum,
		}
	}
	return shares, nil
}

func splitSecretBytes(a *app, opts *splitOptions) (*ShareSet, error) {
	if len(opts.xs) > 0 {
		return nil, fmt.Errorf("--x is only supported with the %s format", formatPoints)
	}
	set := &ShareSet{Format: opts.format, Threshold: opts.threshold, Total: opts.total}
	secret := []byte(opts.secret)

	switch opts.format {
	case formatBytes:
		sharer, err := shamir.NewByteSharer(&shamir.ShareConfig{
			Threshold:   opts.threshold,
			TotalShares: opts.total,
			Rand:        a.rng,
		})
		if err != nil {
			return nil, err
		}
		shares, err := sharer.Split(secret)
		if err != nil {
			return nil, err
		}
		set.Bytes = toRecords(shares)
	case formatSSSA:
		var err error
		if set.Text, err = shamir.SplitText(secret, opts.threshold, opts.total); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown share format: %s", opts.format)
	}
	return set, nil
}

// detectFormat reports the share format of a document. Point share
// documents carry no format key.
func detectFormat(data []byte) (string, error) {
	var header struct {
		Format string `yaml:"format"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return "", fmt.Errorf("failed to parse share document: %w", err)
	}
	switch header.Format {
	case "", formatPoints:
		return formatPoints, nil
	case formatBytes, formatSSSA:
		return header.Format, nil
	default:
		return "", fmt.Errorf("unknown share format: %s", header.Format)
	}
}

func combineSecretBytes(a *app, format string, data []byte) ([]byte, error) {
	var set ShareSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse share document: %w", err)
	}
	a.logger.Debug("combining byte shares",
		logger.String("format", format),
		logger.Int("threshold", set.Threshold))

	if format == formatSSSA {
		return shamir.CombineText(set.Text)
	}
	sharer, err := shamir.NewByteSharer(&shamir.ShareConfig{
		Threshold:   set.Threshold,
		TotalShares: set.Total,
		Rand:        a.rng,
	})
	if err != nil {
		return nil, err
	}
	shares, err := fromRecords(set.Bytes)
	if err != nil {
		return nil, err
	}
	return sharer.Combine(shares)
}
