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

package shamir

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/SSSaaS/sssa-golang"
)

// TextShare is a share in the SSSA format, base64 wrapped for transport.
type TextShare struct {
	// Index is the share number (1 to Total)
	Index int `json:"index" yaml:"index"`

	Threshold int `json:"threshold" yaml:"threshold"`
	Total     int `json:"total" yaml:"total"`

	// Value is the SSSA share string, base64 encoded
	Value string `json:"value" yaml:"value"`
}

// Validate checks the share parameters and the SSSA payload.
func (s *TextShare) Validate() error {
	if s.Index < 1 || s.Index > s.Total {
		return fmt.Errorf("invalid share index: %d (must be in 1..%d)", s.Index, s.Total)
	}
	if s.Threshold < 2 {
		return fmt.Errorf("%w: %d (SSSA requires >= 2)", ErrInvalidThreshold, s.Threshold)
	}
	if s.Total < s.Threshold {
		return fmt.Errorf("%w: total %d, threshold %d", ErrInvalidTotal, s.Total, s.Threshold)
	}
	raw, err := base64.StdEncoding.DecodeString(s.Value)
	if err != nil {
		return fmt.Errorf("share value is not base64: %w", err)
	}
	if !sssa.IsValidShare(string(raw)) {
		return fmt.Errorf("share value is not a valid SSSA share")
	}
	return nil
}

// SplitText divides secret into SSSA shares. The secret is hex encoded
// before splitting so arbitrary bytes survive the SSSA string API.
func SplitText(secret []byte, threshold, total int) ([]*TextShare, error) {
	if threshold < 2 {
		return nil, fmt.Errorf("%w: %d (SSSA requires >= 2)", ErrInvalidThreshold, threshold)
	}
	if total < threshold {
		return nil, fmt.Errorf("%w: total %d, threshold %d", ErrInvalidTotal, total, threshold)
	}
	if total > 255 {
		return nil, fmt.Errorf("%w: total shares cannot exceed 255, got %d", ErrInvalidTotal, total)
	}
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	raw, err := sssa.Create(threshold, total, hex.EncodeToString(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to split secret: %w", err)
	}

	shares := make([]*TextShare, len(raw))
	for i, r := range raw {
		shares[i] = &TextShare{
			Index:     i + 1,
			Threshold: threshold,
			Total:     total,
			Value:     base64.StdEncoding.EncodeToString([]byte(r)),
		}
	}
	return shares, nil
}

// CombineText reconstructs a secret split with SplitText.
func CombineText(shares []*TextShare) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares provided", ErrInsufficientShares)
	}

	for i, share := range shares {
		if share == nil {
			return nil, fmt.Errorf("share %d is nil", i)
		}
	}

	first := shares[0]
	seen := make(map[int]bool, len(shares))
	raw := make([]string, len(shares))
	for i, share := range shares {
		if err := share.Validate(); err != nil {
			return nil, fmt.Errorf("invalid share %d: %w", i, err)
		}
		if share.Threshold != first.Threshold || share.Total != first.Total {
			return nil, fmt.Errorf("%w: share %d has threshold %d/%d, share 0 has %d/%d",
				ErrInconsistentShares, i, share.Threshold, share.Total, first.Threshold, first.Total)
		}
		if seen[share.Index] {
			return nil, fmt.Errorf("%w: index %d", ErrDuplicateShare, share.Index)
		}
		seen[share.Index] = true

		decoded, _ := base64.StdEncoding.DecodeString(share.Value)
		raw[i] = string(decoded)
	}

	if len(shares) < first.Threshold {
		return nil, fmt.Errorf("%w: need at least %d shares, got %d",
			ErrInsufficientShares, first.Threshold, len(shares))
	}

	secretHex, err := sssa.Combine(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to combine shares: %w", err)
	}
	secret, err := hex.DecodeString(strings.TrimRight(secretHex, "\x00"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret: %w", err)
	}
	return secret, nil
}
