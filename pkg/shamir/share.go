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
	"fmt"

	"github.com/jeremyhahn/go-shamir/pkg/polynomial"
)

// Share is a single point of a split secret, tagged with the parameters of
// the split it came from.
type Share[E any] struct {
	// SetID identifies the split. Shares from different splits never
	// combine.
	SetID string

	// Index is the share number (1 to Total)
	Index int

	// Threshold is the minimum number of shares required to reconstruct
	Threshold int

	// Total is the number of shares created by the split
	Total int

	X E
	Y E
}

// Point returns the share as an interpolation point.
func (s *Share[E]) Point() polynomial.Point[E] {
	return polynomial.Point[E]{X: s.X, Y: s.Y}
}

// Validate checks the share metadata.
func (s *Share[E]) Validate() error {
	if s.Threshold < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidThreshold, s.Threshold)
	}
	if s.Total < s.Threshold {
		return fmt.Errorf("%w: total %d, threshold %d", ErrInvalidTotal, s.Total, s.Threshold)
	}
	if s.Index < 1 || s.Index > s.Total {
		return fmt.Errorf("invalid share index: %d (must be in 1..%d)", s.Index, s.Total)
	}
	return nil
}

func (s *Share[E]) String() string {
	return fmt.Sprintf("Share{Index: %d, Threshold: %d/%d, Set: %s}",
		s.Index, s.Threshold, s.Total, s.SetID)
}
