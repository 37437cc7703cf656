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

import "errors"

var (
	// ErrInvalidThreshold is returned when the threshold is below one or
	// a share's threshold metadata is invalid.
	ErrInvalidThreshold = errors.New("shamir: invalid threshold")

	// ErrInvalidTotal is returned when fewer share coordinates than the
	// threshold are requested.
	ErrInvalidTotal = errors.New("shamir: total shares must be >= threshold")

	// ErrInvalidShareX is returned for a share at x = 0, which would be the
	// secret itself.
	ErrInvalidShareX = errors.New("shamir: share x coordinate must be non-zero")

	// ErrDuplicateShare is returned when two shares have the same x
	// coordinate or index.
	ErrDuplicateShare = errors.New("shamir: duplicate share")

	// ErrInsufficientShares is returned when fewer than threshold shares are
	// supplied for reconstruction.
	ErrInsufficientShares = errors.New("shamir: insufficient shares")

	// ErrInconsistentShares is returned when shares come from different
	// splits or do not lie on a single polynomial.
	ErrInconsistentShares = errors.New("shamir: inconsistent shares")

	// ErrChecksumMismatch is returned when a byte share fails its integrity
	// check.
	ErrChecksumMismatch = errors.New("shamir: share checksum mismatch")

	// ErrEmptySecret is returned when splitting an empty byte secret.
	ErrEmptySecret = errors.New("shamir: secret cannot be empty")

	// ErrFieldMismatch is returned when decoding a share document written
	// for a different field.
	ErrFieldMismatch = errors.New("shamir: field mismatch")

	// ErrNilField is returned when a dealer is created without a field.
	ErrNilField = errors.New("shamir: field cannot be nil")
)

// errorType maps an error onto a short metrics label.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrInvalidThreshold):
		return "invalid_threshold"
	case errors.Is(err, ErrInvalidTotal):
		return "invalid_total"
	case errors.Is(err, ErrInvalidShareX):
		return "invalid_share_x"
	case errors.Is(err, ErrDuplicateShare):
		return "duplicate_share"
	case errors.Is(err, ErrInsufficientShares):
		return "insufficient_shares"
	case errors.Is(err, ErrInconsistentShares):
		return "inconsistent_shares"
	case errors.Is(err, ErrChecksumMismatch):
		return "checksum_mismatch"
	case errors.Is(err, ErrEmptySecret):
		return "empty_secret"
	default:
		return "other"
	}
}
