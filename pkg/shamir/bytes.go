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
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-shamir/pkg/crypto/rand"
	"github.com/jeremyhahn/go-shamir/pkg/field"
	"github.com/jeremyhahn/go-shamir/pkg/metrics"
	"github.com/jeremyhahn/go-shamir/pkg/polynomial"
)

// ShareConfig configures byte secret sharing parameters.
type ShareConfig struct {
	Threshold   int // M - minimum shares needed to reconstruct
	TotalShares int // N - total shares to create

	// Rand supplies coefficients; defaults to crypto/rand.
	Rand io.Reader
}

// ByteShare is one share of a byte string secret. Byte i of Value is the
// evaluation at Index of the polynomial hiding byte i of the secret.
type ByteShare struct {
	SetID     string `json:"set_id" yaml:"set_id"`
	Index     byte   `json:"index" yaml:"index"`
	Threshold int    `json:"threshold" yaml:"threshold"`
	Value     []byte `json:"value" yaml:"value"`
	Checksum  []byte `json:"checksum" yaml:"checksum"`
}

// ByteSharer shares arbitrary byte strings in GF(256), one independent
// polynomial per secret byte.
type ByteSharer struct {
	config *ShareConfig
	field  *field.GF256
	rand   io.Reader
}

// NewByteSharer validates config and returns a sharer.
func NewByteSharer(config *ShareConfig) (*ByteSharer, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Threshold < 1 {
		return nil, fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidThreshold, config.Threshold)
	}
	if config.TotalShares < config.Threshold {
		return nil, fmt.Errorf("%w: total %d, threshold %d", ErrInvalidTotal, config.TotalShares, config.Threshold)
	}
	if config.TotalShares > 255 {
		return nil, fmt.Errorf("%w: total shares must be <= 255, got %d", ErrInvalidTotal, config.TotalShares)
	}

	r := config.Rand
	if r == nil {
		resolver, err := rand.NewResolver(rand.ModeSoftware)
		if err != nil {
			return nil, err
		}
		r = resolver
	}

	return &ByteSharer{config: config, field: field.NewGF256(), rand: r}, nil
}

// Split divides secret into TotalShares shares.
func (s *ByteSharer) Split(secret []byte) ([]ByteShare, error) {
	start := time.Now()
	shares, err := s.split(secret)
	s.record(metrics.OpSplit, start, err)
	if err == nil {
		metrics.RecordShares(s.field.Name(), len(shares))
	}
	return shares, err
}

func (s *ByteSharer) split(secret []byte) ([]ByteShare, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	id, err := uuid.NewRandomFromReader(s.rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate set ID: %w", err)
	}
	setID := id.String()
	shares := make([]ByteShare, s.config.TotalShares)
	for i := range shares {
		shares[i] = ByteShare{
			SetID:     setID,
			Index:     byte(i + 1),
			Threshold: s.config.Threshold,
			Value:     make([]byte, len(secret)),
		}
	}

	for byteIdx, b := range secret {
		poly, err := polynomial.Random[byte](s.field, b, s.config.Threshold, s.rand)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random coefficients: %w", err)
		}
		for i := range shares {
			shares[i].Value[byteIdx] = poly.Evaluate(shares[i].Index)
		}
	}

	for i := range shares {
		shares[i].Checksum = calculateChecksum(&shares[i])
	}
	return shares, nil
}

// Combine reconstructs the secret from at least Threshold shares.
func (s *ByteSharer) Combine(shares []ByteShare) ([]byte, error) {
	start := time.Now()
	secret, err := s.combine(shares)
	s.record(metrics.OpCombine, start, err)
	return secret, err
}

func (s *ByteSharer) combine(shares []ByteShare) ([]byte, error) {
	if len(shares) < s.config.Threshold {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientShares, s.config.Threshold, len(shares))
	}
	if err := s.Verify(shares); err != nil {
		return nil, fmt.Errorf("share verification failed: %w", err)
	}

	used := shares[:s.config.Threshold]
	secret := make([]byte, len(used[0].Value))
	points := make([]polynomial.Point[byte], len(used))
	for byteIdx := range secret {
		for i, share := range used {
			points[i] = polynomial.Point[byte]{X: share.Index, Y: share.Value[byteIdx]}
		}
		b, err := polynomial.InterpolateAtZero[byte](s.field, points)
		if err != nil {
			return nil, err
		}
		secret[byteIdx] = b
	}
	return secret, nil
}

// Verify checks share metadata and checksums.
func (s *ByteSharer) Verify(shares []ByteShare) error {
	seen := make(map[byte]bool, len(shares))
	for i, share := range shares {
		if share.Index == 0 {
			return fmt.Errorf("%w: share %d has index 0", ErrInvalidShareX, i)
		}
		if seen[share.Index] {
			return fmt.Errorf("%w: index %d", ErrDuplicateShare, share.Index)
		}
		seen[share.Index] = true

		if share.Threshold != s.config.Threshold {
			return fmt.Errorf("%w: share %d has threshold %d, expected %d",
				ErrInconsistentShares, i, share.Threshold, s.config.Threshold)
		}
		if share.SetID != shares[0].SetID {
			return fmt.Errorf("%w: share %d belongs to a different split", ErrInconsistentShares, i)
		}
		if len(share.Value) == 0 || len(share.Value) != len(shares[0].Value) {
			return fmt.Errorf("%w: share %d has a value of length %d", ErrInconsistentShares, i, len(share.Value))
		}
		if subtle.ConstantTimeCompare(share.Checksum, calculateChecksum(&share)) != 1 {
			return fmt.Errorf("%w: share %d", ErrChecksumMismatch, i)
		}
	}
	return nil
}

func (s *ByteSharer) record(operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		metrics.RecordError(operation, s.field.Name(), errorType(err))
	}
	metrics.RecordOperation(operation, s.field.Name(), status, time.Since(start))
}

// calculateChecksum computes SHA-256 over the set ID, threshold, index and
// value of a share.
func calculateChecksum(share *ByteShare) []byte {
	h := sha256.New()
	h.Write([]byte(share.SetID))
	h.Write([]byte{byte(share.Threshold), share.Index})
	h.Write(share.Value)
	return h.Sum(nil)
}
