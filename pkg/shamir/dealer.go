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
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-shamir/pkg/adapters/logger"
	"github.com/jeremyhahn/go-shamir/pkg/crypto/rand"
	"github.com/jeremyhahn/go-shamir/pkg/field"
	"github.com/jeremyhahn/go-shamir/pkg/metrics"
	"github.com/jeremyhahn/go-shamir/pkg/polynomial"
)

// DealerConfig configures a Dealer. The zero value is usable.
type DealerConfig struct {
	// Rand supplies polynomial coefficients. Defaults to the software
	// resolver (crypto/rand).
	Rand io.Reader

	// Logger receives debug output for each split and combine. Defaults to
	// a no-op logger.
	Logger logger.Logger
}

// Dealer splits secrets into shares and combines shares back into secrets
// over a single field.
type Dealer[E any] struct {
	field  field.Field[E]
	rand   io.Reader
	logger logger.Logger
}

// NewDealer returns a dealer over f.
func NewDealer[E any](f field.Field[E], config *DealerConfig) (*Dealer[E], error) {
	if f == nil {
		return nil, ErrNilField
	}
	if config == nil {
		config = &DealerConfig{}
	}

	d := &Dealer[E]{
		field:  f,
		rand:   config.Rand,
		logger: config.Logger,
	}
	if d.rand == nil {
		resolver, err := rand.NewResolver(rand.ModeSoftware)
		if err != nil {
			return nil, fmt.Errorf("failed to create RNG: %w", err)
		}
		d.rand = resolver
	}
	if d.logger == nil {
		d.logger = logger.NewNoOpLogger()
	}
	d.logger = d.logger.With(logger.String("field", f.Name()))

	return d, nil
}

// Field returns the dealer's field.
func (d *Dealer[E]) Field() field.Field[E] {
	return d.field
}

// Split divides secret into total shares at x = 1, 2, ..., total; any
// threshold of them reconstruct it.
func (d *Dealer[E]) Split(secret E, threshold, total int) ([]*Share[E], error) {
	if total < 0 {
		total = 0
	}
	xs := make([]E, total)
	for i := range xs {
		xs[i] = d.field.FromInt64(int64(i + 1))
	}
	_, shares, err := d.Deal(secret, threshold, xs)
	return shares, err
}

// Deal splits secret using caller chosen x coordinates and also returns the
// generated polynomial, which callers use to draw the curve behind the
// shares.
func (d *Dealer[E]) Deal(secret E, threshold int, xs []E) (*polynomial.Polynomial[E], []*Share[E], error) {
	start := time.Now()
	poly, shares, err := d.deal(secret, threshold, xs)
	d.record(metrics.OpSplit, start, err)
	if err != nil {
		d.logger.Debug("split failed", logger.Error(err))
		return nil, nil, err
	}

	metrics.RecordShares(d.field.Name(), len(shares))
	d.logger.Debug("split secret",
		logger.String("set_id", shares[0].SetID),
		logger.Int("threshold", threshold),
		logger.Int("total", len(shares)))

	return poly, shares, nil
}

func (d *Dealer[E]) deal(secret E, threshold int, xs []E) (*polynomial.Polynomial[E], []*Share[E], error) {
	if threshold < 1 {
		return nil, nil, fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidThreshold, threshold)
	}
	if len(xs) < threshold {
		return nil, nil, fmt.Errorf("%w: total %d, threshold %d", ErrInvalidTotal, len(xs), threshold)
	}
	for i, x := range xs {
		if d.field.IsZero(x) {
			return nil, nil, fmt.Errorf("%w: share %d", ErrInvalidShareX, i+1)
		}
		for j := i + 1; j < len(xs); j++ {
			if d.field.Equal(x, xs[j]) {
				return nil, nil, fmt.Errorf("%w: shares %d and %d both use x = %s",
					ErrDuplicateShare, i+1, j+1, d.field.Format(x))
			}
		}
	}

	poly, err := polynomial.Random(d.field, secret, threshold, d.rand)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate polynomial: %w", err)
	}

	setID, err := uuid.NewRandomFromReader(d.rand)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate set ID: %w", err)
	}
	shares := make([]*Share[E], len(xs))
	for i, x := range xs {
		shares[i] = &Share[E]{
			SetID:     setID.String(),
			Index:     i + 1,
			Threshold: threshold,
			Total:     len(xs),
			X:         x,
			Y:         poly.Evaluate(x),
		}
	}

	return poly, shares, nil
}

// Combine reconstructs the secret from at least threshold shares of the same
// split. Extra shares beyond the threshold are ignored; use Verify to check
// them.
func (d *Dealer[E]) Combine(shares []*Share[E]) (E, error) {
	start := time.Now()
	secret, err := d.combine(shares)
	d.record(metrics.OpCombine, start, err)
	if err != nil {
		d.logger.Debug("combine failed", logger.Error(err))
		var zero E
		return zero, err
	}
	d.logger.Debug("combined shares", logger.Int("shares", len(shares)))
	return secret, nil
}

func (d *Dealer[E]) combine(shares []*Share[E]) (E, error) {
	var zero E
	threshold, err := d.validateSet(shares)
	if err != nil {
		return zero, err
	}

	points := make([]polynomial.Point[E], threshold)
	for i := 0; i < threshold; i++ {
		points[i] = shares[i].Point()
	}

	secret, err := polynomial.InterpolateAtZero(d.field, points)
	if err != nil {
		return zero, fmt.Errorf("failed to interpolate: %w", err)
	}
	return secret, nil
}

// Verify checks that every share lies on the polynomial determined by the
// first threshold shares. It detects corrupted or substituted shares when
// more than threshold shares are available.
func (d *Dealer[E]) Verify(shares []*Share[E]) error {
	start := time.Now()
	err := d.verify(shares)
	d.record(metrics.OpVerify, start, err)
	return err
}

func (d *Dealer[E]) verify(shares []*Share[E]) error {
	threshold, err := d.validateSet(shares)
	if err != nil {
		return err
	}

	points := make([]polynomial.Point[E], threshold)
	for i := 0; i < threshold; i++ {
		points[i] = shares[i].Point()
	}
	poly, err := polynomial.Fit(d.field, points)
	if err != nil {
		return fmt.Errorf("failed to fit polynomial: %w", err)
	}

	for _, share := range shares[threshold:] {
		if !d.field.Equal(poly.Evaluate(share.X), share.Y) {
			return fmt.Errorf("%w: share %d does not lie on the polynomial", ErrInconsistentShares, share.Index)
		}
	}
	return nil
}

// validateSet checks that shares belong to one split and that there are
// enough of them. It returns the split's threshold.
func (d *Dealer[E]) validateSet(shares []*Share[E]) (int, error) {
	if len(shares) == 0 {
		return 0, fmt.Errorf("%w: no shares provided", ErrInsufficientShares)
	}
	for i, share := range shares {
		if share == nil {
			return 0, fmt.Errorf("share %d is nil", i)
		}
	}

	first := shares[0]
	for i, share := range shares {
		if err := share.Validate(); err != nil {
			return 0, fmt.Errorf("invalid share %d: %w", i, err)
		}
		if share.Threshold != first.Threshold || share.Total != first.Total {
			return 0, fmt.Errorf("%w: share %d has threshold %d/%d, share 0 has %d/%d",
				ErrInconsistentShares, i, share.Threshold, share.Total, first.Threshold, first.Total)
		}
		if share.SetID != first.SetID {
			return 0, fmt.Errorf("%w: share %d belongs to set %q, share 0 to %q",
				ErrInconsistentShares, i, share.SetID, first.SetID)
		}
		if d.field.IsZero(share.X) {
			return 0, fmt.Errorf("%w: share %d", ErrInvalidShareX, i)
		}
		for j := i + 1; j < len(shares); j++ {
			if d.field.Equal(share.X, shares[j].X) {
				return 0, fmt.Errorf("%w: shares %d and %d both use x = %s",
					ErrDuplicateShare, i, j, d.field.Format(share.X))
			}
		}
	}

	if len(shares) < first.Threshold {
		return 0, fmt.Errorf("%w: need at least %d shares, got %d",
			ErrInsufficientShares, first.Threshold, len(shares))
	}
	return first.Threshold, nil
}

func (d *Dealer[E]) record(operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		metrics.RecordError(operation, d.field.Name(), errorType(err))
	}
	metrics.RecordOperation(operation, d.field.Name(), status, time.Since(start))
}
