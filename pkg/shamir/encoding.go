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
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-shamir/pkg/field"
)

// ShareDocument is the portable form of a share set: field elements are
// stored in the field's text encoding so any field round-trips through JSON
// or YAML.
type ShareDocument struct {
	Field     string        `json:"field" yaml:"field"`
	SetID     string        `json:"set_id" yaml:"set_id"`
	Threshold int           `json:"threshold" yaml:"threshold"`
	Total     int           `json:"total" yaml:"total"`
	Shares    []ShareRecord `json:"shares" yaml:"shares"`
}

// ShareRecord is one encoded share.
type ShareRecord struct {
	Index int    `json:"index" yaml:"index"`
	X     string `json:"x" yaml:"x"`
	Y     string `json:"y" yaml:"y"`
}

// Encode converts shares of a single split into a document.
func Encode[E any](f field.Field[E], shares []*Share[E]) (*ShareDocument, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares provided", ErrInsufficientShares)
	}

	first := shares[0]
	doc := &ShareDocument{
		Field:     f.Name(),
		SetID:     first.SetID,
		Threshold: first.Threshold,
		Total:     first.Total,
		Shares:    make([]ShareRecord, len(shares)),
	}
	for i, share := range shares {
		if share.SetID != first.SetID || share.Threshold != first.Threshold || share.Total != first.Total {
			return nil, fmt.Errorf("%w: share %d belongs to a different split", ErrInconsistentShares, i)
		}
		doc.Shares[i] = ShareRecord{
			Index: share.Index,
			X:     f.Format(share.X),
			Y:     f.Format(share.Y),
		}
	}
	return doc, nil
}

// Decode converts a document back into shares over f.
func Decode[E any](f field.Field[E], doc *ShareDocument) ([]*Share[E], error) {
	if doc.Field != f.Name() {
		return nil, fmt.Errorf("%w: document is %q, expected %q", ErrFieldMismatch, doc.Field, f.Name())
	}

	shares := make([]*Share[E], len(doc.Shares))
	for i, rec := range doc.Shares {
		x, err := f.Parse(rec.X)
		if err != nil {
			return nil, fmt.Errorf("share %d x: %w", i, err)
		}
		y, err := f.Parse(rec.Y)
		if err != nil {
			return nil, fmt.Errorf("share %d y: %w", i, err)
		}
		shares[i] = &Share[E]{
			SetID:     doc.SetID,
			Index:     rec.Index,
			Threshold: doc.Threshold,
			Total:     doc.Total,
			X:         x,
			Y:         y,
		}
	}
	return shares, nil
}

// JSON returns the indented JSON encoding of the document.
func (d *ShareDocument) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML returns the YAML encoding of the document.
func (d *ShareDocument) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// ParseDocument reads a document in YAML or JSON (YAML is a superset).
func ParseDocument(data []byte) (*ShareDocument, error) {
	var doc ShareDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse share document: %w", err)
	}
	if doc.Field == "" {
		return nil, fmt.Errorf("share document is missing the field name")
	}
	return &doc, nil
}
