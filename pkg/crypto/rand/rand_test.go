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

package rand

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewResolver_SoftwareMode(t *testing.T) {
	resolver, err := NewResolver(ModeSoftware)
	if err != nil {
		t.Fatalf("failed to create software resolver: %v", err)
	}
	defer func() { _ = resolver.Close() }()

	if !resolver.Available() {
		t.Fatal("software resolver should be available")
	}
	if resolver.Mode() != ModeSoftware {
		t.Fatalf("expected software mode, got %s", resolver.Mode())
	}
}

func TestNewResolver_NilConfig(t *testing.T) {
	// nil config should default to software mode
	resolver, err := NewResolver(nil)
	if err != nil {
		t.Fatalf("failed to create resolver with nil config: %v", err)
	}
	defer func() { _ = resolver.Close() }()

	if resolver.Mode() != ModeSoftware {
		t.Fatalf("expected software mode, got %s", resolver.Mode())
	}
}

func TestNewResolver_EmptyModeDefaultsToSoftware(t *testing.T) {
	cfg := &Config{}
	resolver, err := NewResolver(cfg)
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}
	if resolver.Mode() != ModeSoftware {
		t.Fatalf("expected software mode, got %s", resolver.Mode())
	}
	if cfg.Mode != "" {
		t.Fatal("caller config should not be modified")
	}
}

func TestNewResolver_InvalidMode(t *testing.T) {
	cfg := &Config{Mode: "invalid"}
	_, err := NewResolver(cfg)
	if err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestSoftwareResolver_Rand(t *testing.T) {
	resolver, _ := NewResolver(ModeSoftware)
	defer func() { _ = resolver.Close() }()

	for _, size := range []int{0, 1, 16, 32, 1024} {
		buf, err := resolver.Rand(size)
		if err != nil {
			t.Fatalf("Rand(%d) failed: %v", size, err)
		}
		if len(buf) != size {
			t.Fatalf("expected %d bytes, got %d", size, len(buf))
		}
	}

	if _, err := resolver.Rand(-1); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestSoftwareResolver_Read(t *testing.T) {
	resolver, _ := NewResolver(ModeSoftware)

	a := make([]byte, 32)
	b := make([]byte, 32)
	if _, err := resolver.Read(a); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, err := resolver.Read(b); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two software reads should not be identical")
	}
}

func TestDeterministicResolver_RequiresSeed(t *testing.T) {
	_, err := NewResolver(ModeDeterministic)
	if !errors.Is(err, ErrSeedRequired) {
		t.Fatalf("expected ErrSeedRequired, got %v", err)
	}
}

func TestDeterministicResolver_Reproducible(t *testing.T) {
	a, err := NewResolver(&Config{Mode: ModeDeterministic, Seed: "blog"})
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}
	b, err := NewResolver(&Config{Mode: ModeDeterministic, Seed: "blog"})
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}
	c, err := NewResolver(&Config{Mode: ModeDeterministic, Seed: "other"})
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}

	first, _ := a.Rand(64)
	second, _ := b.Rand(64)
	third, _ := c.Rand(64)

	if !bytes.Equal(first, second) {
		t.Fatal("same seed should produce the same stream")
	}
	if bytes.Equal(first, third) {
		t.Fatal("different seeds should produce different streams")
	}

	// The stream advances between calls
	next, _ := a.Rand(64)
	if bytes.Equal(first, next) {
		t.Fatal("consecutive reads should differ")
	}
}

func TestDeterministicResolver_ChunkingDoesNotMatter(t *testing.T) {
	a, _ := NewResolver(&Config{Mode: ModeDeterministic, Seed: "chunks"})
	b, _ := NewResolver(&Config{Mode: ModeDeterministic, Seed: "chunks"})

	whole, _ := a.Rand(100)

	var pieces []byte
	for _, n := range []int{1, 7, 30, 62} {
		buf, _ := b.Rand(n)
		pieces = append(pieces, buf...)
	}

	if !bytes.Equal(whole, pieces) {
		t.Fatal("keystream should not depend on read sizes")
	}
}

func TestDeterministicResolver_ReadOverwrites(t *testing.T) {
	a, _ := NewResolver(&Config{Mode: ModeDeterministic, Seed: "overwrite"})
	b, _ := NewResolver(&Config{Mode: ModeDeterministic, Seed: "overwrite"})

	dirty := bytes.Repeat([]byte{0xff}, 16)
	clean := make([]byte, 16)
	_, _ = a.Read(dirty)
	_, _ = b.Read(clean)

	if !bytes.Equal(dirty, clean) {
		t.Fatal("Read output must not depend on the buffer's previous contents")
	}
}

func TestDeterministicResolver_Close(t *testing.T) {
	resolver, _ := NewResolver(&Config{Mode: ModeDeterministic, Seed: "close"})
	if err := resolver.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if resolver.Available() {
		t.Fatal("closed resolver should not be available")
	}
	if _, err := resolver.Rand(8); err == nil {
		t.Fatal("expected error reading from closed resolver")
	}
}
