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

// Package rand provides the random number sources used to draw polynomial
// coefficients.
//
// # Modes
//
//   - Software: crypto/rand, the default for real secret sharing.
//   - Deterministic: a ChaCha20 keystream keyed by SHA-256 of a seed string.
//     The same seed always yields the same bytes, which makes published
//     charts and test fixtures reproducible. Never use it to protect a real
//     secret.
//
// # Usage
//
//	rng, _ := rand.NewResolver(rand.ModeSoftware)
//	coefficient, _ := f.Rand(rng)
//
//	rng, _ := rand.NewResolver(&rand.Config{
//	    Mode: rand.ModeDeterministic,
//	    Seed: "blog-post-2025",
//	})
//
// A Resolver implements io.Reader, so it can be handed to anything that
// expects crypto/rand.Reader.
package rand

import (
	"crypto/rand"
	"errors"
	"fmt"
)

type Mode string

const (
	// ModeSoftware uses crypto/rand (stdlib secure random)
	ModeSoftware Mode = "software"

	// ModeDeterministic uses a seeded ChaCha20 keystream
	ModeDeterministic Mode = "deterministic"
)

// ErrSeedRequired is returned when deterministic mode is selected without a
// seed.
var ErrSeedRequired = errors.New("rand: deterministic mode requires a seed")

type Config struct {
	// Mode specifies the RNG source to use.
	// Defaults to ModeSoftware if not specified.
	Mode Mode

	// Seed keys the deterministic source. Required for ModeDeterministic,
	// ignored otherwise.
	Seed string
}

// Source is a raw random byte generator.
type Source interface {
	// Rand returns n random bytes.
	Rand(n int) ([]byte, error)

	// Available returns true if this RNG source is ready.
	Available() bool

	// Close releases any resources held by the source.
	Close() error
}

type Resolver interface {
	// Rand returns n random bytes from the configured RNG source.
	Rand(n int) ([]byte, error)

	// Read implements io.Reader, making this Resolver usable as a drop-in
	// replacement for crypto/rand.Reader.
	Read(p []byte) (n int, err error)

	// Source returns the underlying RNG Source being used.
	Source() Source

	// Mode reports which source backs the resolver.
	Mode() Mode

	Available() bool
	Close() error
}

// NewResolver accepts nil, a Mode or a *Config.
func NewResolver(config interface{}) (Resolver, error) {
	cfg := normalizeConfig(config)
	return newResolver(cfg)
}

func normalizeConfig(config interface{}) *Config {
	if config == nil {
		return &Config{Mode: ModeSoftware}
	}

	switch v := config.(type) {
	case Mode:
		return &Config{Mode: v}
	case *Config:
		if v == nil {
			return &Config{Mode: ModeSoftware}
		}
		cfg := *v
		if cfg.Mode == "" {
			cfg.Mode = ModeSoftware
		}
		return &cfg
	default:
		return &Config{Mode: ModeSoftware}
	}
}

func newResolver(cfg *Config) (Resolver, error) {
	switch cfg.Mode {
	case ModeSoftware:
		return newSoftwareResolver(), nil
	case ModeDeterministic:
		return newDeterministicResolver(cfg.Seed)
	default:
		return nil, fmt.Errorf("unknown RNG mode: %s", cfg.Mode)
	}
}

type SoftwareResolver struct {
	source *softwareSource
}

var _ Resolver = (*SoftwareResolver)(nil)

func newSoftwareResolver() *SoftwareResolver {
	return &SoftwareResolver{source: &softwareSource{}}
}

func (s *SoftwareResolver) Rand(n int) ([]byte, error) {
	return s.source.Rand(n)
}

func (s *SoftwareResolver) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

func (s *SoftwareResolver) Source() Source {
	return s.source
}

func (s *SoftwareResolver) Mode() Mode {
	return ModeSoftware
}

func (s *SoftwareResolver) Available() bool {
	return true // crypto/rand always available
}

func (s *SoftwareResolver) Close() error {
	return nil
}

type softwareSource struct{}

func (s *softwareSource) Rand(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid byte count: %d", n)
	}
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	return buf, err
}

func (s *softwareSource) Available() bool {
	return true
}

func (s *softwareSource) Close() error {
	return nil
}
