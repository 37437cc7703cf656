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
	"crypto/sha256"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// DeterministicResolver expands a seed into a ChaCha20 keystream. The key is
// SHA-256(seed) and the nonce is all zero, so a given seed always produces
// the same stream.
type DeterministicResolver struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
	closed bool
}

var _ Resolver = (*DeterministicResolver)(nil)

func newDeterministicResolver(seed string) (*DeterministicResolver, error) {
	if seed == "" {
		return nil, ErrSeedRequired
	}
	key := sha256.Sum256([]byte(seed))
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to create keystream: %w", err)
	}
	return &DeterministicResolver{cipher: c}, nil
}

func (d *DeterministicResolver) Rand(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid byte count: %d", n)
	}
	buf := make([]byte, n)
	if _, err := d.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Read overwrites p with the next len(p) keystream bytes.
func (d *DeterministicResolver) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, fmt.Errorf("rand: deterministic resolver is closed")
	}
	clear(p)
	d.cipher.XORKeyStream(p, p)
	return len(p), nil
}

func (d *DeterministicResolver) Source() Source {
	return d
}

func (d *DeterministicResolver) Mode() Mode {
	return ModeDeterministic
}

func (d *DeterministicResolver) Available() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.closed
}

func (d *DeterministicResolver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
