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

package field

import (
	"errors"
	"io"
	"math/big"
)

// randInt returns a uniform integer in [0, max) read from r by rejection
// sampling. The caller's reader is always honoured, so a seeded stream
// reproduces the same elements.
func randInt(r io.Reader, max *big.Int) (*big.Int, error) {
	if max.Sign() <= 0 {
		return nil, errors.New("field: random bound must be positive")
	}
	n := new(big.Int).Sub(max, big.NewInt(1))
	bitLen := n.BitLen()
	if bitLen == 0 {
		return new(big.Int), nil
	}
	k := (bitLen + 7) / 8
	b := uint(bitLen % 8)
	if b == 0 {
		b = 8
	}

	buf := make([]byte, k)
	out := new(big.Int)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		// Clear the bits above the bit length of max-1 so the rejection
		// rate stays below one half.
		buf[0] &= uint8(int(1<<b) - 1)
		out.SetBytes(buf)
		if out.Cmp(max) < 0 {
			return out, nil
		}
	}
}
