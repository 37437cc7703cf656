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

// Package shamir implements Shamir's Secret Sharing on top of the generic
// polynomial package.
//
// # How it works
//
// The secret becomes the constant term a0 of a random polynomial of degree
// t-1, where t is the threshold:
//
//	p(x) = a0 + a1*x + ... + a(t-1)*x^(t-1)
//
// Each share is a point (x, p(x)) with x != 0. Any t shares determine p, and
// Lagrange interpolation at x = 0 returns a0. Fewer than t shares are
// consistent with every possible secret, so Combine refuses them outright
// instead of returning a plausible looking wrong answer.
//
// # Domains
//
// Dealer is generic over a field.Field. Use field.Prime for integer secrets,
// field.Rational for the exact "real number" curves drawn on charts, and
// field.GF256 through ByteSharer for byte strings. SplitText and CombineText
// produce SSSA formatted shares for interoperability with other SSSA
// implementations.
//
// # Usage
//
//	dealer, err := shamir.NewDealer[*big.Int](field.DefaultPrime(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	shares, err := dealer.Split(big.NewInt(42), 3, 5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	secret, err := dealer.Combine(shares[:3])
package shamir
