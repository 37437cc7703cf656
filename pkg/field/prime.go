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
	"fmt"
	"io"
	"math/big"
)

// DefaultModulus is the Mersenne prime 2^127 - 1.
var DefaultModulus = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))

// Prime is the field of integers modulo a prime p.
type Prime struct {
	p *big.Int
}

// NewPrime returns the field Z/pZ. A nil modulus selects DefaultModulus.
func NewPrime(modulus *big.Int) (*Prime, error) {
	if modulus == nil {
		modulus = DefaultModulus
	}
	if modulus.Cmp(big.NewInt(3)) < 0 || !modulus.ProbablyPrime(20) {
		return nil, fmt.Errorf("%w: %s is not an odd prime", ErrInvalidModulus, modulus.String())
	}
	return &Prime{p: new(big.Int).Set(modulus)}, nil
}

// DefaultPrime returns the field modulo DefaultModulus.
func DefaultPrime() *Prime {
	return &Prime{p: new(big.Int).Set(DefaultModulus)}
}

// Modulus returns a copy of p.
func (f *Prime) Modulus() *big.Int { return new(big.Int).Set(f.p) }

func (f *Prime) Name() string { return "prime" }

func (f *Prime) Zero() *big.Int { return new(big.Int) }

func (f *Prime) One() *big.Int { return big.NewInt(1) }

// FromInt64 reduces v modulo p, so negative inputs map to p - |v|.
func (f *Prime) FromInt64(v int64) *big.Int { return f.reduce(big.NewInt(v)) }

func (f *Prime) Add(a, b *big.Int) *big.Int { return f.reduce(new(big.Int).Add(a, b)) }

func (f *Prime) Sub(a, b *big.Int) *big.Int { return f.reduce(new(big.Int).Sub(a, b)) }

func (f *Prime) Neg(a *big.Int) *big.Int { return f.reduce(new(big.Int).Neg(a)) }

func (f *Prime) Mul(a, b *big.Int) *big.Int { return f.reduce(new(big.Int).Mul(a, b)) }

func (f *Prime) Inv(a *big.Int) (*big.Int, error) {
	r := f.reduce(a)
	if r.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Int).ModInverse(r, f.p), nil
}

func (f *Prime) Equal(a, b *big.Int) bool { return f.reduce(a).Cmp(f.reduce(b)) == 0 }

func (f *Prime) IsZero(a *big.Int) bool { return f.reduce(a).Sign() == 0 }

// Rand returns a uniformly random element of [0, p).
func (f *Prime) Rand(r io.Reader) (*big.Int, error) {
	n, err := randInt(r, f.p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random field element: %w", err)
	}
	return n, nil
}

func (f *Prime) Format(a *big.Int) string { return f.reduce(a).String() }

// Parse reads a base 10 integer in [0, p). Values outside the field are
// rejected rather than reduced, since reduction would change a secret.
func (f *Prime) Parse(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidElement, s)
	}
	if n.Sign() < 0 || n.Cmp(f.p) >= 0 {
		return nil, fmt.Errorf("%w: %s is outside [0, %s)", ErrInvalidElement, s, f.p)
	}
	return n, nil
}

// FromBytes interprets b as a big-endian integer. Values >= p are rejected
// rather than silently reduced, since reduction would lose the secret.
func (f *Prime) FromBytes(b []byte) (*big.Int, error) {
	n := new(big.Int).SetBytes(b)
	if n.Cmp(f.p) >= 0 {
		return nil, fmt.Errorf("%w: value does not fit below the modulus", ErrInvalidElement)
	}
	return n, nil
}

// reduce returns a mod p in [0, p). Mod uses Euclidean semantics so the
// result is never negative.
func (f *Prime) reduce(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, f.p)
}
