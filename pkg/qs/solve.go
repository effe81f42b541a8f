package qs

import (
	"fmt"
	"math/big"

	"github.com/taurusgroup/factorize/pkg/math/arith"
	"github.com/taurusgroup/factorize/pkg/math/gf2"
)

// exponentMatrix returns the parity of the exponent of every base prime in every relation.
// A relation with a prime outside the base is rejected with ErrOutsideBase.
func exponentMatrix(base []uint64, relations []Relation) (*gf2.Matrix, error) {
	column := make(map[uint64]int, len(base))
	for j, p := range base {
		column[p] = j
	}
	m := gf2.New(len(relations), len(base))
	for i, r := range relations {
		for _, pp := range r.Factors {
			j, ok := column[pp.Prime.Uint64()]
			if !ok || !pp.Prime.IsUint64() {
				return nil, fmt.Errorf("%w: %v in relation %d", ErrOutsideBase, pp.Prime, i)
			}
			if pp.Exponent%2 == 1 {
				m.Set(i, j, true)
			}
		}
	}
	return m, nil
}

// congruence turns a set of relations whose product is a square into x² ≡ y² (mod n),
// and returns a proper divisor of n from gcd(x ∓ y, n), or nil if both are trivial.
func congruence(n *big.Int, relations []Relation, vector []int) *big.Int {
	lhs := big.NewInt(1)
	exponents := make(map[uint64]int)
	for _, i := range vector {
		lhs.Mul(lhs, relations[i].X)
		lhs.Mod(lhs, n)
		for _, pp := range relations[i].Factors {
			exponents[pp.Prime.Uint64()] += pp.Exponent
		}
	}

	rhs := big.NewInt(1)
	var p, t big.Int
	for prime, e := range exponents {
		p.SetUint64(prime)
		t.Exp(&p, big.NewInt(int64(e/2)), n)
		rhs.Mul(rhs, &t)
		rhs.Mod(rhs, n)
	}

	if d := arith.ProperDivisor(new(big.Int).Sub(lhs, rhs), n); d != nil {
		return d
	}
	return arith.ProperDivisor(new(big.Int).Add(lhs, rhs), n)
}

// solve tries every null space vector of the exponent matrix in turn.
// It returns nil together with the number of vectors tried when all of them were trivial.
func solve(n *big.Int, base []uint64, relations []Relation) (*big.Int, int, error) {
	m, err := exponentMatrix(base, relations)
	if err != nil {
		return nil, 0, err
	}
	vectors := m.NullSpace()
	for _, v := range vectors {
		if d := congruence(n, relations, v); d != nil {
			return d, len(vectors), nil
		}
	}
	return nil, len(vectors), nil
}
