package arith

import (
	"errors"
	"math/big"
)

var (
	ErrNotCoprime = errors.New("arith: arguments are not coprime")
	ErrNotPrime   = errors.New("arith: modulus is not prime")
	ErrNonResidue = errors.New("arith: not a quadratic residue")
)

// Legendre returns the Legendre symbol (a/p) for a prime p and gcd(a, p) = 1:
// 1 if a is a square mod p, and -1 otherwise.
//
// The symbol is computed with Euler's criterion a⁽ᵖ⁻¹⁾ᐟ² (mod p). When p is not prime
// this may produce a value other than ±1, which is reported as ErrNotPrime.
// Composite p can also slip through undetected; callers establish primality first.
func Legendre(a, p *big.Int) (int, error) {
	if p.Cmp(two) < 0 {
		return 0, ErrNotPrime
	}
	if !IsCoprime(a, p) {
		return 0, ErrNotCoprime
	}
	if p.Cmp(two) == 0 {
		return 1, nil
	}
	e := new(big.Int).Rsh(p, 1) // (p-1)/2 since p is odd
	r := NewModulus(p).Exp(a, e)
	switch {
	case r.Cmp(one) == 0:
		return 1, nil
	case r.Cmp(new(big.Int).Sub(p, one)) == 0:
		return -1, nil
	default:
		return 0, ErrNotPrime
	}
}

// ModSqrt returns x such that x² ≡ n (mod p) for a prime p, using Tonelli–Shanks.
//
// n ≡ 0 (mod p) yields 0. Otherwise n must be a quadratic residue, or ErrNonResidue is returned.
func ModSqrt(n, p *big.Int) (*big.Int, error) {
	a := new(big.Int).Mod(n, p)
	if a.Sign() == 0 {
		return a, nil
	}
	l, err := Legendre(a, p)
	if err != nil {
		return nil, err
	}
	if l != 1 {
		return nil, ErrNonResidue
	}
	if p.Cmp(two) == 0 {
		return a, nil
	}
	mod := NewModulus(p)

	// p ≡ 3 (mod 4): a⁽ᵖ⁺¹⁾ᐟ⁴ is a root
	if p.Bit(1) == 1 {
		e := new(big.Int).Add(p, one)
		e.Rsh(e, 2)
		return mod.Exp(a, e), nil
	}

	// p - 1 = 2ˢ⋅q with q odd
	pMinus1 := new(big.Int).Sub(p, one)
	s := pMinus1.TrailingZeroBits()
	q := new(big.Int).Rsh(pMinus1, s)

	// any non-residue works; the smallest one is tiny in practice
	z := big.NewInt(2)
	for {
		l, err := Legendre(z, p)
		if err != nil {
			return nil, err
		}
		if l == -1 {
			break
		}
		z.Add(z, one)
	}

	m := s
	c := mod.Exp(z, q)
	t := mod.Exp(a, q)
	r := mod.Exp(a, new(big.Int).Rsh(new(big.Int).Add(q, one), 1))
	for t.Cmp(one) != 0 {
		// least 0 < i < m with t^(2^i) = 1
		i := uint(0)
		for tt := new(big.Int).Set(t); tt.Cmp(one) != 0; {
			tt = mod.Square(tt)
			i++
			if i == m {
				return nil, ErrNotPrime
			}
		}
		b := mod.Exp(c, new(big.Int).Lsh(one, m-i-1))
		m = i
		c = mod.Square(b)
		t = mod.Mul(t, c)
		r = mod.Mul(r, b)
	}
	return r, nil
}
