package prime

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/taurusgroup/factorize/internal/params"
	"github.com/taurusgroup/factorize/pkg/math/arith"
	"github.com/taurusgroup/factorize/pkg/math/sample"
)

var ErrInvalidInput = errors.New("prime: input must be positive")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// MillerRabin runs rounds independent rounds of the Miller–Rabin test on n ≥ 1.
//
// Bases are drawn uniformly from [2, n-1] using rand, or crypto/rand when rand is nil.
// rounds < 1 selects params.MillerRabinRounds.
// A false result is certain; a true result is wrong with probability at most 4⁻ʳᵒᵘⁿᵈˢ.
func MillerRabin(rand io.Reader, n *big.Int, rounds int) (bool, error) {
	if n.Sign() < 1 {
		return false, ErrInvalidInput
	}
	if n.Cmp(one) == 0 {
		return false, nil
	}
	if n.Cmp(two) == 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}
	if rounds < 1 {
		rounds = params.MillerRabinRounds
	}
	if rand == nil {
		rand = defaultReader
	}

	// n - 1 = 2ᵉ⋅m with m odd
	nMinus1 := new(big.Int).Sub(n, one)
	e := nMinus1.TrailingZeroBits()
	m := new(big.Int).Rsh(nMinus1, e)
	mod := arith.NewModulus(n)

	for i := 0; i < rounds; i++ {
		x := sample.Range(rand, two, nMinus1)
		if !witnessPasses(mod, x, m, e, nMinus1) {
			return false, nil
		}
	}
	return true, nil
}

var defaultReader = rand.Reader

// witnessPasses reports whether n looks prime to the base x:
// xᵐ ≡ 1, or x^(m⋅2ˢ) ≡ -1 for some s < e.
func witnessPasses(mod *arith.Modulus, x, m *big.Int, e uint, nMinus1 *big.Int) bool {
	y := mod.Exp(x, m)
	if y.Cmp(one) == 0 || y.Cmp(nMinus1) == 0 {
		return true
	}
	for s := uint(1); s < e; s++ {
		y = mod.Square(y)
		if y.Cmp(nMinus1) == 0 {
			return true
		}
		// 1 without passing through -1: a non-trivial square root of 1
		if y.Cmp(one) == 0 {
			return false
		}
	}
	return false
}

// IsPrime is MillerRabin with invalid input reported as not prime.
func IsPrime(rand io.Reader, n *big.Int, rounds int) bool {
	ok, err := MillerRabin(rand, n, rounds)
	return err == nil && ok
}
