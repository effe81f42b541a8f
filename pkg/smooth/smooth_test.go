package smooth

import (
	"context"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/factorize/pkg/math/prime"
)

func TestFactor(t *testing.T) {
	f := New(nil)
	f.Rand = mrand.New(mrand.NewSource(0))
	for _, c := range []struct {
		n        int64
		expected string
	}{
		{1, "1"},
		{2, "2"},
		{97, "97"},
		{2993, "41 ⋅ 73"},
		{72781, "73 ⋅ 997"},
		{2 * 2 * 2 * 3 * 3 * 5 * 7 * 7, "2^3 ⋅ 3^2 ⋅ 5 ⋅ 7^2"},
		{11 * 11 * 11 * 13, "11^3 ⋅ 13"},
		{1_000_003 * 1_000_003, "1000003^2"},
		{1_000_036_000_099, "1000003 ⋅ 1000033"},
	} {
		n := big.NewInt(c.n)
		fact, err := f.Factor(context.Background(), n)
		require.NoError(t, err, "n = %d", c.n)
		assert.Equal(t, c.expected, fact.String())
		assert.Equal(t, 0, fact.Product().Cmp(n))
		assert.Equal(t, c.n, n.Int64(), "input is unchanged")
	}
}

func TestFactor_Properties(t *testing.T) {
	f := New(prime.PrimesUpTo(50))
	r := mrand.New(mrand.NewSource(1))
	f.Rand = r
	for i := 0; i < 100; i++ {
		n := big.NewInt(r.Int63n(1<<40) + 1)
		fact, err := f.Factor(context.Background(), n)
		require.NoError(t, err, "n = %v", n)
		assert.Equal(t, 0, fact.Product().Cmp(n))
		for j, pp := range fact {
			assert.True(t, prime.IsPrime(nil, pp.Prime, 0), "%v should be prime", pp.Prime)
			assert.Positive(t, pp.Exponent)
			if j > 0 {
				assert.Equal(t, 1, pp.Prime.Cmp(fact[j-1].Prime), "primes are sorted and distinct")
			}
		}
	}
}

func TestFactor_Limit(t *testing.T) {
	f := New(prime.PrimesUpTo(30))
	f.Limit = 30
	fact, err := f.Factor(context.Background(), big.NewInt(2*3*29*29))
	require.NoError(t, err)
	assert.True(t, fact.Smooth(30))

	_, err = f.Factor(context.Background(), big.NewInt(2*3*31))
	assert.ErrorIs(t, err, ErrNotSmooth)
	_, err = f.Factor(context.Background(), big.NewInt(41*73))
	assert.ErrorIs(t, err, ErrNotSmooth)
}

func TestFactor_Exhaustive(t *testing.T) {
	f := New([]uint64{5, 7})
	f.Limit = 7
	f.Bound, f.Curves = 3, 1
	f.Exhaustive = true

	fact, err := f.Factor(context.Background(), big.NewInt(2*5*5*7))
	require.NoError(t, err)
	assert.Equal(t, "2 ⋅ 5^2 ⋅ 7", fact.String())

	// the cofactor is rejected without spending the ECM budget on it
	n := new(big.Int).Mul(big.NewInt(5*1_000_003), big.NewInt(1_000_033))
	_, err = f.Factor(context.Background(), n)
	assert.ErrorIs(t, err, ErrNotSmooth)
	assert.NotErrorIs(t, err, ErrFailed)

	f.Exhaustive = false
	_, err = f.Factor(context.Background(), n)
	assert.ErrorIs(t, err, ErrFailed)
}

func TestFactor_Failed(t *testing.T) {
	// a budget far too small to split a product of two large primes
	f := New(nil)
	f.Bound, f.Curves = 3, 1
	n := new(big.Int).Mul(big.NewInt(1_000_003), big.NewInt(1_000_033))
	_, err := f.Factor(context.Background(), n)
	assert.ErrorIs(t, err, ErrFailed)
}

func TestFactor_Invalid(t *testing.T) {
	_, err := New(nil).Factor(context.Background(), big.NewInt(0))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFactorization(t *testing.T) {
	var f Factorization
	f = f.add(big.NewInt(7), 1)
	f = f.add(big.NewInt(2), 3)
	f = f.add(big.NewInt(7), 2)
	f = f.add(big.NewInt(5), 0)
	assert.Equal(t, "2^3 ⋅ 7^3", f.String())
	assert.Equal(t, 3, f.Exponent(big.NewInt(7)))
	assert.Equal(t, 0, f.Exponent(big.NewInt(5)))
	assert.Equal(t, int64(8*343), f.Product().Int64())
	assert.True(t, f.Smooth(7))
	assert.False(t, f.Smooth(6))
	assert.True(t, Factorization(nil).Smooth(2))
}
