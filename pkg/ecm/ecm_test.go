package ecm

import (
	"context"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenstra_187(t *testing.T) {
	n := big.NewInt(187)
	for i := 0; i < 20; i++ {
		f, err := Lenstra(context.Background(), n, Options{Bound: 50, Curves: 20})
		require.NoError(t, err)
		assert.Contains(t, []int64{11, 17}, f.Int64())
	}
}

func TestLenstra_Semiprime(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(1_000_003), big.NewInt(1_000_033))
	opts := Options{Bound: 2_000, Curves: 200, Rand: mrand.New(mrand.NewSource(0))}
	f, err := Lenstra(context.Background(), n, opts)
	require.NoError(t, err)
	assert.Contains(t, []int64{1_000_003, 1_000_033}, f.Int64())
}

func TestLenstra_ProperDivisor(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	for _, c := range []int64{5 * 7 * 11, 25, 13 * 13 * 13, 101 * 103, 41 * 73} {
		n := big.NewInt(c)
		f, err := Lenstra(context.Background(), n, Options{Bound: 100, Curves: 100, Workers: 2, Rand: r})
		require.NoError(t, err, "n = %d", c)
		assert.True(t, f.Cmp(big.NewInt(1)) > 0 && f.Cmp(n) < 0, "%v should be a proper divisor of %d", f, c)
		assert.Equal(t, 0, new(big.Int).Mod(n, f).Sign())
	}
}

func TestLenstra_InvalidModulus(t *testing.T) {
	for _, c := range []int64{-35, 0, 1, 2, 6, 9, 187 * 2, 187 * 3} {
		_, err := Lenstra(context.Background(), big.NewInt(c), Options{})
		assert.ErrorIs(t, err, ErrInvalidModulus, "n = %d", c)
	}
}

func TestLenstra_NoFactor(t *testing.T) {
	// a prime has no proper divisor to find
	_, err := Lenstra(context.Background(), big.NewInt(1_000_003), Options{Bound: 20, Curves: 8})
	assert.ErrorIs(t, err, ErrNoFactor)
}

func TestLenstra_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Lenstra(ctx, big.NewInt(1_000_003), Options{Bound: 10_000, Curves: 1_000})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStageOne(t *testing.T) {
	var got []int64
	for _, k := range stageOne(10) {
		got = append(got, k.Int64())
	}
	// 2, 4, 8 ≤ 10 and 3, 9 ≤ 10
	assert.Equal(t, []int64{2, 2, 2, 3, 3, 5, 7}, got)
}

func BenchmarkLenstra(b *testing.B) {
	n := new(big.Int).Mul(big.NewInt(1_000_003), big.NewInt(1_000_033))
	for i := 0; i < b.N; i++ {
		_, _ = Lenstra(context.Background(), n, Options{Bound: 2_000, Curves: 500})
	}
}
