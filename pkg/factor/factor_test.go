package factor

import (
	"context"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/factorize/internal/params"
	"github.com/taurusgroup/factorize/pkg/math/prime"
	"github.com/taurusgroup/factorize/pkg/pool"
	"github.com/taurusgroup/factorize/pkg/qs"
)

func ints(xs []*big.Int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = x.Int64()
	}
	return out
}

func noTrialDivision() Config {
	cfg := DefaultConfig()
	cfg.TrialDivisionBound = 0
	return cfg
}

// sieveOnly gives ECM a budget so small it practically never splits anything.
func sieveOnly() Config {
	cfg := noTrialDivision()
	cfg.EcmBound, cfg.EcmCurves, cfg.EcmEscalations, cfg.EcmGrowth = 2, 1, 1, 1
	return cfg
}

func TestFactorize_Scenarios(t *testing.T) {
	pl := pool.NewPool(0)
	defer pl.TearDown()

	for _, cfg := range []Config{DefaultConfig(), noTrialDivision(), {}} {
		primes, err := Factorize(context.Background(), big.NewInt(2993), cfg, pl)
		require.NoError(t, err)
		assert.Equal(t, []int64{41, 73}, ints(primes))

		primes, err = Factorize(context.Background(), big.NewInt(72_781), cfg, pl)
		require.NoError(t, err)
		assert.Equal(t, []int64{73, 997}, ints(primes))
	}
}

func TestFactorize_Edges(t *testing.T) {
	ctx := context.Background()

	primes, err := Factorize(ctx, big.NewInt(1), Config{}, nil)
	require.NoError(t, err)
	assert.Empty(t, primes)

	for _, c := range []int64{0, -1, -2993} {
		_, err = Factorize(ctx, big.NewInt(c), Config{}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	for _, c := range []struct {
		n        int64
		expected []int64
	}{
		{2, []int64{2}},
		{3, []int64{3}},
		{12, []int64{2, 2, 3}},
		{1024 * 243, []int64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3}},
		{1_000_003, []int64{1_000_003}},
		{1_000_003 * 1_000_003, []int64{1_000_003, 1_000_003}},
		{6 * 1009 * 1009 * 1009, []int64{2, 3, 1009, 1009, 1009}},
		{1_000_036_000_099, []int64{1_000_003, 1_000_033}},
	} {
		primes, err = Factorize(ctx, big.NewInt(c.n), noTrialDivision(), nil)
		require.NoError(t, err, "n = %d", c.n)
		assert.Equal(t, c.expected, ints(primes), "n = %d", c.n)
	}
}

func TestFactorize_Sieve(t *testing.T) {
	pl := pool.NewPool(0)
	defer pl.TearDown()

	primes, err := Factorize(context.Background(), big.NewInt(1_000_036_000_099), sieveOnly(), pl)
	require.NoError(t, err)
	assert.Equal(t, []int64{1_000_003, 1_000_033}, ints(primes))
}

func TestFactorize_Exhausted(t *testing.T) {
	cfg := sieveOnly()
	cfg.SieveMaxOffset = 10
	_, err := Factorize(context.Background(), big.NewInt(1_000_036_000_099), cfg, nil)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, qs.ErrExhausted)
}

func TestSplit_NoCongruence(t *testing.T) {
	// every congruence of squares modulo a prime is trivial, so both ECM and the sieve come back empty
	cfg := sieveOnly()
	cfg.SieveMaxOffset = params.SieveBlockSize
	cfg.Rand = mrand.New(mrand.NewSource(0))
	d := newDecomposer(cfg.normalize(), nil)

	_, err := d.split(context.Background(), big.NewInt(1009))
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, qs.ErrNoCongruence)
	assert.NotErrorIs(t, err, qs.ErrExhausted)
}

func TestFactorize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Factorize(ctx, big.NewInt(1_000_036_000_099), noTrialDivision(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactorize_Properties(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	candidates := prime.PrimesUpTo(200_000)
	cfg := noTrialDivision()
	cfg.Rand = r

	for i := 0; i < 25; i++ {
		n := big.NewInt(1)
		for k := r.Intn(4) + 1; k > 0; k-- {
			n.Mul(n, new(big.Int).SetUint64(candidates[r.Intn(len(candidates))]))
		}
		f, err := Decompose(context.Background(), n, cfg, nil)
		require.NoError(t, err, "n = %v", n)
		require.NoError(t, f.Verify(), "n = %v", n)
	}
}

func TestFactorization(t *testing.T) {
	n := big.NewInt(2 * 2 * 2 * 3 * 1009)
	f, err := Decompose(context.Background(), n, DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, f.Verify())
	assert.Equal(t, "24216 = 2^3 ⋅ 3 ⋅ 1009", f.String())

	data, err := f.MarshalBinary()
	require.NoError(t, err)
	var decoded Factorization
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, 0, decoded.N.Cmp(n))
	assert.Equal(t, ints(f.Primes), ints(decoded.Primes))

	one := &Factorization{N: big.NewInt(1)}
	assert.NoError(t, one.Verify())
	assert.Equal(t, "1 = 1", one.String())

	assert.Error(t, decoded.UnmarshalBinary([]byte{0xff, 0x00}))
}

func TestFactorization_Verify(t *testing.T) {
	bad := []*Factorization{
		{N: big.NewInt(15), Primes: []*big.Int{big.NewInt(15)}},
		{N: big.NewInt(15), Primes: []*big.Int{big.NewInt(5), big.NewInt(3)}},
		{N: big.NewInt(15), Primes: []*big.Int{big.NewInt(3), big.NewInt(7)}},
		{N: big.NewInt(0)},
	}
	for _, f := range bad {
		assert.Error(t, f.Verify(), "%v", f.Primes)
	}
}

func BenchmarkFactorize(b *testing.B) {
	n := big.NewInt(1_000_036_000_099)
	for i := 0; i < b.N; i++ {
		_, _ = Factorize(context.Background(), n, noTrialDivision(), nil)
	}
}
