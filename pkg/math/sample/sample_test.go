package sample

import (
	"bytes"
	"crypto/rand"
	"io"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModN(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	for _, n := range []int64{1, 2, 3, 7, 255, 256, 257, 1_000_003} {
		nBig := big.NewInt(n)
		for i := 0; i < 200; i++ {
			x := ModN(r, nBig)
			assert.True(t, x.Sign() >= 0 && x.Cmp(nBig) < 0, "%v should be in [0, %d)", x, n)
		}
	}
}

func TestModN_Covers(t *testing.T) {
	seen := make(map[int64]bool)
	n := big.NewInt(5)
	for i := 0; i < 500; i++ {
		seen[ModN(rand.Reader, n).Int64()] = true
	}
	assert.Len(t, seen, 5)
}

func TestRange(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	lo, hi := big.NewInt(2), big.NewInt(4)
	seen := make(map[int64]bool)
	for i := 0; i < 300; i++ {
		x := Range(r, lo, hi)
		require.True(t, x.Cmp(lo) >= 0 && x.Cmp(hi) <= 0)
		seen[x.Int64()] = true
	}
	assert.Len(t, seen, 3)

	x := Range(r, big.NewInt(9), big.NewInt(9))
	assert.Equal(t, int64(9), x.Int64())
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestModN_BrokenReader(t *testing.T) {
	assert.PanicsWithValue(t, ErrMaxIterations, func() {
		ModN(brokenReader{}, big.NewInt(10))
	})
}

func TestStreams(t *testing.T) {
	s := NewStreams(mrand.New(mrand.NewSource(2)))
	read := func(i uint64) []byte {
		buf := make([]byte, 64)
		_, err := io.ReadFull(s.Stream(i), buf)
		require.NoError(t, err)
		return buf
	}

	assert.Equal(t, read(0), read(0), "a stream is reproducible from its index")
	assert.False(t, bytes.Equal(read(0), read(1)), "distinct indices give distinct streams")

	other := NewStreams(mrand.New(mrand.NewSource(3)))
	buf := make([]byte, 64)
	_, err := io.ReadFull(other.Stream(0), buf)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(read(0), buf), "distinct seeds give distinct streams")
}

func BenchmarkModN(b *testing.B) {
	n := new(big.Int).Lsh(big.NewInt(1), 255)
	for i := 0; i < b.N; i++ {
		ModN(rand.Reader, n)
	}
}
