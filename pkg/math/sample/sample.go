package sample

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/factorize/internal/params"
	"github.com/zeebo/blake3"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// ModN samples an element of ℤₙ, for n > 0.
func ModN(rand io.Reader, n *big.Int) *big.Int {
	out := new(big.Int)
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	// mask of the significant bits in the leading byte
	mask := byte(0xff)
	if r := bits % 8; r != 0 {
		mask = byte(1<<r) - 1
	}
	for {
		mustReadBits(rand, buf)
		buf[0] &= mask
		out.SetBytes(buf)
		if out.Cmp(n) < 0 {
			return out
		}
	}
}

// Range samples an integer uniformly from [lo, hi], for lo ≤ hi.
func Range(rand io.Reader, lo, hi *big.Int) *big.Int {
	width := new(big.Int).Sub(hi, lo)
	width.Add(width, big.NewInt(1))
	x := ModN(rand, width)
	return x.Add(x, lo)
}

// Streams derives independent random streams from a single secret seed.
//
// Stream i is the blake3 XOF keyed by the seed, over the big-endian encoding of i.
// Distinct indices never share output, so concurrent attempts can each own one.
type Streams struct {
	seed [params.SeedBytes]byte
}

// NewStreams reads a fresh seed from rand.
func NewStreams(rand io.Reader) *Streams {
	var s Streams
	mustReadBits(rand, s.seed[:])
	return &s
}

// Stream returns the i-th stream.
func (s *Streams) Stream(i uint64) io.Reader {
	h, err := blake3.NewKeyed(s.seed[:])
	if err != nil {
		// the seed always has the key size
		panic(fmt.Sprintf("sample.Streams: %v", err))
	}
	var index [8]byte
	binary.BigEndian.PutUint64(index[:], i)
	_, _ = h.Write(index[:])
	return h.Digest()
}
