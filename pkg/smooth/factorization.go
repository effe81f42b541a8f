package smooth

import (
	"math/big"
	"sort"
	"strings"

	"github.com/taurusgroup/factorize/pkg/math/prime"
)

// Factorization is a list of prime powers sorted by increasing prime, each prime appearing once.
type Factorization []prime.Power

// add multiplies f by pᵉ, keeping it sorted.
func (f Factorization) add(p *big.Int, e int) Factorization {
	if e == 0 {
		return f
	}
	i := sort.Search(len(f), func(i int) bool { return f[i].Prime.Cmp(p) >= 0 })
	if i < len(f) && f[i].Prime.Cmp(p) == 0 {
		f[i].Exponent += e
		return f
	}
	f = append(f, prime.Power{})
	copy(f[i+1:], f[i:])
	f[i] = prime.Power{Prime: new(big.Int).Set(p), Exponent: e}
	return f
}

// Exponent returns the exponent of p in f, 0 if p does not appear.
func (f Factorization) Exponent(p *big.Int) int {
	i := sort.Search(len(f), func(i int) bool { return f[i].Prime.Cmp(p) >= 0 })
	if i < len(f) && f[i].Prime.Cmp(p) == 0 {
		return f[i].Exponent
	}
	return 0
}

// Smooth reports whether every prime of f is ≤ bound.
func (f Factorization) Smooth(bound uint64) bool {
	if len(f) == 0 {
		return true
	}
	return f[len(f)-1].Prime.Cmp(new(big.Int).SetUint64(bound)) <= 0
}

// Product multiplies the prime powers back together.
func (f Factorization) Product() *big.Int {
	out := big.NewInt(1)
	var t big.Int
	for _, pp := range f {
		t.Exp(pp.Prime, big.NewInt(int64(pp.Exponent)), nil)
		out.Mul(out, &t)
	}
	return out
}

func (f Factorization) String() string {
	if len(f) == 0 {
		return "1"
	}
	parts := make([]string, len(f))
	for i, pp := range f {
		parts[i] = pp.String()
	}
	return strings.Join(parts, " ⋅ ")
}
