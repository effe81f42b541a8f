package qs

import (
	"math"
	"math/big"

	"github.com/taurusgroup/factorize/internal/params"
	"github.com/taurusgroup/factorize/pkg/math/arith"
	"github.com/taurusgroup/factorize/pkg/math/prime"
)

// ln returns the natural logarithm of n > 0, also for n beyond the range of a float64.
func ln(n *big.Int) float64 {
	var mant big.Float
	exp := new(big.Float).SetInt(n).MantExp(&mant)
	m, _ := mant.Float64()
	return math.Log(m) + float64(exp)*math.Ln2
}

// SmoothnessBound returns ⌊s⋅exp(√(ln n ⋅ ln ln n) / 2)⌋ with s = params.SmoothnessScale,
// clamped to [params.MinSmoothnessBound, params.MaxSmoothnessBound].
func SmoothnessBound(n *big.Int) int {
	l := ln(n)
	if l <= 1 {
		return params.MinSmoothnessBound
	}
	b := params.SmoothnessScale * math.Exp(math.Sqrt(l*math.Log(l))/2)
	switch {
	case b >= params.MaxSmoothnessBound:
		return params.MaxSmoothnessBound
	case b < params.MinSmoothnessBound:
		return params.MinSmoothnessBound
	}
	return int(b)
}

// FactorBase returns the primes p ≤ bound modulo which n is a square.
//
// If one of the primes below the bound divides n, it is returned as a factor instead,
// together with a nil base.
func FactorBase(n *big.Int, bound int) ([]uint64, *big.Int, error) {
	var (
		base []uint64
		p, r big.Int
	)
	for _, small := range prime.PrimesUpTo(bound) {
		p.SetUint64(small)
		if p.Cmp(n) >= 0 {
			break
		}
		if r.Mod(n, &p).Sign() == 0 {
			return nil, new(big.Int).Set(&p), nil
		}
		l, err := arith.Legendre(n, &p)
		if err != nil {
			return nil, nil, err
		}
		if l == 1 {
			base = append(base, small)
		}
	}
	return base, nil, nil
}
