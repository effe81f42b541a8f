package smooth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/factorize/internal/params"
	"github.com/taurusgroup/factorize/pkg/ecm"
	"github.com/taurusgroup/factorize/pkg/math/arith"
	"github.com/taurusgroup/factorize/pkg/math/prime"
)

var (
	// ErrFailed means ECM could not split a composite part within budget.
	ErrFailed = errors.New("smooth: factorization failed")
	// ErrNotSmooth means a prime factor above the limit was found.
	ErrNotSmooth = errors.New("smooth: prime factor above limit")

	ErrInvalidInput = errors.New("smooth: input must be positive")
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Factorizer splits small to medium integers into primes using trial division,
// the primality oracle and a fixed ECM budget.
type Factorizer struct {
	// Bound and Curves are the ECM budget spent on every composite part.
	Bound, Curves int
	// Rounds is passed on to the primality oracle.
	Rounds int
	// Limit, when non zero, aborts with ErrNotSmooth as soon as a prime above it shows up.
	Limit uint64
	// Small primes are divided out before anything else.
	Small []uint64
	// Exhaustive states that Small holds every prime up to Limit that can divide the inputs.
	// A cofactor left after trial division is then known not to be smooth, and no ECM is spent on it.
	Exhaustive bool
	Rand  io.Reader
	Log   zerolog.Logger
}

// New returns a Factorizer with the default ECM budget.
func New(small []uint64) *Factorizer {
	return &Factorizer{
		Bound:  params.SmoothEcmBound,
		Curves: params.SmoothEcmCurves,
		Rounds: params.MillerRabinRounds,
		Small:  small,
		Log:    zerolog.Nop(),
	}
}

// Factor returns the factorization of m ≥ 1.
func (f *Factorizer) Factor(ctx context.Context, m *big.Int) (Factorization, error) {
	if m.Sign() < 1 {
		return nil, ErrInvalidInput
	}
	var out Factorization

	rest := new(big.Int).Set(m)
	e2 := arith.Extract2(rest)
	rest.Rsh(rest, uint(e2))
	out = out.add(two, e2)

	e3 := arith.Extract3(rest)
	for i := 0; i < e3; i++ {
		rest.Quo(rest, three)
	}
	out = out.add(three, e3)

	if len(f.Small) > 0 {
		var powers []prime.Power
		rest, powers = prime.TrialDivision(rest, f.Small)
		for _, pp := range powers {
			out = out.add(pp.Prime, pp.Exponent)
		}
	}
	if !f.within(out) {
		return nil, ErrNotSmooth
	}
	if f.Exhaustive && f.Limit != 0 && rest.Cmp(big.NewInt(1)) > 0 {
		return nil, fmt.Errorf("%w: cofactor %v", ErrNotSmooth, rest)
	}

	// composite parts still to be split
	stack := []*big.Int{rest}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r.Cmp(big.NewInt(1)) == 0 {
			continue
		}
		if prime.IsPrime(f.Rand, r, f.Rounds) {
			out = out.add(r, 1)
			if !f.within(out) {
				return nil, ErrNotSmooth
			}
			continue
		}
		if b, k := arith.PerfectPower(r); k > 1 {
			for i := 0; i < k; i++ {
				stack = append(stack, b)
			}
			continue
		}
		d, err := ecm.Lenstra(ctx, r, ecm.Options{
			Bound:   f.Bound,
			Curves:  f.Curves,
			Workers: 1,
			Rand:    f.Rand,
			Log:     f.Log,
		})
		if errors.Is(err, ecm.ErrNoFactor) {
			return nil, fmt.Errorf("%w: %v: %v", ErrFailed, r, err)
		}
		if err != nil {
			return nil, err
		}
		stack = append(stack, d, new(big.Int).Quo(r, d))
	}
	return out, nil
}

func (f *Factorizer) within(out Factorization) bool {
	return f.Limit == 0 || out.Smooth(f.Limit)
}
