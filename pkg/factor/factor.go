package factor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/taurusgroup/factorize/pkg/ecm"
	"github.com/taurusgroup/factorize/pkg/math/arith"
	"github.com/taurusgroup/factorize/pkg/math/prime"
	"github.com/taurusgroup/factorize/pkg/pool"
	"github.com/taurusgroup/factorize/pkg/qs"
	"github.com/taurusgroup/factorize/pkg/smooth"
)

var (
	ErrInvalidInput = errors.New("factor: input must be positive")
	// ErrExhausted means neither ECM nor the quadratic sieve could split a composite.
	ErrExhausted = errors.New("factor: every strategy failed")
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Factorize returns the prime factors of n ≥ 1 in increasing order, with multiplicity.
// Factorize(1) is empty.
//
// Small factors are removed by trial division. Every remaining composite is split
// by ECM with growing budgets, then by the quadratic sieve, and both parts of a split
// are decomposed in turn. pl runs the sieve's candidate factoring and may be nil.
func Factorize(ctx context.Context, n *big.Int, cfg Config, pl *pool.Pool) ([]*big.Int, error) {
	if n.Sign() < 1 {
		return nil, ErrInvalidInput
	}
	d := newDecomposer(cfg.normalize(), pl)

	var primes []*big.Int
	rest := new(big.Int).Set(n)

	e2 := arith.Extract2(rest)
	rest.Rsh(rest, uint(e2))
	for i := 0; i < e2; i++ {
		primes = append(primes, new(big.Int).Set(two))
	}
	e3 := arith.Extract3(rest)
	for i := 0; i < e3; i++ {
		rest.Quo(rest, three)
		primes = append(primes, new(big.Int).Set(three))
	}

	if d.cfg.TrialDivisionBound > 0 {
		var powers []prime.Power
		rest, powers = prime.TrialDivision(rest, prime.PrimesUpTo(d.cfg.TrialDivisionBound))
		for _, pp := range powers {
			for i := 0; i < pp.Exponent; i++ {
				primes = append(primes, new(big.Int).Set(pp.Prime))
			}
		}
	}

	// parts still to be decomposed
	stack := []*big.Int{rest}
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if m.Cmp(one) == 0 {
			continue
		}
		if prime.IsPrime(d.cfg.Rand, m, d.cfg.Rounds) {
			primes = append(primes, m)
			continue
		}
		if b, k := arith.PerfectPower(m); k > 1 {
			d.cfg.Log.Debug().Stringer("n", m).Int("exponent", k).Msg("perfect power")
			for i := 0; i < k; i++ {
				stack = append(stack, b)
			}
			continue
		}
		f, err := d.split(ctx, m)
		if err != nil {
			return nil, err
		}
		stack = append(stack, f, new(big.Int).Quo(m, f))
	}

	sort.Slice(primes, func(i, j int) bool { return primes[i].Cmp(primes[j]) < 0 })
	return primes, nil
}

// decomposer holds what is shared by every split of one Factorize call.
type decomposer struct {
	cfg    Config
	pl     *pool.Pool
	smooth *smooth.Factorizer
}

func newDecomposer(cfg Config, pl *pool.Pool) *decomposer {
	sf := smooth.New(nil)
	sf.Rounds = cfg.Rounds
	sf.Log = cfg.Log
	return &decomposer{cfg: cfg, pl: pl, smooth: sf}
}

// split returns a proper divisor of the composite m, which is coprime to 6 and not a perfect power.
func (d *decomposer) split(ctx context.Context, m *big.Int) (*big.Int, error) {
	log := d.cfg.Log.With().Stringer("n", m).Logger()

	bound, curves := d.cfg.EcmBound, d.cfg.EcmCurves
	for level := 0; level < d.cfg.EcmEscalations; level++ {
		f, err := ecm.Lenstra(ctx, m, ecm.Options{
			Bound:   bound,
			Curves:  curves,
			Workers: d.cfg.Workers,
			Rand:    d.cfg.Rand,
			Log:     log,
		})
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, ecm.ErrNoFactor) {
			return nil, err
		}
		log.Debug().Int("level", level).Int("bound", bound).Int("curves", curves).Msg("ecm budget exhausted, escalating")
		bound *= d.cfg.EcmGrowth
		curves *= d.cfg.EcmGrowth
	}

	log.Info().Msg("ecm gave up, switching to the quadratic sieve")
	f, err := qs.Factor(ctx, m, qs.Config{
		Margin:    d.cfg.SieveMargin,
		MaxOffset: d.cfg.SieveMaxOffset,
		Smooth:    d.smooth,
		Rand:      d.cfg.Rand,
		Log:       log,
	}, d.pl)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, qs.ErrExhausted) || errors.Is(err, qs.ErrNoCongruence) {
		return nil, fmt.Errorf("%w: %v: %w", ErrExhausted, m, err)
	}
	return nil, err
}
