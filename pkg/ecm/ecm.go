package ecm

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/factorize/internal/params"
	"github.com/taurusgroup/factorize/pkg/math/arith"
	"github.com/taurusgroup/factorize/pkg/math/curve"
	"github.com/taurusgroup/factorize/pkg/math/prime"
	"github.com/taurusgroup/factorize/pkg/math/sample"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoFactor is returned when every curve of the budget was exhausted without a split.
	// Callers should retry with a larger budget or switch strategy.
	ErrNoFactor = errors.New("ecm: no factor found within budget")

	ErrInvalidModulus = errors.New("ecm: modulus must be greater than 1 and coprime to 6")
)

var six = big.NewInt(6)

// Options is the budget of a single Lenstra run.
type Options struct {
	// Bound is the largest prime multiplied into the point during stage one.
	Bound int
	// Curves is the number of random curves tried.
	Curves int
	// Workers is the number of curves tried concurrently. 0 uses every CPU.
	Workers int
	// Rand seeds the per-curve random streams. Defaults to crypto/rand.
	Rand io.Reader
	Log  zerolog.Logger
}

func (o Options) normalize() Options {
	if o.Bound < 2 {
		o.Bound = params.EcmBound
	}
	if o.Curves < 1 {
		o.Curves = params.EcmCurves
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Workers > o.Curves {
		o.Workers = o.Curves
	}
	if o.Rand == nil {
		o.Rand = rand.Reader
	}
	return o
}

// Lenstra looks for a proper divisor of n with the elliptic curve method.
//
// n must exceed 1 and be coprime to 6. The divisor returned lies strictly between 1 and n,
// but need not be prime. Curves are tried concurrently and the first divisor found wins.
// ErrNoFactor is returned once every curve was abandoned.
func Lenstra(ctx context.Context, n *big.Int, opts Options) (*big.Int, error) {
	if n.Cmp(big.NewInt(1)) <= 0 || !arith.IsCoprime(n, six) {
		return nil, ErrInvalidModulus
	}
	opts = opts.normalize()
	multipliers := stageOne(opts.Bound)
	streams := sample.NewStreams(opts.Rand)

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(searchCtx)

	var next atomic.Int64
	found := make(chan *big.Int, 1)
	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			for {
				i := next.Add(1) - 1
				if i >= int64(opts.Curves) {
					return nil
				}
				f, err := tryCurve(gctx, streams.Stream(uint64(i)), n, multipliers)
				if err != nil {
					return err
				}
				if f != nil {
					select {
					case found <- f:
						opts.Log.Debug().Int64("curve", i).Stringer("factor", f).Msg("ecm: split found")
					default:
					}
					cancel()
					return nil
				}
			}
		})
	}
	err := g.Wait()

	select {
	case f := <-found:
		return f, nil
	default:
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	opts.Log.Debug().Int("bound", opts.Bound).Int("curves", opts.Curves).Msg("ecm: budget exhausted")
	return nil, ErrNoFactor
}

// stageOne lists the multipliers of the first stage: each prime p ≤ bound,
// repeated as many times as its powers stay ≤ bound.
func stageOne(bound int) []*big.Int {
	var out []*big.Int
	for _, p := range prime.PrimesUpTo(bound) {
		pBig := new(big.Int).SetUint64(p)
		for power := p; power <= uint64(bound); power *= p {
			out = append(out, pBig)
		}
	}
	return out
}

// checkEvery is the number of multiplications between two cancellation checks.
const checkEvery = 64

// tryCurve runs one curve, drawing its randomness from rand.
//
// It returns a proper divisor of n, or nil when the curve is abandoned.
func tryCurve(ctx context.Context, rand io.Reader, n *big.Int, multipliers []*big.Int) (*big.Int, error) {
	c, p := curve.Random(rand, n)

	// 4a³ + 27b² shares a factor with n: the curve is singular modulo that factor
	if f := arith.ProperDivisor(c.Discriminant(), n); f != nil {
		return f, nil
	}
	if t := c.Tangent(p); t.Failed() {
		return arith.ProperDivisor(t.Culprit(), n), nil
	}

	for i, k := range multipliers {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		r := c.Multiply(p, k)
		if r.Failed() {
			return arith.ProperDivisor(r.Culprit(), n), nil
		}
		p = r.Value()
		if p.IsInfinity() {
			return nil, nil
		}
	}
	return nil, nil
}
