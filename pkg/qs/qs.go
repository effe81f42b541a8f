package qs

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/factorize/internal/params"
	"github.com/taurusgroup/factorize/pkg/math/sample"
	"github.com/taurusgroup/factorize/pkg/pool"
	"github.com/taurusgroup/factorize/pkg/smooth"
)

var (
	// ErrExhausted means the offset ceiling was reached before enough relations were found.
	ErrExhausted = errors.New("qs: offset ceiling reached")
	// ErrNoCongruence means every congruence of squares found was trivial up to the offset ceiling.
	ErrNoCongruence = errors.New("qs: no non-trivial congruence of squares")
	// ErrOutsideBase means a relation holds a prime the factor base does not contain.
	ErrOutsideBase = errors.New("qs: prime outside the factor base")

	ErrInvalidInput = errors.New("qs: input must be greater than 1")
)

// Config tunes a sieve run. Zero fields take their defaults.
type Config struct {
	// Bound is the smoothness bound. Defaults to SmoothnessBound(n).
	Bound int
	// Margin is the number of relations collected beyond the factor base size,
	// and the number of extra relations gathered after an unlucky linear algebra step.
	Margin int
	// MaxOffset is the last offset from ⌊√n⌋ examined.
	MaxOffset int
	// BlockSize is the number of offsets pre-sieved together.
	BlockSize int
	// Smooth is the factorizer applied to sieve values. Its Limit, Small, Exhaustive
	// and Rand fields are set by the sieve.
	Smooth *smooth.Factorizer
	Rand   io.Reader
	Log    zerolog.Logger
}

func (c Config) normalize() Config {
	if c.Margin < 1 {
		c.Margin = params.SieveRelationMargin
	}
	if c.MaxOffset < 1 {
		c.MaxOffset = params.SieveMaxOffset
	}
	if c.BlockSize < 1 {
		c.BlockSize = params.SieveBlockSize
	}
	if c.Smooth == nil {
		c.Smooth = smooth.New(nil)
		c.Smooth.Log = c.Log
	}
	if c.Rand == nil {
		c.Rand = rand.Reader
	}
	return c
}

// Factor returns a proper divisor of the composite n with the quadratic sieve.
//
// Values x² - n for x = ⌊√n⌋ + c, c = 1, 2, … are pre-sieved by block, and the survivors
// factored on pl (nil runs them on the calling goroutine). Once the relations outnumber the
// factor base, a GF(2) null space vector gives a congruence of squares.
func Factor(ctx context.Context, n *big.Int, cfg Config, pl *pool.Pool) (*big.Int, error) {
	if n.Cmp(big.NewInt(1)) <= 0 {
		return nil, ErrInvalidInput
	}
	cfg = cfg.normalize()

	root := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(root, root).Cmp(n) == 0 {
		return root, nil
	}

	bound := cfg.Bound
	if bound < 2 {
		bound = SmoothnessBound(n)
	}
	base, d, err := FactorBase(n, bound)
	if err != nil {
		return nil, fmt.Errorf("qs: factor base: %w", err)
	}
	if d != nil {
		return d, nil
	}

	log := cfg.Log.With().Int("bound", bound).Int("base", len(base)).Logger()
	s, err := newSieve(n, root, bound, base, *cfg.Smooth, sample.NewStreams(cfg.Rand), pl, log)
	if err != nil {
		return nil, fmt.Errorf("qs: sieve setup: %w", err)
	}
	log.Debug().Stringer("n", n).Msg("qs: sieving")

	var (
		relations []Relation
		target    = len(base) + cfg.Margin
		attempts  int
	)
	for start := 1; start <= cfg.MaxOffset; start += cfg.BlockSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + cfg.BlockSize - 1
		if end > cfg.MaxOffset {
			end = cfg.MaxOffset
		}
		relations = append(relations, s.collect(ctx, start, end)...)
		if len(relations) < target {
			continue
		}

		d, vectors, err := solve(n, base, relations)
		if err != nil {
			return nil, err
		}
		if d != nil {
			log.Debug().Int("relations", len(relations)).Int("vectors", vectors).Msg("qs: split found")
			return d, nil
		}
		attempts++
		target = len(relations) + cfg.Margin
		log.Debug().Int("relations", len(relations)).Int("vectors", vectors).Msg("qs: only trivial congruences, collecting more")
	}

	if attempts > 0 {
		return nil, fmt.Errorf("%w: %d relations, %d attempts", ErrNoCongruence, len(relations), attempts)
	}
	return nil, fmt.Errorf("%w: %d of %d relations below offset %d", ErrExhausted, len(relations), target, cfg.MaxOffset)
}
