package qs

import (
	"context"
	"math"
	"math/big"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/factorize/pkg/math/arith"
	"github.com/taurusgroup/factorize/pkg/math/sample"
	"github.com/taurusgroup/factorize/pkg/pool"
	"github.com/taurusgroup/factorize/pkg/smooth"
)

// Relation records x with the factorization of x² - n over the factor base.
type Relation struct {
	X       *big.Int
	Factors smooth.Factorization
}

// sieve holds everything needed to scan offsets c, looking at x = ⌊√n⌋ + c.
type sieve struct {
	n, root *big.Int
	bound   int
	base    []uint64
	// logs[i] is the credit given to offsets divisible by base[i]
	logs []float64
	// offsets[i] are the residues of c modulo base[i] for which base[i] divides x² - n
	offsets [][]int
	// slack is how many bits of x² - n may be left unaccounted for by the pre-sieve
	slack float64

	template smooth.Factorizer
	streams  *sample.Streams
	pl       *pool.Pool
	log      zerolog.Logger
}

func newSieve(n, root *big.Int, bound int, base []uint64, template smooth.Factorizer, streams *sample.Streams, pl *pool.Pool, log zerolog.Logger) (*sieve, error) {
	s := &sieve{
		n:       n,
		root:    root,
		bound:   bound,
		base:    base,
		logs:    make([]float64, len(base)),
		offsets: make([][]int, len(base)),
		slack:   2 * math.Log2(float64(bound)),
		streams: streams,
		pl:      pl,
		log:     log,
	}

	template.Limit = uint64(bound)
	template.Small = base
	// every other prime dividing x² - n exceeds the bound
	template.Exhaustive = true
	s.template = template

	var pBig, rootMod big.Int
	for i, p := range base {
		pBig.SetUint64(p)
		rootMod.Mod(root, &pBig)
		ri := int(rootMod.Int64())
		pi := int(p)

		if p == 2 {
			// x² - n is even iff x is odd, and then divisible by 8, 4 or 2 depending on n mod 8
			s.offsets[i] = []int{((1-ri)%2 + 2) % 2}
			switch n.Bit(0) | n.Bit(1)<<1 | n.Bit(2)<<2 {
			case 1:
				s.logs[i] = 3
			case 5:
				s.logs[i] = 2
			default:
				s.logs[i] = 1
			}
			continue
		}

		r, err := arith.ModSqrt(n, &pBig)
		if err != nil {
			return nil, err
		}
		// x ≡ ±r (mod p)  ⟺  c ≡ ±r - ⌊√n⌋ (mod p)
		plus := int(r.Int64())
		minus := pi - plus
		s.offsets[i] = []int{((plus-ri)%pi + pi) % pi, ((minus-ri)%pi + pi) % pi}
		s.logs[i] = math.Log2(float64(p))
	}
	return s, nil
}

// candidate is an offset that survived the pre-sieve.
type candidate struct {
	c    int
	x, q *big.Int
}

// presieve returns the offsets in [start, end] whose x² - n collects enough credit
// from the factor base to plausibly be smooth.
func (s *sieve) presieve(start, end int) []candidate {
	size := end - start + 1
	credit := make([]float64, size)
	for i, p := range s.base {
		pi := int(p)
		for _, t := range s.offsets[i] {
			// first c ≥ start with c ≡ t (mod p)
			first := start + ((t-start)%pi+pi)%pi
			for c := first; c <= end; c += pi {
				credit[c-start] += s.logs[i]
			}
		}
	}

	// q = x² - n, advanced with (x+1)² - x² = 2x + 1
	x := new(big.Int).Add(s.root, big.NewInt(int64(start)))
	q := new(big.Int).Mul(x, x)
	q.Sub(q, s.n)
	var step big.Int

	var out []candidate
	for k := 0; k < size; k++ {
		if q.Sign() > 0 && credit[k] >= float64(q.BitLen())-s.slack {
			out = append(out, candidate{
				c: start + k,
				x: new(big.Int).Set(x),
				q: new(big.Int).Set(q),
			})
		}
		step.Lsh(x, 1)
		step.Add(&step, big.NewInt(1))
		q.Add(q, &step)
		x.Add(x, big.NewInt(1))
	}
	return out
}

// collect returns the relations found in the offsets [start, end], in offset order.
func (s *sieve) collect(ctx context.Context, start, end int) []Relation {
	candidates := s.presieve(start, end)
	results := s.pl.Parallelize(len(candidates), func(i int) interface{} {
		cand := candidates[i]
		f := s.template
		f.Rand = s.streams.Stream(uint64(cand.c))
		factors, err := f.Factor(ctx, cand.q)
		if err != nil {
			// not smooth, or ECM gave up: the relation is unusable
			return nil
		}
		return &Relation{X: cand.x, Factors: factors}
	})

	var out []Relation
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, *r.(*Relation))
	}
	s.log.Debug().
		Int("start", start).
		Int("candidates", len(candidates)).
		Int("relations", len(out)).
		Msg("qs: block sieved")
	return out
}
