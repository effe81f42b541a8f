package factor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/factorize/pkg/math/prime"
	"github.com/taurusgroup/factorize/pkg/pool"
)

// Factorization is an integer together with its prime factors in increasing order.
type Factorization struct {
	N      *big.Int
	Primes []*big.Int
}

// Decompose wraps Factorize.
func Decompose(ctx context.Context, n *big.Int, cfg Config, pl *pool.Pool) (*Factorization, error) {
	primes, err := Factorize(ctx, n, cfg, pl)
	if err != nil {
		return nil, err
	}
	return &Factorization{N: new(big.Int).Set(n), Primes: primes}, nil
}

// Verify checks that the factors are sorted primes whose product is N.
func (f *Factorization) Verify() error {
	if f.N == nil || f.N.Sign() < 1 {
		return ErrInvalidInput
	}
	product := big.NewInt(1)
	for i, p := range f.Primes {
		if !prime.IsPrime(nil, p, 0) {
			return fmt.Errorf("factor: %v is not prime", p)
		}
		if i > 0 && p.Cmp(f.Primes[i-1]) < 0 {
			return errors.New("factor: factors are not sorted")
		}
		product.Mul(product, p)
	}
	if product.Cmp(f.N) != 0 {
		return fmt.Errorf("factor: product %v differs from %v", product, f.N)
	}
	return nil
}

// Powers groups equal factors together.
func (f *Factorization) Powers() []prime.Power {
	var out []prime.Power
	for _, p := range f.Primes {
		if k := len(out); k > 0 && out[k-1].Prime.Cmp(p) == 0 {
			out[k-1].Exponent++
			continue
		}
		out = append(out, prime.Power{Prime: new(big.Int).Set(p), Exponent: 1})
	}
	return out
}

func (f *Factorization) String() string {
	powers := f.Powers()
	if len(powers) == 0 {
		return fmt.Sprintf("%v = 1", f.N)
	}
	parts := make([]string, len(powers))
	for i, pp := range powers {
		parts[i] = pp.String()
	}
	return fmt.Sprintf("%v = %s", f.N, strings.Join(parts, " ⋅ "))
}

type factorizationMarshal struct {
	N      []byte
	Primes [][]byte
}

func (f *Factorization) MarshalBinary() ([]byte, error) {
	fm := &factorizationMarshal{
		N:      f.N.Bytes(),
		Primes: make([][]byte, 0, len(f.Primes)),
	}
	for _, p := range f.Primes {
		fm.Primes = append(fm.Primes, p.Bytes())
	}
	return cbor.Marshal(fm)
}

func (f *Factorization) UnmarshalBinary(data []byte) error {
	var fm factorizationMarshal
	if err := cbor.Unmarshal(data, &fm); err != nil {
		return fmt.Errorf("factor: %w", err)
	}
	f.N = new(big.Int).SetBytes(fm.N)
	f.Primes = make([]*big.Int, 0, len(fm.Primes))
	for _, p := range fm.Primes {
		f.Primes = append(f.Primes, new(big.Int).SetBytes(p))
	}
	return nil
}
