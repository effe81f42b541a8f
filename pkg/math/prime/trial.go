package prime

import (
	"fmt"
	"math/big"
)

// Power is a prime raised to a positive exponent.
type Power struct {
	Prime    *big.Int
	Exponent int
}

func (p Power) String() string {
	if p.Exponent == 1 {
		return p.Prime.String()
	}
	return fmt.Sprintf("%v^%d", p.Prime, p.Exponent)
}

// TrialDivision divides n > 0 by every prime in primes, in order.
//
// It returns the remaining cofactor together with the powers of the listed primes dividing n.
// n is not modified.
func TrialDivision(n *big.Int, primes []uint64) (*big.Int, []Power) {
	var (
		cofactor = new(big.Int).Set(n)
		powers   []Power
		p, q, r  big.Int
	)
	for _, small := range primes {
		if cofactor.Cmp(big.NewInt(1)) == 0 {
			break
		}
		p.SetUint64(small)
		e := 0
		for {
			q.QuoRem(cofactor, &p, &r)
			if r.Sign() != 0 {
				break
			}
			cofactor.Set(&q)
			e++
		}
		if e > 0 {
			powers = append(powers, Power{Prime: new(big.Int).Set(&p), Exponent: e})
		}
	}
	return cofactor, powers
}

// SmallestFactor returns the smallest prime factor of n ≥ 2 that is ≤ limit, or nil if there is none.
func SmallestFactor(n *big.Int, limit uint64) *big.Int {
	var d, r big.Int
	for i := uint64(2); i <= limit; i++ {
		d.SetUint64(i)
		if d.Cmp(n) > 0 {
			break
		}
		if r.Mod(n, &d).Sign() == 0 {
			return new(big.Int).Set(&d)
		}
		// past 2, only odd candidates
		if i > 2 {
			i++
		}
	}
	return nil
}
