package prime

import "math"

// PrimesUpTo returns all the prime numbers ≤ bound, in increasing order.
func PrimesUpTo(bound int) []uint64 {
	if bound < 2 {
		return nil
	}
	// composite[i] is set once i is known to have a factor below it
	composite := make([]bool, bound+1)
	for p := 2; p*p <= bound; p++ {
		if composite[p] {
			continue
		}
		// smaller multiples of p were already crossed out by smaller primes
		for i := p * p; i <= bound; i += p {
			composite[i] = true
		}
	}
	// It is believed that there are approximately N / log N primes below N, so this
	// bound is a decent estimate of our output size
	nF := float64(bound)
	out := make([]uint64, 0, int(nF/math.Log(nF))+1)
	for p := 2; p <= bound; p++ {
		if !composite[p] {
			out = append(out, uint64(p))
		}
	}
	return out
}
