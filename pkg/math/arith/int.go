package arith

import "math/big"

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// IsCoprime returns true if gcd(a,b) = 1.
func IsCoprime(a, b *big.Int) bool {
	var gcd big.Int
	if gcd.GCD(nil, nil, a, b).Cmp(one) == 0 {
		return true
	}
	return false
}

// ModInverse returns x such that a⋅x ≡ 1 (mod m).
//
// When gcd(a, m) ≠ 1 the result fails with gcd(a, m) as its culprit.
func ModInverse(a, m *big.Int) Result[*big.Int] {
	r := new(big.Int).Mod(a, m)
	x := new(big.Int)
	gcd := new(big.Int).GCD(x, nil, r, m)
	if gcd.Cmp(one) != 0 {
		return Fail[*big.Int](gcd)
	}
	return Ok(x.Mod(x, m))
}

// ProperDivisor returns gcd(a, n) if it lies strictly between 1 and n, and nil otherwise.
func ProperDivisor(a, n *big.Int) *big.Int {
	r := new(big.Int).Mod(a, n)
	gcd := new(big.Int).GCD(nil, nil, r, n)
	if gcd.Cmp(one) == 0 || gcd.Cmp(n) == 0 {
		return nil
	}
	return gcd
}

// Extract2 returns the largest e such that 2ᵉ divides m, or 0 for m = 0.
func Extract2(m *big.Int) int {
	if m.Sign() == 0 {
		return 0
	}
	return int(m.TrailingZeroBits())
}

// Extract3 returns the largest e such that 3ᵉ divides m, or 0 for m = 0.
func Extract3(m *big.Int) int {
	if m.Sign() == 0 {
		return 0
	}
	var q, r big.Int
	q.Abs(m)
	e := 0
	for {
		q.QuoRem(&q, three, &r)
		if r.Sign() != 0 {
			return e
		}
		e++
	}
}

// Root returns ⌊n^(1/k)⌋ for n ≥ 0 and k ≥ 1.
func Root(n *big.Int, k int) *big.Int {
	if k == 1 || n.Sign() == 0 {
		return new(big.Int).Set(n)
	}
	if k == 2 {
		return new(big.Int).Sqrt(n)
	}
	kBig := big.NewInt(int64(k))
	kMinus1 := big.NewInt(int64(k - 1))
	// Newton's iteration decreases monotonically from any starting point above the root.
	x := new(big.Int).Lsh(one, uint((n.BitLen()+k-1)/k))
	var y, t big.Int
	for {
		t.Exp(x, kMinus1, nil)
		t.Quo(n, &t)
		y.Mul(x, kMinus1)
		y.Add(&y, &t)
		y.Quo(&y, kBig)
		if y.Cmp(x) >= 0 {
			return x
		}
		x.Set(&y)
	}
}

// PerfectPower returns (b, k) with bᵏ = n and k ≥ 2 minimal, or (n, 1) if n is not a perfect power.
func PerfectPower(n *big.Int) (*big.Int, int) {
	if n.Cmp(three) > 0 {
		var power big.Int
		for k := 2; k <= n.BitLen(); k++ {
			b := Root(n, k)
			if b.Cmp(one) <= 0 {
				break
			}
			if power.Exp(b, big.NewInt(int64(k)), nil).Cmp(n) == 0 {
				return b, k
			}
		}
	}
	return new(big.Int).Set(n), 1
}
