package curve

import (
	"io"
	"math/big"

	"github.com/taurusgroup/factorize/pkg/math/arith"
	"github.com/taurusgroup/factorize/pkg/math/sample"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// Curve is y² = x³ + A⋅x + B over ℤ/Mℤ.
//
// M need not be prime. The group law is then only partially defined, and an addition
// needing the inverse of a non-unit fails with that non-unit as its culprit.
type Curve struct {
	A, B, M *big.Int
}

// Random returns a random curve over ℤ/mℤ together with a point on it.
//
// A and the point are sampled first, B is then solved for.
func Random(rand io.Reader, m *big.Int) (Curve, Point) {
	a := sample.ModN(rand, m)
	x := sample.ModN(rand, m)
	y := sample.ModN(rand, m)

	// b = y² - x³ - a⋅x
	b := new(big.Int).Mul(y, y)
	t := new(big.Int).Exp(x, three, nil)
	b.Sub(b, t)
	t.Mul(a, x)
	b.Sub(b, t)
	b.Mod(b, m)

	return Curve{A: a, B: b, M: new(big.Int).Set(m)}, Affine(x, y)
}

func (c Curve) reduce(x *big.Int) *big.Int {
	return x.Mod(x, c.M)
}

// Contains reports whether p lies on the curve.
func (c Curve) Contains(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	lhs := new(big.Int).Mul(p.y, p.y)
	c.reduce(lhs)
	rhs := new(big.Int).Exp(p.x, three, c.M)
	t := new(big.Int).Mul(c.A, p.x)
	rhs.Add(rhs, t)
	rhs.Add(rhs, c.B)
	c.reduce(rhs)
	return lhs.Cmp(rhs) == 0
}

// Discriminant returns 4A³ + 27B² (mod M).
//
// The curve is singular modulo every prime dividing it.
func (c Curve) Discriminant() *big.Int {
	d := new(big.Int).Exp(c.A, three, c.M)
	d.Mul(d, four)
	t := new(big.Int).Mul(c.B, c.B)
	t.Mul(t, big.NewInt(27))
	d.Add(d, t)
	return c.reduce(d)
}

// Tangent returns the slope (3x² + A) / 2y of the tangent at p, which must be affine.
func (c Curve) Tangent(p Point) arith.Result[*big.Int] {
	den := new(big.Int).Mul(two, p.y)
	inv := arith.ModInverse(den, c.M)
	if inv.Failed() {
		return inv
	}
	num := new(big.Int).Mul(p.x, p.x)
	num.Mul(num, three)
	num.Add(num, c.A)
	num.Mul(num, inv.Value())
	return arith.Ok(c.reduce(num))
}

// chord returns the slope (y₂ - y₁) / (x₂ - x₁).
func (c Curve) chord(p, q Point) arith.Result[*big.Int] {
	den := new(big.Int).Sub(q.x, p.x)
	inv := arith.ModInverse(den, c.M)
	if inv.Failed() {
		return inv
	}
	num := new(big.Int).Sub(q.y, p.y)
	num.Mul(num, inv.Value())
	return arith.Ok(c.reduce(num))
}

// Add returns p + q.
func (c Curve) Add(p, q Point) arith.Result[Point] {
	if p.IsInfinity() {
		return arith.Ok(q)
	}
	if q.IsInfinity() {
		return arith.Ok(p)
	}

	var slope arith.Result[*big.Int]
	dx := c.reduce(new(big.Int).Sub(p.x, q.x))
	if dx.Sign() != 0 {
		slope = c.chord(p, q)
	} else {
		sum := c.reduce(new(big.Int).Add(p.y, q.y))
		diff := c.reduce(new(big.Int).Sub(p.y, q.y))
		switch {
		case sum.Sign() == 0:
			// q = -p, including points of order 2
			return arith.Ok(Infinity())
		case diff.Sign() == 0:
			slope = c.Tangent(p)
		default:
			// y₁ ≠ ±y₂ with equal x: only possible when M is composite
			g := new(big.Int).GCD(nil, nil, diff, c.M)
			return arith.Fail[Point](g)
		}
	}
	if slope.Failed() {
		return arith.Fail[Point](slope.Culprit())
	}

	// x₃ = λ² - x₁ - x₂, y₃ = λ(x₁ - x₃) - y₁
	l := slope.Value()
	x := new(big.Int).Mul(l, l)
	x.Sub(x, p.x)
	x.Sub(x, q.x)
	c.reduce(x)
	y := new(big.Int).Sub(p.x, x)
	y.Mul(y, l)
	y.Sub(y, p.y)
	c.reduce(y)
	return arith.Ok(Point{x: x, y: y})
}

// Multiply returns k⋅p for k ≥ 0, by double-and-add from the most significant bit.
//
// The first failing addition is returned unchanged.
func (c Curve) Multiply(p Point, k *big.Int) arith.Result[Point] {
	if k.Sign() == 0 || p.IsInfinity() {
		return arith.Ok(Infinity())
	}
	acc := p
	for i := k.BitLen() - 2; i >= 0; i-- {
		r := c.Add(acc, acc)
		if r.Failed() {
			return r
		}
		acc = r.Value()
		if k.Bit(i) == 1 {
			r = c.Add(acc, p)
			if r.Failed() {
				return r
			}
			acc = r.Value()
		}
	}
	return arith.Ok(acc)
}
