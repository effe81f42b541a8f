package curve

import (
	"fmt"
	"math/big"
)

// Point is a point of a Weierstrass curve in affine coordinates, or the point at infinity.
//
// The zero value is the point at infinity. Points are immutable: coordinates are copied
// on the way in and on the way out.
type Point struct {
	x, y *big.Int
}

// Infinity returns the identity of the curve group.
func Infinity() Point {
	return Point{}
}

// Affine returns the point (x, y).
func Affine(x, y *big.Int) Point {
	return Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

func (p Point) IsInfinity() bool {
	return p.x == nil
}

// X returns the x coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns the y coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal compares coordinates exactly, without reducing them.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p Point) String() string {
	if p.IsInfinity() {
		return "∞"
	}
	return fmt.Sprintf("(%v, %v)", p.x, p.y)
}
