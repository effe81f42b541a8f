package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus so that exponentiations on big.Int values
// run through saferith's Montgomery arithmetic.
type Modulus struct {
	// represents modulus m
	*saferith.Modulus
	m *big.Int
}

// NewModulus creates a Modulus for m > 1.
// The value is copied.
func NewModulus(m *big.Int) *Modulus {
	nat := new(saferith.Nat).SetBig(m, m.BitLen())
	return &Modulus{
		Modulus: saferith.ModulusFromNat(nat),
		m:       new(big.Int).Set(m),
	}
}

// Big returns a copy of the modulus.
func (m *Modulus) Big() *big.Int {
	return new(big.Int).Set(m.m)
}

// Exp returns xᵉ (mod m) for e ≥ 0.
func (m *Modulus) Exp(x, e *big.Int) *big.Int {
	if e.Sign() == 0 {
		return new(big.Int).Mod(one, m.m)
	}
	reduced := new(big.Int).Mod(x, m.m)
	if m.m.Bit(0) == 0 {
		// Montgomery form needs an odd modulus
		return reduced.Exp(reduced, e, m.m)
	}
	xNat := new(saferith.Nat).SetBig(reduced, m.BitLen())
	eNat := new(saferith.Nat).SetBig(e, e.BitLen())
	return new(saferith.Nat).Exp(xNat, eNat, m.Modulus).Big()
}

// Mul returns x⋅y (mod m).
func (m *Modulus) Mul(x, y *big.Int) *big.Int {
	z := new(big.Int).Mul(x, y)
	return z.Mod(z, m.m)
}

// Square returns x² (mod m).
func (m *Modulus) Square(x *big.Int) *big.Int {
	return m.Mul(x, x)
}
