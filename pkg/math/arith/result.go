package arith

import "math/big"

// Result is the outcome of an operation that needs a modular inverse.
//
// Over ℤ/mℤ with composite m, an inversion can fail. The failure is not an error:
// it carries the culprit, a residue sharing a non-trivial divisor with m,
// and the caller takes its gcd with m to try and split m.
type Result[T any] struct {
	value   T
	culprit *big.Int
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail records a failed inversion of culprit.
func Fail[T any](culprit *big.Int) Result[T] {
	return Result[T]{culprit: new(big.Int).Set(culprit)}
}

// Failed reports whether the operation hit a non-invertible residue.
func (r Result[T]) Failed() bool {
	return r.culprit != nil
}

// Value returns the successful value, or the zero value of T after a failure.
func (r Result[T]) Value() T {
	return r.value
}

// Culprit returns the residue that could not be inverted, or nil on success.
func (r Result[T]) Culprit() *big.Int {
	return r.culprit
}
