package modular

import "math/bits"

// bitLen returns the number of bits in the type T.
func bitLen[T Uint]() int {
	return bits.Len64(uint64(^T(0)))
}

// Mul computes (a * b) % n for a, b < n.
//
// For word sizes below 64 bits the product fits into a uint64 and a plain
// division suffices. For 64-bit words we use a full 128-bit product and
// bits.Div64; the precondition a, b < n guarantees hi < n, which Div64
// requires.
func Mul[T Uint](a, b, n T) T {
	if bitLen[T]() == 64 {
		hi, lo := bits.Mul64(uint64(a), uint64(b))
		_, rem := bits.Div64(hi, lo, uint64(n))
		return T(rem)
	}
	return T(uint64(a) * uint64(b) % uint64(n))
}

// Pow computes (base ** exponent) % n for base < n, n > 0 by square-and-multiply.
// Pow(0, 0, n) == 1 % n.
func Pow[T Uint](base T, exponent uint64, n T) T {
	result := T(1 % uint64(n))
	for exponent > 0 {
		if exponent&1 == 1 {
			result = Mul(result, base, n)
		}
		exponent >>= 1
		base = Mul(base, base, n)
	}
	return result
}
