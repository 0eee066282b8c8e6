package modular

// Inverse computes the multiplicative inverse of val modulo n, i.e. the
// unique 0 <= r < n with (val * r) % n == 1. If no inverse exists
// (gcd(val, n) != 1), it returns 0. Requires n > 0.
//
// This is the extended Euclidean algorithm, carried out entirely in
// unsigned arithmetic. The Bezout coefficients of consecutive remainders
// alternate in sign, so it is enough to track magnitudes plus one parity
// bit and fix up the sign at the end.
func Inverse[T Uint](val, n T) T {
	var x0, x1 T = 0, 1
	r0, r1 := n, val%n
	neg0, neg1 := false, false
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		x0, x1 = x1, x0+q*x1
		neg0, neg1 = neg1, !neg1
	}
	if r0 != 1 {
		return 0
	}
	if neg0 {
		return n - x0
	}
	return x0
}
