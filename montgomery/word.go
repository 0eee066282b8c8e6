package montgomery

import (
	"math/bits"

	"github.com/pmeverett/montmath/modular"
)

// Word is the type constraint for the word sizes supported by [Form].
// 128-bit moduli are handled by the separate [Form128].
type Word interface {
	modular.Uint
}

// wordBits returns the number of bits of T, i.e. the W in R == 2^W.
func wordBits[T Word]() uint {
	return uint(bits.Len64(uint64(^T(0))))
}

// mulWide returns the full double-width product x*y as a (hi, lo) pair.
func mulWide[T Word](x, y T) (hi, lo T) {
	if wordBits[T]() == 64 {
		h, l := bits.Mul64(uint64(x), uint64(y))
		return T(h), T(l)
	}
	// The product of two sub-64-bit words fits into a uint64.
	p := uint64(x) * uint64(y)
	return T(p >> wordBits[T]()), T(p)
}

// shiftWide returns x * 2^e as a (hi, lo) pair, for 0 <= e < W.
// Note that Go defines shifts by >= W to yield 0, which makes e == 0 work out.
func shiftWide[T Word](x T, e uint) (hi, lo T) {
	return x >> (wordBits[T]() - e), x << e
}

// floorLog2 returns the position of the highest set bit of x. Requires x > 0.
func floorLog2(x uint) uint {
	return uint(bits.Len(x)) - 1
}

// bitLen64 returns the number of bits needed to represent x.
func bitLen64(x uint64) uint {
	return uint(bits.Len64(x))
}
