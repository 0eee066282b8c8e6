// Package montgomery implements modular arithmetic in Montgomery form for
// odd moduli of 8 to 128 bits.
//
// A [Form] fixes a modulus N and precomputes everything Montgomery
// reduction needs; values are then converted in once, combined with cheap
// reductions (one word-sized REDC per multiplication, no divisions), and
// converted out at the end. Three range variants trade modulus headroom for
// reduction work: the quarter-range variant, picked automatically by [New]
// for N < R/4, elides the final conditional subtraction of REDC from every
// multiply.
//
// On top of the ring primitives the package provides 2^k-ary windowed
// exponentiation, a shift-based fast path for powers of two, and batched
// variants that interleave independent computations.
//
// Forms are immutable after construction and safe for concurrent use.
package montgomery
