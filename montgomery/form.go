package montgomery

import (
	"github.com/pmeverett/montmath/modular"
)

// Form is a Montgomery arithmetic engine for a fixed odd modulus N >= 3.
// All state is computed at construction time and never mutated afterwards,
// so a Form may be shared freely between goroutines.
//
// The zero Form is not usable; create one with [New], [NewFullRange],
// [NewHalfRange] or [NewQuarterRange].
type Form[T Word] struct {
	n        T // the modulus
	negInvN  T // -N^-1 mod R
	rModN    T // R mod N, the Montgomery form of 1
	rSquared T // R^2 mod N, the Montgomery form of R
	rCubed   T // R^3 mod N, the Montgomery form of R^2
	kind     RangeKind
}

// negInvModR returns -n^-1 mod R for odd n, by Newton-Raphson iteration on
// an initial approximation that is exact to 5 bits.
func negInvModR[T Word](n T) T {
	x := n*3 ^ 2
	for goodBits := uint(5); goodBits < wordBits[T](); goodBits *= 2 {
		x *= 2 - n*x
	}
	return 0 - x
}

// computeRSquared returns R^2 mod n without ever needing an integer wider
// than 2W bits: R mod n is doubled to 2^4 * R, then Montgomery squarings
// double the exponent until it reaches 2^W * R == R^2.
func computeRSquared[T Word](n, negInvN, rModN T) T {
	tmp := rModN
	for i := 0; i < 4; i++ {
		tmp = modular.Add(tmp, tmp, n)
	}
	for i := uint(4); i < wordBits[T](); i *= 2 {
		hi, lo := mulWide(tmp, tmp)
		tmp = redcFull(hi, lo, n, negInvN)
	}
	return tmp
}

func newForm[T Word](n T, kind RangeKind) *Form[T] {
	if n%2 == 0 {
		panic(ErrModulusEven)
	}
	if n < 3 {
		panic(ErrModulusTooSmall)
	}
	if n > MaxModulus[T](kind) {
		panic(ErrModulusTooLarge)
	}
	mf := &Form[T]{n: n, kind: kind}
	mf.negInvN = negInvModR(n)
	mf.rModN = (0 - n) % n
	mf.rSquared = computeRSquared(n, mf.negInvN, mf.rModN)
	hi, lo := mulWide(mf.rSquared, mf.rSquared)
	mf.rCubed = redcFull(hi, lo, n, mf.negInvN)
	return mf
}

// New returns a Form for the odd modulus n >= 3, choosing the quarter-range
// variant when n is small enough for it and the full-range variant otherwise.
// It panics on an invalid modulus.
func New[T Word](n T) *Form[T] {
	if n <= MaxModulus[T](QuarterRange) {
		return newForm(n, QuarterRange)
	}
	return newForm(n, FullRange)
}

// NewFullRange returns a full-range Form: any odd modulus 3 <= n < R.
func NewFullRange[T Word](n T) *Form[T] { return newForm(n, FullRange) }

// NewHalfRange returns a half-range Form; requires n < R/2.
func NewHalfRange[T Word](n T) *Form[T] { return newForm(n, HalfRange) }

// NewQuarterRange returns a quarter-range Form; requires n < R/4.
func NewQuarterRange[T Word](n T) *Form[T] { return newForm(n, QuarterRange) }

// MaxModulus returns the largest modulus admissible for the given range
// variant at word size T. The returned value is always odd.
func MaxModulus[T Word](kind RangeKind) T {
	switch kind {
	case QuarterRange:
		return ^T(0) >> 2
	case HalfRange:
		return ^T(0) >> 1
	default:
		return ^T(0)
	}
}

// Kind returns the range variant this Form was constructed with.
func (mf *Form[T]) Kind() RangeKind { return mf.kind }

// GetModulus returns the modulus N.
func (mf *Form[T]) GetModulus() T { return mf.n }

// variantModulus is the modulus the raw value words live under: N for full-
// and half-range forms, 2N for quarter-range forms (where 2N < R/2).
func (mf *Form[T]) variantModulus() T {
	if mf.kind == QuarterRange {
		return mf.n * 2
	}
	return mf.n
}

// ConvertIn converts an ordinary integer into Montgomery form. The argument
// does not need to be reduced modulo N.
func (mf *Form[T]) ConvertIn(a T) Value[T] {
	// a * (R^2 mod N) < R*N holds for every a, so REDC applies directly and
	// reduces a as a side effect.
	uHi, uLo := mulWide(a, mf.rSquared)
	return Value[T]{mf.redc(uHi, uLo)}
}

// ConvertOut converts a Montgomery value back to its canonical integer
// residue in [0, N).
func (mf *Form[T]) ConvertOut(x Value[T]) T {
	return redcFull(0, x.val, mf.n, mf.negInvN)
}

// GetCanonicalValue reduces x to the unique representative below N.
// For full- and half-range forms this is the identity.
func (mf *Form[T]) GetCanonicalValue(x Value[T]) CanonicalValue[T] {
	if mf.kind == QuarterRange && x.val >= mf.n {
		x.val -= mf.n
	}
	return CanonicalValue[T]{x}
}

// GetFusingValue derives the fused-operation operand from a canonical value.
func (mf *Form[T]) GetFusingValue(c CanonicalValue[T]) FusingValue[T] {
	return FusingValue[T]{c.val}
}

// GetUnityValue returns 1 in Montgomery form.
func (mf *Form[T]) GetUnityValue() CanonicalValue[T] {
	return CanonicalValue[T]{Value[T]{mf.rModN}}
}

// GetZeroValue returns 0 in Montgomery form.
func (mf *Form[T]) GetZeroValue() CanonicalValue[T] {
	return CanonicalValue[T]{Value[T]{0}}
}

// GetNegativeOneValue returns N-1 (i.e. -1) in Montgomery form.
func (mf *Form[T]) GetNegativeOneValue() CanonicalValue[T] {
	return CanonicalValue[T]{Value[T]{mf.n - mf.rModN}}
}

// GetRValue returns R in Montgomery form (the raw word is R^2 mod N). This
// is the value whose product with a canonical x makes x carry the extra
// factor of R required by [Form.TwoPowLimitedTimesX].
func (mf *Form[T]) GetRValue() CanonicalValue[T] {
	return CanonicalValue[T]{Value[T]{mf.rSquared}}
}

// Add returns x + y as a Montgomery value.
func (mf *Form[T]) Add(x, y Value[T]) Value[T] {
	return Value[T]{modular.Add(x.val, y.val, mf.variantModulus())}
}

// Sub returns x - y as a Montgomery value.
func (mf *Form[T]) Sub(x, y Value[T]) Value[T] {
	return Value[T]{modular.Sub(x.val, y.val, mf.variantModulus())}
}

// UnorderedSub returns either x - y or y - x (unspecified which) as a
// Montgomery value. It is cheaper than Sub and sufficient whenever the
// caller squares the result or only cares about it up to sign.
func (mf *Form[T]) UnorderedSub(x, y Value[T]) Value[T] {
	return Value[T]{modular.AbsDiff(x.val, y.val)}
}

// Negate returns -x as a Montgomery value.
func (mf *Form[T]) Negate(x Value[T]) Value[T] {
	return mf.Sub(mf.GetZeroValue().Value, x)
}

// TwoTimes returns 2*x as a Montgomery value.
func (mf *Form[T]) TwoTimes(x Value[T]) Value[T] {
	return mf.Add(x, x)
}

// Halve returns the value h with 2*h == x (mod N).
func (mf *Form[T]) Halve(x Value[T]) Value[T] {
	v := x.val
	if v&1 == 0 {
		return Value[T]{v >> 1}
	}
	// v odd: v + N is even and congruent mod N; the sum can carry out of
	// the word for full-range forms, so the carry is fed back into the top
	// bit after the shift.
	sum := v + mf.n
	var carry T
	if sum < v {
		carry = 1
	}
	return Value[T]{sum>>1 | carry<<(wordBits[T]()-1)}
}

// DivideBySmallPowerOfTwo returns c / 2^k (mod N), i.e. c multiplied by the
// inverse of 2^k. Runs in O(k); k must be below the word size W.
func (mf *Form[T]) DivideBySmallPowerOfTwo(c CanonicalValue[T], k uint) Value[T] {
	if k >= wordBits[T]() {
		panic(ErrShiftTooLarge)
	}
	x := c.Value
	for ; k > 0; k-- {
		x = mf.Halve(x)
	}
	return x
}

// The canonical overloads keep fully reduced inputs fully reduced: all of
// them work modulo N itself, so the result is again below N even for
// quarter-range forms.

// AddCanonical is [Form.Add] restricted to canonical values.
func (mf *Form[T]) AddCanonical(x, y CanonicalValue[T]) CanonicalValue[T] {
	return CanonicalValue[T]{Value[T]{modular.Add(x.val, y.val, mf.n)}}
}

// SubCanonical is [Form.Sub] restricted to canonical values.
func (mf *Form[T]) SubCanonical(x, y CanonicalValue[T]) CanonicalValue[T] {
	return CanonicalValue[T]{Value[T]{modular.Sub(x.val, y.val, mf.n)}}
}

// NegateCanonical is [Form.Negate] restricted to canonical values.
func (mf *Form[T]) NegateCanonical(x CanonicalValue[T]) CanonicalValue[T] {
	return mf.SubCanonical(mf.GetZeroValue(), x)
}

// TwoTimesCanonical is [Form.TwoTimes] restricted to canonical values.
func (mf *Form[T]) TwoTimesCanonical(x CanonicalValue[T]) CanonicalValue[T] {
	return mf.AddCanonical(x, x)
}

// HalveCanonical is [Form.Halve] restricted to canonical values. For x < N
// the halved value is again below N.
func (mf *Form[T]) HalveCanonical(x CanonicalValue[T]) CanonicalValue[T] {
	return CanonicalValue[T]{mf.Halve(x.Value)}
}

// Multiply returns x * y as a Montgomery value.
func (mf *Form[T]) Multiply(x, y Value[T]) Value[T] {
	uHi, uLo := mulWide(x.val, y.val)
	return Value[T]{mf.redc(uHi, uLo)}
}

// MultiplyIsZero returns x * y together with a flag telling whether the
// product is zero mod N. The flag costs no extra reduction: a raw word is
// zero mod N exactly if it is 0, or N for quarter-range forms.
func (mf *Form[T]) MultiplyIsZero(x, y Value[T]) (Value[T], bool) {
	result := mf.Multiply(x, y)
	isZero := result.val == 0 || (mf.kind == QuarterRange && result.val == mf.n)
	return result, isZero
}

// Square returns x^2 as a Montgomery value.
func (mf *Form[T]) Square(x Value[T]) Value[T] {
	uHi, uLo := mulWide(x.val, x.val)
	return Value[T]{mf.redc(uHi, uLo)}
}

// IsEqual reports whether x and y represent the same residue mod N.
func (mf *Form[T]) IsEqual(x, y Value[T]) bool {
	return mf.GetCanonicalValue(x).val == mf.GetCanonicalValue(y).val
}

// Remainder reduces an arbitrary, not necessarily Montgomery-form integer
// modulo N.
func (mf *Form[T]) Remainder(a T) T {
	return a % mf.n
}

// Inverse returns the multiplicative inverse of x, as a canonical
// Montgomery value. If x is not invertible (gcd of its residue with N is
// not 1), it returns the zero value.
func (mf *Form[T]) Inverse(x Value[T]) CanonicalValue[T] {
	inv := modular.Inverse(mf.ConvertOut(x), mf.n)
	return mf.GetCanonicalValue(mf.ConvertIn(inv))
}

// GcdWithModulus calls gcd with the canonical raw word of x and the modulus
// and returns its result. Since R is coprime to N, the gcd of the Montgomery
// representation with N equals the gcd of the represented residue with N, so
// no conversion out of Montgomery form is needed. Note that the gcd functor
// must handle a zero first argument (conventionally returning N).
func (mf *Form[T]) GcdWithModulus(x Value[T], gcd func(a, b T) T) T {
	return gcd(mf.GetCanonicalValue(x).val, mf.n)
}
