package montgomery

// The extension operations build powers of two in Montgomery form without
// any multiplication: shifting a precomputed power of R by e bits and
// REDC-ing the double-width result costs one reduction. They are the
// building blocks of [Form.TwoPow].

// TwoPowLimited returns 2^e in Montgomery form for 0 <= e < W, using a
// shift of R^2 mod N and one REDC instead of an exponentiation.
// It panics for e >= W.
func (mf *Form[T]) TwoPowLimited(e uint) Value[T] {
	if e >= wordBits[T]() {
		panic(ErrShiftTooLarge)
	}
	uHi, uLo := shiftWide(mf.rSquared, e)
	return Value[T]{mf.redc(uHi, uLo)}
}

// RTimesTwoPowLimited returns R * 2^e == 2^(W+e) in Montgomery form for
// 0 <= e < W, by shifting R^3 mod N. This continues where TwoPowLimited
// runs out of shift range. It panics for e >= W.
func (mf *Form[T]) RTimesTwoPowLimited(e uint) Value[T] {
	if e >= wordBits[T]() {
		panic(ErrShiftTooLarge)
	}
	uHi, uLo := shiftWide(mf.rCubed, e)
	return Value[T]{mf.redc(uHi, uLo)}
}

// TwoPowLimitedTimesX returns x' * 2^e in Montgomery form, where the
// canonical value x must carry an extra factor of R relative to the
// Montgomery form of x'. Callers obtain such an x by multiplying any
// canonical value by [Form.GetRValue]. Requires 0 <= e < W; panics otherwise.
func (mf *Form[T]) TwoPowLimitedTimesX(e uint, x CanonicalValue[T]) Value[T] {
	if e >= wordBits[T]() {
		panic(ErrShiftTooLarge)
	}
	uHi, uLo := shiftWide(x.val, e)
	return Value[T]{mf.redc(uHi, uLo)}
}

// GetSquaringValue enters the repeated-squaring pipeline.
func (mf *Form[T]) GetSquaringValue(x Value[T]) SquaringValue[T] {
	return SquaringValue[T]{x.val}
}

// SquareSV squares within the pipeline. The portable backend has no laziness
// to exploit, so this matches [Form.Square]; the type-level pipeline is kept
// so exponentiation can be written against it.
func (mf *Form[T]) SquareSV(x SquaringValue[T]) SquaringValue[T] {
	uHi, uLo := mulWide(x.val, x.val)
	return SquaringValue[T]{mf.redc(uHi, uLo)}
}

// SquareToMontgomeryValue squares and leaves the pipeline.
func (mf *Form[T]) SquareToMontgomeryValue(x SquaringValue[T]) Value[T] {
	uHi, uLo := mulWide(x.val, x.val)
	return Value[T]{mf.redc(uHi, uLo)}
}
