package montgomery

import "github.com/pmeverett/montmath/modular"

// The fused operations compute x*y +/- z with a single REDC. The trick is
// that adding z to the high word of the double-width product u == x*y adds
// z*R to u, which REDC turns into +z. The high word of u is always below N
// (u < N*R), and z is canonical, so a prereduced modular addition applies.

func (mf *Form[T]) fmaddPrepare(x, y Value[T], z FusingValue[T]) (uHi, uLo T) {
	uHi, uLo = mulWide(x.val, y.val)
	uHi = modular.Add(uHi, z.val, mf.n)
	return
}

func (mf *Form[T]) fmsubPrepare(x, y Value[T], z FusingValue[T]) (uHi, uLo T) {
	uHi, uLo = mulWide(x.val, y.val)
	uHi = modular.Sub(uHi, z.val, mf.n)
	return
}

// FMAdd returns x*y + z as a Montgomery value, at the cost of a single
// multiplication.
func (mf *Form[T]) FMAdd(x, y Value[T], z FusingValue[T]) Value[T] {
	uHi, uLo := mf.fmaddPrepare(x, y, z)
	return Value[T]{mf.redc(uHi, uLo)}
}

// FMSub returns x*y - z as a Montgomery value, at the cost of a single
// multiplication.
func (mf *Form[T]) FMSub(x, y Value[T], z FusingValue[T]) Value[T] {
	uHi, uLo := mf.fmsubPrepare(x, y, z)
	return Value[T]{mf.redc(uHi, uLo)}
}

// FusedSquareAdd returns x^2 + z as a Montgomery value.
func (mf *Form[T]) FusedSquareAdd(x Value[T], z FusingValue[T]) Value[T] {
	return mf.FMAdd(x, x, z)
}

// FusedSquareSub returns x^2 - z as a Montgomery value.
func (mf *Form[T]) FusedSquareSub(x Value[T], z FusingValue[T]) Value[T] {
	return mf.FMSub(x, x, z)
}
