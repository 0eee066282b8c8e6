package montgomery

// Value is a number in Montgomery form. A Value holding v represents the
// residue v * R^-1 mod N, where R == 2^W. The admissible range of the raw
// word depends on the range variant of the Form that produced it: [0, N)
// for full- and half-range forms, [0, 2N) for quarter-range forms.
//
// Values are only meaningful relative to the Form that created them; mixing
// values across forms is a caller bug and produces garbage.
type Value[T Word] struct {
	val T
}

// CanonicalValue is a Value whose raw word is the unique fully reduced
// representative in [0, N). Every CanonicalValue is usable as a Value via
// the embedded field; the converse direction goes through
// [Form.GetCanonicalValue].
type CanonicalValue[T Word] struct {
	Value[T]
}

// FusingValue is the third operand accepted by the fused multiply-add and
// multiply-subtract operations. It is derived from a CanonicalValue via
// [Form.GetFusingValue]; keeping it as a separate type records that the
// reduction work has already been paid for.
type FusingValue[T Word] struct {
	val T
}

// SquaringValue is the intermediate type of the repeated-squaring pipeline:
// [Form.GetSquaringValue] enters it, [Form.SquareSV] stays inside it and
// [Form.SquareToMontgomeryValue] leaves it. Exponentiation uses this to
// chain the per-window squarings.
type SquaringValue[T Word] struct {
	val T
}

// RangeKind selects the modulus range / representation tradeoff of a Form.
type RangeKind uint8

const (
	// FullRange accepts any odd modulus below R and keeps values in [0, N).
	FullRange RangeKind = iota
	// HalfRange requires N < R/2; the REDC overflow check is statically dead.
	HalfRange
	// QuarterRange requires N < R/4, keeps values in [0, 2N) and skips the
	// final reduction step of REDC entirely.
	QuarterRange
)

func (k RangeKind) String() string {
	switch k {
	case FullRange:
		return "FullRange"
	case HalfRange:
		return "HalfRange"
	case QuarterRange:
		return "QuarterRange"
	default:
		return "RangeKind(invalid)"
	}
}
