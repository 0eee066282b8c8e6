package montgomery

import "math/big"

// PowOptions tunes the windowed exponentiation. The zero value selects the
// defaults: 4 table bits, sliding window enabled, squaring pipeline off.
type PowOptions struct {
	// TableBits is the window width k; the precomputed table has 2^k
	// entries. Valid values are 1 through 9; 0 means the default of 4.
	TableBits uint
	// NoSlidingWindow disables skipping over zero runs of the exponent
	// between windows.
	NoSlidingWindow bool
	// UseSquaringValues routes the per-window squarings through the
	// squaring-value pipeline.
	UseSquaringValues bool
}

func (opts *PowOptions) tableBits() uint {
	if opts.TableBits == 0 {
		return 4
	}
	if opts.TableBits > 9 {
		panic(ErrBadTableBits)
	}
	return opts.TableBits
}

// powTable builds the 2^k-ary table of powers base^0 .. base^(2^k - 1).
// Even entries are squares of earlier entries, so half of the table costs
// squarings rather than multiplications.
func (mf *Form[T]) powTable(base Value[T], tableBits uint) []Value[T] {
	table := make([]Value[T], 1<<tableBits)
	table[0] = mf.GetUnityValue().Value
	table[1] = base
	for i := 2; i < len(table); i += 2 {
		table[i] = mf.Square(table[i/2])
		table[i+1] = mf.Multiply(table[i/2], table[i/2+1])
	}
	return table
}

// squareK performs k consecutive squarings of x, optionally through the
// squaring-value pipeline.
func (mf *Form[T]) squareK(x Value[T], k uint, useSV bool) Value[T] {
	if k == 0 {
		return x
	}
	if useSV {
		sv := mf.GetSquaringValue(x)
		for ; k > 1; k-- {
			sv = mf.SquareSV(sv)
		}
		return mf.SquareToMontgomeryValue(sv)
	}
	for ; k > 0; k-- {
		x = mf.Square(x)
	}
	return x
}

// Pow returns base^exponent as a Montgomery value, with default options.
// An exponent of 0 yields 1, regardless of base.
func (mf *Form[T]) Pow(base Value[T], exponent uint64) Value[T] {
	return mf.PowWithOptions(base, exponent, PowOptions{})
}

// PowWithOptions is [Form.Pow] with explicit tuning. It is a 2^k-ary
// left-to-right windowed exponentiation: after an initial table lookup for
// the top window, each further window costs k squarings plus one table
// multiply, and (unless disabled) runs of zero exponent bits between
// windows are consumed by single squarings.
func (mf *Form[T]) PowWithOptions(base Value[T], exponent uint64, opts PowOptions) Value[T] {
	p := opts.tableBits()
	mask := uint64(1)<<p - 1
	if exponent <= mask {
		// The full result is a single table entry; build only as much
		// table as the exponent needs.
		if exponent < 2 {
			if exponent == 0 {
				return mf.GetUnityValue().Value
			}
			return base
		}
		table := mf.powTable(base, bitLen64(exponent))
		return table[exponent]
	}
	table := mf.powTable(base, p)
	shift := bitLen64(exponent) - p
	result := table[exponent>>shift]
	for shift >= p {
		if !opts.NoSlidingWindow {
			for shift > p && (exponent>>(shift-1))&1 == 0 {
				result = mf.Square(result)
				shift--
			}
		}
		result = mf.squareK(result, p, opts.UseSquaringValues)
		shift -= p
		result = mf.Multiply(result, table[(exponent>>shift)&mask])
	}
	if shift > 0 {
		result = mf.squareK(result, shift, opts.UseSquaringValues)
		result = mf.Multiply(result, table[exponent&(uint64(1)<<shift-1)])
	}
	return result
}

// PowBig returns base^exponent for an arbitrarily wide non-negative
// exponent. It panics on a negative exponent.
func (mf *Form[T]) PowBig(base Value[T], exponent *big.Int) Value[T] {
	if exponent.Sign() < 0 {
		panic(ErrNegativeExponent)
	}
	if exponent.IsUint64() {
		return mf.Pow(base, exponent.Uint64())
	}
	result := mf.GetUnityValue().Value
	for i := exponent.BitLen() - 1; i >= 0; i-- {
		result = mf.Square(result)
		if exponent.Bit(i) == 1 {
			result = mf.Multiply(result, base)
		}
	}
	return result
}
