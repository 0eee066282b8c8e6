package montgomery

// twoPowTableEntry returns 2^i in Montgomery form for 0 <= i < 2W, without
// any multiplication: indices below W shift R^2 mod N, indices from W on
// shift R^3 mod N.
func (mf *Form[T]) twoPowTableEntry(i uint) Value[T] {
	w := wordBits[T]()
	if i < w {
		return mf.TwoPowLimited(i)
	}
	return mf.RTimesTwoPowLimited(i - w)
}

// twoPowTableBits clamps the window width so that every table index stays
// below 2W, the reach of the shift-based table construction.
func twoPowTableBits[T Word](opts PowOptions) uint {
	limit := floorLog2(wordBits[T]()) + 1
	p := opts.TableBits
	if p == 0 {
		p = limit - 1
	}
	if p > 9 {
		panic(ErrBadTableBits)
	}
	if p > limit {
		p = limit
	}
	return p
}

// TwoPow returns 2^exponent as a Montgomery value, with default options.
// An exponent of 0 yields 1.
func (mf *Form[T]) TwoPow(exponent uint64) Value[T] {
	return mf.TwoPowWithOptions(exponent, PowOptions{})
}

// TwoPowWithOptions computes 2^exponent with the same windowed structure as
// [Form.PowWithOptions], but with a table that costs one REDC per entry to
// build instead of a multiplication, and whose entries never need a
// multiplication chain: every power of two up to 2^(2W-1) is a shifted
// precomputed power of R.
func (mf *Form[T]) TwoPowWithOptions(exponent uint64, opts PowOptions) Value[T] {
	p := twoPowTableBits[T](opts)
	mask := uint64(1)<<p - 1
	if exponent <= mask {
		return mf.twoPowTableEntry(uint(exponent))
	}
	table := make([]Value[T], 1<<p)
	for i := range table {
		table[i] = mf.twoPowTableEntry(uint(i))
	}
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

// TwoPowArray computes 2 ^ exponents[j] under forms[j] for each j. Like
// [PowArray] it interleaves the per-element work; unlike it, there are no
// per-element tables at all. Each window multiply routes the running value
// through [Form.TwoPowLimitedTimesX]: the value is given an extra factor of
// R by a multiplication with [Form.GetRValue], canonicalized, and then
// shifted by the window's bits inside a single REDC.
func TwoPowArray[T Word](forms []*Form[T], exponents []uint64) []Value[T] {
	if len(forms) != len(exponents) {
		panic(ErrLengthMismatch)
	}
	size := len(forms)
	p := floorLog2(wordBits[T]())
	mask := uint64(1)<<p - 1

	var nMax uint64
	for _, e := range exponents {
		if e > nMax {
			nMax = e
		}
	}

	result := make([]Value[T], size)
	if nMax <= mask {
		for j := 0; j < size; j++ {
			result[j] = forms[j].TwoPowLimited(uint(exponents[j]))
		}
		return result
	}

	shift := bitLen64(nMax) - p
	for j := 0; j < size; j++ {
		result[j] = forms[j].TwoPowLimited(uint((exponents[j] >> shift) & mask))
	}
	mulIn := func(shift uint, mask uint64) {
		for j := 0; j < size; j++ {
			e := uint((exponents[j] >> shift) & mask)
			withR := forms[j].Multiply(result[j], forms[j].GetRValue().Value)
			result[j] = forms[j].TwoPowLimitedTimesX(e, forms[j].GetCanonicalValue(withR))
		}
	}
	for shift >= p {
		for k := uint(0); k < p; k++ {
			for j := 0; j < size; j++ {
				result[j] = forms[j].Square(result[j])
			}
		}
		shift -= p
		mulIn(shift, mask)
	}
	if shift > 0 {
		for k := uint(0); k < shift; k++ {
			for j := 0; j < size; j++ {
				result[j] = forms[j].Square(result[j])
			}
		}
		mulIn(0, uint64(1)<<shift-1)
	}
	return result
}
