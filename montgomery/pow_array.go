package montgomery

// PowArray computes bases[j] ^ exponents[j] for each j, where element j
// lives in forms[j]. The three slices must have equal length; the result
// has the same length.
//
// The point of the batched version is instruction-level parallelism: the
// per-element multiplications are independent, so interleaving them hides
// the REDC latency. Windowing is driven by the largest exponent; elements
// with shorter exponents read the unity entry of their table for the
// leading windows, which multiplies in a harmless factor of one.
//
// The sliding-window optimization is unavailable here, since zero runs
// occur at different positions for different exponents.
func PowArray[T Word](forms []*Form[T], bases []Value[T], exponents []uint64) []Value[T] {
	return PowArrayWithOptions(forms, bases, exponents, PowOptions{})
}

// PowArrayWithOptions is [PowArray] with explicit tuning. The
// NoSlidingWindow and UseSquaringValues options do not apply to the batched
// variant and are ignored.
func PowArrayWithOptions[T Word](forms []*Form[T], bases []Value[T], exponents []uint64, opts PowOptions) []Value[T] {
	if len(forms) != len(bases) || len(forms) != len(exponents) {
		panic(ErrLengthMismatch)
	}
	size := len(forms)
	p := opts.tableBits()
	mask := uint64(1)<<p - 1

	var nMax uint64
	for _, e := range exponents {
		if e > nMax {
			nMax = e
		}
	}

	// tables[i][j] == bases[j]^i under forms[j]
	tables := make([][]Value[T], 1<<p)
	for i := range tables {
		tables[i] = make([]Value[T], size)
	}
	for j := 0; j < size; j++ {
		tables[0][j] = forms[j].GetUnityValue().Value
		tables[1][j] = bases[j]
	}
	for i := 2; i < len(tables); i += 2 {
		for j := 0; j < size; j++ {
			tables[i][j] = forms[j].Square(tables[i/2][j])
			tables[i+1][j] = forms[j].Multiply(tables[i/2][j], tables[i/2+1][j])
		}
	}

	result := make([]Value[T], size)
	if nMax <= mask {
		for j := 0; j < size; j++ {
			result[j] = tables[exponents[j]][j]
		}
		return result
	}

	shift := bitLen64(nMax) - p
	for j := 0; j < size; j++ {
		result[j] = tables[(exponents[j]>>shift)&mask][j]
	}
	for shift >= p {
		for k := uint(0); k < p; k++ {
			for j := 0; j < size; j++ {
				result[j] = forms[j].Square(result[j])
			}
		}
		shift -= p
		for j := 0; j < size; j++ {
			result[j] = forms[j].Multiply(result[j], tables[(exponents[j]>>shift)&mask][j])
		}
	}
	if shift > 0 {
		for k := uint(0); k < shift; k++ {
			for j := 0; j < size; j++ {
				result[j] = forms[j].Square(result[j])
			}
		}
		lowMask := uint64(1)<<shift - 1
		for j := 0; j < size; j++ {
			result[j] = forms[j].Multiply(result[j], tables[exponents[j]&lowMask][j])
		}
	}
	return result
}
