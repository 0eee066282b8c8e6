package montgomery

// redcRaw performs the REDC reduction of the double-word input u == uHi*R + uLo,
// stopping before the final conditional subtraction. It returns
// tHi == (u + m*N) / R where m == uLo * negInvN mod R, together with the
// carry out of the top word.
//
// Requires u < N*R. Then tHi < 2N (as a W+1 bit quantity including ovf) and
// tHi is congruent to u * R^-1 mod N.
func redcRaw[T Word](uHi, uLo, n, negInvN T) (tHi T, ovf bool) {
	m := uLo * negInvN
	mnHi, _ := mulWide(m, n)
	// The low word of m*N cancels uLo by construction: their sum is exactly
	// R when uLo != 0 and 0 when uLo == 0, so only the carry survives.
	tHi = uHi
	if uLo != 0 {
		tHi++
	}
	tHi += mnHi
	ovf = tHi < mnHi
	return
}

// redc reduces the double-word product u == uHi*R + uLo into the value range
// of the form's variant. Requires u < N*R.
//
// This is the low-latency finalization schedule; redcLowUops computes the
// same function.
func (mf *Form[T]) redc(uHi, uLo T) T {
	switch mf.kind {
	case QuarterRange:
		// n < R/4 and u < 4n^2 < n*R, so tHi < 2n fits the word and the
		// quarter-range value range needs no subtraction at all.
		tHi, _ := redcRaw(uHi, uLo, mf.n, mf.negInvN)
		return tHi
	case HalfRange:
		// n < R/2 makes the overflow impossible.
		tHi, _ := redcRaw(uHi, uLo, mf.n, mf.negInvN)
		if tHi >= mf.n {
			tHi -= mf.n
		}
		return tHi
	default:
		return redcFull(uHi, uLo, mf.n, mf.negInvN)
	}
}

// redcFull is the full-range finalization: tHi may have overflowed the word,
// in which case the subtraction of N is unconditionally needed.
func redcFull[T Word](uHi, uLo, n, negInvN T) T {
	tHi, ovf := redcRaw(uHi, uLo, n, negInvN)
	var sub T
	if ovf || tHi >= n {
		sub = n
	}
	return tHi - sub
}

// redcLowUops is redc with the low-uops finalization schedule: the reduced
// candidate is computed up front and deselected when no subtraction is due.
func (mf *Form[T]) redcLowUops(uHi, uLo T) T {
	tHi, ovf := redcRaw(uHi, uLo, mf.n, mf.negInvN)
	switch mf.kind {
	case QuarterRange:
		return tHi
	default:
		diff := tHi - mf.n
		if !ovf && tHi < mf.n {
			diff = tHi
		}
		return diff
	}
}
