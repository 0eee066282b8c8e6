package montgomery

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/pmeverett/montmath/internal/testutils"
)

var bigTwo = big.NewInt(2)

// twoPowRef computes 2^exponent mod n via math/big.
func twoPowRef(exponent, n uint64) uint64 {
	var e, m big.Int
	e.SetUint64(exponent)
	m.SetUint64(n)
	return new(big.Int).Exp(bigTwo, &e, &m).Uint64()
}

func TestTwoPowLimited(t *testing.T) {
	rng := rand.New(rand.NewSource(5001))
	for _, n := range sampleOddModuli[uint64](rng, 4) {
		for _, kind := range admissibleKinds(n) {
			mf := newForm(n, kind)
			for e := uint(0); e < 64; e++ {
				got := mf.TwoPowLimited(e)
				checkValueRange(t, mf, got, "TwoPowLimited")
				testutils.FatalUnless(t, mf.ConvertOut(got) == twoPowRef(uint64(e), n), "TwoPowLimited(%v) mod %v == %v, expected %v (%v)", e, n, mf.ConvertOut(got), twoPowRef(uint64(e), n), kind)

				gotHigh := mf.RTimesTwoPowLimited(e)
				checkValueRange(t, mf, gotHigh, "RTimesTwoPowLimited")
				testutils.FatalUnless(t, mf.ConvertOut(gotHigh) == twoPowRef(64+uint64(e), n), "RTimesTwoPowLimited(%v) mod %v is not 2^%v (%v)", e, n, 64+e, kind)
			}
		}
	}
	mf := New(uint64(13))
	testutils.FatalUnless(t, testutils.CheckPanic(func() { mf.TwoPowLimited(64) }), "shift 64 was accepted")
	testutils.FatalUnless(t, testutils.CheckPanic(func() { mf.RTimesTwoPowLimited(64) }), "shift 64 was accepted")
}

func TestTwoPowLimitedTimesX(t *testing.T) {
	rng := rand.New(rand.NewSource(5002))
	for _, n := range sampleOddModuli[uint64](rng, 4) {
		for _, kind := range admissibleKinds(n) {
			mf := newForm(n, kind)
			for i := 0; i < 20; i++ {
				a := rng.Uint64() % n
				e := uint(rng.Intn(64))
				x := mf.ConvertIn(a)
				// give x the extra factor of R, then shift
				withR := mf.GetCanonicalValue(mf.Multiply(x, mf.GetRValue().Value))
				got := mf.TwoPowLimitedTimesX(e, withR)
				checkValueRange(t, mf, got, "TwoPowLimitedTimesX")
				expected := mf.ConvertOut(mf.Multiply(x, mf.TwoPowLimited(e)))
				testutils.FatalUnless(t, mf.ConvertOut(got) == expected, "TwoPowLimitedTimesX(%v) for a=%v mod %v: got %v, expected %v (%v)", e, a, n, mf.ConvertOut(got), expected, kind)
			}
		}
	}
}

func testTwoPowOnce[T Word](t *testing.T, rng *rand.Rand) {
	for _, n := range sampleOddModuli[T](rng, 3) {
		for _, kind := range admissibleKinds(n) {
			mf := newForm(n, kind)
			for i := 0; i < 30; i++ {
				exponent := rng.Uint64() >> rng.Intn(64)
				got := mf.TwoPow(exponent)
				checkValueRange(t, mf, got, "TwoPow")
				expected := mf.ConvertOut(mf.Pow(mf.ConvertIn(2%n), exponent))
				testutils.FatalUnless(t, mf.ConvertOut(got) == expected, "TwoPow(%v) mod %v == %v, expected %v (%v)", exponent, n, mf.ConvertOut(got), expected, kind)
			}
			testutils.FatalUnless(t, mf.ConvertOut(mf.TwoPow(0)) == 1%n, "2^0 != 1 mod %v", n)
		}
	}
}

func TestTwoPow(t *testing.T) {
	rng := rand.New(rand.NewSource(5003))
	testTwoPowOnce[uint8](t, rng)
	testTwoPowOnce[uint16](t, rng)
	testTwoPowOnce[uint32](t, rng)
	testTwoPowOnce[uint64](t, rng)
}

func TestTwoPowOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(5004))
	mf := NewFullRange(^uint64(0) - 58)
	for i := 0; i < 40; i++ {
		exponent := rng.Uint64() >> rng.Intn(40)
		reference := twoPowRef(exponent, mf.GetModulus())
		for _, tableBits := range []uint{1, 3, 6, 9} {
			for _, noSliding := range []bool{false, true} {
				opts := PowOptions{TableBits: tableBits, NoSlidingWindow: noSliding}
				got := mf.ConvertOut(mf.TwoPowWithOptions(exponent, opts))
				testutils.FatalUnless(t, got == reference, "TwoPowWithOptions(%+v) for exponent %v: got %v, expected %v", opts, exponent, got, reference)
			}
		}
	}
}

// The Mersenne prime 2^61 - 1 makes the powers of two easy to predict.
func TestTwoPowMersenne(t *testing.T) {
	n := uint64(1)<<61 - 1
	for _, kind := range admissibleKinds(n) {
		mf := newForm(n, kind)
		testutils.FatalUnless(t, mf.ConvertOut(mf.TwoPow(60)) == 1<<60, "2^60 mod 2^61-1 != 2^60 (%v)", kind)
		testutils.FatalUnless(t, mf.ConvertOut(mf.TwoPow(61)) == 1, "2^61 mod 2^61-1 != 1 (%v)", kind)
		const e = uint64(1000000000)
		testutils.FatalUnless(t, mf.ConvertOut(mf.TwoPow(e)) == twoPowRef(e, n), "2^10^9 mod 2^61-1 disagrees with math/big (%v)", kind)
	}
}

func TestTwoPowArray(t *testing.T) {
	// the batched scenario at the Mersenne prime
	n := uint64(1)<<61 - 1
	const e = uint64(1000000000)
	forms := []*Form[uint64]{New(n), New(n), New(n), New(n)}
	exponents := []uint64{e, e - 1, e + 1, e + 7}
	results := TwoPowArray(forms, exponents)
	for j := range results {
		checkValueRange(t, forms[j], results[j], "TwoPowArray")
		testutils.FatalUnless(t, forms[j].ConvertOut(results[j]) == twoPowRef(exponents[j], n), "batched 2^%v mod 2^61-1 disagrees with math/big", exponents[j])
	}

	// mixed moduli, variants and exponent magnitudes against the scalar path
	rng := rand.New(rand.NewSource(5005))
	for run := 0; run < 20; run++ {
		size := 1 + rng.Intn(6)
		forms := make([]*Form[uint64], size)
		exponents := make([]uint64, size)
		for j := range forms {
			m := rng.Uint64() | 1
			if m < 3 {
				m = 3
			}
			kinds := admissibleKinds(m)
			forms[j] = newForm(m, kinds[rng.Intn(len(kinds))])
			exponents[j] = rng.Uint64() >> rng.Intn(64)
		}
		results := TwoPowArray(forms, exponents)
		for j := range forms {
			expected := forms[j].ConvertOut(forms[j].TwoPow(exponents[j]))
			got := forms[j].ConvertOut(results[j])
			testutils.FatalUnless(t, got == expected, "batched two-pow disagrees with scalar at %v: %v vs %v (n=%v, e=%v)", j, got, expected, forms[j].GetModulus(), exponents[j])
		}
	}

	testutils.FatalUnless(t, testutils.CheckPanic(func() {
		TwoPowArray([]*Form[uint64]{New(uint64(11))}, []uint64{1, 2})
	}), "length mismatch was accepted")
}
