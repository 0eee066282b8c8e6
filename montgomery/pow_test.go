package montgomery

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/pmeverett/montmath/internal/testutils"
	"github.com/pmeverett/montmath/modular"
)

func testPowOnce[T Word](t *testing.T, rng *rand.Rand) {
	for _, n := range sampleOddModuli[T](rng, 4) {
		for _, kind := range admissibleKinds(n) {
			mf := newForm(n, kind)
			for i := 0; i < 25; i++ {
				base := T(rng.Uint64()) % n
				exponent := rng.Uint64() >> rng.Intn(64)
				expected := modular.Pow(base, exponent, n)
				got := mf.Pow(mf.ConvertIn(base), exponent)
				checkValueRange(t, mf, got, "Pow")
				testutils.FatalUnless(t, mf.ConvertOut(got) == expected, "Pow(%v, %v) mod %v == %v, expected %v (%v)", base, exponent, n, mf.ConvertOut(got), expected, kind)
			}
			x := mf.ConvertIn(T(rng.Uint64()) % n)
			testutils.FatalUnless(t, mf.ConvertOut(mf.Pow(x, 0)) == 1%n, "x^0 != 1 mod %v", n)
			testutils.FatalUnless(t, mf.IsEqual(mf.Pow(x, 1), x), "x^1 != x mod %v", n)
		}
	}
}

func TestPow(t *testing.T) {
	rng := rand.New(rand.NewSource(4001))
	testPowOnce[uint8](t, rng)
	testPowOnce[uint16](t, rng)
	testPowOnce[uint32](t, rng)
	testPowOnce[uint64](t, rng)
}

// All option combinations must compute the same function.
func TestPowOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(4002))
	mf := New(uint64(0x3FFFFFFFFFFFFFFB)) // quarter range
	mfFull := NewFullRange(^uint64(0) - 58) // 2^64 - 59 is prime
	for i := 0; i < 40; i++ {
		for _, form := range []*Form[uint64]{mf, mfFull} {
			n := form.GetModulus()
			base := form.ConvertIn(rng.Uint64() % n)
			exponent := rng.Uint64() >> rng.Intn(40)
			reference := form.ConvertOut(form.Pow(base, exponent))
			for _, tableBits := range []uint{1, 2, 3, 5, 8, 9} {
				for _, noSliding := range []bool{false, true} {
					for _, useSV := range []bool{false, true} {
						opts := PowOptions{TableBits: tableBits, NoSlidingWindow: noSliding, UseSquaringValues: useSV}
						got := form.ConvertOut(form.PowWithOptions(base, exponent, opts))
						testutils.FatalUnless(t, got == reference, "PowWithOptions(%+v) == %v, expected %v (exponent %v)", opts, got, reference, exponent)
					}
				}
			}
		}
	}
	testutils.FatalUnless(t, testutils.CheckPanic(func() { mf.PowWithOptions(mf.GetUnityValue().Value, 5, PowOptions{TableBits: 10}) }), "table bits 10 was accepted")
}

// 7^17 mod 11 == 6, scalar and batched.
func TestPowByHand(t *testing.T) {
	mf := New(uint64(11))
	testutils.FatalUnless(t, mf.ConvertOut(mf.Pow(mf.ConvertIn(7), 17)) == 6, "7^17 mod 11 != 6")

	// batch of three identical computations
	forms := []*Form[uint64]{New(uint64(11)), New(uint64(11)), New(uint64(11))}
	bases := []Value[uint64]{forms[0].ConvertIn(7), forms[1].ConvertIn(7), forms[2].ConvertIn(7)}
	results := PowArray(forms, bases, []uint64{17, 17, 17})
	for j := range results {
		testutils.FatalUnless(t, forms[j].ConvertOut(results[j]) == 6, "batched 7^17 mod 11 != 6 at index %v", j)
	}

	// mixed batch
	forms = []*Form[uint64]{New(uint64(11)), New(uint64(13)), New(uint64(35))}
	bases = []Value[uint64]{forms[0].ConvertIn(7), forms[1].ConvertIn(11), forms[2].ConvertIn(6)}
	results = PowArray(forms, bases, []uint64{17, 12, 2})
	testutils.FatalUnless(t, forms[0].ConvertOut(results[0]) == 6, "batched 7^17 mod 11 != 6")
	testutils.FatalUnless(t, forms[1].ConvertOut(results[1]) == 1, "batched 11^12 mod 13 != 1")
	testutils.FatalUnless(t, forms[2].ConvertOut(results[2]) == 1, "batched 6^2 mod 35 != 1")
}

// The batched variant must agree with the scalar one element-wise, for
// mixed moduli, mixed range variants and wildly different exponent sizes.
func TestPowArrayAgainstScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(4003))
	for run := 0; run < 20; run++ {
		size := 1 + rng.Intn(6)
		forms := make([]*Form[uint64], size)
		bases := make([]Value[uint64], size)
		exponents := make([]uint64, size)
		for j := range forms {
			n := rng.Uint64() | 1
			if n < 3 {
				n = 3
			}
			kinds := admissibleKinds(n)
			forms[j] = newForm(n, kinds[rng.Intn(len(kinds))])
			bases[j] = forms[j].ConvertIn(rng.Uint64() % n)
			exponents[j] = rng.Uint64() >> rng.Intn(64)
		}
		for _, tableBits := range []uint{2, 4, 6} {
			opts := PowOptions{TableBits: tableBits}
			results := PowArrayWithOptions(forms, bases, exponents, opts)
			for j := range forms {
				expected := forms[j].ConvertOut(forms[j].Pow(bases[j], exponents[j]))
				got := forms[j].ConvertOut(results[j])
				testutils.FatalUnless(t, got == expected, "batched pow disagrees with scalar at %v: %v vs %v (n=%v, e=%v)", j, got, expected, forms[j].GetModulus(), exponents[j])
			}
		}
	}
	testutils.FatalUnless(t, testutils.CheckPanic(func() {
		PowArray([]*Form[uint64]{New(uint64(11))}, nil, []uint64{1})
	}), "length mismatch was accepted")
}

func TestPowBig(t *testing.T) {
	rng := rand.New(rand.NewSource(4004))
	mf := NewFullRange(^uint64(0) - 58)
	n := mf.GetModulus()
	var bigBase, bigN, expected big.Int
	bigN.SetUint64(n)
	exponent := new(big.Int).Lsh(big.NewInt(1), 200)
	exponent.Add(exponent, big.NewInt(12345))
	for i := 0; i < 10; i++ {
		base := rng.Uint64() % n
		bigBase.SetUint64(base)
		expected.Exp(&bigBase, exponent, &bigN)
		got := mf.ConvertOut(mf.PowBig(mf.ConvertIn(base), exponent))
		testutils.FatalUnless(t, got == expected.Uint64(), "PowBig with a 201-bit exponent: got %v, expected %v", got, expected.Uint64())
	}
	// small exponents take the uint64 path
	testutils.FatalUnless(t, mf.ConvertOut(mf.PowBig(mf.ConvertIn(3), big.NewInt(4))) == 81, "PowBig(3, 4) != 81")
	testutils.FatalUnless(t, testutils.CheckPanic(func() { mf.PowBig(mf.ConvertIn(3), big.NewInt(-1)) }), "negative exponent was accepted")
}
