package montgomery

import (
	"math/rand"
	"testing"
)

// global sink to keep the optimizer from discarding benchmark results
var benchSink uint64

func setupBenchValues(b *testing.B, mf *Form[uint64], num int) []Value[uint64] {
	b.Helper()
	rng := rand.New(rand.NewSource(7001))
	vals := make([]Value[uint64], num)
	for i := range vals {
		vals[i] = mf.ConvertIn(rng.Uint64() % mf.GetModulus())
	}
	return vals
}

func BenchmarkMultiply(b *testing.B) {
	mf := New(uint64(1)<<61 - 1)
	vals := setupBenchValues(b, mf, 256)
	b.ResetTimer()
	acc := vals[0]
	for i := 0; i < b.N; i++ {
		acc = mf.Multiply(acc, vals[i%256])
	}
	benchSink = acc.val
}

func BenchmarkMultiplyFullRange(b *testing.B) {
	mf := NewFullRange(^uint64(0) - 58)
	vals := setupBenchValues(b, mf, 256)
	b.ResetTimer()
	acc := vals[0]
	for i := 0; i < b.N; i++ {
		acc = mf.Multiply(acc, vals[i%256])
	}
	benchSink = acc.val
}

func BenchmarkPow(b *testing.B) {
	mf := New(uint64(1)<<61 - 1)
	vals := setupBenchValues(b, mf, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = mf.Pow(vals[i%16], 0xDEADBEEFCAFE).val
	}
}

func BenchmarkTwoPow(b *testing.B) {
	mf := New(uint64(1)<<61 - 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = mf.TwoPow(1000000000 + uint64(i&1023)).val
	}
}

func BenchmarkPowArray(b *testing.B) {
	const size = 4
	mf := New(uint64(1)<<61 - 1)
	forms := make([]*Form[uint64], size)
	for j := range forms {
		forms[j] = mf
	}
	bases := setupBenchValues(b, mf, size)
	exponents := []uint64{1000000000, 999999999, 1000000001, 1000000007}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = PowArray(forms, bases, exponents)[0].val
	}
}
