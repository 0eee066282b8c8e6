package montgomery

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

// ErrValueTooWide is the panic argument when a 128-bit engine receives an
// input of 129 or more bits.
var ErrValueTooWide = errors.New("montgomery: value must be below 2^128")

// The 128-bit engine keeps its words in uint256.Int, which leaves exactly
// the double width needed for products and REDC intermediates.

// r128 returns a fresh uint256 holding 2^128.
func r128() *uint256.Int {
	r := uint256.NewInt(1)
	return r.Lsh(r, 128)
}

// mask128 returns a fresh uint256 holding 2^128 - 1.
func mask128() *uint256.Int {
	m := r128()
	return m.SubUint64(m, 1)
}

// Value128 is the 128-bit analogue of [Value].
type Value128 struct {
	val uint256.Int
}

// CanonicalValue128 is the 128-bit analogue of [CanonicalValue].
type CanonicalValue128 struct {
	Value128
}

// FusingValue128 is the 128-bit analogue of [FusingValue].
type FusingValue128 struct {
	val uint256.Int
}

// Form128 is a Montgomery engine for odd moduli up to 128 bits, R == 2^128.
// Like [Form] it is immutable after construction and safe for concurrent use.
type Form128 struct {
	n        uint256.Int
	negInvN  uint256.Int
	rModN    uint256.Int
	rSquared uint256.Int
	kind     RangeKind
}

// MaxModulus128 returns the largest modulus admissible for the given range
// variant of [Form128].
func MaxModulus128(kind RangeKind) *uint256.Int {
	m := mask128()
	switch kind {
	case QuarterRange:
		return m.Rsh(m, 2)
	case HalfRange:
		return m.Rsh(m, 1)
	default:
		return m
	}
}

// negInvModR128 returns -n^-1 mod 2^128 for odd n, by the same
// Newton-Raphson iteration as the word-sized engine, doubling the number of
// correct low bits from 1 to 128.
func negInvModR128(n *uint256.Int) (neg uint256.Int) {
	two := uint256.NewInt(2)
	mask := mask128()
	x := uint256.NewInt(1)
	for i := 0; i < 7; i++ {
		var t uint256.Int
		t.Mul(n, x)
		t.Sub(two, &t)
		x.Mul(x, &t)
	}
	x.And(x, mask)
	neg.Sub(r128(), x)
	neg.And(&neg, mask)
	return
}

func newForm128(n *uint256.Int, kind RangeKind) *Form128 {
	if n[0]&1 == 0 {
		panic(ErrModulusEven)
	}
	if n.LtUint64(3) {
		panic(ErrModulusTooSmall)
	}
	if n.Gt(MaxModulus128(kind)) {
		panic(ErrModulusTooLarge)
	}
	mf := &Form128{kind: kind}
	mf.n.Set(n)
	mf.negInvN = negInvModR128(n)
	mf.rModN.Mod(r128(), n)
	mf.rSquared.Mul(&mf.rModN, &mf.rModN)
	mf.rSquared.Mod(&mf.rSquared, n)
	return mf
}

// New128 returns a Form128 for the odd modulus n >= 3, quarter-range when n
// fits it and full-range otherwise. It panics on an invalid modulus.
func New128(n *uint256.Int) *Form128 {
	if !n.Gt(MaxModulus128(QuarterRange)) {
		return newForm128(n, QuarterRange)
	}
	return newForm128(n, FullRange)
}

// NewFullRange128 returns a full-range Form128: any odd 3 <= n < 2^128.
func NewFullRange128(n *uint256.Int) *Form128 { return newForm128(n, FullRange) }

// NewHalfRange128 returns a half-range Form128; requires n < 2^127.
func NewHalfRange128(n *uint256.Int) *Form128 { return newForm128(n, HalfRange) }

// NewQuarterRange128 returns a quarter-range Form128; requires n < 2^126.
func NewQuarterRange128(n *uint256.Int) *Form128 { return newForm128(n, QuarterRange) }

// Kind returns the range variant this Form128 was constructed with.
func (mf *Form128) Kind() RangeKind { return mf.kind }

// GetModulus returns a copy of the modulus N.
func (mf *Form128) GetModulus() *uint256.Int {
	return new(uint256.Int).Set(&mf.n)
}

func (mf *Form128) variantModulus() *uint256.Int {
	vm := new(uint256.Int).Set(&mf.n)
	if mf.kind == QuarterRange {
		vm.Lsh(vm, 1)
	}
	return vm
}

// redcRaw reduces u < N * 2^128 to tHi < 2N congruent to u * R^-1 mod N.
// tHi may occupy 129 bits for full-range moduli.
func (mf *Form128) redcRaw(u *uint256.Int) (tHi uint256.Int) {
	var m, mn uint256.Int
	m.And(u, mask128())
	m.Mul(&m, &mf.negInvN)
	m.And(&m, mask128())
	mn.Mul(&m, &mf.n)
	var t uint256.Int
	_, carry := t.AddOverflow(u, &mn)
	tHi.Rsh(&t, 128)
	if carry {
		// the carry is bit 256 of t, i.e. bit 128 of tHi
		tHi.Or(&tHi, r128())
	}
	return
}

// redc reduces u < N * 2^128 into the value range of the form's variant.
func (mf *Form128) redc(u *uint256.Int) (res Value128) {
	res.val = mf.redcRaw(u)
	if mf.kind != QuarterRange && res.val.Cmp(&mf.n) >= 0 {
		res.val.Sub(&res.val, &mf.n)
	}
	return
}

// ConvertIn converts an integer below 2^128 (not necessarily reduced mod N)
// into Montgomery form. It panics on wider inputs.
func (mf *Form128) ConvertIn(a *uint256.Int) Value128 {
	if a.BitLen() > 128 {
		panic(ErrValueTooWide)
	}
	var u uint256.Int
	u.Mul(a, &mf.rSquared)
	return mf.redc(&u)
}

// ConvertIn64 converts a uint64 into Montgomery form.
func (mf *Form128) ConvertIn64(a uint64) Value128 {
	return mf.ConvertIn(uint256.NewInt(a))
}

// ConvertOut converts a Montgomery value back to its canonical residue in [0, N).
func (mf *Form128) ConvertOut(x Value128) *uint256.Int {
	t := mf.redcRaw(&x.val)
	if t.Cmp(&mf.n) >= 0 {
		t.Sub(&t, &mf.n)
	}
	return t.Clone()
}

// GetCanonicalValue reduces x to the unique representative below N.
func (mf *Form128) GetCanonicalValue(x Value128) CanonicalValue128 {
	if mf.kind == QuarterRange && x.val.Cmp(&mf.n) >= 0 {
		x.val.Sub(&x.val, &mf.n)
	}
	return CanonicalValue128{x}
}

// GetFusingValue derives the fused-operation operand from a canonical value.
func (mf *Form128) GetFusingValue(c CanonicalValue128) FusingValue128 {
	return FusingValue128{c.val}
}

// GetUnityValue returns 1 in Montgomery form.
func (mf *Form128) GetUnityValue() CanonicalValue128 {
	var c CanonicalValue128
	c.val.Set(&mf.rModN)
	return c
}

// GetZeroValue returns 0 in Montgomery form.
func (mf *Form128) GetZeroValue() CanonicalValue128 {
	return CanonicalValue128{}
}

// GetNegativeOneValue returns -1 in Montgomery form.
func (mf *Form128) GetNegativeOneValue() CanonicalValue128 {
	var c CanonicalValue128
	c.val.Sub(&mf.n, &mf.rModN)
	return c
}

// Add returns x + y as a Montgomery value.
func (mf *Form128) Add(x, y Value128) (res Value128) {
	vm := mf.variantModulus()
	res.val.Add(&x.val, &y.val)
	if res.val.Cmp(vm) >= 0 {
		res.val.Sub(&res.val, vm)
	}
	return
}

// Sub returns x - y as a Montgomery value.
func (mf *Form128) Sub(x, y Value128) (res Value128) {
	if x.val.Cmp(&y.val) >= 0 {
		res.val.Sub(&x.val, &y.val)
		return
	}
	res.val.Add(&x.val, mf.variantModulus())
	res.val.Sub(&res.val, &y.val)
	return
}

// UnorderedSub returns either x - y or y - x, unspecified which.
func (mf *Form128) UnorderedSub(x, y Value128) (res Value128) {
	if x.val.Cmp(&y.val) >= 0 {
		res.val.Sub(&x.val, &y.val)
	} else {
		res.val.Sub(&y.val, &x.val)
	}
	return
}

// Negate returns -x as a Montgomery value.
func (mf *Form128) Negate(x Value128) Value128 {
	return mf.Sub(mf.GetZeroValue().Value128, x)
}

// TwoTimes returns 2*x as a Montgomery value.
func (mf *Form128) TwoTimes(x Value128) Value128 {
	return mf.Add(x, x)
}

// Halve returns the value h with 2*h == x (mod N). The sum x + N fits the
// 256-bit word with room to spare, so no carry handling is needed here.
func (mf *Form128) Halve(x Value128) (res Value128) {
	if x.val[0]&1 == 0 {
		res.val.Rsh(&x.val, 1)
		return
	}
	res.val.Add(&x.val, &mf.n)
	res.val.Rsh(&res.val, 1)
	return
}

// DivideBySmallPowerOfTwo returns c / 2^k (mod N). Runs in O(k); k must be
// below 128.
func (mf *Form128) DivideBySmallPowerOfTwo(c CanonicalValue128, k uint) Value128 {
	if k >= 128 {
		panic(ErrShiftTooLarge)
	}
	x := c.Value128
	for ; k > 0; k-- {
		x = mf.Halve(x)
	}
	return x
}

// Multiply returns x * y as a Montgomery value.
func (mf *Form128) Multiply(x, y Value128) Value128 {
	var u uint256.Int
	u.Mul(&x.val, &y.val)
	return mf.redc(&u)
}

// MultiplyIsZero returns x * y and whether the product is zero mod N.
func (mf *Form128) MultiplyIsZero(x, y Value128) (Value128, bool) {
	res := mf.Multiply(x, y)
	isZero := res.val.IsZero() || (mf.kind == QuarterRange && res.val.Eq(&mf.n))
	return res, isZero
}

// Square returns x^2 as a Montgomery value.
func (mf *Form128) Square(x Value128) Value128 {
	return mf.Multiply(x, x)
}

// IsEqual reports whether x and y represent the same residue mod N.
func (mf *Form128) IsEqual(x, y Value128) bool {
	cx, cy := mf.GetCanonicalValue(x), mf.GetCanonicalValue(y)
	return cx.val.Eq(&cy.val)
}

// FMAdd returns x*y + z as a Montgomery value with a single reduction, by
// adding z into the high half of the product before REDC.
func (mf *Form128) FMAdd(x, y Value128, z FusingValue128) Value128 {
	return mf.fma(x, y, z, false)
}

// FMSub returns x*y - z as a Montgomery value with a single reduction.
func (mf *Form128) FMSub(x, y Value128, z FusingValue128) Value128 {
	return mf.fma(x, y, z, true)
}

func (mf *Form128) fma(x, y Value128, z FusingValue128, subtract bool) Value128 {
	var u, uHi uint256.Int
	u.Mul(&x.val, &y.val)
	uHi.Rsh(&u, 128)
	// uHi < N because u < N * 2^128, so prereduced modular add/sub applies
	if subtract {
		if uHi.Cmp(&z.val) >= 0 {
			uHi.Sub(&uHi, &z.val)
		} else {
			uHi.Add(&uHi, &mf.n)
			uHi.Sub(&uHi, &z.val)
		}
	} else {
		uHi.Add(&uHi, &z.val)
		if uHi.Cmp(&mf.n) >= 0 {
			uHi.Sub(&uHi, &mf.n)
		}
	}
	u.And(&u, mask128())
	uHi.Lsh(&uHi, 128)
	u.Or(&u, &uHi)
	return mf.redc(&u)
}

// FusedSquareAdd returns x^2 + z as a Montgomery value.
func (mf *Form128) FusedSquareAdd(x Value128, z FusingValue128) Value128 {
	return mf.FMAdd(x, x, z)
}

// FusedSquareSub returns x^2 - z as a Montgomery value.
func (mf *Form128) FusedSquareSub(x Value128, z FusingValue128) Value128 {
	return mf.FMSub(x, x, z)
}

// Remainder reduces an arbitrary integer below 2^128 modulo N.
func (mf *Form128) Remainder(a *uint256.Int) *uint256.Int {
	if a.BitLen() > 128 {
		panic(ErrValueTooWide)
	}
	return new(uint256.Int).Mod(a, &mf.n)
}

// Inverse returns the multiplicative inverse of x as a canonical Montgomery
// value, or the zero value if x is not invertible.
func (mf *Form128) Inverse(x Value128) CanonicalValue128 {
	residue := mf.ConvertOut(x).ToBig()
	modulus := mf.n.ToBig()
	inv := new(big.Int).ModInverse(residue, modulus)
	if inv == nil {
		return mf.GetZeroValue()
	}
	val, _ := uint256.FromBig(inv)
	return mf.GetCanonicalValue(mf.ConvertIn(val))
}

// GcdWithModulus calls gcd with the canonical raw word of x and the
// modulus; as with [Form.GcdWithModulus], no conversion out of Montgomery
// form is needed since R is coprime to N.
func (mf *Form128) GcdWithModulus(x Value128, gcd func(a, b *uint256.Int) *uint256.Int) *uint256.Int {
	c := mf.GetCanonicalValue(x)
	return gcd(&c.val, &mf.n)
}

// Pow returns base^exponent as a Montgomery value, by 4-bit windowed
// exponentiation. An exponent of 0 yields 1.
func (mf *Form128) Pow(base Value128, exponent uint64) Value128 {
	const p = 4
	const mask = uint64(1)<<p - 1
	var table [1 << p]Value128
	table[0] = mf.GetUnityValue().Value128
	table[1] = base
	for i := 2; i < len(table); i += 2 {
		table[i] = mf.Square(table[i/2])
		table[i+1] = mf.Multiply(table[i/2], table[i/2+1])
	}
	if exponent <= mask {
		return table[exponent]
	}
	shift := bitLen64(exponent) - p
	result := table[exponent>>shift]
	for shift >= p {
		for k := 0; k < p; k++ {
			result = mf.Square(result)
		}
		shift -= p
		result = mf.Multiply(result, table[(exponent>>shift)&mask])
	}
	if shift > 0 {
		for k := uint(0); k < shift; k++ {
			result = mf.Square(result)
		}
		result = mf.Multiply(result, table[exponent&(uint64(1)<<shift-1)])
	}
	return result
}

// TwoPow returns 2^exponent as a Montgomery value.
func (mf *Form128) TwoPow(exponent uint64) Value128 {
	return mf.Pow(mf.ConvertIn64(2), exponent)
}
