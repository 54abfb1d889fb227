package mathutil

import "math/bits"

// Abs64 returns the absolute value of v as an unsigned number.
// Unlike plain negation it is correct for math.MinInt64.
func Abs64(v int64) uint64 {
	mask := v >> 63
	return uint64((v + mask) ^ mask)
}

// FindSize returns the smallest s >= 0 such that value>>s == 0, i.e. the
// minimal bound with value < 1<<s. guess seeds the search and must be in
// [0, 63]; a bad guess only costs iterations, never correctness.
func FindSize(value uint64, guess int) int {
	if guess < 0 || guess > 63 {
		panic("mathutil: size guess outside [0, 63]")
	}
	s := guess
	for value>>uint(s) != 0 {
		s++
	}
	for s > 0 && value>>uint(s-1) == 0 {
		s--
	}
	return s
}

// CeilLog2 returns the smallest k >= 0 with 1<<k >= n. n must be positive.
func CeilLog2(n int) int {
	return bits.Len(uint(n - 1))
}

// Mul128 returns the signed 128-bit product a*b as a two's complement
// (hi, lo) pair.
func Mul128(a, b int64) (hi int64, lo uint64) {
	uhi, ulo := bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		uhi -= uint64(b)
	}
	if b < 0 {
		uhi -= uint64(a)
	}
	return int64(uhi), ulo
}

// Add128 adds two signed 128-bit values, wrapping like any two's complement
// addition.
func Add128(ahi int64, alo uint64, bhi int64, blo uint64) (hi int64, lo uint64) {
	lo, carry := bits.Add64(alo, blo, 0)
	hi = ahi + bhi + int64(carry)
	return hi, lo
}

// Neg128 negates a signed 128-bit value.
func Neg128(hi int64, lo uint64) (int64, uint64) {
	l, carry := bits.Add64(^lo, 1, 0)
	return ^hi + int64(carry), l
}

// Len128 returns the smallest s >= 0 such that the absolute value of the
// 128-bit number (hi, lo) is < 1<<s.
func Len128(hi int64, lo uint64) int {
	if hi < 0 {
		hi, lo = Neg128(hi, lo)
	}
	if hi != 0 {
		return 64 + bits.Len64(uint64(hi))
	}
	return bits.Len64(lo)
}

// Rsh128 arithmetically shifts a signed 128-bit value right by k >= 0 bits,
// rounding toward negative infinity.
func Rsh128(hi int64, lo uint64, k int) (int64, uint64) {
	switch {
	case k <= 0:
		return hi, lo
	case k < 64:
		return hi >> uint(k), lo>>uint(k) | uint64(hi)<<uint(64-k)
	case k < 128:
		return hi >> 63, uint64(hi >> uint(k-64))
	default:
		return hi >> 63, uint64(hi >> 63)
	}
}
