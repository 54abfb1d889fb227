package mathutil

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v    int64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{-1, 1},
		{12345, 12345},
		{-12345, 12345},
		{math.MaxInt64, uint64(math.MaxInt64)},
		{math.MinInt64, 1 << 63},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.want, Abs64(test.v))
		})
	}
}

func TestFindSize(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		value uint64
		guess int
		want  int
	}{
		{0, 0, 0},
		{0, 63, 0},
		{1, 0, 1},
		{1, 63, 1},
		{7, 3, 3},
		{8, 0, 4},
		{8, 4, 4},
		{8, 63, 4},
		{(1 << 62) - 1, 62, 62},
		{1 << 62, 0, 63},
		{1 << 63, 32, 64},
		{math.MaxUint64, 0, 64},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.want, FindSize(test.value, test.guess))
		})
	}
}

func TestFindSizeGuessIndependence(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := rnd.Uint64() >> uint(rnd.Intn(64))
		want := bits.Len64(v)
		for _, guess := range []int{0, 31, 63, rnd.Intn(64)} {
			a.Equal(want, FindSize(v, guess))
		}
	}
}

func TestFindSizePanics(t *testing.T) {
	a := assert.New(t)
	a.Panics(func() { FindSize(1, -1) })
	a.Panics(func() { FindSize(1, 64) })
}

func TestCeilLog2(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		n, want int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{1024, 10},
		{1025, 11},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.want, CeilLog2(test.n))
		})
	}
}

func big128(hi int64, lo uint64) *big.Int {
	b := new(big.Int).Lsh(big.NewInt(hi), 64)
	return b.Add(b, new(big.Int).SetUint64(lo))
}

func TestMul128(t *testing.T) {
	a := assert.New(t)
	corner := []int64{0, 1, -1, 2, -2, math.MaxInt64, math.MinInt64, 1 << 32, -(1 << 32)}
	for _, x := range corner {
		for _, y := range corner {
			hi, lo := Mul128(x, y)
			want := new(big.Int).Mul(big.NewInt(x), big.NewInt(y))
			a.Zero(want.Cmp(big128(hi, lo)), "%d * %d", x, y)
		}
	}
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		x, y := int64(rnd.Uint64()), int64(rnd.Uint64())
		hi, lo := Mul128(x, y)
		want := new(big.Int).Mul(big.NewInt(x), big.NewInt(y))
		a.Zero(want.Cmp(big128(hi, lo)), "%d * %d", x, y)
	}
}

func TestAdd128(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		// keep sums well inside 128 bits so there is no wraparound to model
		xhi, xlo := int64(rnd.Uint64())>>16, rnd.Uint64()
		yhi, ylo := int64(rnd.Uint64())>>16, rnd.Uint64()
		hi, lo := Add128(xhi, xlo, yhi, ylo)
		want := new(big.Int).Add(big128(xhi, xlo), big128(yhi, ylo))
		a.Zero(want.Cmp(big128(hi, lo)))
	}
}

func TestNeg128(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		hi int64
		lo uint64
	}{
		{0, 0},
		{0, 1},
		{-1, math.MaxUint64}, // -1
		{0, math.MaxUint64},
		{1, 0},
		{-1, 0},
		{math.MaxInt64, math.MaxUint64},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			hi, lo := Neg128(test.hi, test.lo)
			want := new(big.Int).Neg(big128(test.hi, test.lo))
			a.Zero(want.Cmp(big128(hi, lo)))
		})
	}
}

func TestLen128(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		hi   int64
		lo   uint64
		want int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 32, 6},
		{-1, math.MaxUint64, 1},  // -1
		{-1, math.MaxUint64 - 31, 6}, // -32
		{0, 1 << 63, 64},
		{1, 0, 65},
		{-1, 0, 65}, // -2^64
		{math.MaxInt64, math.MaxUint64, 127},
		{math.MinInt64, 0, 128},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.want, Len128(test.hi, test.lo))
		})
	}
}

func TestRsh128(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(4))
	for i := 0; i < 1000; i++ {
		hi, lo := int64(rnd.Uint64()), rnd.Uint64()
		k := rnd.Intn(140)
		shi, slo := Rsh128(hi, lo, k)
		want := new(big.Int).Rsh(big128(hi, lo), uint(k))
		a.Zero(want.Cmp(big128(shi, slo)), "(%d,%d)>>%d", hi, lo, k)
	}
}
