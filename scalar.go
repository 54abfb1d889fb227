// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixmath

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	mu "github.com/avdva/fixmath/internal/mathutil"
)

// Scalar is a self-contained fixed-point number representing
// data * 2^exponent. It is independent of any region, and unlike a region's
// bound its size is always exact: the smallest s with |data| < 2^s.
//
// Scalar is a value type; every operation returns a fully formed result and
// never mutates its operands.
type Scalar struct {
	exponent int
	size     int
	data     int64
}

// ScalarFromInt returns a scalar equal to v, with exponent 0.
func ScalarFromInt(v int64) Scalar {
	return Scalar{data: v, size: mu.FindSize(mu.Abs64(v), 32)}
}

// ScalarFromMantAndExp returns the scalar m * 2^e.
func ScalarFromMantAndExp(m int64, e int) Scalar {
	return Scalar{data: m, exponent: e, size: mu.FindSize(mu.Abs64(m), 32)}
}

// ScalarFromFloat64 converts a float to a scalar exactly.
// Returns an error for infinities and not-a-numbers.
func ScalarFromFloat64(f float64) (Scalar, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Scalar{}, fmt.Errorf("bad float number")
	}
	if f == 0 {
		return Scalar{}, nil
	}
	frac, exp := math.Frexp(f)
	m := int64(frac * (1 << 53))
	e := exp - 53
	for m%2 == 0 {
		m >>= 1
		e++
	}
	return Scalar{data: m, exponent: e, size: mu.FindSize(mu.Abs64(m), 53)}, nil
}

// Mant returns the raw mantissa.
func (a Scalar) Mant() int64 { return a.data }

// Exponent returns the power-of-two exponent.
func (a Scalar) Exponent() int { return a.exponent }

// Size returns the exact bound: the smallest s with |mantissa| < 2^s.
func (a Scalar) Size() int { return a.size }

// ShiftRight returns the scalar with k low mantissa bits discarded (rounding
// toward negative infinity) and the exponent raised by k, so the represented
// value is unchanged up to the discarded bits.
func (a Scalar) ShiftRight(k int) Scalar {
	checkShift(k)
	if k == 0 {
		return a
	}
	a.data >>= uint(k)
	a.exponent += k
	guess := a.size - k
	if guess < 0 {
		guess = 0
	}
	a.size = mu.FindSize(mu.Abs64(a.data), guess)
	return a
}

// ShiftLeft returns the scalar with the mantissa multiplied by 2^k and the
// exponent lowered by k. The caller must know the headroom exists.
func (a Scalar) ShiftLeft(k int) Scalar {
	checkShift(k)
	a.data <<= uint(k)
	a.exponent -= k
	a.size += k
	return a
}

// Neg returns -a.
func (a Scalar) Neg() Scalar {
	a.data = -a.data
	return a
}

// Mul returns a*b. When the operand sizes together exceed the 62-bit product
// budget, single-bit right shifts fall on whichever operand is currently
// larger until the product fits, splitting the precision loss.
func (a Scalar) Mul(b Scalar) Scalar {
	for a.size+b.size > 62 {
		if a.size >= b.size {
			a = a.ShiftRight(1)
		} else {
			b = b.ShiftRight(1)
		}
	}
	p := a.data * b.data
	return Scalar{
		data:     p,
		exponent: a.exponent + b.exponent,
		size:     mu.FindSize(mu.Abs64(p), a.size+b.size),
	}
}

// Add returns a+b. Operands are first brought to a common exponent: the one
// with the larger exponent is widened while mantissa headroom allows, and
// whatever gap remains is closed by discarding low bits of the other.
func (a Scalar) Add(b Scalar) Scalar {
	if a.exponent < b.exponent {
		a, b = b, a
	}
	if diff := a.exponent - b.exponent; diff > 0 {
		if l := 62 - a.size; l > 0 {
			if l > diff {
				l = diff
			}
			a = a.ShiftLeft(l)
		}
		if diff = a.exponent - b.exponent; diff > 0 {
			b = b.ShiftRight(diff)
		}
	}
	for a.size > 62 || b.size > 62 {
		a, b = a.ShiftRight(1), b.ShiftRight(1)
	}
	sum := a.data + b.data
	guess := a.size
	if b.size > guess {
		guess = b.size
	}
	if guess < 63 {
		guess++
	}
	return Scalar{data: sum, exponent: a.exponent, size: mu.FindSize(mu.Abs64(sum), guess)}
}

// Sub returns a-b.
func (a Scalar) Sub(b Scalar) Scalar {
	return a.Add(b.Neg())
}

// Div returns a/b. The dividend is scaled left to 62 bits and the divisor is
// capped at 31 bits, so the quotient keeps at least 30 significant bits.
// Panics if b is zero.
func (a Scalar) Div(b Scalar) Scalar {
	if b.data == 0 {
		panic(ErrZeroDivide.New("zero divisor"))
	}
	if b.size > 31 {
		b = b.ShiftRight(b.size - 31)
	}
	if l := 62 - a.size; l > 0 {
		a = a.ShiftLeft(l)
	}
	q := a.data / b.data
	guess := 63 - b.size
	if guess < 0 {
		guess = 0
	}
	return Scalar{
		data:     q,
		exponent: a.exponent - b.exponent,
		size:     mu.FindSize(mu.Abs64(q), guess),
	}
}

// Inv returns 1/a. Panics if a is zero.
func (a Scalar) Inv() Scalar {
	return ScalarFromInt(1).Div(a)
}

// Float64 returns the represented value as a float. Diagnostics and testing
// only; the codec hot path never converts.
func (a Scalar) Float64() float64 {
	return math.Ldexp(float64(a.data), a.exponent)
}

// ApproxEqual reports whether a and b represent the same value within the
// relative tolerance tol.
func (a Scalar) ApproxEqual(b Scalar, tol float64) bool {
	fa, fb := a.Float64(), b.Float64()
	if fa == fb {
		return true
	}
	return math.Abs(fa-fb) <= tol*(math.Abs(fa)+math.Abs(fb))
}

// String returns the represented value formatted as a float.
func (a Scalar) String() string {
	return strconv.FormatFloat(a.Float64(), 'g', -1, 64)
}

// GoString returns a debug representation with the raw mantissa, exponent,
// and size.
func (a Scalar) GoString() string {
	return a.String() + fmt.Sprintf(" {m:%d, e:%d, s:%d}", a.data, a.exponent, a.size)
}

type scalarJSON struct {
	M int64 `json:"m"`
	E int   `json:"e"`
}

// MarshalJSON marshals the scalar as {"m":mantissa,"e":exponent}.
func (a Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(scalarJSON{M: a.data, E: a.exponent})
}

// UnmarshalJSON unmarshals a {"m":...,"e":...} object, recomputing the size.
func (a *Scalar) UnmarshalJSON(data []byte) error {
	var d scalarJSON
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*a = ScalarFromMantAndExp(d.M, d.E)
	return nil
}
