// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixmath

import (
	"math"

	mu "github.com/avdva/fixmath/internal/mathutil"
)

// Elem is a non-owning reference to a single slot of a region. It carries no
// exponent of its own: the slot always means mantissa * 2^(region exponent),
// so reads and writes go through Scalar conversions that realign exponents.
type Elem struct {
	region *Region
	offset int
}

// NewElem binds a reference to the slot at offset.
func NewElem(r *Region, offset int) (Elem, error) {
	if offset < 0 || offset >= len(r.data) {
		return Elem{}, ErrBounds.New("offset %d outside region of dim %d", offset, len(r.data))
	}
	return Elem{region: r, offset: offset}, nil
}

// Scalar extracts the element as a self-contained scalar with an exact size.
func (e Elem) Scalar() Scalar {
	d := e.region.data[e.offset]
	guess := e.region.size
	if guess > 63 {
		guess = 63
	}
	return Scalar{data: d, exponent: e.region.exponent, size: mu.FindSize(mu.Abs64(d), guess)}
}

// SetScalar stores s into the element, shifting between s's exponent and the
// region's as needed and growing the region's bound.
func (e Elem) SetScalar(s Scalar) {
	shift := e.region.admit(s.exponent, s.size, 0)
	e.region.data[e.offset] = shiftMant(s.data, shift)
	if as := alignedSize(s.size, shift); as > e.region.size {
		e.region.size = as
	}
}

// Float64 returns the represented value as a float, for diagnostics.
func (e Elem) Float64() float64 {
	return math.Ldexp(float64(e.region.data[e.offset]), e.region.exponent)
}
