// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixmath

import (
	mu "github.com/avdva/fixmath/internal/mathutil"
)

// Region owns a contiguous buffer of 64-bit mantissas that all share one
// exponent and one magnitude bound. Element i represents the real value
// data[i] * 2^exponent. The bound satisfies |data[i]| < 2^size for every
// element and is allowed to be loose; Scalar keeps the tight variant.
//
// The buffer itself is borrowed from the caller for the region's lifetime
// and is never reallocated or resized. No two regions may share storage.
type Region struct {
	exponent int
	size     int
	data     []int64
}

// NewRegion binds caller-owned storage to a region, interpreting whatever
// mantissas it currently holds at the given exponent. sizeHint is a starting
// point in [0, 63] for the size search; the stored bound is exact regardless
// of the hint.
func NewRegion(data []int64, exponent, sizeHint int) (*Region, error) {
	if len(data) == 0 {
		return nil, ErrDimension.New("empty region")
	}
	if sizeHint < 0 || sizeHint > 63 {
		return nil, ErrSizeHint.New("size hint %d outside [0, 63]", sizeHint)
	}
	r := &Region{exponent: exponent, data: data}
	r.SetSize(sizeHint)
	return r, nil
}

// Dim returns the number of elements in the region's buffer.
func (r *Region) Dim() int { return len(r.data) }

// Exponent returns the power-of-two exponent shared by every element.
func (r *Region) Exponent() int { return r.exponent }

// Size returns the current magnitude bound: |data[i]| < 2^size for all i.
func (r *Region) Size() int { return r.size }

// Zero clears the mantissas and resets exponent and size to zero. Worth
// calling occasionally on long-lived regions: sub-operations only ever grow
// the bound, so it drifts upward and wastes precision headroom.
func (r *Region) Zero() {
	for i := range r.data {
		r.data[i] = 0
	}
	r.exponent = 0
	r.size = 0
}

// ShiftRight divides every mantissa by 2^k, rounding toward negative
// infinity, and raises the exponent by k. Represented values are unchanged
// except for the k discarded low bits of each mantissa.
func (r *Region) ShiftRight(k int) {
	checkShift(k)
	if k == 0 {
		return
	}
	// the flooring shift can round a negative mantissa's magnitude up to
	// the next power of two, so size-k is not a safe bound; recompute it
	// exactly while the data is being walked anyway
	guess := r.size - k
	if guess < 0 {
		guess = 0
	}
	size := 0
	for i, d := range r.data {
		d >>= uint(k)
		r.data[i] = d
		s := mu.FindSize(mu.Abs64(d), guess)
		if s > size {
			size = s
		}
		guess = s
	}
	r.exponent += k
	r.size = size
}

// ShiftLeft multiplies every mantissa by 2^k and lowers the exponent by k.
// The inverse of ShiftRight; the caller must know the headroom exists, i.e.
// size+k stays within 63 bits.
func (r *Region) ShiftLeft(k int) {
	checkShift(k)
	if k == 0 {
		return
	}
	for i, d := range r.data {
		r.data[i] = d << uint(k)
	}
	r.exponent -= k
	r.size += k
}

// SetSize recomputes the exact magnitude bound across all elements. This is
// the only place a region's bound tightens back to exactness. sizeHint in
// [0, 63] seeds the search and does not affect the result.
func (r *Region) SetSize(sizeHint int) {
	checkSizeHint(sizeHint)
	guess, size := sizeHint, 0
	for _, d := range r.data {
		s := mu.FindSize(mu.Abs64(d), guess)
		if s > size {
			size = s
		}
		guess = s
		if guess > 63 {
			guess = 63
		}
	}
	r.size = size
}

// admit prepares the region to take in mantissas of natural exponent e and
// size s, reserving extra bits of growth headroom, and returns the shift to
// apply to those mantissas (positive means left). The region's exponent is
// kept when it has enough headroom. An all-zero region adopts e directly.
// Otherwise the region itself is renormalized: left while headroom allows
// when the incoming values are finer grained, or right, accepting the
// precision loss, when they are wider.
func (r *Region) admit(e, s, extra int) int {
	if r.size == 0 {
		r.exponent = e
	} else if d := r.exponent - e; d > 0 {
		l := 62 - extra - r.size
		if l > d {
			l = d
		}
		if l > 0 {
			r.ShiftLeft(l)
		}
	}
	for {
		shift := e - r.exponent
		need := s + shift
		if need < 1 {
			need = 1
		}
		if need < r.size {
			need = r.size
		}
		// budget is 62, not 63: flooring right shifts can round the
		// magnitude of an aligned mantissa up by one bit
		if need+extra <= 62 {
			return shift
		}
		r.ShiftRight(need + extra - 62)
	}
}

// shiftMant applies a shift returned by admit to a single mantissa.
func shiftMant(m int64, shift int) int64 {
	if shift >= 0 {
		return m << uint(shift)
	}
	return m >> uint(-shift)
}

// alignedSize bounds a mantissa of size s after shiftMant. A right shift
// needs one extra bit: flooring can round a negative mantissa's magnitude up
// to the next power of two.
func alignedSize(s, shift int) int {
	if s == 0 {
		return 0
	}
	if shift >= 0 {
		return s + shift
	}
	s += shift + 1
	if s < 1 {
		s = 1
	}
	return s
}
