// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixmath

import (
	"math"

	mu "github.com/avdva/fixmath/internal/mathutil"
)

// Vector is a non-owning strided view into a region's buffer: element i
// lives at buffer index offset + i*stride. The view borrows the region and
// must not outlive it. Strides may be negative, never zero.
type Vector struct {
	region *Region
	dim    int
	stride int
	offset int
}

// NewVector creates a view of dim elements starting at offset with the given
// stride. Every addressed element must lie inside the region's buffer; the
// bounds are validated once, here.
func NewVector(r *Region, offset, dim, stride int) (Vector, error) {
	if dim <= 0 {
		return Vector{}, ErrDimension.New("non-positive dim %d", dim)
	}
	if stride == 0 {
		return Vector{}, ErrStride.New("zero stride")
	}
	last := offset + (dim-1)*stride
	if offset < 0 || offset >= len(r.data) || last < 0 || last >= len(r.data) {
		return Vector{}, ErrBounds.New("vector (offset %d, dim %d, stride %d) outside region of dim %d",
			offset, dim, stride, len(r.data))
	}
	return Vector{region: r, dim: dim, stride: stride, offset: offset}, nil
}

// Sub derives a view from v without touching the region: element i of the
// result is element offset + i*stride of v. The derived range must stay
// within v's addressable span.
func (v Vector) Sub(offset, dim, stride int) (Vector, error) {
	if dim <= 0 {
		return Vector{}, ErrDimension.New("non-positive dim %d", dim)
	}
	if stride == 0 {
		return Vector{}, ErrStride.New("zero stride")
	}
	last := offset + (dim-1)*stride
	if offset < 0 || offset >= v.dim || last < 0 || last >= v.dim {
		return Vector{}, ErrBounds.New("subvector (offset %d, dim %d, stride %d) outside vector of dim %d",
			offset, dim, stride, v.dim)
	}
	return Vector{
		region: v.region,
		dim:    dim,
		stride: stride * v.stride,
		offset: v.offset + offset*v.stride,
	}, nil
}

// Dim returns the number of elements in the view.
func (v Vector) Dim() int { return v.dim }

// Region returns the owning region.
func (v Vector) Region() *Region { return v.region }

func (v Vector) at(i int) int64 { return v.region.data[v.offset+i*v.stride] }

func (v Vector) setAt(i int, m int64) { v.region.data[v.offset+i*v.stride] = m }

// spans reports whether the view covers every element of its region, in
// which case set-style operations may pick the region's exponent freely.
func (v Vector) spans() bool { return v.dim == len(v.region.data) }

func (v Vector) checkIndex(i int) {
	if i < 0 || i >= v.dim {
		panic(ErrBounds.New("index %d outside vector of dim %d", i, v.dim))
	}
}

// Overlaps conservatively reports whether the two views may share memory.
// It only compares index intervals within a shared region, so false
// positives are possible for interleaved strides. Views from different
// regions never overlap by contract.
func (v Vector) Overlaps(other Vector) bool {
	if v.region != other.region {
		return false
	}
	lo1, hi1 := v.span()
	lo2, hi2 := other.span()
	return lo1 <= hi2 && lo2 <= hi1
}

func (v Vector) span() (lo, hi int) {
	lo, hi = v.offset, v.offset+(v.dim-1)*v.stride
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// Zero clears the viewed mantissas, leaving the region's exponent and size
// untouched. Meant as a fill step between operations; use Region.Zero to
// reset bookkeeping too.
func (v Vector) Zero() {
	for i := 0; i < v.dim; i++ {
		v.setAt(i, 0)
	}
}

// FixSize tightens the region's bound from this view's elements. A view
// spanning its whole region sets the exact bound; otherwise the bound never
// shrinks, since unseen elements may be the worst case.
func (v Vector) FixSize() {
	guess := v.region.size
	if guess > 63 {
		guess = 63
	}
	size := 0
	for i := 0; i < v.dim; i++ {
		s := mu.FindSize(mu.Abs64(v.at(i)), guess)
		if s > size {
			size = s
		}
		guess = s
		if guess > 63 {
			guess = 63
		}
	}
	if v.spans() || size > v.region.size {
		v.region.size = size
	}
}

// Float64At returns element i as a float, for diagnostics and testing.
func (v Vector) Float64At(i int) float64 {
	v.checkIndex(i)
	return math.Ldexp(float64(v.at(i)), v.region.exponent)
}

func checkBinary(a, b Vector) {
	if a.dim != b.dim {
		panic(ErrDimension.New("dims %d and %d differ", a.dim, b.dim))
	}
	if a.region == b.region {
		panic(ErrRegionConflict.New("operands share a region"))
	}
}

// CopyFrom copies src's values into dst, realigning exponents as needed: the
// destination region's exponent is not assumed compatible. The vectors must
// have equal dimension and belong to different regions. The destination
// bound is updated to the worst case, not recomputed per element.
func (dst Vector) CopyFrom(src Vector) {
	checkBinary(dst, src)
	rd, rs := dst.region, src.region
	if dst.spans() {
		for i := 0; i < dst.dim; i++ {
			dst.setAt(i, src.at(i))
		}
		rd.exponent = rs.exponent
		rd.size = rs.size
		return
	}
	shift := rd.admit(rs.exponent, rs.size, 0)
	for i := 0; i < dst.dim; i++ {
		dst.setAt(i, shiftMant(src.at(i), shift))
	}
	if s := alignedSize(rs.size, shift); s > rd.size {
		rd.size = s
	}
}

// fitProduct shrinks a and, if necessary, x's region until their product
// stays within the 62-bit budget, alternating single-bit right shifts onto
// whichever operand is currently larger to split the precision loss.
func fitProduct(a Scalar, x Vector) Scalar {
	for a.size+x.region.size > 62 {
		if a.size >= x.region.size {
			a = a.ShiftRight(1)
		} else {
			x.region.ShiftRight(1)
		}
	}
	return a
}

// AddScaled performs y += a*x (saxpy). x and y must have equal dimension and
// live in different regions. The destination keeps its exponent when it has
// headroom for the products plus one growth bit; otherwise it is shifted
// right first, accepting the precision loss.
func (y Vector) AddScaled(a Scalar, x Vector) {
	checkBinary(y, x)
	a = fitProduct(a, x)
	pe := a.exponent + x.region.exponent
	psize := a.size + x.region.size
	shift := y.region.admit(pe, psize, 1)
	for i := 0; i < y.dim; i++ {
		y.setAt(i, y.at(i)+shiftMant(a.data*x.at(i), shift))
	}
	size := alignedSize(psize, shift)
	if y.region.size > size {
		size = y.region.size
	}
	if size < 63 {
		size++
	}
	y.region.size = size
}

// SetScaled performs y = a*x. x and y must have equal dimension and live in
// different regions. A destination spanning its region adopts the product's
// natural exponent; otherwise the products are realigned to coexist with the
// region's other elements.
func (y Vector) SetScaled(a Scalar, x Vector) {
	checkBinary(y, x)
	a = fitProduct(a, x)
	pe := a.exponent + x.region.exponent
	psize := a.size + x.region.size
	if y.spans() {
		for i := 0; i < y.dim; i++ {
			y.setAt(i, a.data*x.at(i))
		}
		y.region.exponent = pe
		y.region.size = psize
		return
	}
	shift := y.region.admit(pe, psize, 0)
	for i := 0; i < y.dim; i++ {
		y.setAt(i, shiftMant(a.data*x.at(i), shift))
	}
	if s := alignedSize(psize, shift); s > y.region.size {
		y.region.size = s
	}
}

// AddScalar performs y[i] += a for every element of y.
func (y Vector) AddScalar(a Scalar) {
	shift := y.region.admit(a.exponent, a.size, 1)
	am := shiftMant(a.data, shift)
	for i := 0; i < y.dim; i++ {
		y.setAt(i, y.at(i)+am)
	}
	size := alignedSize(a.size, shift)
	if y.region.size > size {
		size = y.region.size
	}
	if size < 63 {
		size++
	}
	y.region.size = size
}

// SetScalar sets every element of y to a.
func (y Vector) SetScalar(a Scalar) {
	if y.spans() {
		for i := 0; i < y.dim; i++ {
			y.setAt(i, a.data)
		}
		y.region.exponent = a.exponent
		y.region.size = a.size
		return
	}
	shift := y.region.admit(a.exponent, a.size, 0)
	am := shiftMant(a.data, shift)
	for i := 0; i < y.dim; i++ {
		y.setAt(i, am)
	}
	if s := alignedSize(a.size, shift); s > y.region.size {
		y.region.size = s
	}
}

// ScalarAt extracts element i as a self-contained scalar with an exact size.
func (v Vector) ScalarAt(i int) Scalar {
	v.checkIndex(i)
	d := v.at(i)
	guess := v.region.size
	if guess > 63 {
		guess = 63
	}
	return Scalar{data: d, exponent: v.region.exponent, size: mu.FindSize(mu.Abs64(d), guess)}
}

// SetScalarAt stores s into element i, shifting between s's exponent and the
// region's as needed. Setting one element may grow the region's bound or
// renormalize the region.
func (v Vector) SetScalarAt(i int, s Scalar) {
	v.checkIndex(i)
	shift := v.region.admit(s.exponent, s.size, 0)
	v.setAt(i, shiftMant(s.data, shift))
	if as := alignedSize(s.size, shift); as > v.region.size {
		v.region.size = as
	}
}

// SetIntAt sets element i to an integer value. This is not the same as
// writing the raw mantissa, because of the region's exponent. sizeHint in
// [0, 63] is the caller's best guess at the value's size.
func (v Vector) SetIntAt(i int, value int64, sizeHint int) {
	checkSizeHint(sizeHint)
	v.SetScalarAt(i, Scalar{data: value, size: mu.FindSize(mu.Abs64(value), sizeHint)})
}

// Dot returns the dot product a·b as a self-contained scalar. The vectors
// must have equal dimension and live in different regions. Products are
// accumulated exactly in 128 bits and folded back to at most 62 mantissa
// bits with a compensating exponent, so the only precision loss is the final
// fold. If even the 128-bit worst case could overflow, the larger-size
// region is pre-shifted right.
func (a Vector) Dot(b Vector) Scalar {
	checkBinary(a, b)
	ra, rb := a.region, b.region
	if ex := ra.size + rb.size + mu.CeilLog2(a.dim) - 126; ex > 0 {
		if ra.size >= rb.size {
			ra.ShiftRight(ex)
		} else {
			rb.ShiftRight(ex)
		}
	}
	var hi int64
	var lo uint64
	for i := 0; i < a.dim; i++ {
		phi, plo := mu.Mul128(a.at(i), b.at(i))
		hi, lo = mu.Add128(hi, lo, phi, plo)
	}
	return foldAcc(hi, lo, ra.exponent+rb.exponent)
}

// foldAcc turns a 128-bit accumulator at the given exponent into a scalar
// with at most 62 mantissa bits.
func foldAcc(hi int64, lo uint64, exponent int) Scalar {
	length := mu.Len128(hi, lo)
	shift := length - 62
	if shift < 0 {
		shift = 0
	}
	hi, lo = mu.Rsh128(hi, lo, shift)
	m := int64(lo)
	return Scalar{data: m, exponent: exponent + shift, size: mu.FindSize(mu.Abs64(m), length-shift)}
}
