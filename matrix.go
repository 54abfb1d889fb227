// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixmath

import (
	mu "github.com/avdva/fixmath/internal/mathutil"
)

// Matrix is a non-owning row-major view into a region's buffer: element
// (r, c) lives at buffer index offset + r*rowStride + c*colStride. Only unit
// column strides are supported; this is a hard constraint of the design, not
// a general-stride abstraction.
type Matrix struct {
	region    *Region
	rows      int
	cols      int
	rowStride int
	colStride int
	offset    int
}

// NewMatrix creates a rows x cols view starting at offset. The column stride
// must be exactly 1 and the row stride at least cols; every addressed
// element must lie inside the region's buffer.
func NewMatrix(r *Region, offset, rows, cols, rowStride, colStride int) (Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return Matrix{}, ErrDimension.New("non-positive shape %dx%d", rows, cols)
	}
	if colStride != 1 {
		return Matrix{}, ErrStride.New("column stride %d, only 1 is supported", colStride)
	}
	if rowStride < cols*colStride {
		return Matrix{}, ErrStride.New("row stride %d shorter than a row of %d columns", rowStride, cols)
	}
	last := offset + (rows-1)*rowStride + (cols-1)*colStride
	if offset < 0 || last >= len(r.data) {
		return Matrix{}, ErrBounds.New("matrix %dx%d at offset %d outside region of dim %d",
			rows, cols, offset, len(r.data))
	}
	return Matrix{region: r, rows: rows, cols: cols, rowStride: rowStride, colStride: colStride, offset: offset}, nil
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// Region returns the owning region.
func (m Matrix) Region() *Region { return m.region }

// Row returns a vector view of row i.
func (m Matrix) Row(i int) Vector {
	if i < 0 || i >= m.rows {
		panic(ErrBounds.New("row %d outside matrix of %d rows", i, m.rows))
	}
	return Vector{region: m.region, dim: m.cols, stride: m.colStride, offset: m.offset + i*m.rowStride}
}

// rowAcc accumulates row i of m against x exactly in 128 bits.
func (m Matrix) rowAcc(i int, x Vector) (int64, uint64) {
	var hi int64
	var lo uint64
	base := m.offset + i*m.rowStride
	for c := 0; c < m.cols; c++ {
		phi, plo := mu.Mul128(m.region.data[base+c*m.colStride], x.at(c))
		hi, lo = mu.Add128(hi, lo, phi, plo)
	}
	return hi, lo
}

// MulVec computes y = M·x. y must not share a region with x or m, and x and
// m must come from different regions too. Every output element lands at one
// shared exponent, chosen so the largest-magnitude row result fits in the
// mantissa budget; rows with smaller natural magnitude simply occupy fewer
// bits. Row products are evaluated twice, once to find the widest row and
// once to store the realigned results, keeping the operation allocation
// free.
func (m Matrix) MulVec(x, y Vector) {
	if m.cols != x.dim {
		panic(ErrDimension.New("matrix cols %d and x dim %d differ", m.cols, x.dim))
	}
	if m.rows != y.dim {
		panic(ErrDimension.New("matrix rows %d and y dim %d differ", m.rows, y.dim))
	}
	if y.region == x.region || y.region == m.region {
		panic(ErrRegionConflict.New("y shares a region with an operand"))
	}
	if x.region == m.region {
		panic(ErrRegionConflict.New("x shares a region with m"))
	}
	rm, rx := m.region, x.region
	if ex := rm.size + rx.size + mu.CeilLog2(m.cols) - 126; ex > 0 {
		if rm.size >= rx.size {
			rm.ShiftRight(ex)
		} else {
			rx.ShiftRight(ex)
		}
	}
	maxLen := 0
	for i := 0; i < m.rows; i++ {
		if l := mu.Len128(m.rowAcc(i, x)); l > maxLen {
			maxLen = l
		}
	}
	shift := maxLen - 62
	if shift < 0 {
		shift = 0
	}
	e0 := rm.exponent + rx.exponent + shift
	// folding a negative accumulator rounds toward -inf, so the realized
	// bound can exceed maxLen-shift by one; track the true maximum instead
	msize := maxLen - shift
	if msize > 62 {
		msize = 62
	}
	if y.spans() {
		size := 0
		for i := 0; i < m.rows; i++ {
			hi, lo := m.rowAcc(i, x)
			_, lo = mu.Rsh128(hi, lo, shift)
			y.setAt(i, int64(lo))
			if s := mu.FindSize(mu.Abs64(int64(lo)), msize); s > size {
				size = s
			}
		}
		y.region.exponent = e0
		y.region.size = size
		return
	}
	s2 := y.region.admit(e0, msize+1, 0)
	for i := 0; i < m.rows; i++ {
		hi, lo := m.rowAcc(i, x)
		_, lo = mu.Rsh128(hi, lo, shift)
		y.setAt(i, shiftMant(int64(lo), s2))
	}
	if as := alignedSize(msize+1, s2); as > y.region.size {
		y.region.size = as
	}
}
