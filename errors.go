// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixmath

import "github.com/zeebo/errs"

// Contract violations are classified by kind. Constructors return these
// errors; operations have no error channel and panic with them instead.
var (
	// ErrDimension is returned for non-positive or mismatched dimensions.
	ErrDimension = errs.Class("fixmath: dimension mismatch")
	// ErrBounds is returned when a view addresses memory outside its region.
	ErrBounds = errs.Class("fixmath: view out of bounds")
	// ErrStride is returned for zero vector strides and non-unit matrix
	// column strides.
	ErrStride = errs.Class("fixmath: invalid stride")
	// ErrShift is raised for negative shift amounts.
	ErrShift = errs.Class("fixmath: invalid shift")
	// ErrSizeHint is raised for size hints outside [0, 63].
	ErrSizeHint = errs.Class("fixmath: size hint out of range")
	// ErrZeroDivide is raised when dividing by, or inverting, a zero scalar.
	ErrZeroDivide = errs.Class("fixmath: division by zero")
	// ErrRegionConflict is raised when operands of a binary operation share
	// a region.
	ErrRegionConflict = errs.Class("fixmath: region conflict")
)

func checkShift(k int) {
	if k < 0 {
		panic(ErrShift.New("negative shift %d", k))
	}
}

func checkSizeHint(h int) {
	if h < 0 || h > 63 {
		panic(ErrSizeHint.New("size hint %d outside [0, 63]", h))
	}
}
