// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewElem(t *testing.T) {
	a := assert.New(t)
	r, err := NewRegion([]int64{1, 2}, 0, 0)
	a.NoError(err)

	e, err := NewElem(r, 1)
	if a.NoError(err) {
		a.Equal(2.0, e.Float64())
	}
	_, err = NewElem(r, 2)
	a.True(ErrBounds.Has(err))
	_, err = NewElem(r, -1)
	a.True(ErrBounds.Has(err))
}

func TestElemScalar(t *testing.T) {
	a := assert.New(t)
	r, err := NewRegion([]int64{8, 16}, -2, 0)
	a.NoError(err)
	e, err := NewElem(r, 0)
	a.NoError(err)

	s := e.Scalar()
	a.Equal(int64(8), s.Mant())
	a.Equal(-2, s.Exponent())
	a.Equal(4, s.Size()) // exact, tighter than the region bound
	a.Equal(2.0, s.Float64())
}

func TestElemSetScalar(t *testing.T) {
	a := assert.New(t)
	data := []int64{8, 16}
	r, err := NewRegion(data, -2, 0)
	a.NoError(err)
	e, err := NewElem(r, 0)
	a.NoError(err)

	// the scalar's integer exponent is realigned to the region's quarters
	e.SetScalar(ScalarFromInt(3))
	a.Equal([]int64{12, 16}, data)
	a.Equal(-2, r.Exponent())
	a.Equal(3.0, e.Float64())
	requireSizeBound(t, data, r)

	// round trip through Scalar is exact
	s := e.Scalar()
	e.SetScalar(s)
	a.Equal(int64(12), data[0])
}
