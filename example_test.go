// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixmath_test

import (
	"fmt"

	fixmath "github.com/avdva/fixmath"
)

func ExampleVector_Dot() {
	ra, _ := fixmath.NewRegion([]int64{1, 2, 3}, 0, 0)
	rb, _ := fixmath.NewRegion([]int64{4, 5, 6}, 0, 0)
	a, _ := fixmath.NewVector(ra, 0, 3, 1)
	b, _ := fixmath.NewVector(rb, 0, 3, 1)
	d := a.Dot(b)
	fmt.Println(d.Mant(), d.Exponent(), d.Size())
	// Output:
	// 32 0 6
}

func ExampleScalar_Mul() {
	a := fixmath.ScalarFromMantAndExp(3, -2) // 0.75
	b := fixmath.ScalarFromInt(6)
	fmt.Println(a.Mul(b))
	// Output:
	// 4.5
}

func ExampleVector_AddScaled() {
	ry, _ := fixmath.NewRegion([]int64{1, 2, 3}, 0, 0)
	rx, _ := fixmath.NewRegion([]int64{4, 5, 6}, 0, 0)
	y, _ := fixmath.NewVector(ry, 0, 3, 1)
	x, _ := fixmath.NewVector(rx, 0, 3, 1)
	y.AddScaled(fixmath.ScalarFromInt(2), x)
	fmt.Println(y.Float64At(0), y.Float64At(1), y.Float64At(2))
	// Output:
	// 9 12 15
}
