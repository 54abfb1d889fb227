// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fixmath implements deterministic fixed-point arithmetic over
// 64-bit integer mantissas paired with power-of-two exponents. A Region owns
// a buffer of mantissas that all share one exponent and one magnitude bound;
// Vector, Matrix, and Elem are non-owning strided views into a region, and
// Scalar is a self-contained value with its own exponent. Operations
// renormalize (shift mantissas while compensating the exponent) before
// combining quantities, so 64-bit integer arithmetic never silently
// overflows and results are bit-exact across platforms.
//
// The package is a numeric kernel: it never allocates, has no recoverable
// error channel on the hot path, and treats contract violations (shape
// mismatches, out-of-bounds views, zero divisors) as programming errors
// that panic with a classified error. Regions are not safe for concurrent
// mutation.
package fixmath
