// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

import "gonum.org/v1/gonum/blas/blas64"

// Unit-stride shims over gonum blas64.
// The native gonum implementation runs single-threaded, which the
// row-parallel sweeps rely on: one lane of concurrency per row,
// nothing nested inside the primitives.

func vec(n int, x []float64) blas64.Vector {
	return blas64.Vector{N: n, Data: x, Inc: 1}
}

// ddot computes 𝐱ᵀ𝐲.
func ddot(n int, x, y []float64) float64 {
	if n <= 0 {
		return zero
	}
	return blas64.Dot(vec(n, x), vec(n, y))
}

// daxpy performs 𝐲 += 𝑎𝐱.
func daxpy(n int, a float64, x, y []float64) {
	if n <= 0 || a == zero {
		return
	}
	blas64.Axpy(a, vec(n, x), vec(n, y))
}

// dscal performs 𝐱 *= 𝑎.
func dscal(n int, a float64, x []float64) {
	if n <= 0 {
		return
	}
	blas64.Scal(a, vec(n, x))
}

// dzero fills vector x with zero.
func dzero(x []float64) {
	for i := range x {
		x[i] = zero
	}
}

// dclamp projects vector x onto the non-negative orthant.
func dclamp(x []float64) {
	for i, v := range x {
		if v < zero {
			x[i] = zero
		}
	}
}
