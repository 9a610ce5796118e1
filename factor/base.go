// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

const (
	zero = 0.0
	one  = 1.0
	half = 0.5
)

const (
	// epsDot bounds the denominator F‌ⱼ·𝐯 of the likelihood term away from zero.
	// The Poisson model assumes F‌ⱼ·𝐯 > 0 wherever xᵢⱼ > 0, but the orthant
	// projection can park a row exactly on a face where that dot product
	// vanishes, so the log/division would otherwise produce ±Inf or NaN.
	epsDot = 1e-12

	// fitTol is the inner conjugate-gradient tolerance during alternation.
	fitTol = 1e-3
	// rowTol and rowIter are the looser budget used when factorizing a
	// single row against already-trained factors.
	rowTol  = 1e-1
	rowIter = 200
)
