// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

// pgdRow applies npass proximal-gradient updates to one row vector 𝐯.
//
// Per pass:
//   - ascent step on the likelihood term: 𝐯 += 𝛼 ∑ xᵢⱼ/(F‌ⱼᵀ𝐯) F‌ⱼ
//   - additive proximal shift for the expectation and L1 terms:
//     𝐯 += shift, where shift = -𝛼(F̄ + λ₁) was pre-scaled by the caller
//   - closed-form L2 proximal shrinkage: 𝐯 *= 1/(1 + 2λ₂𝛼)
//   - projection onto the non-negative orthant
//
// The regularizers never enter the gradient here: they are handled entirely
// by the closed-form proximal correction, which is what keeps a pass at one
// sparse gradient accumulation per row.
func pgdRow(v []float64, c *rowCtx, shift []float64, cnstDiv, step float64, npass int, grad []float64) {
	k := len(v)
	for pass := 0; pass < npass; pass++ {
		dzero(grad[:k])
		for p, x := range c.vals {
			j := c.idx[p]
			daxpy(k, x/c.dot(v, j), c.f.Row(j), grad)
		}
		daxpy(k, step, grad, v)
		daxpy(k, one, shift, v)
		dscal(k, cnstDiv, v)
		dclamp(v)
	}
}
