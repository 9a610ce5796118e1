// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

import "math"

// rowCtx is the fixed data of one row sub-problem: the opposing factor
// matrix F, its L1-shifted column sums, and the row's observed entries.
// Each worker owns one rowCtx and repoints vals/idx before every row, so
// the objective closures never allocate inside a sweep.
//
// The row objective under the Poisson model is
//
//	𝒇(𝐯) = F̄ᵀ𝐯 + λ₂‖𝐯‖² - ∑ xᵢⱼ 𝗅𝗈𝗀(F‌ⱼᵀ𝐯)
//
// where F̄ is the column-sum vector of F carrying the expectation term over
// all (observed and unobserved) entries, plus the optional L1 shift, and the
// log sum runs over the stored entries only. Its gradient is
//
//	𝜵𝒇(𝐯) = F̄ + 2λ₂𝐯 - ∑ xᵢⱼ/(F‌ⱼᵀ𝐯) F‌ⱼ
type rowCtx struct {
	f    *FactorMatrix
	fsum []float64
	vals []float64
	idx  []int
	l2   float64
}

// dot returns F‌ⱼᵀ𝐯 clamped to epsDot so the log/division stays finite
// when a row touches the boundary of the orthant.
func (c *rowCtx) dot(v []float64, j int) float64 {
	d := ddot(len(v), c.f.Row(j), v)
	if d < epsDot {
		d = epsDot
	}
	return d
}

func (c *rowCtx) value(v []float64) float64 {
	k := len(v)
	out := ddot(k, c.fsum, v) + c.l2*ddot(k, v, v)
	for p, x := range c.vals {
		out -= x * math.Log(c.dot(v, c.idx[p]))
	}
	return out
}

func (c *rowCtx) gradient(v, g []float64) {
	k := len(v)
	copy(g[:k], c.fsum)
	daxpy(k, 2*c.l2, v, g)
	for p, x := range c.vals {
		j := c.idx[p]
		daxpy(k, -x/c.dot(v, j), c.f.Row(j), g)
	}
}

// Loss returns the regularized Poisson negative log-likelihood of the whole
// factorization over the observed entries of the row-grouped view:
// the expectation term ∑ᵢⱼ(ABᵀ)ᵢⱼ collapses to Āᵀ·B̄ with the two
// column-sum vectors.
func Loss(a, b *FactorMatrix, xr *SparseView, l2Reg, l1Reg float64) float64 {
	k := a.Cols
	asum := make([]float64, k)
	bsum := make([]float64, k)
	sumByCols(asum, a, nil, 1)
	sumByCols(bsum, b, nil, 1)

	out := ddot(k, asum, bsum)
	for i := 0; i < a.Rows; i++ {
		ai := a.Row(i)
		vals, idx := xr.Row(i)
		for p, x := range vals {
			d := ddot(k, ai, b.Row(idx[p]))
			if d < epsDot {
				d = epsDot
			}
			out -= x * math.Log(d)
		}
		out += l2Reg * ddot(k, ai, ai)
	}
	for j := 0; j < b.Rows; j++ {
		bj := b.Row(j)
		out += l2Reg * ddot(k, bj, bj)
	}
	if l1Reg > zero {
		var l1 float64
		for _, v := range a.Data {
			l1 += v
		}
		for _, v := range b.Data {
			l1 += v
		}
		out += l1Reg * l1
	}
	return out
}
