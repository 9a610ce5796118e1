// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nncg

import "gonum.org/v1/gonum/blas/blas64"

func dot(x, y []float64) float64 {
	n := len(x)
	return blas64.Dot(
		blas64.Vector{N: n, Data: x, Inc: 1},
		blas64.Vector{N: n, Data: y, Inc: 1})
}

// project zeroes the gradient components that point out of the feasible
// region from an active bound: when 𝐱ᵢ = 0 and 𝐠ᵢ > 0, the step -𝐠ᵢ would
// leave the orthant and the component carries no usable descent.
func project(g, x []float64) {
	for i, v := range x {
		if v <= zero && g[i] > zero {
			g[i] = zero
		}
	}
}

func norminf(g []float64) (m float64) {
	for _, v := range g {
		if v < zero {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return
}

// solve runs the projected Polak-Ribière CG loop.
//
// The direction is 𝐝ᵏ = -𝐠ᵏ + 𝛃𝐝ᵏ⁻¹ with the PR+ coefficient
// 𝛃 = 𝚖𝚊𝚡[0, 𝐠ᵏᵀ(𝐠ᵏ-𝐠ᵏ⁻¹)/𝐠ᵏ⁻¹ᵀ𝐠ᵏ⁻¹] over projected gradients,
// restarted to steepest descent whenever 𝐝ᵏᵀ𝐠ᵏ ≥ 0.
// Each step backtracks along the projection arc 𝐱(𝛂) = 𝚖𝚊𝚡[𝐱 + 𝛂𝐝, 0]
// until the Armijo condition 𝒇(𝐱(𝛂)) ≤ 𝒇(𝐱) + η 𝐠ᵀ(𝐱(𝛂)-𝐱) holds.
func solve(spec *Problem, x []float64, w *Workspace) (res Result) {
	obj, stop, line := &spec.Object, &spec.Stop, &spec.Line
	g, g0, d, xt := w.g, w.g0, w.d, w.xt

	for i, v := range x {
		if v < zero {
			x[i] = zero
		}
	}

	f := obj.Func(x)
	res.NumEval = 1
	obj.Grad(x, g)
	project(g, x)

	res.Status = ExceedMaxIter
	for iter := 1; iter <= stop.MaxIterations; iter++ {
		res.NumIter = iter

		if norminf(g) <= stop.Tolerance {
			res.Status = Converged
			break
		}

		if iter == 1 {
			for i, v := range g {
				d[i] = -v
			}
		} else {
			var beta float64
			if denom := dot(g0, g0); denom > zero {
				beta = (dot(g, g) - dot(g, g0)) / denom
				if beta < zero {
					beta = zero
				}
			}
			for i, v := range g {
				d[i] = -v + beta*d[i]
			}
			if dot(d, g) >= zero {
				// Not a descent direction, restart from steepest descent.
				for i, v := range g {
					d[i] = -v
				}
			}
		}

		alpha, accepted := one, false
		var ft float64
		for ls := 0; ls < line.MaxSteps; ls++ {
			var dec float64
			for i, v := range x {
				t := v + alpha*d[i]
				if t < zero {
					t = zero
				}
				xt[i] = t
				dec += g[i] * (t - v)
			}
			if res.NumEval >= stop.MaxEvaluations {
				res.Status = ExceedMaxEval
				res.F = f
				return
			}
			ft = obj.Func(xt)
			res.NumEval++
			if ft <= f+line.Armijo*dec {
				accepted = true
				break
			}
			alpha *= line.Shrink
		}
		if !accepted {
			res.Status = SearchNotDescent
			break
		}

		copy(x, xt)
		f = ft
		copy(g0, g)
		obj.Grad(x, g)
		project(g, x)
	}

	res.F = f
	return
}
