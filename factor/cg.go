// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

import "github.com/curioloop/poismf/nncg"

// Objective pairs a smooth function with its gradient.
// Both closures share whatever row state the caller repoints between calls.
type Objective struct {
	Func func(x []float64) float64
	Grad func(x, g []float64)
}

// Minimizer improves x in place over the non-negative orthant.
// The contract is the one the conjugate-gradient row solver relies on:
// given an objective/gradient pair, a feasible starting point, an iteration
// budget and a tolerance, leave in x a point with a non-increasing objective
// value, using only the caller-provided scratch (4k entries) for workspace.
//
// The optimizer treats the minimizer as an opaque strategy; any
// implementation satisfying this contract can replace the default.
type Minimizer interface {
	Minimize(obj Objective, x, scratch []float64, maxIter int, tol float64)
}

// cgMinimizer is the default Minimizer backed by the nncg package.
type cgMinimizer struct{}

func (cgMinimizer) Minimize(obj Objective, x, scratch []float64, maxIter int, tol float64) {
	nncg.Minimize(
		nncg.Objective{Func: obj.Func, Grad: obj.Grad},
		x, scratch,
		nncg.Termination{Tolerance: tol, MaxIterations: maxIter},
		nncg.LineSearch{})
}

