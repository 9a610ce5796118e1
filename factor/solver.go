// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

// rowSolver is the per-row update capability selected once per run:
// proximal gradient or conjugate gradient. The alternation invokes it
// uniformly and never branches on the selection again.
type rowSolver interface {
	// scratchLen is the per-worker scratch requirement for factor dimension k.
	scratchLen(k int) int
	// prepare post-processes the freshly summed regularization vector for
	// the upcoming sweep.
	prepare(cnstSum []float64, step float64)
	// solve updates one row vector in place.
	solve(v []float64, ctx *rowCtx, obj Objective, scratch []float64, cnstDiv, step float64)
	// decay returns the step size for the next outer iteration.
	decay(step float64) float64
}

// pgdSolver runs npass proximal-gradient passes per row.
type pgdSolver struct {
	npass int
}

func (s pgdSolver) scratchLen(k int) int { return k }

// The proximal shift is applied with a single axpy per pass, so the signed
// regularization vector is pre-scaled by -step here.
func (s pgdSolver) prepare(cnstSum []float64, step float64) {
	dscal(len(cnstSum), -step, cnstSum)
}

func (s pgdSolver) solve(v []float64, ctx *rowCtx, _ Objective, scratch []float64, cnstDiv, step float64) {
	pgdRow(v, ctx, ctx.fsum, cnstDiv, step, s.npass, scratch)
}

func (s pgdSolver) decay(step float64) float64 { return step * half }

// cgSolver delegates each row to the injected minimizer.
type cgSolver struct {
	m     Minimizer
	npass int
}

func (s cgSolver) scratchLen(k int) int { return 4 * k }

func (s cgSolver) prepare([]float64, float64) {}

func (s cgSolver) solve(v []float64, _ *rowCtx, obj Objective, scratch []float64, _, _ float64) {
	s.m.Minimize(obj, v, scratch, s.npass, fitTol)
	// The minimizer is expected to stay feasible, but floating-point
	// drift near zero must not leak negative entries into the factors.
	dclamp(v)
}

func (s cgSolver) decay(step float64) float64 { return step }
