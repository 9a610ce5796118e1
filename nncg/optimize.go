// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nncg minimizes a smooth convex function over the non-negative
// orthant with a projected Polak-Ribière conjugate-gradient iteration and a
// backtracking Armijo line search along the projection arc.
//
// minimize 𝒇(𝐱) subject to 𝐱 ≥ 0
//
// The solver keeps its whole state in a caller-provided workspace of 4n
// entries, so it can run once per task inside a parallel sweep without
// touching the heap.
package nncg

import (
	"errors"
	"math"
)

// Objective evaluates the function and its gradient separately:
// the line search only needs function values, so gradient work is
// spent once per accepted step.
type Objective struct {
	Func func(x []float64) float64
	Grad func(x, g []float64)
}

// Termination specifies the stopping criteria.
type Termination struct {
	// The iteration stops when ‖𝗉𝗋𝗈𝗃 𝜵𝒇(𝐱)‖∞ drops below Tolerance.
	Tolerance float64
	// The iteration stops when the number of iterations exceeds limit.
	MaxIterations int
	// The iteration stops when the number of function evaluations
	// exceeds limit. Defaults to 100.
	MaxEvaluations int
}

// LineSearch specifies the backtracking options.
type LineSearch struct {
	// Step shrink factor per backtrack, 0 < Shrink < 1. Defaults to 0.25.
	Shrink float64
	// Armijo sufficient-decrease constant, 0 < Armijo < ½. Defaults to 0.01.
	Armijo float64
	// Maximum number of backtracks per iteration. Defaults to 20.
	MaxSteps int
}

// Problem specifies the problem for the non-negative CG optimizer.
type Problem struct {
	N      int         // The problem dimension
	Object Objective   // Objective function and gradient
	Stop   Termination // Stop condition
	Line   LineSearch  // Line-search option
}

// Result contains the final state of one optimization run.
type Result struct {
	Status  Status  // Why the solver stopped.
	F       float64 // Final function value.
	NumIter int     // Number of iterations performed.
	NumEval int     // Number of function evaluations.
}

// Optimizer implemented with projected non-negative conjugate gradient.
type Optimizer struct {
	spec Problem
}

// Workspace carves the 4n scratch of one solver instance: current and
// previous projected gradients, search direction and trial point.
// To avoid race conditions, separate workspaces are needed per goroutine,
// but multiple workspaces may share one optimizer.
type Workspace struct {
	g, g0, d, xt []float64
}

// New creates a new optimizer for the given problem.
func (p *Problem) New() (optimizer *Optimizer, err error) {
	spec := *p
	normalize(&spec.Stop, &spec.Line)
	switch {
	case spec.N <= 0:
		err = errors.New("problem dimension must greater than 0")
	case spec.Object.Func == nil || spec.Object.Grad == nil:
		err = errors.New("objective function and gradient are required")
	case spec.Stop.Tolerance < zero || math.IsNaN(spec.Stop.Tolerance):
		err = errors.New("tolerance must not less than 0")
	case spec.Stop.MaxIterations <= 0:
		err = errors.New("max iteration must greater than 0")
	case spec.Line.Shrink <= zero || spec.Line.Shrink >= one:
		err = errors.New("line search shrink must lie in (0,1)")
	case spec.Line.Armijo <= zero || spec.Line.Armijo >= 0.5:
		err = errors.New("line search armijo constant must lie in (0,½)")
	}
	if err != nil {
		return
	}
	optimizer = &Optimizer{spec: spec}
	return
}

func normalize(stop *Termination, line *LineSearch) {
	if stop.MaxEvaluations <= 0 {
		stop.MaxEvaluations = 100
	}
	if line.Shrink == zero {
		line.Shrink = 0.25
	}
	if line.Armijo == zero {
		line.Armijo = 0.01
	}
	if line.MaxSteps <= 0 {
		line.MaxSteps = 20
	}
}

// Init allocates a fresh workspace for the optimizer.
func (o *Optimizer) Init() *Workspace {
	w, _ := o.Attach(make([]float64, 4*o.spec.N))
	return w
}

// Attach wraps a caller-provided buffer of at least 4n entries as a
// workspace, so per-task callers can reuse pre-allocated scratch.
func (o *Optimizer) Attach(buf []float64) (*Workspace, error) {
	n := o.spec.N
	if len(buf) < 4*n {
		return nil, errors.New("scratch buffer must hold at least 4n entries")
	}
	return &Workspace{
		g:  buf[0*n : 1*n],
		g0: buf[1*n : 2*n],
		d:  buf[2*n : 3*n],
		xt: buf[3*n : 4*n],
	}, nil
}

// Fit optimizes x in place using workspace w.
func (o *Optimizer) Fit(x []float64, w *Workspace) Result {
	if len(x) != o.spec.N {
		panic("initial x dimension not match spec")
	}
	return solve(&o.spec, x, w)
}

// Minimize is the stateless entry: one solver run over x with caller
// scratch buf (≥ 4·len(x) entries), for callers that embed the solver
// inside a per-task loop. Zero stop/line fields take the defaults.
func Minimize(obj Objective, x, buf []float64, stop Termination, line LineSearch) Result {
	normalize(&stop, &line)
	spec := Problem{N: len(x), Object: obj, Stop: stop, Line: line}
	n := spec.N
	w := Workspace{
		g:  buf[0*n : 1*n],
		g0: buf[1*n : 2*n],
		d:  buf[2*n : 3*n],
		xt: buf[3*n : 4*n],
	}
	return solve(&spec, x, &w)
}
