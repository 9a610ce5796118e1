// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nncg

import (
	"math"
	"testing"

	"github.com/curioloop/poismf/numdiff"
)

func almostEqual(x, want []float64, tol float64) bool {
	for i := range x {
		if math.Abs(x[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

// Quadratic bowl ‖𝐱 - 𝐜‖² with 𝐜 = (1,-2,3): the orthant-constrained
// minimum sits on the boundary at (1,0,3).
func TestQuadraticBowl(t *testing.T) {

	c := []float64{1, -2, 3}
	obj := Objective{
		Func: func(x []float64) float64 {
			var f float64
			for i := range x {
				f += (x[i] - c[i]) * (x[i] - c[i])
			}
			return f
		},
		Grad: func(x, g []float64) {
			for i := range x {
				g[i] = 2 * (x[i] - c[i])
			}
		},
	}

	p := Problem{
		N:      3,
		Object: obj,
		Stop:   Termination{Tolerance: 1e-6, MaxIterations: 200, MaxEvaluations: 2000},
	}

	o, e := p.New()
	if e != nil {
		panic(e)
	}
	w := o.Init()

	x := []float64{5, 5, 5}
	r := o.Fit(x, w)

	wantX := []float64{1, 0, 3}
	wantF := 4.0

	switch {
	case r.Status != Converged:
		t.Fatalf("TestQuadraticBowl: Not Converge (%v)", r.Status)
	case !almostEqual(x, wantX, 1e-5):
		t.Fatalf("TestQuadraticBowl: Bad Solution %v", x)
	case math.Abs(r.F-wantF) > 1e-5:
		t.Fatalf("TestQuadraticBowl: Bad Objective %v", r.F)
	}
}

func TestBoundaryStart(t *testing.T) {

	// Convex objective with an interior minimum at (0.5, 2),
	// started from the origin with a negative initial point clamped.
	obj := Objective{
		Func: func(x []float64) float64 {
			return (x[0]-0.5)*(x[0]-0.5) + math.Pow(x[1]-2, 4)
		},
		Grad: func(x, g []float64) {
			g[0] = 2 * (x[0] - 0.5)
			g[1] = 4 * math.Pow(x[1]-2, 3)
		},
	}

	p := Problem{
		N:      2,
		Object: obj,
		Stop:   Termination{Tolerance: 1e-5, MaxIterations: 500, MaxEvaluations: 5000},
	}
	o, e := p.New()
	if e != nil {
		panic(e)
	}

	x := []float64{-1, 0}
	f0 := obj.Func([]float64{0, 0}) // after clamping
	r := o.Fit(x, o.Init())

	switch {
	case r.F > f0:
		t.Fatalf("TestBoundaryStart: Objective Increased %v > %v", r.F, f0)
	case x[0] < 0 || x[1] < 0:
		t.Fatalf("TestBoundaryStart: Left Orthant %v", x)
	case math.Abs(x[0]-0.5) > 1e-3:
		t.Fatalf("TestBoundaryStart: Bad Solution %v", x)
	}
}

func TestGradientConsistency(t *testing.T) {

	// The test objectives above must agree with finite differences,
	// otherwise the solver assertions test the wrong function.
	obj := Objective{
		Func: func(x []float64) float64 {
			return (x[0]-0.5)*(x[0]-0.5) + math.Pow(x[1]-2, 4)
		},
		Grad: func(x, g []float64) {
			g[0] = 2 * (x[0] - 0.5)
			g[1] = 4 * math.Pow(x[1]-2, 3)
		},
	}

	x := []float64{1.2, 0.4}
	g := make([]float64, 2)
	d := make([]float64, 2)
	obj.Grad(x, g)
	if err := numdiff.Grad(obj.Func, x, d, numdiff.Central); err != nil {
		t.Fatal(err)
	}
	if !almostEqual(g, d, 1e-6) {
		t.Fatalf("TestGradientConsistency: %v vs %v", g, d)
	}
}

func TestIterationBudget(t *testing.T) {

	obj := Objective{
		Func: func(x []float64) float64 { return (x[0] - 100) * (x[0] - 100) },
		Grad: func(x, g []float64) { g[0] = 2 * (x[0] - 100) },
	}

	p := Problem{
		N:      1,
		Object: obj,
		Stop:   Termination{Tolerance: 1e-12, MaxIterations: 2},
	}
	o, e := p.New()
	if e != nil {
		panic(e)
	}

	x := []float64{0}
	r := o.Fit(x, o.Init())
	if r.Status != ExceedMaxIter || r.NumIter != 2 {
		t.Fatalf("TestIterationBudget: %v after %d iterations", r.Status, r.NumIter)
	}
}

func TestMinimizeStateless(t *testing.T) {

	obj := Objective{
		Func: func(x []float64) float64 { return (x[0] - 2) * (x[0] - 2) },
		Grad: func(x, g []float64) { g[0] = 2 * (x[0] - 2) },
	}

	x := []float64{7}
	buf := make([]float64, 4)
	r := Minimize(obj, x, buf, Termination{Tolerance: 1e-8, MaxIterations: 100}, LineSearch{})
	if r.Status != Converged || math.Abs(x[0]-2) > 1e-6 {
		t.Fatalf("TestMinimizeStateless: %v at %v", r.Status, x)
	}
}

func TestProblemValidation(t *testing.T) {

	obj := Objective{
		Func: func(x []float64) float64 { return x[0] * x[0] },
		Grad: func(x, g []float64) { g[0] = 2 * x[0] },
	}

	bad := []Problem{
		{N: 0, Object: obj, Stop: Termination{Tolerance: 1e-3, MaxIterations: 10}},
		{N: 1, Stop: Termination{Tolerance: 1e-3, MaxIterations: 10}},
		{N: 1, Object: obj, Stop: Termination{Tolerance: -1, MaxIterations: 10}},
		{N: 1, Object: obj, Stop: Termination{Tolerance: 1e-3}},
		{N: 1, Object: obj, Stop: Termination{Tolerance: 1e-3, MaxIterations: 10}, Line: LineSearch{Shrink: 2}},
	}
	for i := range bad {
		if _, err := bad[i].New(); err == nil {
			t.Fatalf("TestProblemValidation: case %d accepted", i)
		}
	}

	p := Problem{N: 1, Object: obj, Stop: Termination{Tolerance: 1e-3, MaxIterations: 10}}
	o, err := p.New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err = o.Attach(make([]float64, 3)); err == nil {
		t.Fatal("TestProblemValidation: short scratch accepted")
	}
}
