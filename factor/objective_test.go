// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

import (
	"math"
	"testing"

	"github.com/curioloop/poismf/numdiff"
)

func testRowCtx(l2 float64) *rowCtx {
	f := NewFactorMatrix(4, 3, []float64{
		0.9, 0.2, 1.4,
		0.3, 1.1, 0.5,
		1.2, 0.7, 0.1,
		0.4, 0.8, 1.6,
	})
	fsum := make([]float64, 3)
	sumByCols(fsum, f, nil, 1)
	return &rowCtx{
		f:    f,
		fsum: fsum,
		vals: []float64{3, 1, 5},
		idx:  []int{0, 2, 3},
		l2:   l2,
	}
}

func TestRowGradient(t *testing.T) {

	ctx := testRowCtx(0.5)
	v := []float64{0.8, 1.3, 0.4}

	g := make([]float64, 3)
	d := make([]float64, 3)
	ctx.gradient(v, g)
	if err := numdiff.Grad(ctx.value, v, d, numdiff.Central); err != nil {
		t.Fatal(err)
	}
	if !almostEqual(g, d, 1e-6) {
		t.Fatalf("TestRowGradient: analytic %v, numeric %v", g, d)
	}
}

// A row parked on the orthant boundary makes F‌ⱼ·𝐯 vanish; the clamp must
// keep both the objective and its gradient finite.
func TestRowObjectiveClamp(t *testing.T) {

	ctx := testRowCtx(0)
	v := []float64{0, 0, 0}

	f := ctx.value(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		t.Fatalf("TestRowObjectiveClamp: objective %v", f)
	}

	g := make([]float64, 3)
	ctx.gradient(v, g)
	for i, gi := range g {
		if math.IsInf(gi, 0) || math.IsNaN(gi) {
			t.Fatalf("TestRowObjectiveClamp: gradient[%d] = %v", i, gi)
		}
	}
}

func TestLossMatchesRowObjectives(t *testing.T) {

	// A single-row matrix reduces the full loss to one row objective
	// (plus the regularizers of the fixed side).
	b := NewFactorMatrix(4, 3, []float64{
		0.9, 0.2, 1.4,
		0.3, 1.1, 0.5,
		1.2, 0.7, 0.1,
		0.4, 0.8, 1.6,
	})
	a := NewFactorMatrix(1, 3, []float64{0.8, 1.3, 0.4})
	xr := &SparseView{
		Values:  []float64{3, 1, 5},
		Indices: []int{0, 2, 3},
		Offsets: []int{0, 3},
	}

	ctx := testRowCtx(0)
	want := ctx.value(a.Row(0))
	got := Loss(a, b, xr, 0, 0)
	if math.Abs(got-want) > 1e-10 {
		t.Fatalf("TestLossMatchesRowObjectives: %v vs %v", got, want)
	}
}
