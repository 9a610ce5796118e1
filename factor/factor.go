// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

import "fmt"

// Run factorizes in one call from flat buffers: a and b are pre-allocated,
// pre-initialized row-major buffers overwritten with the optimized factors,
// and the two sparse triplets are the row- and column-grouped views of the
// same matrix.
//
// Unlike the lower-level Fit, Run validates both views before touching any
// data, so a malformed input returns an error with a and b untouched.
func Run(
	a []float64, xrVals []float64, xrOffsets, xrIndices []int,
	b []float64, xcVals []float64, xcOffsets, xcIndices []int,
	dimA, dimB, k int,
	l2Reg, l1Reg float64, useCG bool, stepSize float64,
	numIter, numPass, workers int) error {

	p := Problem{
		DimA: dimA, DimB: dimB, K: k,
		L2Reg: l2Reg, L1Reg: l1Reg,
		UseCG: useCG, StepSize: stepSize,
		NumIter: numIter, NumPass: numPass,
		NumWorkers: workers,
	}
	o, err := p.New()
	if err != nil {
		return err
	}

	xr := &SparseView{Values: xrVals, Indices: xrIndices, Offsets: xrOffsets}
	xc := &SparseView{Values: xcVals, Indices: xcIndices, Offsets: xcOffsets}
	if err := xr.Validate(dimA, dimB); err != nil {
		return fmt.Errorf("row view: %w", err)
	}
	if err := xc.Validate(dimB, dimA); err != nil {
		return fmt.Errorf("column view: %w", err)
	}
	if len(xr.Values) != len(xc.Values) {
		return fmt.Errorf("views disagree on nnz: %d vs %d", len(xr.Values), len(xc.Values))
	}

	ma := NewFactorMatrix(dimA, k, a)
	mb := NewFactorMatrix(dimB, k, b)
	o.Fit(ma, mb, xr, xc, o.Init())
	return nil
}

// FitRow optimizes the factor vector v of a single new row against the
// already-trained opposing factors f, given the row's observed entries
// (vals, idx). This is the basis for producing factors of unseen entities
// without re-running the alternation; it uses the standalone CG budget,
// which is looser than the one used inside Fit.
func FitRow(v, vals []float64, idx []int, f *FactorMatrix, l2Reg, l1Reg float64) {
	k := len(v)
	fsum := make([]float64, k)
	sumByCols(fsum, f, nil, 1)
	if l1Reg > zero {
		for i := range fsum {
			fsum[i] += l1Reg
		}
	}

	ctx := &rowCtx{f: f, fsum: fsum, vals: vals, idx: idx, l2: l2Reg}
	obj := Objective{Func: ctx.value, Grad: ctx.gradient}
	scratch := make([]float64, 4*k)

	var m Minimizer = cgMinimizer{}
	m.Minimize(obj, v, scratch, rowIter, rowTol)
	dclamp(v)
}
