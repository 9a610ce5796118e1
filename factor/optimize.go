// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package factor computes a non-negative low-rank factorization of a sparse
// count matrix under a Poisson likelihood with L1/L2 regularization:
// given X (dimA×dimB, non-negative counts), find dense A (dimA×k) and
// B (dimB×k) with A, B ≥ 0 such that ABᵀ approximates X.
//
// minimize ∑ᵢⱼ (ABᵀ)ᵢⱼ - ∑ xᵢⱼ 𝗅𝗈𝗀(AᵢᵀBⱼ) + λ₂(‖A‖²+‖B‖²) + λ₁(‖A‖₁+‖B‖₁)
//
// The optimizer alternates between the rows of A (B fixed) and the rows of B
// (A fixed) for a fixed iteration count. Rows are independent within a sweep
// and run on a worker pool; each row is improved either by proximal-gradient
// passes or by an injected non-negative conjugate-gradient minimizer.
package factor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
)

// LogLevel controls the frequency of logger output.
type LogLevel int

const (
	// LogNoop no output is generated.
	LogNoop LogLevel = -1
	// LogLast print one line when the run completes.
	LogLast LogLevel = 0
	// LogEval print progress after every outer iteration.
	LogEval LogLevel = 1
)

// Logger handles logging output for the optimizer.
// The writer must be thread-safe.
type Logger struct {
	Level LogLevel
	Msg   io.Writer
}

func (l *Logger) enable(level LogLevel) bool {
	return l != nil && l.Level >= level
}

func (l *Logger) log(format string, a ...any) {
	w := l.Msg
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, format, a...)
}

// Problem specifies the hyperparameters of one factorization.
type Problem struct {
	DimA, DimB int // Rows of A and B
	K          int // Factor dimension shared by A and B

	L2Reg float64 // L2 penalty ≥ 0
	L1Reg float64 // L1 penalty ≥ 0

	// UseCG selects the conjugate-gradient row solver
	// instead of proximal gradient.
	UseCG bool
	// StepSize is the initial PGD step, halved after every full outer
	// iteration. Ignored by the CG solver.
	StepSize float64

	NumIter int // Outer iterations (the sole stopping criterion)
	NumPass int // Inner passes (PGD) or CG iteration budget per row

	// NumWorkers is the worker-pool size for the row sweeps.
	// Defaults to GOMAXPROCS.
	NumWorkers int

	// Minimizer optionally replaces the inner CG strategy.
	Minimizer Minimizer
	Logger    *Logger
}

// Optimizer runs the alternating block optimization with the row solver
// selected once at construction.
type Optimizer struct {
	spec   Problem
	solver rowSolver
}

// Workspace holds every buffer one Fit call touches: the shared
// regularization vector, the column-sum partials and one private scratch
// per worker (k entries for PGD, 4k for CG). All of it is carved from a
// single allocation made before any numeric work, so a run either owns its
// full scratch up front or never mutates the factors at all.
type Workspace struct {
	k, workers, per int
	cnstSum         []float64
	colPart         []float64
	scratch         [][]float64
}

// New validates the problem and creates an optimizer for it.
func (p *Problem) New() (optimizer *Optimizer, err error) {
	spec := *p
	if spec.NumWorkers <= 0 {
		spec.NumWorkers = runtime.GOMAXPROCS(0)
	}
	if spec.Minimizer == nil {
		spec.Minimizer = cgMinimizer{}
	}
	switch {
	case spec.DimA <= 0 || spec.DimB <= 0:
		err = errors.New("matrix dimensions must greater than 0")
	case spec.K <= 0:
		err = errors.New("factor dimension must greater than 0")
	case spec.L2Reg < zero || spec.L1Reg < zero:
		err = errors.New("regularization must not less than 0")
	case spec.NumIter < 0:
		err = errors.New("iteration count must not less than 0")
	case spec.NumPass <= 0:
		err = errors.New("inner pass count must greater than 0")
	case !spec.UseCG && spec.StepSize <= zero:
		err = errors.New("step size must greater than 0")
	}
	if err != nil {
		return
	}

	var solver rowSolver
	if spec.UseCG {
		solver = cgSolver{m: spec.Minimizer, npass: spec.NumPass}
	} else {
		solver = pgdSolver{npass: spec.NumPass}
	}
	optimizer = &Optimizer{spec: spec, solver: solver}
	return
}

// Init allocates the workspace for one optimizer.
// To avoid race conditions, separate workspaces need to be created for
// concurrent Fit calls, but sequential calls may reuse one workspace.
func (o *Optimizer) Init() *Workspace {
	k, workers := o.spec.K, o.spec.NumWorkers
	per := o.solver.scratchLen(k)
	buf := make([]float64, k+workers*k+workers*per)

	w := &Workspace{
		k: k, workers: workers, per: per,
		cnstSum: buf[:k],
		colPart: buf[k : k+workers*k],
		scratch: make([][]float64, workers),
	}
	lo := k + workers*k
	for i := range w.scratch {
		w.scratch[i] = buf[lo : lo+per]
		lo += per
	}
	return w
}

// Fit optimizes a and b in place against the row-grouped view xr and the
// column-grouped view xc of the same logical matrix. The two views must
// hold an identical non-zero set; that consistency is a caller precondition.
func (o *Optimizer) Fit(a, b *FactorMatrix, xr, xc *SparseView, w *Workspace) {
	spec := &o.spec
	switch {
	case a.Rows != spec.DimA || a.Cols != spec.K:
		panic("factor matrix A dimension not match spec")
	case b.Rows != spec.DimB || b.Cols != spec.K:
		panic("factor matrix B dimension not match spec")
	case xr.Groups() != spec.DimA || xc.Groups() != spec.DimB:
		panic("sparse view dimension not match spec")
	case w.k != spec.K || w.workers != spec.NumWorkers || w.per != o.solver.scratchLen(spec.K):
		panic("workspace dimension not match spec")
	}

	step := spec.StepSize
	for iter := 0; iter < spec.NumIter; iter++ {
		cnstDiv := one / (one + 2*spec.L2Reg*step)

		o.prepare(w, b, step)
		o.sweep(a, b, xr, w, cnstDiv, step)

		o.prepare(w, a, step)
		o.sweep(b, a, xc, w, cnstDiv, step)

		// Decrease the step after updating both matrices (PGD only).
		step = o.solver.decay(step)
		if spec.Logger.enable(LogEval) {
			spec.Logger.log("poismf: iter %d/%d done (step %.3e)\n", iter+1, spec.NumIter, step)
		}
	}
	if spec.Logger.enable(LogLast) {
		spec.Logger.log("poismf: finished %d iterations\n", spec.NumIter)
	}
}

// prepare recomputes the shared regularization vector from the column sums
// of the fixed factor matrix, shifted by the L1 penalty, then hands it to
// the row solver for sweep-specific post-processing.
func (o *Optimizer) prepare(w *Workspace, fixed *FactorMatrix, step float64) {
	spec := &o.spec
	sumByCols(w.cnstSum, fixed, w.colPart, w.workers)
	if spec.L1Reg > zero {
		for i := range w.cnstSum {
			w.cnstSum[i] += spec.L1Reg
		}
	}
	o.solver.prepare(w.cnstSum, step)
}

// sweep updates every row of m against the fixed opposing factors, one task
// per row on the worker pool. Rows are write-disjoint and the fixed matrix
// and regularization vector are read-shared, so no locking is needed; the
// WaitGroup is the barrier the next phase depends on. Row assignment is
// strided by worker id, so a fixed worker count always replays the same
// schedule.
func (o *Optimizer) sweep(m, fixed *FactorMatrix, x *SparseView, w *Workspace, cnstDiv, step float64) {
	spec := &o.spec
	var wg sync.WaitGroup
	for wk := 0; wk < w.workers; wk++ {
		wg.Add(1)
		go func(wk int) {
			defer wg.Done()
			scratch := w.scratch[wk]
			ctx := &rowCtx{f: fixed, fsum: w.cnstSum, l2: spec.L2Reg}
			obj := Objective{Func: ctx.value, Grad: ctx.gradient}
			for i := wk; i < m.Rows; i += w.workers {
				ctx.vals, ctx.idx = x.Row(i)
				o.solver.solve(m.Row(i), ctx, obj, scratch, cnstDiv, step)
			}
		}(wk)
	}
	wg.Wait()
}
