// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nncg

const (
	zero = 0.0
	one  = 1.0
)

// Status reports why the solver stopped.
type Status int

const (
	// Converged the projected gradient dropped below tolerance.
	Converged Status = iota
	// ExceedMaxIter the iteration budget was exhausted.
	ExceedMaxIter
	// ExceedMaxEval the function-evaluation budget was exhausted.
	ExceedMaxEval
	// SearchNotDescent the line search found no acceptable step.
	SearchNotDescent
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case ExceedMaxIter:
		return "max iterations"
	case ExceedMaxEval:
		return "max evaluations"
	case SearchNotDescent:
		return "no descent step"
	}
	return "unknown"
}
