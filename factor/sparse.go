// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

import (
	"errors"
	"fmt"
)

// SparseView is an immutable compressed view of a sparse non-negative count
// matrix. The same logical matrix is viewed twice during alternation: once
// grouped by row (to update A) and once grouped by column (to update B).
//
// Group i owns the half-open range [Offsets[i], Offsets[i+1]) of Values and
// Indices, where Indices holds positions along the opposite dimension.
type SparseView struct {
	Values  []float64
	Indices []int
	Offsets []int
}

// Groups returns the number of groups (rows or columns) in the view.
func (v *SparseView) Groups() int {
	return len(v.Offsets) - 1
}

// Row returns the stored entries of group i.
// For a column-grouped view the "row" is a column of the logical matrix.
func (v *SparseView) Row(i int) (vals []float64, idx []int) {
	lo, hi := v.Offsets[i], v.Offsets[i+1]
	return v.Values[lo:hi], v.Indices[lo:hi]
}

// Validate checks the structural invariants of a view with dim groups over
// an opposite dimension of size opp: monotone offsets closed by the total
// non-zero count, indices within range and non-negative values.
//
// The optimizer never calls this itself. Well-formed views are a caller
// precondition; Run validates because it is the outermost surface.
func (v *SparseView) Validate(dim, opp int) error {
	if len(v.Offsets) != dim+1 {
		return fmt.Errorf("offsets length %d, want %d", len(v.Offsets), dim+1)
	}
	if len(v.Values) != len(v.Indices) {
		return fmt.Errorf("values length %d, indices length %d", len(v.Values), len(v.Indices))
	}
	if v.Offsets[0] != 0 {
		return errors.New("offsets must start at 0")
	}
	if v.Offsets[dim] != len(v.Values) {
		return fmt.Errorf("last offset %d, want nnz %d", v.Offsets[dim], len(v.Values))
	}
	for i := 0; i < dim; i++ {
		if v.Offsets[i] > v.Offsets[i+1] {
			return fmt.Errorf("offsets not monotone at %d", i)
		}
	}
	for p, j := range v.Indices {
		if j < 0 || j >= opp {
			return fmt.Errorf("index %d out of range [0,%d) at %d", j, opp, p)
		}
	}
	for p, x := range v.Values {
		if x < zero {
			return fmt.Errorf("negative count %g at %d", x, p)
		}
	}
	return nil
}
