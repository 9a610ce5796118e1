// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

// FactorMatrix is a dense row-major matrix holding one side of the
// factorization. The backing slice is owned by the caller for the whole
// run and mutated in place; the optimizer never reallocates it.
type FactorMatrix struct {
	Rows, Cols int
	Data       []float64
}

// NewFactorMatrix wraps data as a Rows×Cols matrix.
// A nil data allocates a zero matrix.
func NewFactorMatrix(rows, cols int, data []float64) *FactorMatrix {
	if data == nil {
		data = make([]float64, rows*cols)
	}
	if len(data) != rows*cols {
		panic("factor: matrix data length not match dimensions")
	}
	return &FactorMatrix{Rows: rows, Cols: cols, Data: data}
}

// Row returns the i-th row as a full-capacity slice.
func (m *FactorMatrix) Row(i int) []float64 {
	if uint(i) >= uint(m.Rows) {
		panic("bound check error")
	}
	lo, hi := i*m.Cols, (i+1)*m.Cols
	return m.Data[lo:hi:hi]
}
