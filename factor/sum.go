// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package factor

import "sync"

// sumByCols writes the column sums of m into out, splitting the rows into
// one contiguous range per worker. Each worker accumulates into its own
// k-vector of part and the partials are combined sequentially in worker
// order, so the summation order depends only on the worker count: two runs
// with the same inputs and the same worker count sum bit-identically.
func sumByCols(out []float64, m *FactorMatrix, part []float64, workers int) {
	k := m.Cols
	dzero(out)

	if workers <= 1 || m.Rows < 2*workers {
		for i := 0; i < m.Rows; i++ {
			daxpy(k, one, m.Row(i), out)
		}
		return
	}

	chunk := (m.Rows + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, m.Rows)
		if lo >= hi {
			dzero(part[w*k : (w+1)*k])
			continue
		}
		wg.Add(1)
		go func(sum []float64, lo, hi int) {
			defer wg.Done()
			dzero(sum)
			for i := lo; i < hi; i++ {
				daxpy(k, one, m.Row(i), sum)
			}
		}(part[w*k:(w+1)*k], lo, hi)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		daxpy(k, one, part[w*k:(w+1)*k], out)
	}
}
