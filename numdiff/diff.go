// Package numdiff estimates the gradient of a scalar function with finite
// differences, for checking analytic gradients in tests.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Finite_difference
//   - https://github.com/scipy/scipy/blob/main/scipy/optimize/_numdiff.py
package numdiff

import (
	"errors"
	"math"
)

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
var cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)

type Method int

const (
	// Forward use the first order accuracy forward difference.
	Forward Method = iota
	// Central use the second order accuracy central difference.
	Central
)

// Grad estimates the gradient of f at x into g.
// The entries of x are perturbed one at a time and restored, so f may close
// over x safely. The relative step is √ε (Forward) or ∛ε (Central) scaled
// by max(1,|xᵢ|).
func Grad(f func(x []float64) float64, x, g []float64, m Method) error {
	n := len(x)
	switch {
	case n == 0:
		return errors.New("empty x")
	case len(g) != n:
		return errors.New("invalid g dimensions")
	case m != Forward && m != Central:
		return errors.New("unknown method")
	}

	rel := sqrtEps
	if m == Central {
		rel = cubeEps
	}

	var f0 float64
	if m == Forward {
		f0 = f(x)
	}

	for i, xi := range x {
		h := rel * math.Max(1, math.Abs(xi))
		if xi < 0 {
			h = -h
		}
		// Make the step exactly representable.
		h = (xi + h) - xi
		if h == 0 {
			h = rel
		}

		switch m {
		case Forward:
			x[i] = xi + h
			g[i] = (f(x) - f0) / h
		case Central:
			x[i] = xi + h
			fp := f(x)
			x[i] = xi - h
			fm := f(x)
			g[i] = (fp - fm) / (2 * h)
		}
		x[i] = xi
	}
	return nil
}
