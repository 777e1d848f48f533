// Package testutil holds fixtures and tolerance helpers for spline tests.
package testutil

import (
	"math"
	"math/rand"
)

// RegressionTolerance matches a comparison to 6 decimal places.
const RegressionTolerance = 1.5e-6

// SineKnots returns x = 1..10 and y = sin(x).
func SineKnots() (x, y []float64) {
	x = Linspace(1, 10, 10)
	y = make([]float64, len(x))
	for i, v := range x {
		y[i] = math.Sin(v)
	}
	return x, y
}

// RegressionQueries returns 1.5, 2.5, ..., 9.5 followed by 9.8.
func RegressionQueries() []float64 {
	q := Linspace(1.5, 10.5, 10)
	q[len(q)-1] = 9.8
	return q
}

// RegressionWant is the natural spline through SineKnots evaluated at
// RegressionQueries.
func RegressionWant() []float64 {
	return []float64{
		0.952391, 0.607689, -0.352613, -0.973527, -0.703281,
		0.213946, 0.936819, 0.788606, -0.0478781, -0.34354,
	}
}

// SineSecondDerivatives is y'' at each SineKnots knot, to 6 significant digits.
func SineSecondDerivatives() []float64 {
	return []float64{
		0.0, -1.23211, -0.087569, 0.803919, 1.0467,
		0.299074, -0.701635, -1.11672, -0.289171, 0.0,
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

// DeterministicUniform returns length samples uniformly drawn from [lo, hi)
// with a fixed seed.
func DeterministicUniform(seed int64, lo, hi float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	return out
}
