package spline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/interp"

	"github.com/erikcs/mnspline/internal/testutil"
)

func TestMatchesGonumNaturalCubic(t *testing.T) {
	x := []float64{-2, -1, 0.5, 1, 2.5, 4, 4.5, 7}
	y := []float64{3, -1, 0, 2, 2.5, -3, 1, 0}

	s, err := New(x, y)
	require.NoError(t, err)

	var ref interp.NaturalCubic
	require.NoError(t, ref.Fit(x, y))

	queries := testutil.Linspace(x[0], x[len(x)-1], 301)
	want := make([]float64, len(queries))
	for i, q := range queries {
		want[i] = ref.Predict(q)
	}

	d, err := testutil.MaxAbsDiff(s.Evaluate(queries, false), want)
	require.NoError(t, err)
	assert.Less(t, d, 1e-10)
}

func TestDerivativesAtKnots(t *testing.T) {
	x, y := testutil.SineKnots()
	s, err := New(x, y)
	require.NoError(t, err)

	y2 := s.SecondDerivatives()
	for i := range x {
		assert.InDelta(t, y2[i], s.Derivative(x[i], 2), 1e-12, "knot %d", i)
	}
}

func TestDerivativeFiniteDifference(t *testing.T) {
	x, y := testutil.SineKnots()
	s, err := New(x, y)
	require.NoError(t, err)

	const h = 1e-5
	for _, q := range []float64{1.3, 2.7, 5.5, 8.01, 9.9} {
		d1 := (s.Eval(q+h) - s.Eval(q-h)) / (2 * h)
		assert.InDelta(t, d1, s.Derivative(q, 1), 1e-7, "first derivative at %v", q)

		d2 := (s.Derivative(q+h, 1) - s.Derivative(q-h, 1)) / (2 * h)
		assert.InDelta(t, d2, s.Derivative(q, 2), 1e-6, "second derivative at %v", q)

		d3 := (s.Derivative(q+h, 2) - s.Derivative(q-h, 2)) / (2 * h)
		assert.InDelta(t, d3, s.Derivative(q, 3), 1e-6, "third derivative at %v", q)
	}

	assert.Equal(t, s.Eval(3.3), s.Derivative(3.3, 0))
	assert.Zero(t, s.Derivative(3.3, 4))
	assert.True(t, math.IsNaN(s.Derivative(3.3, -1)))
}

func TestDerivativeContinuity(t *testing.T) {
	x, y := testutil.SineKnots()
	s, err := New(x, y)
	require.NoError(t, err)

	const eps = 1e-9
	for i := 1; i < len(x)-1; i++ {
		for order := 0; order <= 2; order++ {
			left := s.Derivative(x[i]-eps, order)
			right := s.Derivative(x[i]+eps, order)
			assert.InDelta(t, left, right, 1e-6, "order %d at knot %d", order, i)
		}
	}
}

func TestDerivativeOutsideDomain(t *testing.T) {
	x, y := testutil.SineKnots()

	constant, err := New(x, y, WithExtrapolation(ExtrapolateConstant))
	require.NoError(t, err)
	assert.Zero(t, constant.Derivative(-1, 1))
	assert.Zero(t, constant.Derivative(12, 2))
	assert.Equal(t, y[0], constant.Derivative(-1, 0))

	nan, err := New(x, y, WithExtrapolation(ExtrapolateNaN))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan.Derivative(-1, 1)))

	// The cubic policy extends the last piece unchanged.
	cubic, err := New(x, y)
	require.NoError(t, err)
	assert.InDelta(t, cubic.Derivative(10, 3), cubic.Derivative(11, 3), 1e-12)
}

func TestIntegralAgainstTrapezoid(t *testing.T) {
	x, y := testutil.SineKnots()
	s, err := New(x, y)
	require.NoError(t, err)

	for _, r := range [][2]float64{{1, 10}, {1.5, 9.8}, {3.25, 3.75}, {2, 2}} {
		grid := testutil.Linspace(r[0], r[1], 100001)
		want := integrate.Trapezoidal(grid, s.Evaluate(grid, false))
		assert.InDelta(t, want, s.Integral(r[0], r[1]), 1e-7, "range %v", r)
	}

	// The interpolant of sin integrates close to cos(1) - cos(10).
	assert.InDelta(t, math.Cos(1)-math.Cos(10), s.Integral(1, 10), 0.05)
}

func TestIntegralProperties(t *testing.T) {
	x, y := testutil.SineKnots()
	s, err := New(x, y)
	require.NoError(t, err)

	assert.InDelta(t, -s.Integral(2, 7.5), s.Integral(7.5, 2), 1e-14)
	assert.InDelta(t, s.Integral(1.2, 9.1), s.Integral(1.2, 4.4)+s.Integral(4.4, 9.1), 1e-12)
	assert.Zero(t, s.Integral(5, 5))
	assert.True(t, math.IsNaN(s.Integral(math.NaN(), 2)))
}

func TestIntegralLinear(t *testing.T) {
	s, err := New([]float64{0, 1, 2, 5}, []float64{1, 3, 5, 11})
	require.NoError(t, err)

	// y = 2x + 1
	prim := func(v float64) float64 { return v*v + v }
	for _, r := range [][2]float64{{0, 5}, {0.5, 4.5}, {-1, 7}} {
		assert.InDelta(t, prim(r[1])-prim(r[0]), s.Integral(r[0], r[1]), 1e-12, "range %v", r)
	}
}

func TestIntegralExtrapolation(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{2, 2, 2}

	constant, err := New(x, y, WithExtrapolation(ExtrapolateConstant))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, constant.Integral(-1, 4), 1e-12)

	nan, err := New(x, y, WithExtrapolation(ExtrapolateNaN))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan.Integral(-1, 1)))
	assert.InDelta(t, 4.0, nan.Integral(0, 2), 1e-12)
}
