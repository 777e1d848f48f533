package spline

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/erikcs/mnspline/internal/core"
)

// integralTable returns the running integral of the spline at every knot.
// Each interval contributes h*(y[i]+y[i+1])/2 - h³*(y2[i]+y2[i+1])/24.
func integralTable(x, y, y2 []float64) []float64 {
	m := len(x) - 1

	h := make([]float64, m)
	core.Diff(h, x)

	trap := core.Clone(y[:m])
	vecmath.AddBlockInPlace(trap, y[1:])
	vecmath.MulBlock(trap, trap, h)
	vecmath.ScaleBlock(trap, trap, 0.5)

	// Multiply by h one factor at a time so zero curvature stays zero
	// when h³ alone would overflow.
	curv := core.Clone(y2[:m])
	vecmath.AddBlockInPlace(curv, y2[1:])
	for range 3 {
		vecmath.MulBlock(curv, curv, h)
	}
	vecmath.ScaleBlock(curv, curv, -1.0/24)

	vecmath.AddBlockInPlace(trap, curv)

	area := make([]float64, m+1)
	for i, v := range trap {
		area[i+1] = area[i] + v
	}
	return area
}

// Derivative returns the order-th derivative of the spline at q. Order 0 is
// the value itself; orders above 3 are zero. Negative orders return NaN.
func (s *Spline) Derivative(q float64, order int) float64 {
	switch {
	case order < 0:
		return math.NaN()
	case order == 0:
		return s.Eval(q)
	}

	if v, ok := s.outside(q); ok {
		if math.IsNaN(v) {
			return v
		}
		return 0
	}

	klo, khi := bisect(s.x, q, 0, len(s.x)-1)
	h := s.x[khi] - s.x[klo]
	a := (s.x[khi] - q) / h
	b := (q - s.x[klo]) / h

	switch order {
	case 1:
		return (s.y[khi]-s.y[klo])/h -
			(3*a*a-1)/6*h*s.y2[klo] +
			(3*b*b-1)/6*h*s.y2[khi]
	case 2:
		return a*s.y2[klo] + b*s.y2[khi]
	case 3:
		return (s.y2[khi] - s.y2[klo]) / h
	default:
		return 0
	}
}

// Integral returns the integral of the spline from a to b. Swapping the
// limits flips the sign. With ExtrapolateNaN, limits outside the knot range
// give NaN.
func (s *Spline) Integral(a, b float64) float64 {
	return s.primitive(b) - s.primitive(a)
}

// primitive returns the integral from x[0] to q.
func (s *Spline) primitive(q float64) float64 {
	n := len(s.x)
	if math.IsNaN(q) {
		return q
	}
	if q < s.x[0] || q > s.x[n-1] {
		switch s.cfg.Extrapolation {
		case ExtrapolateNaN:
			return math.NaN()
		case ExtrapolateConstant:
			if q < s.x[0] {
				return (q - s.x[0]) * s.y[0]
			}
			return s.area[n-1] + (q-s.x[n-1])*s.y[n-1]
		}
	}

	klo, khi := bisect(s.x, q, 0, n-1)
	return s.area[klo] + s.pieceIntegral(q, klo, khi)
}

// pieceIntegral integrates the cubic on [x[klo], x[khi]] from x[klo] to q.
func (s *Spline) pieceIntegral(q float64, klo, khi int) float64 {
	h := s.x[khi] - s.x[klo]
	ylo, yhi := s.y[klo], s.y[khi]
	y2lo, y2hi := s.y2[klo], s.y2[khi]

	// Antiderivative in terms of a = (x[khi]-x)/h and b = (x-x[klo])/h.
	anti := func(a, b float64) float64 {
		a2, b2 := a*a, b*b
		return h * (-ylo*a2/2 + yhi*b2/2 +
			h*h/6*(-y2lo*(a2*a2/4-a2/2)+y2hi*(b2*b2/4-b2/2)))
	}

	a := (s.x[khi] - q) / h
	b := (q - s.x[klo]) / h
	return anti(a, b) - anti(1, 0)
}
