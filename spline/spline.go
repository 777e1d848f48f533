package spline

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/erikcs/mnspline/internal/core"
)

// Spline is a cubic spline through a fixed table of knots.
type Spline struct {
	x, y []float64
	y2   []float64 // second derivative at each knot
	area []float64 // integral from x[0] to x[i]

	cfg    Config
	blocks sync.Pool
}

// New builds a spline through (x[i], y[i]). The knots must be finite and
// strictly increasing; at least two are required. The inputs are copied.
func New(x, y []float64, opts ...Option) (*Spline, error) {
	cfg := ApplyOptions(opts...)

	if err := validate(x, y, cfg); err != nil {
		return nil, err
	}

	s := &Spline{
		x:   core.Clone(x),
		y:   core.Clone(y),
		cfg: cfg,
	}
	s.y2 = secondDerivatives(s.x, s.y, cfg.Start, cfg.End)
	if i := core.FirstNonFinite(s.y2); i >= 0 {
		return nil, fmt.Errorf("%w: y2[%d] = %v", ErrIllConditioned, i, s.y2[i])
	}
	s.area = integralTable(s.x, s.y, s.y2)
	if i := core.FirstNonFinite(s.area); i >= 0 {
		return nil, fmt.Errorf("%w: integral to x[%d] = %v", ErrIllConditioned, i, s.area[i])
	}
	s.blocks.New = func() any {
		return newBlock(s.cfg.BlockSize)
	}

	cfg.Logger.Debug("spline built",
		zap.Int("knots", len(s.x)),
		zap.Stringer("start", cfg.Start),
		zap.Stringer("end", cfg.End),
		zap.Stringer("extrapolation", cfg.Extrapolation))

	return s, nil
}

func validate(x, y []float64, cfg Config) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: len(x) = %d, len(y) = %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewKnots, len(x))
	}
	if i := core.FirstNonFinite(x); i >= 0 {
		return fmt.Errorf("%w: x[%d] = %v", ErrNonFinite, i, x[i])
	}
	if i := core.FirstNonFinite(y); i >= 0 {
		return fmt.Errorf("%w: y[%d] = %v", ErrNonFinite, i, y[i])
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return fmt.Errorf("%w: x[%d] = %v, x[%d] = %v", ErrNotIncreasing, i-1, x[i-1], i, x[i])
		}
	}
	if span := x[len(x)-1] - x[0]; !core.IsFinite(span) {
		return fmt.Errorf("%w: x[%d] - x[0] = %v", ErrIllConditioned, len(x)-1, span)
	}
	for _, b := range []Boundary{cfg.Start, cfg.End} {
		if b.Kind == Clamped && !core.IsFinite(b.Slope) {
			return fmt.Errorf("%w: boundary slope %v", ErrNonFinite, b.Slope)
		}
	}
	return nil
}

// secondDerivatives solves the tridiagonal system for y'' at every knot by
// forward elimination and back substitution.
func secondDerivatives(x, y []float64, start, end Boundary) []float64 {
	n := len(x)
	y2 := make([]float64, n)
	u := make([]float64, n-1)

	if start.Kind == Clamped {
		h := x[1] - x[0]
		y2[0] = -0.5
		u[0] = 3 / h * ((y[1]-y[0])/h - start.Slope)
	}

	for i := 1; i < n-1; i++ {
		sig := (x[i] - x[i-1]) / (x[i+1] - x[i-1])
		p := sig*y2[i-1] + 2
		y2[i] = (sig - 1) / p
		u[i] = (y[i+1]-y[i])/(x[i+1]-x[i]) - (y[i]-y[i-1])/(x[i]-x[i-1])
		u[i] = (6*u[i]/(x[i+1]-x[i-1]) - sig*u[i-1]) / p
	}

	var qn, un float64
	if end.Kind == Clamped {
		h := x[n-1] - x[n-2]
		qn = 0.5
		un = 3 / h * (end.Slope - (y[n-1]-y[n-2])/h)
	}

	y2[n-1] = (un - qn*u[n-2]) / (qn*y2[n-2] + 1)
	for k := n - 2; k >= 0; k-- {
		y2[k] = y2[k]*y2[k+1] + u[k]
	}

	return y2
}

// Eval returns the interpolated value at q.
func (s *Spline) Eval(q float64) float64 {
	if v, ok := s.outside(q); ok {
		return v
	}
	klo, khi := bisect(s.x, q, 0, len(s.x)-1)
	return s.piece(q, klo, khi)
}

// piece evaluates the cubic on [x[klo], x[khi]] at q.
func (s *Spline) piece(q float64, klo, khi int) float64 {
	h := s.x[khi] - s.x[klo]
	a := (s.x[khi] - q) / h
	b := (q - s.x[klo]) / h
	return a*s.y[klo] + b*s.y[khi] +
		((a*a*a-a)*s.y2[klo]+(b*b*b-b)*s.y2[khi])*(h*h)/6
}

// outside applies the extrapolation policy. It reports false when q must be
// answered by a cubic piece.
func (s *Spline) outside(q float64) (float64, bool) {
	if s.cfg.Extrapolation == ExtrapolateCubic {
		return 0, false
	}
	n := len(s.x)
	if q >= s.x[0] && q <= s.x[n-1] {
		return 0, false
	}
	if s.cfg.Extrapolation == ExtrapolateNaN || math.IsNaN(q) {
		return math.NaN(), true
	}
	if q < s.x[0] {
		return s.y[0], true
	}
	return s.y[n-1], true
}

// Interpolate builds a spline through (x, y) and evaluates it at xs.
func Interpolate(x, y, xs []float64, opts ...Option) ([]float64, error) {
	s, err := New(x, y, opts...)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(xs, true), nil
}

// Len returns the number of knots.
func (s *Spline) Len() int { return len(s.x) }

// Domain returns the first and last knot.
func (s *Spline) Domain() (lo, hi float64) {
	return s.x[0], s.x[len(s.x)-1]
}

// Knots returns a copy of the knot vector.
func (s *Spline) Knots() []float64 { return core.Clone(s.x) }

// Values returns a copy of the values at the knots.
func (s *Spline) Values() []float64 { return core.Clone(s.y) }

// SecondDerivatives returns a copy of the second derivatives at the knots.
func (s *Spline) SecondDerivatives() []float64 { return core.Clone(s.y2) }

// Config returns the settings the spline was built with.
func (s *Spline) Config() Config { return s.cfg }
