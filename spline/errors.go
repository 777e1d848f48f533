package spline

import "errors"

var (
	// ErrLengthMismatch is returned when paired slices differ in length.
	ErrLengthMismatch = errors.New("spline: length mismatch")

	// ErrTooFewKnots is returned when fewer than two knots are given.
	ErrTooFewKnots = errors.New("spline: need at least two knots")

	// ErrNotIncreasing is returned when the knots are not strictly increasing.
	ErrNotIncreasing = errors.New("spline: knots must be strictly increasing")

	// ErrNonFinite is returned for NaN or infinite knots, values or slopes.
	ErrNonFinite = errors.New("spline: non-finite input")

	// ErrIllConditioned is returned when finite knots are spaced so widely or
	// so tightly that building the spline overflows.
	ErrIllConditioned = errors.New("spline: knot spacing overflows")
)
