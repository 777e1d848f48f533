// Package spline implements natural and clamped cubic spline interpolation.
//
// A [Spline] is built once from strictly increasing knots and the function
// values at those knots. Construction solves the tridiagonal system for the
// second derivative at every knot; evaluation then brackets each query point
// and combines the two neighbouring values and second derivatives:
//
//	y = a*y[lo] + b*y[hi] + ((a³-a)*y2[lo] + (b³-b)*y2[hi]) * h²/6
//
// where h = x[hi]-x[lo], a = (x[hi]-q)/h and b = 1-a.
//
// Batch evaluation ([Spline.Evaluate], [Spline.EvaluateInto]) processes queries
// in fixed-size blocks. Each block brackets its queries through a [Cursor],
// which remembers the last interval so that sorted or clustered queries skip
// the bisection, and then combines the weights with vectorised block
// arithmetic. With parallel evaluation the query slice is split into
// contiguous chunks, one goroutine and one cursor per chunk.
//
// Boundary conditions:
//
//   - [Natural]: zero second derivative at the end (the default)
//   - [Clamped]: prescribed first derivative at the end
//
// Outside the knot range the end pieces are extended by default; see
// [Extrapolation] for the alternatives.
//
// A Spline is immutable and safe for concurrent use. A Cursor is not.
package spline
