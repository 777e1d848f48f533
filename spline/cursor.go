package spline

// bisect narrows [klo, khi] until it brackets q with khi == klo+1.
// Queries below x[0] end in the first interval, queries at or above
// x[len(x)-1] end in the last.
func bisect(x []float64, q float64, klo, khi int) (int, int) {
	for khi-klo > 1 {
		mid := klo + (khi-klo)>>1
		if x[mid] > q {
			khi = mid
		} else {
			klo = mid
		}
	}
	return klo, khi
}

// Cursor evaluates a Spline while remembering the last interval it used.
// Consecutive queries falling into the same interval skip the bisection.
//
// A Cursor must not be shared between goroutines; take one per goroutine.
type Cursor struct {
	s        *Spline
	klo, khi int
}

// Cursor returns a new cursor positioned on the first interval.
func (s *Spline) Cursor() *Cursor {
	return &Cursor{s: s, klo: 0, khi: 1}
}

// Eval returns the interpolated value at q.
func (c *Cursor) Eval(q float64) float64 {
	if v, ok := c.s.outside(q); ok {
		return v
	}
	klo, khi := c.bracket(q)
	return c.s.piece(q, klo, khi)
}

// Interval returns the indices of the interval used by the last lookup.
func (c *Cursor) Interval() (lo, hi int) {
	return c.klo, c.khi
}

func (c *Cursor) bracket(q float64) (int, int) {
	x := c.s.x
	if x[c.klo] <= q && x[c.khi] > q {
		return c.klo, c.khi
	}
	c.klo, c.khi = bisect(x, q, 0, len(x)-1)
	return c.klo, c.khi
}
