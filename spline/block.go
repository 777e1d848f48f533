package spline

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/erikcs/mnspline/internal/core"
)

// block is per-goroutine scratch for batched evaluation. Every query q is
// written as the four-term sum
//
//	wa*ylo + wb*yhi + ca*y2lo + cb*y2hi
//
// so the bracketing pass fills the operands and the combination pass is pure
// element-wise arithmetic.
type block struct {
	wa, wb, ca, cb   []float64
	ylo, yhi         []float64
	y2lo, y2hi, term []float64
}

func newBlock(size int) *block {
	return &block{
		wa:   make([]float64, size),
		wb:   make([]float64, size),
		ca:   make([]float64, size),
		cb:   make([]float64, size),
		ylo:  make([]float64, size),
		yhi:  make([]float64, size),
		y2lo: make([]float64, size),
		y2hi: make([]float64, size),
		term: make([]float64, size),
	}
}

func (b *block) resize(n int) {
	b.wa = core.EnsureLen(b.wa, n)
	b.wb = core.EnsureLen(b.wb, n)
	b.ca = core.EnsureLen(b.ca, n)
	b.cb = core.EnsureLen(b.cb, n)
	b.ylo = core.EnsureLen(b.ylo, n)
	b.yhi = core.EnsureLen(b.yhi, n)
	b.y2lo = core.EnsureLen(b.y2lo, n)
	b.y2hi = core.EnsureLen(b.y2hi, n)
	b.term = core.EnsureLen(b.term, n)
}

// evalBlock evaluates len(xs) queries into dst using cursor c for bracketing.
// len(dst) must equal len(xs).
func (s *Spline) evalBlock(c *Cursor, b *block, dst, xs []float64) {
	b.resize(len(xs))

	for i, q := range xs {
		if v, ok := s.outside(q); ok {
			b.hold(i, v)
			continue
		}

		klo, khi := c.bracket(q)
		h := s.x[khi] - s.x[klo]
		wa := (s.x[khi] - q) / h
		wb := (q - s.x[klo]) / h
		h26 := h * h / 6

		b.wa[i] = wa
		b.wb[i] = wb
		b.ca[i] = (wa*wa*wa - wa) * h26
		b.cb[i] = (wb*wb*wb - wb) * h26
		b.ylo[i] = s.y[klo]
		b.yhi[i] = s.y[khi]
		b.y2lo[i] = s.y2[klo]
		b.y2hi[i] = s.y2[khi]
	}

	vecmath.MulBlock(dst, b.wa, b.ylo)
	vecmath.MulBlock(b.term, b.wb, b.yhi)
	vecmath.AddBlockInPlace(dst, b.term)
	vecmath.MulBlock(b.term, b.ca, b.y2lo)
	vecmath.AddBlockInPlace(dst, b.term)
	vecmath.MulBlock(b.term, b.cb, b.y2hi)
	vecmath.AddBlockInPlace(dst, b.term)
}

// hold makes slot i evaluate to v exactly.
func (b *block) hold(i int, v float64) {
	b.wa[i], b.ylo[i] = 1, v
	b.wb[i], b.yhi[i] = 0, 0
	b.ca[i], b.y2lo[i] = 0, 0
	b.cb[i], b.y2hi[i] = 0, 0
	if math.IsNaN(v) {
		b.wa[i] = v
	}
}
