package spline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Evaluate returns the interpolated values at xs. With parallel set, inputs of
// at least Config.ParallelThreshold queries are split across goroutines. The
// result does not depend on parallel.
func (s *Spline) Evaluate(xs []float64, parallel bool) []float64 {
	out := make([]float64, len(xs))
	// Lengths match and Background is never cancelled.
	_ = s.EvaluateInto(out, xs, parallel)
	return out
}

// EvaluateInto writes the interpolated values at xs into dst.
func (s *Spline) EvaluateInto(dst, xs []float64, parallel bool) error {
	if len(dst) != len(xs) {
		return fmt.Errorf("%w: len(dst) = %d, len(xs) = %d", ErrLengthMismatch, len(dst), len(xs))
	}
	if !parallel || s.cfg.Workers < 2 || len(xs) < s.cfg.ParallelThreshold {
		return s.evalRange(context.Background(), dst, xs)
	}
	return s.evalParallel(context.Background(), dst, xs)
}

// EvaluateContext evaluates xs into dst in parallel, stopping early when ctx
// is cancelled. On cancellation dst is partially written.
func (s *Spline) EvaluateContext(ctx context.Context, dst, xs []float64) error {
	if len(dst) != len(xs) {
		return fmt.Errorf("%w: len(dst) = %d, len(xs) = %d", ErrLengthMismatch, len(dst), len(xs))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.evalParallel(ctx, dst, xs)
}

// evalRange evaluates one contiguous chunk with its own cursor and scratch.
func (s *Spline) evalRange(ctx context.Context, dst, xs []float64) error {
	c := s.Cursor()
	b := s.blocks.Get().(*block)
	defer s.blocks.Put(b)

	size := s.cfg.BlockSize
	for lo := 0; lo < len(xs); lo += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		hi := min(lo+size, len(xs))
		s.evalBlock(c, b, dst[lo:hi], xs[lo:hi])
	}
	return nil
}

func (s *Spline) evalParallel(ctx context.Context, dst, xs []float64) error {
	if len(xs) == 0 {
		return nil
	}

	blocks := (len(xs) + s.cfg.BlockSize - 1) / s.cfg.BlockSize
	workers := max(1, min(s.cfg.Workers, blocks))
	chunk := (len(xs) + workers - 1) / workers

	s.cfg.Logger.Debug("parallel evaluate",
		zap.Int("queries", len(xs)),
		zap.Int("workers", workers),
		zap.Int("chunk", chunk))

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(xs); lo += chunk {
		hi := min(lo+chunk, len(xs))
		g.Go(func() error {
			return s.evalRange(gctx, dst[lo:hi], xs[lo:hi])
		})
	}
	return g.Wait()
}
