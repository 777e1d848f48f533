package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erikcs/mnspline/spline"
)

// Natural spline through sin(x) at x = 1..10, evaluated at 1.5, 2.5, ...,
// 9.5 and 9.8.
var selftestWant = []float64{
	0.952391, 0.607689, -0.352613, -0.973527, -0.703281,
	0.213946, 0.936819, 0.788606, -0.0478781, -0.34354,
}

// selftestTolerance matches the reference to 6 decimal places.
const selftestTolerance = 1.5e-6

func newSelftestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Check the interpolator against a reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest(cmd, a)
		},
	}
}

func runSelftest(cmd *cobra.Command, a *app) error {
	x := make([]float64, 10)
	y := make([]float64, 10)
	queries := make([]float64, 10)
	for i := range x {
		x[i] = float64(i + 1)
		y[i] = math.Sin(x[i])
		queries[i] = x[i] + 0.5
	}
	queries[9] = 9.8

	// Force the parallel path to fan out even on this small input.
	s, err := spline.New(x, y,
		spline.WithLogger(a.logger),
		spline.WithParallelThreshold(0),
		spline.WithBlockSize(4))
	if err != nil {
		return err
	}

	for _, parallel := range []bool{false, true} {
		got := s.Evaluate(queries, parallel)
		for i, v := range got {
			if diff := math.Abs(v - selftestWant[i]); diff > selftestTolerance {
				a.logger.Error("selftest mismatch",
					zap.Bool("parallel", parallel),
					zap.Float64("query", queries[i]),
					zap.Float64("got", v),
					zap.Float64("want", selftestWant[i]))
				return fmt.Errorf("selftest failed at x = %v (parallel = %v): got %.7f, want %.7f",
					queries[i], parallel, v, selftestWant[i])
			}
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Test OK")
	return err
}
