package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type evalFlags struct {
	table      tableFlags
	queries    string
	parallel   bool
	derivative int
	precision  int
	tabular    bool
}

func newEvalCmd(a *app) *cobra.Command {
	f := &evalFlags{}

	cmd := &cobra.Command{
		Use:   "eval [query ...]",
		Short: "Evaluate the spline at query points",
		Long: `Evaluate the spline (or one of its derivatives) at every query point.

Queries are taken from the arguments and from --queries, a file of numbers
separated by commas or whitespace ("-" reads stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, a, f, args)
		},
	}

	f.table.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&f.queries, "queries", "q", "", "file of query points (- for stdin)")
	fs.BoolVarP(&f.parallel, "parallel", "p", false, "evaluate on multiple goroutines")
	fs.IntVarP(&f.derivative, "derivative", "d", 0, "derivative order (0-3)")
	fs.IntVar(&f.precision, "precision", 6, "digits after the decimal point")
	fs.BoolVarP(&f.tabular, "table", "t", false, "print query and value columns")

	return cmd
}

func runEval(cmd *cobra.Command, a *app, f *evalFlags, args []string) error {
	s, cfg, err := f.table.build(cmd, a.logger)
	if err != nil {
		return err
	}

	queries, err := parseFloats(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if f.queries != "" {
		more, err := readFloats(f.queries, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("--queries: %w", err)
		}
		queries = append(queries, more...)
	}
	if len(queries) == 0 {
		return fmt.Errorf("no query points given")
	}
	if f.derivative < 0 || f.derivative > 3 {
		return fmt.Errorf("--derivative must be between 0 and 3, got %d", f.derivative)
	}

	parallel := cfg.Parallel
	if cmd.Flags().Changed("parallel") {
		parallel = f.parallel
	}

	var values []float64
	if f.derivative == 0 {
		values = s.Evaluate(queries, parallel)
	} else {
		values = make([]float64, len(queries))
		for i, q := range queries {
			values[i] = s.Derivative(q, f.derivative)
		}
	}

	a.logger.Debug("evaluated",
		zap.Int("queries", len(queries)),
		zap.Int("derivative", f.derivative),
		zap.Bool("parallel", parallel))

	return printValues(cmd, queries, values, f.precision, f.tabular)
}

func printValues(cmd *cobra.Command, queries, values []float64, precision int, tabular bool) error {
	out := cmd.OutOrStdout()
	if !tabular {
		for _, v := range values {
			if _, err := fmt.Fprintln(out, strconv.FormatFloat(v, 'f', precision, 64)); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "x\tvalue\n-\t-----\n"); err != nil {
		return err
	}
	for i, v := range values {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n",
			strconv.FormatFloat(queries[i], 'g', -1, 64),
			strconv.FormatFloat(v, 'f', precision, 64),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
