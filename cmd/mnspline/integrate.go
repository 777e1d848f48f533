package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type integrateFlags struct {
	table     tableFlags
	from, to  float64
	precision int
}

func newIntegrateCmd(a *app) *cobra.Command {
	f := &integrateFlags{}

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrate the spline between two points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrate(cmd, a, f)
		},
	}

	f.table.register(cmd)
	fs := cmd.Flags()
	fs.Float64Var(&f.from, "from", 0, "lower limit")
	fs.Float64Var(&f.to, "to", 0, "upper limit")
	fs.IntVar(&f.precision, "precision", 6, "digits after the decimal point")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runIntegrate(cmd *cobra.Command, a *app, f *integrateFlags) error {
	s, _, err := f.table.build(cmd, a.logger)
	if err != nil {
		return err
	}
	v := s.Integral(f.from, f.to)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'f', f.precision, 64))
	return err
}
