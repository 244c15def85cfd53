package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goframe/frame"
	"github.com/sartorproj/goframe/quantile"
)

func (a *app) quantilesCmd() *cobra.Command {
	var (
		qs     []float64
		method string
	)
	cmd := &cobra.Command{
		Use:   "quantiles <file.csv>",
		Short: "Compute quantiles of every column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.cfg.Method()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("method") {
				if m, err = quantile.ParseMethod(method); err != nil {
					return err
				}
			}
			if a.timeIndex {
				t, err := load(a, args[0], frame.LoadTimeCSV)
				if err != nil {
					return err
				}
				return runQuantiles(a, cmd.OutOrStdout(), t, qs, m)
			}
			t, err := load(a, args[0], frame.LoadCSV)
			if err != nil {
				return err
			}
			return runQuantiles(a, cmd.OutOrStdout(), t, qs, m)
		},
	}
	cmd.Flags().Float64SliceVar(&qs, "q", []float64{0.25, 0.5, 0.75}, "quantiles to compute, each in [0,1]")
	cmd.Flags().StringVar(&method, "method", "", "interpolation method: linear, lower, higher or midpoint (overrides config)")
	return cmd
}

func runQuantiles[I any](a *app, w io.Writer, t *frame.Table[I, float64, string], qs []float64, m quantile.Method) error {
	result := quantile.Quantiles(t, qs, m)
	a.log.Debug("computed quantiles", "requested", len(qs), "valid", result.Len(), "method", m)
	return writeTable(a, w, result, "q", numberCodec().format)
}
