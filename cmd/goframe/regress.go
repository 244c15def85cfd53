package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goframe/frame"
	"github.com/sartorproj/goframe/regress"
)

type lineReport struct {
	Intercept float64 `yaml:"intercept"`
	Slope     float64 `yaml:"slope"`
}

func (a *app) regressCmd() *cobra.Command {
	var (
		x            string
		correlations bool
	)
	cmd := &cobra.Command{
		Use:   "regress <file.csv>",
		Short: "Fit every column against one column, or correlate all column pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (x == "") == !correlations {
				return fmt.Errorf("exactly one of --x or --correlations is required")
			}
			if a.timeIndex {
				t, err := load(a, args[0], frame.LoadTimeCSV)
				if err != nil {
					return err
				}
				return runRegress(a, cmd.OutOrStdout(), t, x)
			}
			t, err := load(a, args[0], frame.LoadCSV)
			if err != nil {
				return err
			}
			return runRegress(a, cmd.OutOrStdout(), t, x)
		},
	}
	cmd.Flags().StringVar(&x, "x", "", "column used as the explanatory variable")
	cmd.Flags().BoolVar(&correlations, "correlations", false, "print the correlation of every pair of columns")
	return cmd
}

// runRegress fits every column against x, or prints pairwise correlations
// when x is empty.
func runRegress[I any](a *app, w io.Writer, t *frame.Table[I, float64, string], x string) error {
	p := a.cfg.FloatPrecision
	fields := t.Fields()
	csvOut := a.cfg.OutputFormat == "csv"

	if x == "" {
		pairs := regress.Correlations(t)
		a.log.Debug("correlated columns", "pairs", len(pairs))
		var rows [][]string
		doc := make(map[string]map[string]float64)
		for i, fa := range fields {
			for _, fb := range fields[i+1:] {
				r, ok := pairs[regress.Pair[string]{A: fa, B: fb}]
				if !ok {
					continue
				}
				rows = append(rows, []string{fa, fb, formatFloat(r, p)})
				if doc[fa] == nil {
					doc[fa] = make(map[string]float64)
				}
				doc[fa][fb] = round(r, p)
			}
		}
		if csvOut {
			return writeRecords(w, []string{"a", "b", "r"}, rows)
		}
		return writeYAML(w, doc)
	}

	if !t.Has(x) {
		return fmt.Errorf("%w: %s", frame.ErrUnknownField, x)
	}
	lines := regress.LinearRegression(t, x)
	a.log.Debug("fitted lines", "x", x, "lines", len(lines))
	if csvOut {
		var rows [][]string
		for _, f := range fields {
			if l, ok := lines[f]; ok {
				rows = append(rows, []string{f, formatFloat(l.Intercept, p), formatFloat(l.Slope, p)})
			}
		}
		return writeRecords(w, []string{"field", "intercept", "slope"}, rows)
	}
	doc := make(map[string]lineReport, len(lines))
	for f, l := range lines {
		doc[f] = lineReport{Intercept: round(l.Intercept, p), Slope: round(l.Slope, p)}
	}
	return writeYAML(w, doc)
}
