package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goframe/extract"
	"github.com/sartorproj/goframe/frame"
	"github.com/sartorproj/goframe/stats"
)

type extractOptions struct {
	at         []string
	start, end string
	metric     string
	units      []string
}

func (a *app) extractCmd() *cobra.Command {
	var o extractOptions
	cmd := &cobra.Command{
		Use:   "extract <file.csv>",
		Short: "Aggregate every column over the intervals between boundaries",
		Long: `extract folds the rows between consecutive boundaries into running statistics
and prints one metric per interval, keyed by the interval's first boundary.
Rows before the first boundary fold into the first interval. --start and --end
restrict the rows considered; both bounds are inclusive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(o.at) == 0 {
				return fmt.Errorf("at least one boundary is required (--at)")
			}
			if a.timeIndex {
				t, err := load(a, args[0], frame.LoadTimeCSV)
				if err != nil {
					return err
				}
				return runExtract(a, cmd.OutOrStdout(), t, a.timeCodec(), o)
			}
			t, err := load(a, args[0], frame.LoadCSV)
			if err != nil {
				return err
			}
			return runExtract(a, cmd.OutOrStdout(), t, numberCodec(), o)
		},
	}
	cmd.Flags().StringSliceVar(&o.at, "at", nil, "ascending interval boundaries")
	cmd.Flags().StringVar(&o.start, "start", "", "ignore rows before this key")
	cmd.Flags().StringVar(&o.end, "end", "", "ignore rows after this key")
	cmd.Flags().StringVar(&o.metric, "metric", string(stats.Average), "metric to print: start, end, min, max, average, total or range")
	cmd.Flags().StringSliceVar(&o.units, "unit", nil, "unit of a column as field=unit (repeatable)")
	return cmd
}

func runExtract[I any](a *app, w io.Writer, t *frame.Table[I, float64, string], codec keyCodec[I], o extractOptions) error {
	metric, err := stats.ParseMetric(o.metric)
	if err != nil {
		return err
	}
	policy, err := a.cfg.Policy()
	if err != nil {
		return err
	}
	units, err := parseUnits(o.units)
	if err != nil {
		return err
	}
	boundaries, err := codec.parseAll(o.at)
	if err != nil {
		return err
	}
	var window extract.Window[I]
	if o.start != "" {
		k, err := codec.parse(o.start)
		if err != nil {
			return err
		}
		window.Start = &k
	}
	if o.end != "" {
		k, err := codec.parse(o.end)
		if err != nil {
			return err
		}
		window.End = &k
	}

	intervals, err := extract.ExtractValueStats(t, boundaries, window, units, stats.WithPolicy(policy))
	if err != nil {
		return err
	}
	a.log.Debug("extracted intervals", "boundaries", len(boundaries), "intervals", intervals.Len(), "metric", metric)

	values, err := frame.MapColumns(intervals, func(_ string, column []stats.ValueStats) ([]float64, error) {
		out := make([]float64, len(column))
		for i, s := range column {
			out[i] = s.Value(metric)
		}
		return out, nil
	})
	if err != nil {
		return err
	}
	return writeTable(a, w, values, a.indexName(), codec.format)
}
