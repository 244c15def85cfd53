package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goframe/frame"
	"github.com/sartorproj/goframe/interp"
)

type resampler[I any] func(t *frame.Table[I, float64, string], targets []I) (*frame.Table[I, float64, string], error)

type interpolateOptions struct {
	at     []string
	every  string
	method string
}

func (a *app) interpolateCmd() *cobra.Command {
	var o interpolateOptions
	cmd := &cobra.Command{
		Use:   "interpolate <file.csv>",
		Short: "Resample every column at new index keys",
		Long: `interpolate evaluates every column at the keys given by --at, or at regular
steps of --every from the first to the last key. Keys outside the source range
take the nearest edge value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(o.at) == 0) == (o.every == "") {
				return fmt.Errorf("exactly one of --at or --every is required")
			}
			if a.timeIndex {
				t, err := load(a, args[0], frame.LoadTimeCSV)
				if err != nil {
					return err
				}
				fn := interp.LinearTime[string]
				if o.method == "spline" {
					fn = interp.SplineTime[string]
				}
				return runInterpolate(a, cmd.OutOrStdout(), t, a.timeCodec(), timeSteps, fn, o)
			}
			t, err := load(a, args[0], frame.LoadCSV)
			if err != nil {
				return err
			}
			fn := interp.Linear[float64, string]
			if o.method == "spline" {
				fn = interp.Spline[float64, string]
			}
			return runInterpolate(a, cmd.OutOrStdout(), t, numberCodec(), numberSteps, fn, o)
		},
	}
	cmd.Flags().StringSliceVar(&o.at, "at", nil, "ascending keys to evaluate at")
	cmd.Flags().StringVar(&o.every, "every", "", "step between keys (a number, or a duration with --time)")
	cmd.Flags().StringVar(&o.method, "method", "linear", "interpolation method: linear or spline")
	return cmd
}

func numberSteps(first, last float64, every string) ([]float64, error) {
	step, err := strconv.ParseFloat(every, 64)
	if err != nil || step <= 0 {
		return nil, fmt.Errorf("invalid step %q (use a positive number)", every)
	}
	var out []float64
	for i := 0; ; i++ {
		k := first + float64(i)*step
		if k > last {
			break
		}
		out = append(out, k)
	}
	return out, nil
}

func timeSteps(first, last time.Time, every string) ([]time.Time, error) {
	step, err := time.ParseDuration(every)
	if err != nil || step <= 0 {
		return nil, fmt.Errorf("invalid step %q (use a positive duration)", every)
	}
	var out []time.Time
	for k := first; !k.After(last); k = k.Add(step) {
		out = append(out, k)
	}
	return out, nil
}

func runInterpolate[I any](a *app, w io.Writer, t *frame.Table[I, float64, string], codec keyCodec[I], steps func(first, last I, every string) ([]I, error), fn resampler[I], o interpolateOptions) error {
	if o.method != "linear" && o.method != "spline" {
		return fmt.Errorf("unknown interpolation method %q (use linear or spline)", o.method)
	}

	var (
		targets []I
		err     error
	)
	if o.every != "" {
		index := t.Index()
		if len(index) == 0 {
			return writeTable(a, w, t, a.indexName(), codec.format)
		}
		targets, err = steps(index[0], index[len(index)-1], o.every)
	} else {
		targets, err = codec.parseAll(o.at)
	}
	if err != nil {
		return err
	}

	result, err := fn(t, targets)
	if err != nil {
		return err
	}
	a.log.Debug("interpolated table", "method", o.method, "targets", len(targets), "source_rows", t.Len())
	return writeTable(a, w, result, a.indexName(), codec.format)
}
