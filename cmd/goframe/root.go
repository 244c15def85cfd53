package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/sartorproj/goframe/internal/config"
	"github.com/sartorproj/goframe/frame"
)

// app holds the global flags and the state shared by every subcommand.
type app struct {
	cfgFile   string
	debug     bool
	format    string
	timeIndex bool

	cfg *cfgpkg.Global
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "goframe",
		Short: "goframe: index-aligned column statistics over CSV logs",
		Long: `goframe loads CSV files into tables keyed by an ordered index (sample number,
elapsed seconds or timestamps) and computes statistics, quantiles, interval
aggregates, interpolations and regressions over their columns.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ~/.goframe/config.yaml)")
	pf.BoolVar(&a.debug, "debug", false, "enable debug output")
	pf.StringVar(&a.format, "format", "", "output format: yaml or csv (overrides config)")
	pf.BoolVar(&a.timeIndex, "time", false, "parse the index column as timestamps")

	root.AddCommand(
		a.describeCmd(),
		a.quantilesCmd(),
		a.extractCmd(),
		a.interpolateCmd(),
		a.regressCmd(),
		a.mergeCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	c, err := cfgpkg.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		c.OutputFormat = strings.ToLower(a.format)
		if err := c.Validate(); err != nil {
			return err
		}
	}
	a.cfg = c
	a.log.Debug("config loaded", "file", a.cfgFile, "format", c.OutputFormat, "precision", c.FloatPrecision)
	return nil
}

// keyCodec converts index keys to and from their command line and output
// form.
type keyCodec[I any] struct {
	parse  func(string) (I, error)
	format func(I) string
}

func (c keyCodec[I]) parseAll(values []string) ([]I, error) {
	out := make([]I, 0, len(values))
	for _, s := range values {
		k, err := c.parse(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func numberCodec() keyCodec[float64] {
	return keyCodec[float64]{
		parse: func(s string) (float64, error) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid index value %q", s)
			}
			return v, nil
		},
		format: func(k float64) string { return strconv.FormatFloat(k, 'f', -1, 64) },
	}
}

func (a *app) timeCodec() keyCodec[time.Time] {
	layout := a.cfg.TimeFormat
	return keyCodec[time.Time]{
		parse: func(s string) (time.Time, error) {
			for _, l := range []string{layout, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
				if ts, err := time.Parse(l, s); err == nil {
					return ts, nil
				}
			}
			return time.Time{}, fmt.Errorf("invalid time %q (layout %s)", s, layout)
		},
		format: func(k time.Time) string { return k.Format(layout) },
	}
}

func load[I any](a *app, path string, read func(string, *frame.CSVOptions) (*frame.Table[I, float64, string], error)) (*frame.Table[I, float64, string], error) {
	t, err := read(path, a.cfg.CSVOptions())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	a.log.Debug("table loaded", "file", path, "rows", t.Len(), "fields", len(t.Fields()))
	return t, nil
}

func (a *app) indexName() string {
	if a.cfg.IndexColumn != "" {
		return a.cfg.IndexColumn
	}
	return "index"
}
