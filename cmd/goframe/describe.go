package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goframe/extract"
	"github.com/sartorproj/goframe/frame"
	"github.com/sartorproj/goframe/stats"
)

type statsReport struct {
	Count           int     `yaml:"count"`
	Unit            string  `yaml:"unit,omitempty"`
	Start           float64 `yaml:"start"`
	End             float64 `yaml:"end"`
	Min             float64 `yaml:"min"`
	Max             float64 `yaml:"max"`
	Average         float64 `yaml:"average"`
	WeightedAverage float64 `yaml:"weighted_average"`
	StdDev          float64 `yaml:"stddev"`
	Total           float64 `yaml:"total"`
}

var statsHeader = []string{"field", "count", "unit", "start", "end", "min", "max", "average", "weighted_average", "stddev", "total"}

func newStatsReport(s stats.ValueStats, precision int) statsReport {
	return statsReport{
		Count:           s.Count(),
		Unit:            string(s.Unit()),
		Start:           round(s.Start(), precision),
		End:             round(s.End(), precision),
		Min:             round(s.Min(), precision),
		Max:             round(s.Max(), precision),
		Average:         round(s.Average(), precision),
		WeightedAverage: round(s.WeightedAverage(), precision),
		StdDev:          round(s.StdDev(), precision),
		Total:           round(s.Total(), precision),
	}
}

func (r statsReport) record(field string) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{field, strconv.Itoa(r.Count), r.Unit, f(r.Start), f(r.End), f(r.Min), f(r.Max), f(r.Average), f(r.WeightedAverage), f(r.StdDev), f(r.Total)}
}

// parseUnits parses field=unit pairs.
func parseUnits(pairs []string) (map[string]stats.Unit, error) {
	units := make(map[string]stats.Unit, len(pairs))
	for _, p := range pairs {
		field, unit, ok := strings.Cut(p, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid unit %q (use field=unit)", p)
		}
		units[field] = stats.Unit(unit)
	}
	return units, nil
}

func (a *app) describeCmd() *cobra.Command {
	var (
		weight string
		units  []string
	)
	cmd := &cobra.Command{
		Use:   "describe <file.csv>",
		Short: "Summarize every column of a CSV log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseUnits(units)
			if err != nil {
				return err
			}
			if a.timeIndex {
				t, err := load(a, args[0], frame.LoadTimeCSV)
				if err != nil {
					return err
				}
				return runDescribe(a, cmd.OutOrStdout(), t, weight, u)
			}
			t, err := load(a, args[0], frame.LoadCSV)
			if err != nil {
				return err
			}
			return runDescribe(a, cmd.OutOrStdout(), t, weight, u)
		},
	}
	cmd.Flags().StringVar(&weight, "weight", "", "column holding per-row weights")
	cmd.Flags().StringSliceVar(&units, "unit", nil, "unit of a column as field=unit (repeatable)")
	return cmd
}

func runDescribe[I any](a *app, w io.Writer, t *frame.Table[I, float64, string], weight string, units map[string]stats.Unit) error {
	policy, err := a.cfg.Policy()
	if err != nil {
		return err
	}
	var summary map[string]stats.ValueStats
	if weight != "" {
		summary, err = extract.DescribeWeighted(t, weight, units, stats.WithPolicy(policy))
	} else {
		summary, err = extract.DescribeValues(t, units, stats.WithPolicy(policy))
	}
	if err != nil {
		return err
	}
	a.log.Debug("described table", "fields", len(summary), "policy", policy)

	if a.cfg.OutputFormat == "csv" {
		var rows [][]string
		for _, f := range t.Fields() {
			if s, ok := summary[f]; ok {
				rows = append(rows, newStatsReport(s, a.cfg.FloatPrecision).record(f))
			}
		}
		return writeRecords(w, statsHeader, rows)
	}
	doc := make(map[string]statsReport, len(summary))
	for f, s := range summary {
		doc[f] = newStatsReport(s, a.cfg.FloatPrecision)
	}
	return writeYAML(w, doc)
}
