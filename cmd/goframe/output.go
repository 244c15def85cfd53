package main

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goframe/frame"
)

type tableDoc struct {
	Index  string   `yaml:"index"`
	Fields []string `yaml:"fields"`
	Rows   []rowDoc `yaml:"rows"`
}

type rowDoc struct {
	Key    string    `yaml:"key"`
	Values []float64 `yaml:"values,flow"`
}

func round(v float64, precision int) float64 {
	if precision < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(precision))
	if r := math.Round(v*scale) / scale; !math.IsInf(r, 0) && !math.IsNaN(r) {
		return r
	}
	return v
}

func roundTable[I any](t *frame.Table[I, float64, string], precision int) (*frame.Table[I, float64, string], error) {
	if precision < 0 {
		return t, nil
	}
	return frame.MapColumns(t, func(_ string, values []float64) ([]float64, error) {
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = round(v, precision)
		}
		return out, nil
	})
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeTable writes t in the configured output format.
func writeTable[I any](a *app, w io.Writer, t *frame.Table[I, float64, string], indexName string, formatKey func(I) string) error {
	t, err := roundTable(t, a.cfg.FloatPrecision)
	if err != nil {
		return err
	}
	if a.cfg.OutputFormat == "csv" {
		return frame.WriteCSV(w, t, indexName, formatKey)
	}

	fields := t.Fields()
	doc := tableDoc{Index: indexName, Fields: fields, Rows: make([]rowDoc, 0, t.Len())}
	for key, row := range t.All() {
		values := make([]float64, len(fields))
		for i, f := range fields {
			values[i] = row[f]
		}
		doc.Rows = append(doc.Rows, rowDoc{Key: formatKey(key), Values: values})
	}
	return writeYAML(w, doc)
}

// writeRecords writes a header and rows as CSV.
func writeRecords(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(round(v, precision), 'f', -1, 64)
}
