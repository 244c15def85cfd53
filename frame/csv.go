package frame

import (
	"bufio"
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	IndexColumn string   // Column holding the index (default: first column)
	Columns     []string // Value columns to load (default: all but the index)
	TimeFormat  string   // Layout for time indexes (default: time.RFC3339)
	HasHeader   bool     // Whether CSV has header row (default: true)
	Delimiter   rune     // Field delimiter (default: ',')
	SkipRows    int      // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeFormat: time.RFC3339,
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads a table with a numeric index from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Table[float64, float64, string], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file, opts)
}

// ReadCSV reads a table with a numeric index from r.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Table[float64, float64, string], error) {
	return readCSV(r, opts, cmp.Compare[float64], func(s string, _ *CSVOptions) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// LoadTimeCSV loads a table with a time index from a CSV file.
func LoadTimeCSV(filename string, opts *CSVOptions) (*Table[time.Time, float64, string], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadTimeCSV(file, opts)
}

// ReadTimeCSV reads a table with a time index from r.
func ReadTimeCSV(r io.Reader, opts *CSVOptions) (*Table[time.Time, float64, string], error) {
	return readCSV(r, opts, time.Time.Compare, parseTime)
}

func parseTime(s string, opts *CSVOptions) (time.Time, error) {
	// Try multiple date formats
	formats := []string{
		opts.TimeFormat,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	var err error
	for _, layout := range formats {
		if layout == "" {
			continue
		}
		var ts time.Time
		ts, err = time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

func parseValue(s string) float64 {
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func readCSV[I any](r io.Reader, opts *CSVOptions, compare func(a, b I) int, parseKey func(string, *CSVOptions) (I, error)) (*Table[I, float64, string], error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Skip rows if needed
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	first, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("no data found in CSV")
	}
	if err != nil {
		return nil, err
	}

	headers := make([]string, len(first))
	for i, h := range first {
		if opts.HasHeader {
			headers[i] = strings.TrimSpace(strings.Trim(h, "\""))
		} else {
			headers[i] = "c" + strconv.Itoa(i+1)
		}
	}

	indexIdx := 0
	if opts.IndexColumn != "" {
		indexIdx = -1
		for i, h := range headers {
			if h == opts.IndexColumn {
				indexIdx = i
				break
			}
		}
		if indexIdx == -1 {
			return nil, unknownField(opts.IndexColumn)
		}
	}

	var fields []string
	var positions []int
	if len(opts.Columns) > 0 {
		for _, name := range opts.Columns {
			pos := -1
			for i, h := range headers {
				if h == name {
					pos = i
					break
				}
			}
			if pos == -1 {
				return nil, unknownField(name)
			}
			fields = append(fields, name)
			positions = append(positions, pos)
		}
	} else {
		for i, h := range headers {
			if i != indexIdx {
				fields = append(fields, h)
				positions = append(positions, i)
			}
		}
	}

	t := NewFunc[I, float64, string](compare, fields...)
	row := make([]float64, len(fields))
	line := opts.SkipRows + 1

	addRecord := func(record []string) error {
		if indexIdx >= len(record) {
			return fmt.Errorf("line %d: %w: missing index column", line, ErrInconsistentDataSize)
		}
		key, err := parseKey(strings.TrimSpace(strings.Trim(record[indexIdx], "\"")), opts)
		if err != nil {
			return fmt.Errorf("line %d: parse index: %w", line, err)
		}
		for i, pos := range positions {
			row[i] = math.NaN()
			if pos < len(record) {
				row[i] = parseValue(strings.TrimSpace(strings.Trim(record[pos], "\"")))
			}
		}
		if err := t.AppendNew(fields, row, key); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		return nil
	}

	if !opts.HasHeader {
		if err := addRecord(first); err != nil {
			return nil, err
		}
	}

	// Read data rows
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if err := addRecord(record); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// WriteCSV writes t to w with the index in the first column, formatted by
// formatKey.
func WriteCSV[I any](w io.Writer, t *Table[I, float64, string], indexName string, formatKey func(I) string) error {
	writer := bufio.NewWriter(w)
	cw := csv.NewWriter(writer)

	header := append([]string{indexName}, t.fields...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for pos, key := range t.keys() {
		record[0] = formatKey(key)
		for i, f := range t.fields {
			record[i+1] = strconv.FormatFloat(t.columns[f][pos], 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return writer.Flush()
}
