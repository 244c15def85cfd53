package frame

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestReadCSV(t *testing.T) {
	csvData := `elapsed,speed,alt
0,10.5,100
1,11,NA
2,12.5,120`

	tbl, err := ReadCSV(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if tbl.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", tbl.Len())
	}
	if !tbl.HasAll("speed", "alt") || tbl.Has("elapsed") {
		t.Errorf("Expected fields [speed alt], got %v", tbl.Fields())
	}
	if v, _ := tbl.Value("speed", 2); v != 12.5 {
		t.Errorf("Expected speed 12.5, got %f", v)
	}
	if v, _ := tbl.Value("alt", 1); !math.IsNaN(v) {
		t.Errorf("Expected NaN for NA, got %f", v)
	}
}

func TestReadCSVOptions(t *testing.T) {
	csvData := `# exported log
speed;sample;alt
10;5;100
11;6;110`

	opts := DefaultCSVOptions()
	opts.Delimiter = ';'
	opts.SkipRows = 1
	opts.IndexColumn = "sample"
	opts.Columns = []string{"alt"}

	tbl, err := ReadCSV(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}
	if tbl.Index()[0] != 5 {
		t.Errorf("Expected first key 5, got %f", tbl.Index()[0])
	}
	if len(tbl.Fields()) != 1 || !tbl.Has("alt") {
		t.Errorf("Expected only alt, got %v", tbl.Fields())
	}

	opts.Columns = []string{"nope"}
	if _, err := ReadCSV(strings.NewReader(csvData), opts); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
}

func TestReadCSVNoHeader(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.HasHeader = false

	tbl, err := ReadCSV(strings.NewReader("0,1\n1,2\n"), opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}
	if tbl.Len() != 2 || !tbl.Has("c2") {
		t.Errorf("Expected 2 rows with field c2, got %d %v", tbl.Len(), tbl.Fields())
	}
}

func TestReadCSVOutOfOrder(t *testing.T) {
	csvData := "t,v\n0,1\n2,2\n1,3\n"

	_, err := ReadCSV(strings.NewReader(csvData), nil)
	if !errors.Is(err, ErrInconsistentIndexOrder) {
		t.Errorf("Expected ErrInconsistentIndexOrder, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "line 4") {
		t.Errorf("Expected error to name line 4, got %v", err)
	}

	_, err = ReadCSV(strings.NewReader("t,v\n0,1\n0,2\n"), nil)
	if !errors.Is(err, ErrDuplicateIndex) {
		t.Errorf("Expected ErrDuplicateIndex, got %v", err)
	}
}

func TestReadTimeCSV(t *testing.T) {
	csvData := `ds,y
2020-01-01,100
2020-01-02,101
2020-01-03,102`

	tbl, err := ReadTimeCSV(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}
	want := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	if !tbl.Index()[1].Equal(want) {
		t.Errorf("Expected %v, got %v", want, tbl.Index()[1])
	}

	if _, err := ReadTimeCSV(strings.NewReader("ds,y\nyesterday,1\n"), nil); err == nil {
		t.Error("Expected parse error for bad date")
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := New[float64, float64]("a", "b")
	tbl.UnsafeAppend([]string{"a", "b"}, []float64{1, 2.5}, 0)
	tbl.UnsafeAppend([]string{"a", "b"}, []float64{3, 4}, 1)

	var buf bytes.Buffer
	format := func(k float64) string { return strconv.FormatFloat(k, 'f', -1, 64) }
	if err := WriteCSV(&buf, tbl, "t", format); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "t,a,b\n0,1,2.5\n1,3,4\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}

	back, err := ReadCSV(strings.NewReader(buf.String()), nil)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if v, _ := back.Value("b", 0); v != 2.5 {
		t.Errorf("Expected 2.5, got %f", v)
	}
}
