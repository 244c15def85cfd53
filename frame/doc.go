// Package frame provides an in-memory column store keyed by an ordered index.
//
// A Table holds one shared index and any number of named columns of the same
// value type. The index is strictly increasing and every column has exactly
// one value per index key. Checked mutations enforce both rules; every
// transformation returns a freshly allocated table and leaves its receiver
// untouched.
//
// # Creating a Table
//
// Build a table row by row:
//
//	t := frame.New[int, float64, string]("speed", "altitude")
//	err := t.AppendFields([]string{"speed", "altitude"}, []float64{12.5, 300}, 0)
//
// Or from columns that are already in memory:
//
//	t, err := frame.FromColumns([]int{0, 1, 2}, map[string][]float64{
//	    "speed": {12.5, 13.0, 13.2},
//	})
//
// Time keyed tables use time.Time.Compare:
//
//	t := frame.NewTimeIndexed[float64, string]("hr")
//
// # Appending
//
// Append, AppendFields and AppendRow accept a key equal to the last key and
// update that row in place, which lets a row be assembled one field at a
// time. Until every field of that row is set, readers see the table without
// it, and a new key is refused. AppendNew rejects a repeated key. UnsafeAppend skips every check and
// must be followed by Validate before the table is used.
//
// # Combining and Slicing
//
//	merged := a.Merged(b)             // index union, a wins on equal keys
//	window := t.Sliced(&start, &end)  // keys in [start, end)
//	common := t.ReducedToCommonIndex(keys)
//
// # Numeric Helpers
//
// Tables of float64 values get column statistics backed by gonum:
//
//	sum, ok := frame.Sum(t, "speed")
//	cum := frame.CumSum(t)
//	clean := frame.DropNA(t, []string{"speed"}, true)
//
// # Loading CSV
//
//	opts := frame.DefaultCSVOptions()
//	opts.IndexColumn = "elapsed"
//	t, err := frame.LoadCSV("flight.csv", opts)
package frame
