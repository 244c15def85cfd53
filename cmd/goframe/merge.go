package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goframe/frame"
)

func (a *app) mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <first.csv> <second.csv>...",
		Short: "Merge logs into one table on the union of their index keys",
		Long: `merge interleaves the rows of every file by key. When two files share a key
the row from the earlier file is kept. Only columns present in every file are
written.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.timeIndex {
				return runMerge(a, cmd.OutOrStdout(), args, frame.LoadTimeCSV, a.timeCodec())
			}
			return runMerge(a, cmd.OutOrStdout(), args, frame.LoadCSV, numberCodec())
		},
	}
}

func runMerge[I any](a *app, w io.Writer, paths []string, read func(string, *frame.CSVOptions) (*frame.Table[I, float64, string], error), codec keyCodec[I]) error {
	var merged *frame.Table[I, float64, string]
	for _, path := range paths {
		t, err := load(a, path, read)
		if err != nil {
			return err
		}
		if merged == nil {
			merged = t
			continue
		}
		merged = merged.Merged(t)
	}
	a.log.Debug("merged tables", "files", len(paths), "rows", merged.Len(), "fields", len(merged.Fields()))
	return writeTable(a, w, merged, a.indexName(), codec.format)
}
