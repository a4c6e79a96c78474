package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/timpalpant/zerosum"
)

type writeFunc func(w io.Writer, report *zerosum.Report) error

func reportWriter(format string) (writeFunc, error) {
	switch format {
	case "text":
		return writeText, nil
	case "json":
		return writeJSON, nil
	default:
		return nil, errors.Errorf("unknown output format: %q", format)
	}
}

func writeJSON(w io.Writer, report *zerosum.Report) error {
	enc := json.NewEncoder(w)
	return enc.Encode(report)
}

func writeText(w io.Writer, report *zerosum.Report) error {
	fmt.Fprintln(w, report.Original)
	if report.Reduced != nil {
		fmt.Fprintln(w, "The game has dominated options, the simplified matrix is")
		fmt.Fprintln(w, report.Reduced.Matrix)
	}

	if s := report.SaddlePoint; s != nil {
		fmt.Fprintf(w, "The game has a saddle point at (%d, %d)\n", s.Row, s.Col)
		fmt.Fprintf(w, "The game value is %v\n", report.Value)
		fmt.Fprintf(w, "The optimal strategies are pure: row %d and column %d\n", s.Row, s.Col)
		_, err := fmt.Fprintln(w)
		return err
	}

	fmt.Fprintln(w, "The game has no saddle points")
	fmt.Fprintf(w, "The game value is %v\n", report.Value)
	fmt.Fprintln(w, "The optimal strategies for the row and column player are")
	tw := tabwriter.NewWriter(w, 0, 4, 4, ' ', 0)
	fmt.Fprintln(tw, "Row Player\tColumn Player")
	fmt.Fprintf(tw, "%v\t%v\n", report.RowStrategy, report.ColumnStrategy)
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w)
	return err
}
