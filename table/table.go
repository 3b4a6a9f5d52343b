// Package table prints a relation matrix as an aligned text table.
package table

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Matrix is the read-only view of a relation matrix the printer needs.
type Matrix interface {
	Size() int
	At(i, j int) int
}

const empty = "."

// Write prints m with labels heading its rows and columns. Empty cells
// print as ".". With names set, relation ids are replaced by names.
func Write(w io.Writer, m Matrix, labels []string, names func(id int) string) error {
	if len(labels) != m.Size() {
		return fmt.Errorf("got %d labels for a %dx%d matrix", len(labels), m.Size(), m.Size())
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, l := range labels {
		fmt.Fprintf(tw, "%s\t", l)
	}
	fmt.Fprintln(tw)

	for i := 0; i < m.Size(); i++ {
		fmt.Fprintf(tw, "%s\t", labels[i])
		for j := 0; j < m.Size(); j++ {
			fmt.Fprintf(tw, "%s\t", cell(m.At(i, j), names))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func cell(id int, names func(int) string) string {
	if id < 0 {
		return empty
	}
	if names != nil {
		if n := names(id); n != "" {
			return n
		}
	}
	return strconv.Itoa(id)
}
