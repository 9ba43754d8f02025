// Package output renders command results as tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Table is implemented by results that have a tabular form.
type Table interface {
	Header() []string
	Rows() [][]string
}

// Print writes v to w. Values that are not a Table are printed as JSON
// regardless of format.
func Print(w io.Writer, format string, v any) error {
	t, ok := v.(Table)
	if format == "json" || !ok {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Header())
	for _, row := range t.Rows() {
		tw.Append(row)
	}
	tw.Render()
	return nil
}
