package reporter

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
)

// TerminalReporter renders a table in a human-readable terminal format.
type TerminalReporter struct{}

// Report renders the table with aligned columns, preceded by the site
// metadata.
func (r *TerminalReporter) Report(table *Table) ([]byte, error) {
	var buf bytes.Buffer

	if table.Title != "" {
		buf.WriteString(table.Title + "\n")
		buf.WriteString(strings.Repeat("=", len(table.Title)) + "\n\n")
	}

	if len(table.Meta) > 0 {
		sids := make([]string, 0, len(table.Meta))
		for sid := range table.Meta {
			sids = append(sids, sid)
		}
		sort.Strings(sids)
		for _, sid := range sids {
			buf.WriteString(fmt.Sprintf("site %s\n", sid))
			meta := table.Meta[sid]
			fields := make([]string, 0, len(meta))
			for field := range meta {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				buf.WriteString(fmt.Sprintf("  %s: %v\n", field, meta[field]))
			}
		}
		buf.WriteString("\n")
	}

	if len(table.Rows) == 0 {
		buf.WriteString("No records.\n")
		return buf.Bytes(), nil
	}

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	buf.WriteString(fmt.Sprintf("\n%d records\n", len(table.Rows)))
	return buf.Bytes(), nil
}
