package reporter

import (
	"bytes"
	"encoding/csv"
)

// CSVReporter renders a table as CSV with a header row. Metadata is not
// included; use the JSON format to capture it.
type CSVReporter struct{}

// Report renders the table as CSV.
func (r *CSVReporter) Report(table *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Columns); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
