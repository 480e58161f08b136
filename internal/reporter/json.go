package reporter

import "encoding/json"

// JSONReporter renders a table as JSON.
type JSONReporter struct{}

// jsonOutput is the JSON output structure.
type jsonOutput struct {
	Title   string                    `json:"title,omitempty"`
	Meta    map[string]map[string]any `json:"meta,omitempty"`
	Columns []string                  `json:"columns"`
	Records [][]string                `json:"records"`
	Count   int                       `json:"count"`
}

// Report renders the table as indented JSON.
func (r *JSONReporter) Report(table *Table) ([]byte, error) {
	output := jsonOutput{
		Title:   table.Title,
		Meta:    table.Meta,
		Columns: table.Columns,
		Records: table.Rows,
		Count:   len(table.Rows),
	}
	if output.Records == nil {
		output.Records = [][]string{}
	}
	return json.MarshalIndent(output, "", "  ")
}
