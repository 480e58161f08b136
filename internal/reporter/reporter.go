package reporter

// Table is the uniform record shape rendered by the reporters. The CLI
// flattens every result type into one of these: a column header, the data
// records, and the per-site metadata.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
	Meta    map[string]map[string]any
}

// Reporter is the interface for output formatters.
type Reporter interface {
	// Report renders the table.
	Report(table *Table) ([]byte, error)
}

// Get returns a reporter for the specified format.
func Get(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	case "csv":
		return &CSVReporter{}
	default:
		return &TerminalReporter{}
	}
}
