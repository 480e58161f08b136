package reporter_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wxdata/acis/internal/reporter"
)

func testTable() *reporter.Table {
	return &reporter.Table{
		Title:   "StnData",
		Columns: []string{"uid", "date", "maxt"},
		Rows: [][]string{
			{"92", "2012-08-03", "113"},
			{"92", "2012-08-04", "98"},
		},
		Meta: map[string]map[string]any{
			"92": {"name": "Oklahoma City"},
		},
	}
}

func TestGet(t *testing.T) {
	require.IsType(t, &reporter.JSONReporter{}, reporter.Get("json"))
	require.IsType(t, &reporter.CSVReporter{}, reporter.Get("csv"))
	require.IsType(t, &reporter.TerminalReporter{}, reporter.Get("terminal"))
	require.IsType(t, &reporter.TerminalReporter{}, reporter.Get(""))
}

func TestTerminalReport(t *testing.T) {
	output, err := (&reporter.TerminalReporter{}).Report(testTable())
	require.NoError(t, err)
	text := string(output)
	require.Contains(t, text, "StnData")
	require.Contains(t, text, "Oklahoma City")
	require.Contains(t, text, "2012-08-03")
	require.Contains(t, text, "2 records")
}

func TestTerminalReportEmpty(t *testing.T) {
	output, err := (&reporter.TerminalReporter{}).Report(&reporter.Table{
		Columns: []string{"uid", "date", "maxt"},
	})
	require.NoError(t, err)
	require.Contains(t, string(output), "No records")
}

func TestJSONReport(t *testing.T) {
	output, err := (&reporter.JSONReporter{}).Report(testTable())
	require.NoError(t, err)

	var decoded struct {
		Title   string                    `json:"title"`
		Meta    map[string]map[string]any `json:"meta"`
		Columns []string                  `json:"columns"`
		Records [][]string                `json:"records"`
		Count   int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(output, &decoded))
	require.Equal(t, "StnData", decoded.Title)
	require.Equal(t, []string{"uid", "date", "maxt"}, decoded.Columns)
	require.Len(t, decoded.Records, 2)
	require.Equal(t, 2, decoded.Count)
	require.Equal(t, "Oklahoma City", decoded.Meta["92"]["name"])
}

func TestCSVReport(t *testing.T) {
	output, err := (&reporter.CSVReporter{}).Report(testTable())
	require.NoError(t, err)
	require.Equal(t, "uid,date,maxt\n92,2012-08-03,113\n92,2012-08-04,98\n", string(output))
}
