package acis_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wxdata/acis"
)

// loadResult decodes a JSON result fixture the way the client would.
func loadResult(t *testing.T, fixture string) acis.Result {
	t.Helper()
	var result acis.Result
	require.NoError(t, json.Unmarshal([]byte(fixture), &result))
	return result
}

func TestStnMetaResult(t *testing.T) {
	query := &acis.Query{
		Params: acis.Params{"county": "40109", "meta": []string{"uid", "name"}},
		Result: loadResult(t, `{"meta": [
			{"uid": 92, "name": "Oklahoma City"},
			{"uid": 186, "name": "Tulsa"}]}`),
	}
	result, err := acis.NewStnMetaResult(query)
	require.NoError(t, err)
	require.Equal(t, map[int]map[string]any{
		92:  {"name": "Oklahoma City"},
		186: {"name": "Tulsa"},
	}, result.Meta)
}

func TestStnMetaResultNoUID(t *testing.T) {
	query := &acis.Query{
		Params: acis.Params{"county": "40109"},
		Result: loadResult(t, `{"meta": [{"name": "Oklahoma City"}]}`),
	}
	_, err := acis.NewStnMetaResult(query)
	var rerr *acis.ResultError
	require.ErrorAs(t, err, &rerr)
	require.Contains(t, rerr.Message, "uid")
}

func TestResultServerError(t *testing.T) {
	query := &acis.Query{
		Params: acis.Params{"sid": "okc"},
		Result: loadResult(t, `{"error": "no data available"}`),
	}
	_, err := acis.NewStnMetaResult(query)
	var rerr *acis.ResultError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "no data available", rerr.Message)
}

func TestResultMissingQuery(t *testing.T) {
	_, err := acis.NewStnDataResult(&acis.Query{Params: acis.Params{}})
	var rerr *acis.ResultError
	require.ErrorAs(t, err, &rerr)
}

func stnDataQuery(t *testing.T) *acis.Query {
	t.Helper()
	return &acis.Query{
		Params: acis.Params{
			"sid":   "okc",
			"sdate": "2011-12-31",
			"edate": "2012-01-01",
			"elems": []acis.Params{{"name": "mint"}, {"name": "maxt"}},
			"meta":  []string{"uid", "name"},
		},
		Result: loadResult(t, `{
			"meta": {"uid": 92, "name": "Oklahoma City"},
			"data": [["2011-12-31", "44", "76"], ["2012-01-01", "34", "62"]],
			"smry": ["34", "76"]}`),
	}
}

func TestStnDataResult(t *testing.T) {
	result, err := acis.NewStnDataResult(stnDataQuery(t))
	require.NoError(t, err)
	require.Equal(t, []string{"mint", "maxt"}, result.Elems)
	require.Equal(t, map[string]any{"name": "Oklahoma City"}, result.Meta[92])
	require.Equal(t, []any{"34", "76"}, result.Smry[92])
	require.Equal(t, 2, result.Count())
	require.Equal(t, [][]any{
		{92, "2011-12-31", "44", "76"},
		{92, "2012-01-01", "34", "62"},
	}, result.Records())
}

func TestStnDataResultNoElems(t *testing.T) {
	query := stnDataQuery(t)
	delete(query.Params, "elems")
	_, err := acis.NewStnDataResult(query)
	var rerr *acis.ResultError
	require.ErrorAs(t, err, &rerr)
	require.Contains(t, rerr.Message, "elems")
}

func TestStnDataResultDuplicateElems(t *testing.T) {
	query := stnDataQuery(t)
	query.Params["elems"] = []acis.Params{
		{"name": "maxt"},
		{"name": "maxt", "smry": "max"},
	}
	result, err := acis.NewStnDataResult(query)
	require.NoError(t, err)
	require.Equal(t, []string{"maxt0", "maxt1"}, result.Elems)
}

func TestMultiStnDataResult(t *testing.T) {
	query := &acis.Query{
		Params: acis.Params{
			"state": "OK",
			"sdate": "2011-12-31",
			"edate": "2012-01-01",
			"elems": []acis.Params{{"name": "maxt"}},
		},
		Result: loadResult(t, `{"data": [
			{"meta": {"uid": 186, "name": "Tulsa"},
			 "data": [["78"], ["60"]]},
			{"meta": {"uid": 92, "name": "Oklahoma City"},
			 "data": [["76"], ["62"]]}]}`),
	}
	result, err := acis.NewMultiStnDataResult(query)
	require.NoError(t, err)
	require.Equal(t, 4, result.Count())
	require.Equal(t, map[string]any{"name": "Tulsa"}, result.Meta[186])
	// grouped by site, chronological within each site, dates
	// reconstructed from the request params
	require.Equal(t, [][]any{
		{92, "2011-12-31", "76"},
		{92, "2012-01-01", "62"},
		{186, "2011-12-31", "78"},
		{186, "2012-01-01", "60"},
	}, result.Records())
}

func TestMultiStnDataResultSingleDate(t *testing.T) {
	// for a single date the server returns each site's one record as a
	// flat list with no time dimension
	query := &acis.Query{
		Params: acis.Params{
			"state": "OK",
			"date":  "2012-08-03",
			"elems": []acis.Params{{"name": "maxt"}},
		},
		Result: loadResult(t, `{"data": [
			{"meta": {"uid": 92, "name": "Oklahoma City"}, "data": ["113"]}]}`),
	}
	result, err := acis.NewMultiStnDataResult(query)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count())
	require.Equal(t, [][]any{{92, "2012-08-03", "113"}}, result.Records())
}

func TestGridDataResultRaster(t *testing.T) {
	query := &acis.Query{
		Params: acis.Params{
			"bbox":  "-97.7,35.3,-97.5,35.5",
			"date":  "2012-08-03",
			"elems": "maxt",
		},
		Result: loadResult(t, `{
			"meta": {"lat": [[35.3, 35.3], [35.5, 35.5]]},
			"data": [["2012-08-03", [[110, 111], [112, 113]]]]}`),
	}
	result, err := acis.NewGridDataResult(query)
	require.NoError(t, err)
	require.Equal(t, []string{"maxt"}, result.Elems)
	require.Equal(t, [2]int{2, 2}, result.Shape)
	require.Equal(t, 4, result.Count())
	require.Equal(t, [][]any{
		{[2]int{0, 0}, "2012-08-03", float64(110)},
		{[2]int{0, 1}, "2012-08-03", float64(111)},
		{[2]int{1, 0}, "2012-08-03", float64(112)},
		{[2]int{1, 1}, "2012-08-03", float64(113)},
	}, result.Records())
}

func TestGridDataResultPoint(t *testing.T) {
	// a "loc" point call returns scalar values with a 1x1 shape
	query := &acis.Query{
		Params: acis.Params{"loc": "-97.6,35.4", "date": "2012-08-03", "elems": "maxt"},
		Result: loadResult(t, `{"data": [["2012-08-03", 113]]}`),
	}
	result, err := acis.NewGridDataResult(query)
	require.NoError(t, err)
	require.Equal(t, [2]int{1, 1}, result.Shape)
	require.Equal(t, 1, result.Count())
	require.Equal(t, [][]any{
		{[2]int{0, 0}, "2012-08-03", float64(113)},
	}, result.Records())
}

func TestGridDataResultEmpty(t *testing.T) {
	query := &acis.Query{
		Params: acis.Params{"loc": "-97.6,35.4", "date": "2012-08-03", "elems": "maxt"},
		Result: loadResult(t, `{"data": []}`),
	}
	result, err := acis.NewGridDataResult(query)
	require.NoError(t, err)
	require.Equal(t, [2]int{0, 0}, result.Shape)
	require.Equal(t, 0, result.Count())
	require.Empty(t, result.Records())
}

func TestAreaMetaResult(t *testing.T) {
	query := &acis.Query{
		Params: acis.Params{"state": "OK", "meta": "id,name"},
		Result: loadResult(t, `{"meta": [
			{"id": "40109", "name": "Oklahoma"},
			{"id": "40143", "name": "Tulsa"}]}`),
	}
	result, err := acis.NewAreaMetaResult(query)
	require.NoError(t, err)
	require.Equal(t, map[string]map[string]any{
		"40109": {"name": "Oklahoma"},
		"40143": {"name": "Tulsa"},
	}, result.Meta)
}

func TestAreaMetaResultNoID(t *testing.T) {
	query := &acis.Query{
		Params: acis.Params{"state": "OK"},
		Result: loadResult(t, `{"meta": [{"name": "Oklahoma"}]}`),
	}
	_, err := acis.NewAreaMetaResult(query)
	var rerr *acis.ResultError
	require.ErrorAs(t, err, &rerr)
}
