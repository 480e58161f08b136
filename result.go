package acis

import "sort"

// The result types give a uniform interface to decoded JSON results
// regardless of the call that produced them. Metadata is keyed by the ACIS
// site UID (or area id), so that field must be requested; the request
// builders do this automatically. Record iteration yields rows of the form
// (uid, date, elem values...) where each value is a string or a list,
// depending on how the element was specified in the call.

// checkResult validates a query's result object and derives the element
// aliases from its params.
func checkResult(query *Query) ([]string, error) {
	if query == nil || query.Params == nil || query.Result == nil {
		return nil, &ResultError{"missing required params and/or result values"}
	}
	if msg, ok := query.Result["error"].(string); ok {
		return nil, &ResultError{msg}
	}
	return resultElems(query.Params), nil
}

// siteUID extracts the uid from a site metadata object and removes it; the
// remaining fields become the stored metadata.
func siteUID(meta map[string]any) (int, bool) {
	uid, ok := meta["uid"].(float64)
	if !ok {
		return 0, false
	}
	delete(meta, "uid")
	return int(uid), true
}

// siteMeta coerces a result's per-site metadata object.
func siteMeta(value any) (map[string]any, bool) {
	meta, ok := value.(map[string]any)
	return meta, ok
}

// records coerces a result's per-site data array into rows.
func records(value any) [][]any {
	rows, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		if fields, ok := row.([]any); ok {
			out = append(out, fields)
		}
	}
	return out
}

func sortedUIDs[V any](m map[int]V) []int {
	uids := make([]int, 0, len(m))
	for uid := range m {
		uids = append(uids, uid)
	}
	sort.Ints(uids)
	return uids
}

// StnMetaResult is a result from a StnMeta call. Metadata is keyed by site
// UID, so that field must be included in the result.
type StnMetaResult struct {
	Meta map[int]map[string]any
}

// NewStnMetaResult parses a StnMeta query.
func NewStnMetaResult(query *Query) (*StnMetaResult, error) {
	if _, err := checkResult(query); err != nil {
		return nil, err
	}
	sites, ok := query.Result["meta"].([]any)
	if !ok {
		return nil, &ResultError{"result does not contain meta"}
	}
	result := &StnMetaResult{Meta: make(map[int]map[string]any, len(sites))}
	for _, value := range sites {
		site, ok := siteMeta(value)
		if !ok {
			return nil, &ResultError{"malformed site metadata"}
		}
		uid, ok := siteUID(site)
		if !ok {
			return nil, &ResultError{"metadata does not contain uid"}
		}
		result.Meta[uid] = site
	}
	return result, nil
}

// StnDataResult is a result from a StnData call. The interface is the same
// as for MultiStnDataResult even though StnData is a single-site call.
type StnDataResult struct {
	Elems []string
	Meta  map[int]map[string]any
	Data  map[int][][]any
	Smry  map[int][]any
}

// NewStnDataResult parses a StnData query.
func NewStnDataResult(query *Query) (*StnDataResult, error) {
	elems, err := checkResult(query)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, &ResultError{"no elems found in result"}
	}
	meta, ok := siteMeta(query.Result["meta"])
	if !ok {
		return nil, &ResultError{"result does not contain meta"}
	}
	uid, ok := siteUID(meta)
	if !ok {
		return nil, &ResultError{"metadata does not contain uid"}
	}
	smry, _ := query.Result["smry"].([]any)
	return &StnDataResult{
		Elems: elems,
		Meta:  map[int]map[string]any{uid: meta},
		Data:  map[int][][]any{uid: records(query.Result["data"])},
		Smry:  map[int][]any{uid: smry},
	}, nil
}

// Count returns the number of data records in this result. For "groupby"
// results this is the number of groups, not individual records.
func (r *StnDataResult) Count() int {
	count := 0
	for _, data := range r.Data {
		count += len(data)
	}
	return count
}

// Records returns all data records in chronological order. Each record is
// (uid, date, elem values...).
func (r *StnDataResult) Records() [][]any {
	var out [][]any
	for _, uid := range sortedUIDs(r.Data) {
		for _, row := range r.Data[uid] {
			record := make([]any, 0, len(row)+1)
			record = append(record, uid)
			record = append(record, row...)
			out = append(out, record)
		}
	}
	return out
}

// MultiStnDataResult is a result from a MultiStnData call.
type MultiStnDataResult struct {
	Elems []string
	Meta  map[int]map[string]any
	Data  map[int][][]any
	Smry  map[int][]any

	dates []string
}

// NewMultiStnDataResult parses a MultiStnData query. MultiStnData records
// do not carry their own dates, so they are reconstructed from the request
// params; the query must contain the params that were submitted.
func NewMultiStnDataResult(query *Query) (*MultiStnDataResult, error) {
	elems, err := checkResult(query)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, &ResultError{"no elems found in result"}
	}
	dates, err := DateRange(query.Params)
	if err != nil {
		return nil, err
	}
	sites, ok := query.Result["data"].([]any)
	if !ok {
		return nil, &ResultError{"result does not contain data"}
	}
	result := &MultiStnDataResult{
		Elems: elems,
		Meta:  make(map[int]map[string]any, len(sites)),
		Data:  make(map[int][][]any, len(sites)),
		Smry:  make(map[int][]any, len(sites)),
		dates: dates,
	}
	for _, value := range sites {
		site, ok := value.(map[string]any)
		if !ok {
			return nil, &ResultError{"malformed site entry"}
		}
		meta, ok := siteMeta(site["meta"])
		if !ok {
			return nil, &ResultError{"site does not contain meta"}
		}
		uid, ok := siteUID(meta)
		if !ok {
			return nil, &ResultError{"metadata does not contain uid"}
		}
		result.Meta[uid] = meta
		// For single-date requests MultiStnData returns the one record for
		// each site as a flat list, with no time dimension. (StnData always
		// returns a 2-D list.)
		if data, ok := site["data"].([]any); ok && len(dates) == 1 {
			site["data"] = []any{data}
		}
		result.Data[uid] = records(site["data"])
		result.Smry[uid], _ = site["smry"].([]any)
	}
	return result, nil
}

// Count returns the number of data records in this result.
func (r *MultiStnDataResult) Count() int {
	count := 0
	for _, data := range r.Data {
		count += len(data)
	}
	return count
}

// Records returns all data records grouped by site and in chronological
// order for each site. Each record is (uid, date, elem values...); every
// site has one record per date in the requested range.
func (r *MultiStnDataResult) Records() [][]any {
	var out [][]any
	for _, uid := range sortedUIDs(r.Data) {
		for i, row := range r.Data[uid] {
			record := make([]any, 0, len(row)+2)
			record = append(record, uid)
			if i < len(r.dates) {
				record = append(record, r.dates[i])
			} else {
				record = append(record, "")
			}
			record = append(record, row...)
			out = append(out, record)
		}
	}
	return out
}

// GridDataResult is a result from a GridData call. A point ("loc") call
// returns scalar values with a 1x1 shape; use "bbox" to retrieve rasters.
type GridDataResult struct {
	Elems []string
	Meta  map[string]any
	Data  [][]any
	Smry  []any
	Shape [2]int // rows, cols
}

// NewGridDataResult parses a GridData query.
func NewGridDataResult(query *Query) (*GridDataResult, error) {
	elems, err := checkResult(query)
	if err != nil {
		return nil, err
	}
	result := &GridDataResult{Elems: elems}
	result.Meta, _ = query.Result["meta"].(map[string]any)
	result.Data = records(query.Result["data"])
	result.Smry, _ = query.Result["smry"].([]any)
	if len(result.Data) == 0 || len(result.Data[0]) < 2 {
		result.Shape = [2]int{0, 0}
		return result, nil
	}
	if raster, ok := result.Data[0][1].([]any); ok {
		cols := 0
		if row, ok := raster[0].([]any); ok {
			cols = len(row)
		}
		result.Shape = [2]int{len(raster), cols}
	} else { // scalar point value
		result.Shape = [2]int{1, 1}
	}
	return result, nil
}

// Count returns the number of data values in this result: one per grid
// point per date.
func (r *GridDataResult) Count() int {
	return r.Shape[0] * r.Shape[1] * len(r.Data)
}

// Records returns all data records. Each record is (pos, date, elem
// values...) where pos is a [2]int (row, col) grid position, the analogue
// of uid in the station results.
func (r *GridDataResult) Records() [][]any {
	rows, cols := r.Shape[0], r.Shape[1]
	var out [][]any
	for _, day := range r.Data {
		if len(day) == 0 {
			continue
		}
		date := day[0]
		for j := 0; j < rows; j++ {
			for i := 0; i < cols; i++ {
				record := []any{[2]int{j, i}, date}
				for _, elem := range day[1:] {
					raster, ok := elem.([]any)
					if !ok { // scalar point value
						record = append(record, elem)
						continue
					}
					var cell any
					if j < len(raster) {
						if row, ok := raster[j].([]any); ok && i < len(row) {
							cell = row[i]
						}
					}
					record = append(record, cell)
				}
				out = append(out, record)
			}
		}
	}
	return out
}

// AreaMetaResult is a result from a General area metadata call (basin,
// county, and so on). Metadata is keyed by area id.
type AreaMetaResult struct {
	Meta map[string]map[string]any
}

// NewAreaMetaResult parses a General area query.
func NewAreaMetaResult(query *Query) (*AreaMetaResult, error) {
	if _, err := checkResult(query); err != nil {
		return nil, err
	}
	areas, ok := query.Result["meta"].([]any)
	if !ok {
		return nil, &ResultError{"result does not contain meta"}
	}
	result := &AreaMetaResult{Meta: make(map[string]map[string]any, len(areas))}
	for _, value := range areas {
		area, ok := value.(map[string]any)
		if !ok {
			return nil, &ResultError{"malformed area metadata"}
		}
		id, ok := area["id"].(string)
		if !ok {
			return nil, &ResultError{"metadata does not contain id"}
		}
		delete(area, "id")
		result.Meta[id] = area
	}
	return result, nil
}
