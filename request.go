package acis

import "context"

// request is the common machinery for the builder types. It accumulates a
// params object and submits it as a web services call.
type request struct {
	client   *Client
	callType string
	params   Params
}

func newRequest(client *Client, callType string) request {
	return request{
		client:   client,
		callType: callType,
		params:   Params{},
	}
}

// Params returns the params object as built so far. The returned map is
// live; submitting after modifying it sends the modifications.
func (r *request) Params() Params {
	return r.params
}

// Metadata sets the metadata fields to request. The uid field is added
// automatically because results are keyed by it.
func (r *request) Metadata(fields ...string) {
	meta := []string{"uid"}
	for _, field := range fields {
		if field != "uid" {
			meta = append(meta, field)
		}
	}
	r.params["meta"] = meta
}

func (r *request) submit(ctx context.Context) (*Query, error) {
	result, err := r.client.Call(ctx, r.callType, r.params)
	if err != nil {
		return nil, err
	}
	return &Query{Params: r.params, Result: result}, nil
}

// dataRequest extends request with the element and date handling shared by
// the station data calls.
type dataRequest struct {
	request
	interval any // "dly"/"mly"/"yly" or a [3]int (y, m, d)
}

func newDataRequest(client *Client, callType string) dataRequest {
	r := dataRequest{request: newRequest(client, callType)}
	r.params["elems"] = []Params{}
	r.Metadata()
	return r
}

// Interval sets the interval for this request by name. The default interval
// is daily ("dly").
func (r *dataRequest) Interval(name string) error {
	value, err := validIntervalName(name)
	if err != nil {
		return err
	}
	r.interval = value
	return nil
}

// IntervalYMD sets a (year, month, day) interval. Only the least-significant
// nonzero component is used.
func (r *dataRequest) IntervalYMD(yr, mo, da int) {
	r.interval = normalizeYMD(yr, mo, da)
}

// Dates sets the inclusive date range for this request. An empty edate makes
// sdate a single date. Dates must be YYYY[-MM[-DD]] strings or "por", which
// extends the range to the period of record in that direction.
func (r *dataRequest) Dates(sdate, edate string) error {
	params, err := dateParams(sdate, edate)
	if err != nil {
		return err
	}
	delete(r.params, "date")
	delete(r.params, "sdate")
	delete(r.params, "edate")
	for key, value := range params {
		r.params[key] = value
	}
	return nil
}

// AddElement adds a named element to this request. Re-adding a name replaces
// the existing element.
func (r *dataRequest) AddElement(name string, options Params) {
	elem := Params{"name": name}
	for key, value := range options {
		elem[key] = value
	}
	r.setElement(elem)
}

// AddElementVX adds an element by its var major (vX) code.
func (r *dataRequest) AddElementVX(vx int, options Params) {
	elem := Params{"vX": vx}
	for key, value := range options {
		elem[key] = value
	}
	r.setElement(elem)
}

func (r *dataRequest) setElement(elem Params) {
	alias := elementAlias(elem)
	elems := r.params["elems"].([]Params)
	for pos, existing := range elems {
		if elementAlias(existing) == alias {
			elems[pos] = elem
			return
		}
	}
	r.params["elems"] = append(elems, elem)
}

// DelElement removes the named element from this request.
func (r *dataRequest) DelElement(name string) {
	elems := r.params["elems"].([]Params)
	for pos, elem := range elems {
		if elementAlias(elem) == name {
			r.params["elems"] = append(elems[:pos], elems[pos+1:]...)
			return
		}
	}
}

// ClearElements removes all elements from this request.
func (r *dataRequest) ClearElements() {
	r.params["elems"] = []Params{}
}

// Params returns the params object as built so far, with the interval
// applied to every element. The interval has to be visible before the call
// is submitted: callers key response caches on these params, and the result
// types reconstruct record dates from them.
func (r *dataRequest) Params() Params {
	// All elements of a call share one interval.
	if r.interval != nil {
		for _, elem := range r.params["elems"].([]Params) {
			elem["interval"] = r.interval
		}
	}
	return r.params
}

func (r *dataRequest) submit(ctx context.Context) (*Query, error) {
	r.Params()
	return r.request.submit(ctx)
}

// StnMetaRequest builds a StnMeta call, which returns metadata for the
// sites matching a location.
type StnMetaRequest struct {
	request
}

// NewStnMetaRequest creates a StnMeta request.
func NewStnMetaRequest(client *Client) *StnMetaRequest {
	r := &StnMetaRequest{request: newRequest(client, "StnMeta")}
	r.Metadata()
	return r
}

// Location sets the location options for this request (sids, county, state,
// bbox, and so on).
func (r *StnMetaRequest) Location(options Params) {
	for key, value := range options {
		r.params[key] = value
	}
}

// Elements restricts the metadata to sites that report the named elements.
func (r *StnMetaRequest) Elements(names ...string) {
	elems := make([]Params, len(names))
	for i, name := range names {
		elems[i] = Params{"name": name}
	}
	r.params["elems"] = elems
}

// Dates restricts the metadata to sites with data in the given range.
func (r *StnMetaRequest) Dates(sdate, edate string) error {
	params, err := dateParams(sdate, edate)
	if err != nil {
		return err
	}
	for key, value := range params {
		r.params[key] = value
	}
	return nil
}

// Submit executes the request.
func (r *StnMetaRequest) Submit(ctx context.Context) (*Query, error) {
	return r.request.submit(ctx)
}

// StnDataRequest builds a StnData call, which returns data for a single
// site.
type StnDataRequest struct {
	dataRequest
}

// NewStnDataRequest creates a StnData request.
func NewStnDataRequest(client *Client) *StnDataRequest {
	return &StnDataRequest{dataRequest: newDataRequest(client, "StnData")}
}

// Location sets the site for this request. StnData accepts a single "uid"
// or "sid" option; uid takes precedence.
func (r *StnDataRequest) Location(options Params) error {
	for _, key := range []string{"uid", "sid"} {
		if value, ok := options[key]; ok {
			delete(r.params, "uid")
			delete(r.params, "sid")
			r.params[key] = value
			return nil
		}
	}
	return &ParameterError{"StnData requires uid or sid"}
}

// Submit executes the request.
func (r *StnDataRequest) Submit(ctx context.Context) (*Query, error) {
	return r.dataRequest.submit(ctx)
}

// MultiStnDataRequest builds a MultiStnData call, which returns data for
// all sites matching a location.
type MultiStnDataRequest struct {
	dataRequest
}

// NewMultiStnDataRequest creates a MultiStnData request.
func NewMultiStnDataRequest(client *Client) *MultiStnDataRequest {
	return &MultiStnDataRequest{dataRequest: newDataRequest(client, "MultiStnData")}
}

// Location sets the location options for this request (sids, county, state,
// bbox, and so on).
func (r *MultiStnDataRequest) Location(options Params) {
	for key, value := range options {
		r.params[key] = value
	}
}

// Submit executes the request.
func (r *MultiStnDataRequest) Submit(ctx context.Context) (*Query, error) {
	return r.dataRequest.submit(ctx)
}
