package acis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The stream types are all-in-ones that build a CSV data request and expose
// the result one record at a time. CSV calls are restricted compared to
// JSON calls, but the output does not have to be held in memory as a single
// object, which helps with large requests. Use the request and result types
// when CSV output is too limited.

// csvStream is the machinery shared by the stream types.
type csvStream struct {
	client   *Client
	callType string
	params   Params
	interval string

	// Meta holds per-site metadata keyed by site identifier. It is
	// populated while the stream is read.
	Meta map[string]map[string]any
}

func newCSVStream(client *Client, callType string) csvStream {
	return csvStream{
		client:   client,
		callType: callType,
		params:   Params{"output": "csv", "elems": []Params{}},
		interval: "dly",
		Meta:     map[string]map[string]any{},
	}
}

// Elems returns the names of the elements added to this stream.
func (s *csvStream) Elems() []string {
	elems := s.params["elems"].([]Params)
	names := make([]string, len(elems))
	for i, elem := range elems {
		names[i], _ = elem["name"].(string)
	}
	return names
}

// Interval sets the interval for this stream. The default is daily ("dly").
func (s *csvStream) Interval(name string) error {
	value, err := validIntervalName(name)
	if err != nil {
		return err
	}
	s.interval = value
	return nil
}

// AddElement adds a named element to this stream. Re-adding a name replaces
// the existing element.
func (s *csvStream) AddElement(name string, options Params) {
	elem := Params{"name": name}
	for key, value := range options {
		elem[key] = value
	}
	elems := s.params["elems"].([]Params)
	for pos, existing := range elems {
		if existing["name"] == name {
			elems[pos] = elem
			return
		}
	}
	s.params["elems"] = append(elems, elem)
}

// DelElement removes the named element from this stream.
func (s *csvStream) DelElement(name string) {
	elems := s.params["elems"].([]Params)
	for pos, elem := range elems {
		if elem["name"] == name {
			s.params["elems"] = append(elems[:pos], elems[pos+1:]...)
			return
		}
	}
}

// ClearElements removes all elements from this stream.
func (s *csvStream) ClearElements() {
	s.params["elems"] = []Params{}
}

// connect executes the call and checks the first line for a server error
// ("error: message").
func (s *csvStream) connect(ctx context.Context) (string, io.ReadCloser, *bufio.Scanner, error) {
	for _, elem := range s.params["elems"].([]Params) {
		elem["interval"] = s.interval
	}
	body, err := s.client.CallStream(ctx, s.callType, s.params)
	if err != nil {
		return "", nil, nil, err
	}
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	if !scanner.Scan() {
		body.Close()
		if err := scanner.Err(); err != nil {
			return "", nil, nil, fmt.Errorf("failed to read stream: %w", err)
		}
		return "", nil, nil, &ResultError{"empty response from server"}
	}
	first := strings.TrimRight(scanner.Text(), "\r")
	if strings.HasPrefix(first, "error") { // "error: error message"
		body.Close()
		msg := first
		if _, after, found := strings.Cut(first, ":"); found {
			msg = strings.TrimSpace(after)
		}
		return "", nil, nil, &RequestError{Message: msg, Code: 200}
	}
	return first, body, scanner, nil
}

// RecordStream reads data records from an open CSV stream. Iterate with
// Next/Record, check Err when done, and Close to release the connection.
type RecordStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	parse   func(line string) []string
	pending []string
	current []string
	err     error
	done    bool
}

// Next advances to the next record. It returns false at the end of the
// stream or on error.
func (rs *RecordStream) Next() bool {
	if rs.done {
		return false
	}
	var line string
	if len(rs.pending) > 0 {
		line = rs.pending[0]
		rs.pending = rs.pending[1:]
	} else {
		if !rs.scanner.Scan() {
			rs.err = rs.scanner.Err()
			rs.done = true
			return false
		}
		line = strings.TrimRight(rs.scanner.Text(), "\r")
	}
	if line == "" { // blank line at end of output
		rs.done = true
		return false
	}
	rs.current = rs.parse(line)
	if rs.current == nil {
		rs.done = true
		return false
	}
	return true
}

// Record returns the current record: (sid, date, elem values...).
func (rs *RecordStream) Record() []string {
	return rs.current
}

// Err returns the first error encountered while reading the stream.
func (rs *RecordStream) Err() error {
	return rs.err
}

// Close releases the underlying connection.
func (rs *RecordStream) Close() error {
	return rs.body.Close()
}

// StnDataStream streams CSV data for a single site.
type StnDataStream struct {
	csvStream
	sid string
}

// NewStnDataStream creates a StnData stream.
func NewStnDataStream(client *Client) *StnDataStream {
	return &StnDataStream{csvStream: newCSVStream(client, "StnData")}
}

// Location sets the site for this stream. StnData accepts a single "uid" or
// "sid" option; uid takes precedence.
func (s *StnDataStream) Location(options Params) error {
	for _, key := range []string{"uid", "sid"} {
		if value, ok := options[key]; ok {
			delete(s.params, "uid")
			delete(s.params, "sid")
			s.params[key] = value
			s.sid = fmt.Sprint(value)
			return nil
		}
	}
	return &ParameterError{"StnData requires uid or sid"}
}

// Dates sets the inclusive date range for this stream. An empty edate makes
// sdate a single date; "por" extends the range to the period of record.
func (s *StnDataStream) Dates(sdate, edate string) error {
	params, err := dateParams(sdate, edate)
	if err != nil {
		return err
	}
	delete(s.params, "date")
	delete(s.params, "sdate")
	delete(s.params, "edate")
	for key, value := range params {
		s.params[key] = value
	}
	return nil
}

// Stream executes the call and returns the record stream. The first line of
// StnData output is a header containing the site name, which is stored in
// Meta before the first record is returned.
func (s *StnDataStream) Stream(ctx context.Context) (*RecordStream, error) {
	first, body, scanner, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	s.Meta[s.sid] = map[string]any{"name": first}
	return &RecordStream{
		body:    body,
		scanner: scanner,
		parse: func(line string) []string {
			return append([]string{s.sid}, strings.Split(line, ",")...)
		},
	}, nil
}

// MultiStnDataStream streams CSV data for all sites matching a location.
// CSV output is limited to a single date.
type MultiStnDataStream struct {
	csvStream
}

// NewMultiStnDataStream creates a MultiStnData stream.
func NewMultiStnDataStream(client *Client) *MultiStnDataStream {
	return &MultiStnDataStream{csvStream: newCSVStream(client, "MultiStnData")}
}

// Date sets the date for this stream; MultiStnData only accepts a single
// date for CSV output.
func (s *MultiStnDataStream) Date(date string) error {
	if !strings.EqualFold(date, "por") {
		parsed, err := ParseDate(date)
		if err != nil {
			return &ParameterError{err.Error()}
		}
		date = FormatDate(parsed)
	}
	s.params["date"] = date
	return nil
}

// Location sets the location options for this stream (sids, county, state,
// bbox, and so on).
func (s *MultiStnDataStream) Location(options Params) {
	for key, value := range options {
		s.params[key] = value
	}
}

// Stream executes the call and returns the record stream. Each site's
// metadata (name, state, elevation, lon/lat) is embedded in its data record
// and accumulates in Meta as the stream is read, so Meta is not fully
// populated until the stream is exhausted.
func (s *MultiStnDataStream) Stream(ctx context.Context) (*RecordStream, error) {
	first, body, scanner, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	date, _ := s.params["date"].(string)
	rs := &RecordStream{
		body:    body,
		scanner: scanner,
		pending: []string{first}, // no header; the first line is a record
	}
	rs.parse = func(line string) []string {
		fields := strings.Split(line, ",")
		if len(fields) < 6 {
			return nil
		}
		sid, name, state, lon, lat, elev := fields[0], fields[1], fields[2],
			fields[3], fields[4], fields[5]
		meta := map[string]any{"name": name, "state": state}
		if value, err := strconv.ParseFloat(elev, 64); err == nil {
			meta["elev"] = value
		}
		x, xerr := strconv.ParseFloat(lon, 64)
		y, yerr := strconv.ParseFloat(lat, 64)
		if xerr == nil && yerr == nil {
			meta["ll"] = []float64{x, y}
		}
		s.Meta[sid] = meta
		return append([]string{sid, date}, fields[6:]...)
	}
	return rs, nil
}
