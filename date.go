package acis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Valid ACIS date strings are YYYY[-MM[-DD]]; hyphens are optional but
// leading zeroes are not, and two-digit years are not allowed.
var dateRegex = regexp.MustCompile(`^(\d{4})(?:-?(\d{2}))?(?:-?(\d{2}))?$`)

// ParseDate converts an ACIS date string to a time.Time. A missing month or
// day defaults to 1.
func ParseDate(date string) (time.Time, error) {
	m := dateRegex.FindStringSubmatch(date)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid date format: %q", date)
	}
	ymd := [3]int{1, 1, 1}
	for i, s := range m[1:] {
		if s == "" {
			continue
		}
		ymd[i], _ = strconv.Atoi(s)
	}
	t := time.Date(ymd[0], time.Month(ymd[1]), ymd[2], 0, 0, 0, 0, time.UTC)
	if t.Year() != ymd[0] || int(t.Month()) != ymd[1] || t.Day() != ymd[2] {
		return time.Time{}, fmt.Errorf("invalid date: %q", date)
	}
	return t, nil
}

// FormatDate returns an ACIS-format date string (YYYY-MM-DD) for a date.
func FormatDate(date time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year(), date.Month(), date.Day())
}

// DateRange expands the date range specified by params into the individual
// date string for each record. A range is given by "sdate" and "edate"
// (inclusive) stepped by the element interval; a lone "date" is a single
// record. Params with no date specification at all are a ParameterError.
func DateRange(params Params) ([]string, error) {
	sdate, edate, interval, err := dateSpan(params)
	if err != nil {
		return nil, err
	}
	if edate == "" {
		return []string{sdate}, nil
	}
	start, err := ParseDate(sdate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(edate)
	if err != nil {
		return nil, err
	}
	step, err := intervalStep(interval)
	if err != nil {
		return nil, err
	}
	var dates []string
	for !start.After(end) {
		dates = append(dates, FormatDate(start))
		start = step(start)
	}
	return dates, nil
}

// intervalStep converts an interval value to a date-stepping function. An
// interval is a name ("dly", "mly", "yly") or a (year, month, day) triple;
// triples arrive as [3]int from the request builders or as a decoded JSON
// array.
func intervalStep(value any) (func(time.Time) time.Time, error) {
	var ymd [3]int
	switch v := value.(type) {
	case string:
		switch v {
		case "dly":
			ymd = [3]int{0, 0, 1}
		case "mly":
			ymd = [3]int{0, 1, 0}
		case "yly":
			ymd = [3]int{1, 0, 0}
		default:
			return nil, &ParameterError{fmt.Sprintf("invalid interval name: %q", v)}
		}
	case [3]int:
		ymd = v
	case []int:
		if len(v) != 3 {
			return nil, &ParameterError{fmt.Sprintf("invalid interval: %v", v)}
		}
		copy(ymd[:], v)
	case []any:
		if len(v) != 3 {
			return nil, &ParameterError{fmt.Sprintf("invalid interval: %v", v)}
		}
		for i, item := range v {
			switch n := item.(type) {
			case float64: // decoded JSON number
				ymd[i] = int(n)
			case int:
				ymd[i] = n
			default:
				return nil, &ParameterError{fmt.Sprintf("invalid interval: %v", v)}
			}
		}
	default:
		return nil, &ParameterError{fmt.Sprintf("invalid interval: %v", value)}
	}
	if ymd == [3]int{} {
		return nil, &ParameterError{"invalid interval: zero step"}
	}
	return func(t time.Time) time.Time {
		return t.AddDate(ymd[0], ymd[1], ymd[2])
	}, nil
}

// dateSpan determines a request's start date, end date, and interval from
// its params. A single-date request has an empty end date. All elements of a
// call must share one interval, so the first element's interval applies;
// the default is daily.
func dateSpan(params Params) (sdate, edate string, interval any, err error) {
	if date, ok := params["date"].(string); ok {
		return date, "", "dly", nil
	}
	sdate, ok := params["sdate"].(string)
	if !ok {
		return "", "", nil, &ParameterError{"invalid date range specification"}
	}
	edate, _ = params["edate"].(string)
	return sdate, edate, elemInterval(params), nil
}

// elemInterval returns the interval from the first element of a params
// object, or "dly" if the elements do not specify one. The value may be a
// name or a (y, m, d) triple.
func elemInterval(params Params) any {
	var first Params
	switch elems := params["elems"].(type) {
	case []Params:
		if len(elems) > 0 {
			first = elems[0]
		}
	case []any:
		if len(elems) > 0 {
			switch elem := elems[0].(type) {
			case Params:
				first = elem
			case map[string]any:
				first = elem
			}
		}
	}
	if val, ok := first["interval"]; ok {
		return val
	}
	return "dly"
}

// dateParams builds the params fields for an inclusive date range. An empty
// edate means sdate is a single date. Dates must be valid ACIS date strings
// or "por", which extends the range to the period of record in that
// direction.
func dateParams(sdate, edate string) (Params, error) {
	verify := func(s string) (string, error) {
		if strings.EqualFold(s, "por") {
			return "por", nil
		}
		date, err := ParseDate(s)
		if err != nil {
			return "", &ParameterError{err.Error()}
		}
		return FormatDate(date), nil
	}
	params := Params{}
	var err error
	if edate == "" {
		if strings.EqualFold(sdate, "por") { // entire period of record
			params["sdate"] = "por"
			params["edate"] = "por"
		} else if params["date"], err = verify(sdate); err != nil {
			return nil, err
		}
		return params, nil
	}
	if params["sdate"], err = verify(sdate); err != nil {
		return nil, err
	}
	if params["edate"], err = verify(edate); err != nil {
		return nil, err
	}
	return params, nil
}

// validIntervalName checks an interval name ("dly", "mly", "yly").
func validIntervalName(value string) (string, error) {
	switch value {
	case "dly", "mly", "yly":
		return value, nil
	}
	return "", &ParameterError{fmt.Sprintf("invalid interval name: %q", value)}
}

// normalizeYMD normalizes a (year, month, day) interval so that only the
// least-significant nonzero component survives.
func normalizeYMD(yr, mo, da int) [3]int {
	if da > 0 {
		mo = 0
	}
	if mo > 0 || da > 0 {
		yr = 0
	}
	return [3]int{yr, mo, da}
}
