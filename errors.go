package acis

import "regexp"

// RequestError reports that the server rejected the request. The ACIS server
// returns HTTP 400 with a plain-text message when it cannot complete a call
// due to an invalid params object.
type RequestError struct {
	Message string
	Code    int // HTTP status code
}

func (e *RequestError) Error() string {
	return "acis: invalid request: " + e.Message
}

// ResultError reports that the server returned an object, but it is invalid.
// A result object with an "error" key describing the problem produces a
// ResultError, as does a response that is not valid JSON.
type ResultError struct {
	Message string
}

func (e *ResultError) Error() string {
	return "acis: invalid result: " + e.Message
}

// ParameterError reports that the request parameters are not correct.
type ParameterError struct {
	Message string
}

func (e *ParameterError) Error() string {
	return "acis: invalid parameter: " + e.Message
}

// The server wraps some error messages in an HTML page; the useful text is
// inside <p>...</p>.
var htmlErrorRegex = regexp.MustCompile(`(?s)<html>.*<p>(.*)</p>`)

// errorText extracts the message from a server error body, which may be
// plain text or HTML.
func errorText(body string) string {
	if m := htmlErrorRegex.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return body
}
