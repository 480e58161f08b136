package acis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultServer is the public ACIS Web Services endpoint.
const DefaultServer = "https://data.rcc-acis.org"

// Params is the params object for an ACIS call. The keys and values are
// defined by the ACIS call being made; see the Web Services documentation.
type Params map[string]any

// Result is a decoded JSON result object returned by the server.
type Result map[string]any

// Query holds the params sent to the server for a call together with the
// result it returned. The result types consume queries.
type Query struct {
	Params Params
	Result Result
}

// Client executes ACIS Web Services calls.
type Client struct {
	httpClient *http.Client
	server     string
}

// NewClient creates a client for the given server. An empty server selects
// the public ACIS endpoint; a zero timeout defaults to 60 seconds.
func NewClient(server string, timeout time.Duration) *Client {
	if server == "" {
		server = DefaultServer
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		server:     strings.TrimRight(server, "/"),
	}
}

// Server returns the server base URL this client calls.
func (c *Client) Server() string {
	return c.server
}

// Call executes a web services call of the given type ("StnMeta", "StnData",
// etc.) and decodes the JSON result. The params must not request a
// non-JSON output type; use CallStream for CSV output.
func (c *Client) Call(ctx context.Context, callType string, params Params) (Result, error) {
	if output, ok := params["output"].(string); ok && !strings.EqualFold(output, "json") {
		return nil, &ParameterError{fmt.Sprintf("output type %q is not JSON; use CallStream", output)}
	}
	body, err := c.post(ctx, callType, params)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	var result Result
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, &ResultError{"server did not return a valid JSON object"}
	}
	return result, nil
}

// CallStream executes a web services call that requested a streamable output
// type (CSV) and returns the raw response body. The caller must close it.
func (c *Client) CallStream(ctx context.Context, callType string, params Params) (io.ReadCloser, error) {
	return c.post(ctx, callType, params)
}

// post executes the POST request for a call. The params object is sent
// JSON-encoded in a form-encoded "params" field.
func (c *Client) post(ctx context.Context, callType string, params Params) (io.ReadCloser, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	form := url.Values{"params": {string(encoded)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.server+"/"+callType, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", callType, err)
	}
	if resp.StatusCode == http.StatusBadRequest {
		// The server reports an unusable params object as a 400 with a
		// short message, sometimes wrapped in HTML.
		msg, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &RequestError{
			Message: strings.TrimSpace(errorText(string(msg))),
			Code:    resp.StatusCode,
		}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code from %s: %d", callType, resp.StatusCode)
	}
	return resp.Body, nil
}
