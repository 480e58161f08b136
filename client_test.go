package acis_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wxdata/acis"
)

// fakeServer decodes the form-encoded params object each test expects the
// client to send.
func fakeServer(t *testing.T, handle func(params acis.Params, w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		var params acis.Params
		require.NoError(t, json.Unmarshal([]byte(r.PostFormValue("params")), &params))
		handle(params, w)
	}))
}

func TestClientCall(t *testing.T) {
	srv := fakeServer(t, func(params acis.Params, w http.ResponseWriter) {
		require.Equal(t, "OKC", params["sid"])
		io.WriteString(w, `{"meta": {"name": "Oklahoma City"}, "data": [["2012-08-03", "113"]]}`)
	})
	defer srv.Close()

	client := acis.NewClient(srv.URL, 0)
	result, err := client.Call(context.Background(), "StnData",
		acis.Params{"sid": "OKC", "date": "2012-08-03", "elems": "maxt", "meta": "name"})
	require.NoError(t, err)
	meta, ok := result["meta"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Oklahoma City", meta["name"])
}

func TestClientCallBadRequest(t *testing.T) {
	srv := fakeServer(t, func(params acis.Params, w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "Need sId, sIds or uid parameter.\n")
	})
	defer srv.Close()

	client := acis.NewClient(srv.URL, 0)
	_, err := client.Call(context.Background(), "StnData", acis.Params{"date": "2012-08-03"})
	var rerr *acis.RequestError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, http.StatusBadRequest, rerr.Code)
	require.Equal(t, "Need sId, sIds or uid parameter.", rerr.Message)
}

func TestClientCallBadRequestHTML(t *testing.T) {
	srv := fakeServer(t, func(params acis.Params, w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "<html><head><title>400</title></head><body><p>invalid date</p></body></html>")
	})
	defer srv.Close()

	client := acis.NewClient(srv.URL, 0)
	_, err := client.Call(context.Background(), "StnData", acis.Params{"sid": "OKC"})
	var rerr *acis.RequestError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "invalid date", rerr.Message)
}

func TestClientCallServerError(t *testing.T) {
	srv := fakeServer(t, func(params acis.Params, w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	client := acis.NewClient(srv.URL, 0)
	_, err := client.Call(context.Background(), "StnData", acis.Params{"sid": "OKC"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestClientCallInvalidJSON(t *testing.T) {
	srv := fakeServer(t, func(params acis.Params, w http.ResponseWriter) {
		io.WriteString(w, "not json")
	})
	defer srv.Close()

	client := acis.NewClient(srv.URL, 0)
	_, err := client.Call(context.Background(), "StnData", acis.Params{"sid": "OKC"})
	var rerr *acis.ResultError
	require.ErrorAs(t, err, &rerr)
}

func TestClientCallRejectsNonJSONOutput(t *testing.T) {
	client := acis.NewClient("http://localhost:1", 0)
	_, err := client.Call(context.Background(), "StnData",
		acis.Params{"sid": "OKC", "output": "csv"})
	var perr *acis.ParameterError
	require.ErrorAs(t, err, &perr)
}

func TestClientCallStream(t *testing.T) {
	srv := fakeServer(t, func(params acis.Params, w http.ResponseWriter) {
		require.Equal(t, "csv", params["output"])
		io.WriteString(w, "Oklahoma City\n2012-08-03,113\n")
	})
	defer srv.Close()

	client := acis.NewClient(srv.URL, 0)
	body, err := client.CallStream(context.Background(), "StnData",
		acis.Params{"sid": "OKC", "date": "2012-08-03", "elems": "maxt", "output": "csv"})
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "Oklahoma City\n2012-08-03,113\n", string(data))
}
