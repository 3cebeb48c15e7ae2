package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	query  string
	ctype  string
	body   map[string]any
}

func fakeService(t *testing.T, status int, resp string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.query = r.URL.RawQuery
		got.ctype = r.Header.Get("Content-Type")
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &got.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MAILGATE_URL", "")
	t.Setenv("MAILGATE_OUT", "")
	t.Setenv("MAILGATE_SMTP_PASS", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSend_PostJSON(t *testing.T) {
	var got captured
	srv := fakeService(t, http.StatusOK, `{"success":true,"message":"Email has been sent successfully!"}`, &got)

	out, err := runCLI(t, "send", "--url", srv.URL,
		"--smtp-host", "smtp.example.com", "--smtp-port", "465", "--smtp-user", "u", "--smtp-pass", "p",
		"--from", "a@example.com", "--to", "b@example.com", "--subject", "Hi", "--html", "<p>x</p>")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json", got.ctype)
	assert.Equal(t, "smtp.example.com", got.body["smtp_host"])
	assert.EqualValues(t, 465, got.body["smtp_port"])
	assert.NotContains(t, got.body, "smtp_secure")
	assert.Equal(t, "Email has been sent successfully!\n", out)
}

func TestSend_ViaQuery(t *testing.T) {
	var got captured
	srv := fakeService(t, http.StatusOK, `{"success":true,"message":"ok"}`, &got)

	_, err := runCLI(t, "send", "--url", srv.URL, "--query", "--smtp-secure",
		"--smtp-host", "smtp.example.com", "--to", "b@example.com")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Contains(t, got.query, "smtp_secure=true")
	assert.Contains(t, got.query, "smtp_port=587")
	assert.Contains(t, got.query, "to=b%40example.com")
	assert.NotContains(t, got.query, "subject=")
}

func TestSend_FailureReturnsError(t *testing.T) {
	var got captured
	srv := fakeService(t, http.StatusInternalServerError,
		`{"success":false,"message":"Failed to send email","error":"535 auth failed"}`, &got)

	out, err := runCLI(t, "send", "--url", srv.URL, "--smtp-host", "h")
	require.Error(t, err)
	assert.Equal(t, "Failed to send email (535 auth failed)\n", out)
}

func TestPing(t *testing.T) {
	var got captured
	srv := fakeService(t, http.StatusOK, `{"status":"ready"}`, &got)

	out, err := runCLI(t, "ping", "--url", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	assert.Equal(t, http.MethodGet, got.method)

	out, err = runCLI(t, "ping", "--url", srv.URL, "--out", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ready"}`, out)
}

func TestInvalidOut(t *testing.T) {
	_, err := runCLI(t, "ping", "--out", "yaml")
	require.Error(t, err)
}
