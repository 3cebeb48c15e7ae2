package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, b, nil
}

// print muestra la respuesta: json indentado o "message (error)" en texto.
func (c *client) print(w io.Writer, status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Fprintln(w, string(p))
			return
		}
	}

	var r struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &r) == nil && r.Message != "" {
		if r.Error != "" {
			fmt.Fprintf(w, "%s (%s)\n", r.Message, r.Error)
		} else {
			fmt.Fprintln(w, r.Message)
		}
		return
	}
	if len(body) > 0 {
		fmt.Fprintln(w, strings.TrimSpace(string(body)))
	} else {
		fmt.Fprintf(w, "status=%d\n", status)
	}
}

// sendParams son los campos de /send-email.
type sendParams struct {
	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	SMTPUser   string
	SMTPPass   string
	From       string
	To         string
	Subject    string
	HTML       string
}

func (p sendParams) fields() map[string]string {
	m := map[string]string{
		"smtp_host": p.SMTPHost,
		"smtp_user": p.SMTPUser,
		"smtp_pass": p.SMTPPass,
		"from":      p.From,
		"to":        p.To,
		"subject":   p.Subject,
		"html":      p.HTML,
	}
	if p.SMTPPort > 0 {
		m["smtp_port"] = strconv.Itoa(p.SMTPPort)
	}
	if p.SMTPSecure {
		m["smtp_secure"] = "true"
	}
	return m
}

// query arma la query string; los campos vacíos se omiten.
func (p sendParams) query() url.Values {
	q := url.Values{}
	for k, v := range p.fields() {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// body arma el JSON; los vacíos se omiten para que el server reporte faltantes.
func (p sendParams) body() ([]byte, error) {
	out := map[string]any{}
	for k, v := range p.fields() {
		if v != "" {
			out[k] = v
		}
	}
	if p.SMTPPort > 0 {
		out["smtp_port"] = p.SMTPPort
	}
	if p.SMTPSecure {
		out["smtp_secure"] = true
	}
	return json.Marshal(out)
}

// send llama /send-email por POST JSON o, con viaQuery, por GET con query.
func (c *client) send(ctx context.Context, p sendParams, viaQuery bool) (int, []byte, error) {
	if viaQuery {
		return c.do(ctx, http.MethodGet, "/send-email?"+p.query().Encode(), nil)
	}
	b, err := p.body()
	if err != nil {
		return 0, nil, err
	}
	return c.do(ctx, http.MethodPost, "/send-email", b)
}
