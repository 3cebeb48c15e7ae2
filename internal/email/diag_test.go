package email

import (
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestDiagnoseSMTP(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		code      string
		temporary bool
	}{
		{"nil", nil, DiagUnknown, false},
		{"auth 535", &textproto.Error{Code: 535, Msg: "5.7.8 Authentication failed"}, DiagAuth, false},
		{"auth wrapped", fmt.Errorf("smtp send: %w", &textproto.Error{Code: 535, Msg: "bad"}), DiagAuth, false},
		{"greylisted", &textproto.Error{Code: 451, Msg: "4.7.1 try again later"}, DiagRateLimited, true},
		{"unknown user", &textproto.Error{Code: 550, Msg: "5.1.1 User unknown"}, DiagInvalidRecipient, false},
		{"policy", &textproto.Error{Code: 554, Msg: "5.7.1 message rejected"}, DiagRejected, false},
		{"timeout", timeoutErr{}, DiagTimeout, true},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}, DiagDial, true},
		{"tls text", errors.New("tls: first record does not look like a TLS handshake"), DiagTLS, false},
		{"plain auth over cleartext", errors.New("unencrypted connection"), DiagAuth, false},
		{"other", errors.New("boom"), DiagUnknown, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := DiagnoseSMTP(c.err)
			if d.Code != c.code || d.Temporary != c.temporary {
				t.Fatalf("DiagnoseSMTP(%v) = %+v, want code=%s temporary=%v", c.err, d, c.code, c.temporary)
			}
		})
	}
}

func TestTransportError_KeepsRawText(t *testing.T) {
	raw := &textproto.Error{Code: 535, Msg: "5.7.8 Authentication failed"}
	err := newTransportError(raw)
	if err.Error() != raw.Error() {
		t.Fatalf("Error() = %q, want %q", err.Error(), raw.Error())
	}
	if !errors.Is(err, raw) {
		t.Fatal("expected Unwrap to expose the cause")
	}
}

func TestValidationError_Message(t *testing.T) {
	e := &ValidationError{Missing: []string{"smtp_host", "to"}}
	if got := e.Error(); got != "Missing required field(s): smtp_host, to" {
		t.Fatalf("got %q", got)
	}
	e = &ValidationError{Invalid: []string{"smtp_port"}}
	if got := e.Error(); got != "Invalid value for field(s): smtp_port" {
		t.Fatalf("got %q", got)
	}
}
