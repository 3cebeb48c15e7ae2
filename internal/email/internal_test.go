package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestNewDialer_SecureFlag(t *testing.T) {
	cases := []struct {
		name    string
		opts    Options
		wantSSL bool
	}{
		{"465 secure", Options{Host: "smtp.example.com", Port: 465, Secure: true}, true},
		{"587 plain", Options{Host: "smtp.example.com", Port: 587}, false},
		// NewDialer de go-mail pondría SSL=true para 465; respetamos Options.
		{"465 forced plain", Options{Host: "smtp.example.com", Port: 465, Secure: false}, false},
		{"2525 secure", Options{Host: "smtp.example.com", Port: 2525, Secure: true}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewDialer(c.opts)
			if d.SSL != c.wantSSL {
				t.Fatalf("SSL = %v, want %v", d.SSL, c.wantSSL)
			}
			if d.RetryFailure {
				t.Fatal("RetryFailure must be off")
			}
			if d.TLSConfig == nil || d.TLSConfig.ServerName != c.opts.Host {
				t.Fatalf("unexpected TLS config: %+v", d.TLSConfig)
			}
		})
	}
}

func TestNewDialer_SkipVerify(t *testing.T) {
	d := NewDialer(Options{Host: "h", Port: 25, InsecureSkipVerify: true})
	if !d.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected InsecureSkipVerify")
	}
}

func TestNewMessageID(t *testing.T) {
	cases := map[string]string{
		"bot@Example.com":             "@example.com>",
		"Site Bot <bot@mail.acme.io>": "@mail.acme.io>",
		"not-an-address":              "@" + defaultMessageIDDomain + ">",
		"trailing@":                   "@" + defaultMessageIDDomain + ">",
	}
	for from, suffix := range cases {
		id := newMessageID(from)
		if !strings.HasPrefix(id, "<") || !strings.HasSuffix(id, suffix) {
			t.Fatalf("newMessageID(%q) = %q, want suffix %q", from, id, suffix)
		}
	}
	if newMessageID("a@b.c") == newMessageID("a@b.c") {
		t.Fatal("message ids must be unique")
	}
}

func TestNewDialer_Auth(t *testing.T) {
	d := NewDialer(Options{Host: "h", Port: 25, Username: "u", Password: "p"})
	if _, ok := d.Auth.(*relayAuth); !ok {
		t.Fatalf("expected relayAuth, got %T", d.Auth)
	}
	if d := NewDialer(Options{Host: "h", Port: 25}); d.Auth != nil {
		t.Fatalf("no credentials must leave Auth nil, got %T", d.Auth)
	}
}

func TestRelayAuth_PlainWithoutTLS(t *testing.T) {
	a := newRelayAuth("user", "secret")
	mech, resp, err := a.Start(&smtp.ServerInfo{Name: "mailhog", TLS: false, Auth: []string{"PLAIN", "LOGIN"}})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if mech != "PLAIN" || string(resp) != "\x00user\x00secret" {
		t.Fatalf("got %q %q", mech, resp)
	}
}

func TestRelayAuth_LoginOnly(t *testing.T) {
	a := newRelayAuth("user", "secret")
	mech, resp, err := a.Start(&smtp.ServerInfo{Name: "relay", Auth: []string{"LOGIN"}})
	if err != nil || mech != "LOGIN" || resp != nil {
		t.Fatalf("got %q %q %v", mech, resp, err)
	}
	for challenge, want := range map[string]string{"Username:": "user", "Password:": "secret"} {
		got, err := a.Next([]byte(challenge), true)
		if err != nil || string(got) != want {
			t.Fatalf("Next(%q) = %q, %v", challenge, got, err)
		}
	}
	if _, err := a.Next([]byte("Other:"), true); err == nil {
		t.Fatal("expected error on unknown challenge")
	}
}

func TestRelayAuth_CRAMMD5Preferred(t *testing.T) {
	a := newRelayAuth("user", "secret")
	mech, _, err := a.Start(&smtp.ServerInfo{Name: "relay", Auth: []string{"PLAIN", "CRAM-MD5"}})
	if err != nil || mech != "CRAM-MD5" {
		t.Fatalf("got %q %v", mech, err)
	}
}

func TestRelayAuth_NotAdvertised(t *testing.T) {
	_, _, err := newRelayAuth("user", "secret").Start(&smtp.ServerInfo{Name: "relay"})
	if !errors.Is(err, errAuthNotAdvertised) {
		t.Fatalf("got %v", err)
	}
}
