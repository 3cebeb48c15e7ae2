package email

import (
	"bytes"
	"errors"
	"fmt"
	"net/smtp"
)

// errAuthNotAdvertised: el relay no anuncia AUTH; Dispatch reintenta sin login.
var errAuthNotAdvertised = errors.New("smtp: server does not advertise AUTH")

// relayAuth elige el mecanismo en el mismo orden que go-mail (CRAM-MD5, LOGIN
// si no hay PLAIN, PLAIN) pero no exige TLS: el relay lo elige quien llama y
// muchos (MailHog, relays de LAN en :25) anuncian AUTH sin STARTTLS.
type relayAuth struct {
	username string
	password string

	mech string
	cram smtp.Auth
}

func newRelayAuth(username, password string) *relayAuth {
	return &relayAuth{username: username, password: password}
}

func (a *relayAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if len(server.Auth) == 0 {
		return "", nil, errAuthNotAdvertised
	}
	switch {
	case hasMechanism(server.Auth, "CRAM-MD5"):
		a.cram = smtp.CRAMMD5Auth(a.username, a.password)
		return a.cram.Start(server)
	case hasMechanism(server.Auth, "LOGIN") && !hasMechanism(server.Auth, "PLAIN"):
		a.mech = "LOGIN"
		return a.mech, nil, nil
	default:
		a.mech = "PLAIN"
		return a.mech, []byte("\x00" + a.username + "\x00" + a.password), nil
	}
}

func (a *relayAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if a.cram != nil {
		return a.cram.Next(fromServer, more)
	}
	if !more {
		return nil, nil
	}
	if a.mech == "LOGIN" {
		switch {
		case bytes.Equal(fromServer, []byte("Username:")):
			return []byte(a.username), nil
		case bytes.Equal(fromServer, []byte("Password:")):
			return []byte(a.password), nil
		}
	}
	return nil, fmt.Errorf("smtp: unexpected server challenge: %s", fromServer)
}

func hasMechanism(advertised []string, mech string) bool {
	for _, m := range advertised {
		if m == mech {
			return true
		}
	}
	return false
}
