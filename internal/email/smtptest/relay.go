// Package smtptest levanta un relay SMTP en memoria para tests, sobre go-smtp.
package smtptest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"math/big"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// Credenciales aceptadas por defecto.
const (
	DefaultUser = "relay-user"
	DefaultPass = "relay-pass"
)

// Message es un mensaje recibido por el relay.
type Message struct {
	Username string
	From     string
	To       []string
	Data     []byte
}

// Relay es un servidor SMTP local que acepta AUTH PLAIN y guarda lo recibido.
type Relay struct {
	Host string
	Port int

	user       string
	pass       string
	listenHost string
	mechs      []string
	tlsConf    *tls.Config

	mu   sync.Mutex
	msgs []Message
}

// Option configura un Relay.
type Option func(*Relay)

// WithCredentials cambia el usuario/password aceptados.
func WithCredentials(user, pass string) Option {
	return func(r *Relay) { r.user, r.pass = user, pass }
}

// WithImplicitTLS sirve TLS desde el primer byte (estilo puerto 465).
func WithImplicitTLS(t testing.TB) Option {
	return func(r *Relay) { r.tlsConf = SelfSignedTLS(t) }
}

// WithListenHost escucha en otra IP de loopback (p.ej. 127.0.0.2).
func WithListenHost(host string) Option {
	return func(r *Relay) { r.listenHost = host }
}

// WithMechanisms cambia los mecanismos AUTH anunciados (PLAIN y/o LOGIN).
// Sin mecanismos el relay no anuncia AUTH y acepta envíos anónimos.
func WithMechanisms(mechs ...string) Option {
	return func(r *Relay) { r.mechs = mechs }
}

// NewRelay arranca el relay en 127.0.0.1 con un puerto libre; se cierra en t.Cleanup.
func NewRelay(t testing.TB, opts ...Option) *Relay {
	t.Helper()

	r := &Relay{
		user:       DefaultUser,
		pass:       DefaultPass,
		listenHost: "127.0.0.1",
		mechs:      []string{sasl.Plain},
	}
	for _, o := range opts {
		o(r)
	}

	s := smtp.NewServer(&backend{relay: r})
	s.Domain = "localhost"
	s.AllowInsecureAuth = true
	s.ReadTimeout = 5 * time.Second
	s.WriteTimeout = 5 * time.Second
	s.MaxRecipients = 10

	ln, err := net.Listen("tcp", net.JoinHostPort(r.listenHost, "0"))
	if err != nil {
		t.Fatalf("smtptest: listen: %v", err)
	}
	if r.tlsConf != nil {
		ln = tls.NewListener(ln, r.tlsConf)
	}

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	r.Host = host
	r.Port, _ = strconv.Atoi(port)

	go func() { _ = s.Serve(ln) }()
	t.Cleanup(func() { _ = s.Close() })

	return r
}

// Messages devuelve una copia de lo recibido hasta ahora.
func (r *Relay) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *Relay) advertises(mech string) bool {
	for _, m := range r.mechs {
		if m == mech {
			return true
		}
	}
	return false
}

func (r *Relay) store(m Message) {
	r.mu.Lock()
	r.msgs = append(r.msgs, m)
	r.mu.Unlock()
}

type backend struct{ relay *Relay }

func (b *backend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &session{relay: b.relay}, nil
}

type session struct {
	relay    *Relay
	username string
	authed   bool
	from     string
	to       []string
}

func (s *session) AuthMechanisms() []string {
	return s.relay.mechs
}

func (s *session) Auth(mech string) (sasl.Server, error) {
	if !s.relay.advertises(mech) {
		return nil, smtp.ErrAuthUnsupported
	}
	switch mech {
	case sasl.Plain:
		return sasl.NewPlainServer(func(_, username, password string) error {
			return s.login(username, password)
		}), nil
	case sasl.Login:
		return sasl.NewLoginServer(s.login), nil
	}
	return nil, smtp.ErrAuthUnsupported
}

func (s *session) login(username, password string) error {
	if username != s.relay.user || password != s.relay.pass {
		return smtp.ErrAuthFailed
	}
	s.username = username
	s.authed = true
	return nil
}

func (s *session) Mail(from string, _ *smtp.MailOptions) error {
	if !s.allowed() {
		return smtp.ErrAuthRequired
	}
	s.from = from
	return nil
}

// allowed: autenticado, o relay abierto (sin mecanismos).
func (s *session) allowed() bool {
	return s.authed || len(s.relay.mechs) == 0
}

func (s *session) Rcpt(to string, _ *smtp.RcptOptions) error {
	if !s.allowed() {
		return smtp.ErrAuthRequired
	}
	s.to = append(s.to, to)
	return nil
}

func (s *session) Data(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.relay.store(Message{Username: s.username, From: s.from, To: append([]string(nil), s.to...), Data: b})
	return nil
}

func (s *session) Reset() {
	s.from = ""
	s.to = nil
}

func (s *session) Logout() error { return nil }

// SelfSignedTLS genera un certificado efímero para 127.0.0.1/localhost.
func SelfSignedTLS(t testing.TB) *tls.Config {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("smtptest: key: %v", err)
	}
	tpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: "smtptest"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, tpl, tpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("smtptest: cert: %v", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}},
		MinVersion:   tls.VersionTLS12,
	}
}
