package email

import (
	"context"
	"crypto/tls"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/mailgate/internal/metrics"
	"github.com/dropDatabas3/mailgate/internal/observability/logger"
	"github.com/dropDatabas3/mailgate/internal/util"
	mail "github.com/go-mail/mail"
	"github.com/google/uuid"
)

const defaultMessageIDDomain = "mailgate.local"

// SMTPDispatcher implementa Dispatcher con go-mail. Cada llamada construye su
// propio Dialer: no hay conexiones compartidas entre requests.
type SMTPDispatcher struct {
	// TextAlternative agrega una parte text/plain derivada del HTML.
	TextAlternative bool

	// send permite reemplazar DialAndSend en tests.
	send func(d *mail.Dialer, m *mail.Message) error
}

// NewSMTPDispatcher crea un SMTPDispatcher.
func NewSMTPDispatcher(textAlternative bool) *SMTPDispatcher {
	return &SMTPDispatcher{
		TextAlternative: textAlternative,
		send: func(d *mail.Dialer, m *mail.Message) error {
			return d.DialAndSend(m)
		},
	}
}

// NewDialer arma el Dialer de go-mail para un envío.
func NewDialer(o Options) *mail.Dialer {
	d := mail.NewDialer(o.Host, o.Port, o.Username, o.Password)
	// NewDialer infiere SSL del puerto; la decisión ya viene tomada en Options.
	d.SSL = o.Secure
	d.TLSConfig = &tls.Config{
		ServerName:         o.Host,
		InsecureSkipVerify: o.InsecureSkipVerify, //nolint:gosec // relays arbitrarios, ver config mail.insecure_skip_verify
	}
	if o.Username != "" {
		d.Auth = newRelayAuth(o.Username, o.Password)
	}
	d.RetryFailure = false
	return d
}

// Dispatch implementa Dispatcher.
func (s *SMTPDispatcher) Dispatch(ctx context.Context, o Options, msg Message) (Receipt, error) {
	log := logger.From(ctx).With(
		logger.Component("email.smtp"),
		logger.SMTPHost(o.Host),
		logger.SMTPPort(o.Port),
		logger.Secure(o.Secure),
		logger.Recipient(util.MaskAddress(msg.To)),
	)

	if strings.TrimSpace(o.Host) == "" || o.Port <= 0 || o.Port > 65535 {
		err := newTransportError(invalidAddress(o.Host, o.Port))
		metrics.RecordMailSend(metrics.ResultError, err.Diag.Code, 0)
		return Receipt{}, err
	}

	if msg.Text == "" && s.TextAlternative {
		msg.Text = PlainText(msg.HTML)
	}
	id := newMessageID(msg.From)
	m := buildMessage(msg, id)
	d := NewDialer(o)

	log.Debug("smtp send try", logger.MessageID(id), logger.SMTPUser(util.MaskAddress(o.Username)))

	start := time.Now()
	err := s.send(d, m)
	if errors.Is(err, errAuthNotAdvertised) {
		// relay abierto: go-mail omite el login si no hay AUTH
		log.Debug("smtp relay does not advertise auth, sending without login")
		d.Auth, d.Username = nil, ""
		err = s.send(d, m)
	}
	dur := time.Since(start)

	if err != nil {
		terr := newTransportError(err)
		metrics.RecordMailSend(metrics.ResultError, terr.Diag.Code, dur)
		log.Error("smtp send failed",
			logger.Err(err),
			logger.DiagCode(terr.Diag.Code),
			logger.Bool("temporary", terr.Diag.Temporary),
			logger.DurationMs(dur),
		)
		return Receipt{}, terr
	}

	metrics.RecordMailSend(metrics.ResultSent, "", dur)
	log.Info("email sent", logger.MessageID(id), logger.DurationMs(dur))

	return Receipt{
		MessageID: id,
		Host:      o.Host,
		Port:      o.Port,
		Secure:    o.Secure,
		Duration:  dur,
	}, nil
}

// buildMessage arma el mensaje: text/html solo, o multipart/alternative si hay texto.
func buildMessage(msg Message, messageID string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)

	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else {
		m.SetBody("text/html", msg.HTML)
	}
	return m
}

// newMessageID genera "<uuid@dominio-del-remitente>".
func newMessageID(from string) string {
	domain := defaultMessageIDDomain
	addr := strings.TrimSpace(from)
	if lt := strings.LastIndexByte(addr, '<'); lt >= 0 {
		addr = strings.TrimSuffix(addr[lt+1:], ">")
	}
	if at := strings.LastIndexByte(addr, '@'); at >= 0 && at < len(addr)-1 {
		domain = strings.ToLower(strings.TrimSpace(addr[at+1:]))
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}
