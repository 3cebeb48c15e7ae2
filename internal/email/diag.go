package email

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/textproto"
	"strings"
)

// Códigos de diagnóstico.
const (
	DiagAuth             = "auth"
	DiagTLS              = "tls"
	DiagDial             = "dial"
	DiagTimeout          = "timeout"
	DiagRateLimited      = "rate_limited"
	DiagInvalidRecipient = "invalid_recipient"
	DiagRejected         = "rejected"
	DiagNetwork          = "network"
	DiagUnknown          = "unknown"
)

// SMTPDiag clasifica un error de transporte. Solo se usa para logs y métricas:
// el cliente HTTP siempre recibe el texto crudo.
type SMTPDiag struct {
	Code      string
	Temporary bool
}

// DiagnoseSMTP analiza un error devuelto por go-mail / net/smtp.
func DiagnoseSMTP(err error) SMTPDiag {
	if err == nil {
		return SMTPDiag{Code: DiagUnknown}
	}

	// respuestas del relay: "535 5.7.8 ..." llegan como *textproto.Error
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return diagnoseReply(tpErr.Code, strings.ToLower(tpErr.Msg))
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return SMTPDiag{Code: DiagTimeout, Temporary: true}
	}

	var (
		certErr   *tls.CertificateVerificationError
		unknownCA x509.UnknownAuthorityError
		hostErr   x509.HostnameError
		recordErr tls.RecordHeaderError
		opErr     *net.OpError
		dnsErr    *net.DNSError
	)
	switch {
	case errors.As(err, &certErr), errors.As(err, &unknownCA), errors.As(err, &hostErr), errors.As(err, &recordErr):
		return SMTPDiag{Code: DiagTLS}
	case errors.As(err, &dnsErr):
		return SMTPDiag{Code: DiagDial, Temporary: dnsErr.Temporary()}
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return SMTPDiag{Code: DiagDial, Temporary: true}
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "timeout"):
		return SMTPDiag{Code: DiagTimeout, Temporary: true}
	case strings.Contains(s, "connection refused"), strings.Contains(s, "no such host"), strings.Contains(s, "dial tcp"):
		return SMTPDiag{Code: DiagDial, Temporary: true}
	case strings.Contains(s, "x509:"), strings.Contains(s, "tls:"):
		return SMTPDiag{Code: DiagTLS}
	case strings.Contains(s, "unencrypted connection"), strings.Contains(s, "authentication failed"):
		// net/smtp rechaza PLAIN sin TLS fuera de localhost
		return SMTPDiag{Code: DiagAuth}
	}

	if errors.As(err, &netErr) {
		return SMTPDiag{Code: DiagNetwork, Temporary: true}
	}
	return SMTPDiag{Code: DiagUnknown}
}

// diagnoseReply clasifica por código de respuesta SMTP (RFC 5321 / 3463).
func diagnoseReply(code int, msg string) SMTPDiag {
	switch {
	case code == 530 || code == 534 || code == 535 || code == 454 && strings.Contains(msg, "auth"):
		return SMTPDiag{Code: DiagAuth}
	case code == 421 || code == 450 || code == 451 || code == 452:
		return SMTPDiag{Code: DiagRateLimited, Temporary: true}
	case code == 550 && (strings.Contains(msg, "5.1.1") || strings.Contains(msg, "user unknown") || strings.Contains(msg, "mailbox")),
		code == 551 || code == 553:
		return SMTPDiag{Code: DiagInvalidRecipient}
	case code >= 500:
		return SMTPDiag{Code: DiagRejected}
	case code >= 400:
		return SMTPDiag{Code: DiagRejected, Temporary: true}
	}
	return SMTPDiag{Code: DiagUnknown}
}
