// Package email contiene el service que valida un pedido de envío y lo
// entrega al dispatcher SMTP.
package email

import (
	"context"
	"errors"

	"github.com/dropDatabas3/mailgate/internal/email"
	dto "github.com/dropDatabas3/mailgate/internal/http/dto/email"
	"github.com/dropDatabas3/mailgate/internal/metrics"
	"github.com/dropDatabas3/mailgate/internal/observability/logger"
)

// ErrNoDispatcher se devuelve si el service se armó sin dispatcher.
var ErrNoDispatcher = errors.New("email dispatcher not configured")

// SendService define la operación de envío.
type SendService interface {
	// Send valida req y, si está completo, envía un único mensaje.
	// Errores: *email.ValidationError (sin intento SMTP) o *email.TransportError.
	Send(ctx context.Context, req dto.SendEmailRequest) (email.Receipt, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Dispatcher email.Dispatcher
	// InsecureSkipVerify se propaga a cada sesión (mail.insecure_skip_verify).
	InsecureSkipVerify bool
}

type sendService struct {
	deps Deps
}

// NewSendService crea el service de envío.
func NewSendService(d Deps) SendService {
	return &sendService{deps: d}
}

const componentSend = "email.send"

func (s *sendService) Send(ctx context.Context, req dto.SendEmailRequest) (email.Receipt, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentSend),
		logger.Op("Send"),
	)

	opts, msg, err := Resolve(req, s.deps.InsecureSkipVerify)
	if err != nil {
		var verr *email.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationReject(verr.Missing...)
			metrics.RecordValidationReject(verr.Invalid...)
			metrics.RecordMailSend(metrics.ResultRejected, "validation", 0)
			log.Warn("send rejected", logger.Missing(verr.Missing), logger.Any("invalid", verr.Invalid))
		}
		return email.Receipt{}, err
	}

	if s.deps.Dispatcher == nil {
		return email.Receipt{}, ErrNoDispatcher
	}

	return s.deps.Dispatcher.Dispatch(ctx, opts, msg)
}

// Resolve valida req y arma las opciones de sesión y el mensaje.
// Los faltantes tienen prioridad sobre un puerto inválido.
func Resolve(req dto.SendEmailRequest, insecureSkipVerify bool) (email.Options, email.Message, error) {
	if missing := MissingFields(req); len(missing) > 0 {
		return email.Options{}, email.Message{}, &email.ValidationError{Missing: missing}
	}

	port, ok := ParsePort(req.SMTPPort)
	if !ok {
		return email.Options{}, email.Message{}, &email.ValidationError{Invalid: []string{dto.FieldSMTPPort}}
	}

	opts := email.Options{
		Host:               req.SMTPHost,
		Port:               port,
		Secure:             IsSecure(req.SMTPSecure, port),
		Username:           req.SMTPUser,
		Password:           req.SMTPPass,
		InsecureSkipVerify: insecureSkipVerify,
	}
	msg := email.Message{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
	}
	return opts, msg, nil
}
