package email

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/mailgate/internal/email"
	dto "github.com/dropDatabas3/mailgate/internal/http/dto/email"
	httperrors "github.com/dropDatabas3/mailgate/internal/http/errors"
	"github.com/dropDatabas3/mailgate/internal/http/helpers"
	svc "github.com/dropDatabas3/mailgate/internal/http/services/email"
	"github.com/dropDatabas3/mailgate/internal/observability/logger"
	"github.com/dropDatabas3/mailgate/internal/util"
)

// SendController maneja /send-email.
type SendController struct {
	service svc.SendService
}

// NewSendController crea el controller de envío.
func NewSendController(service svc.SendService) *SendController {
	return &SendController{service: service}
}

// SendEmail maneja /send-email con cualquier método. Los parámetros salen
// del body (JSON o form) y de la query; el body gana si el valor está presente.
func (c *SendController) SendEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SendController.SendEmail"))

	body, err := helpers.ReadBodyFields(w, r)
	if err != nil {
		log.Debug("unreadable body", logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}

	req := svc.Merge(body, r.URL.Query())

	rcpt, err := c.service.Send(ctx, req)
	if err != nil {
		var verr *email.ValidationError
		var terr *email.TransportError
		switch {
		case errors.As(err, &verr):
			httperrors.WriteError(w, httperrors.New(http.StatusBadRequest, verr.Error()))
		case errors.As(err, &terr):
			log.Warn("email not sent",
				logger.SMTPHost(req.SMTPHost),
				logger.Recipient(util.MaskAddress(req.To)),
				logger.DiagCode(terr.Diag.Code),
			)
			httperrors.WriteError(w, httperrors.ErrSendFailed.WithDetail(terr.Error()).WithCause(err))
		default:
			log.Error("send email error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrSendFailed.WithDetail(err.Error()).WithCause(err))
		}
		return
	}

	log.Info("email sent",
		logger.MessageID(rcpt.MessageID),
		logger.SMTPHost(rcpt.Host),
		logger.Secure(rcpt.Secure),
	)
	helpers.WriteJSON(w, http.StatusOK, dto.SendEmailResponse{
		Success: true,
		Message: dto.MessageSent,
	})
}
