// Package email contiene el controller de /send-email.
package email

import svc "github.com/dropDatabas3/mailgate/internal/http/services/email"

// Controllers agrupa todos los controllers del dominio email.
type Controllers struct {
	Send *SendController
}

// NewControllers crea el agregador de controllers email.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Send: NewSendController(s.Send),
	}
}
