package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/email"
	mw "github.com/dropDatabas3/mailgate/internal/http/middlewares"
)

// RegisterEmailRoutes registra /send-email para cualquier método.
func RegisterEmailRoutes(r chi.Router, c *ctrl.Controllers) {
	r.Group(func(r chi.Router) {
		r.Use(
			mw.WithSecurityHeaders(mw.APIContentSecurityPolicy),
			mw.WithNoStore(),
		)
		r.HandleFunc("/send-email", c.Send.SendEmail)
	})
}
