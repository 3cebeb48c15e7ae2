package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/health"
	mw "github.com/dropDatabas3/mailgate/internal/http/middlewares"
)

// RegisterHealthRoutes registra /readyz (público, sin cache).
func RegisterHealthRoutes(r chi.Router, c *ctrl.HealthController) {
	r.Group(func(r chi.Router) {
		r.Use(mw.WithNoStore())
		r.Get("/readyz", c.Readyz)
		r.Head("/readyz", c.Readyz)
	})
}
