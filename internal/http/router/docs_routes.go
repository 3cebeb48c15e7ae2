package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/docs"
	mw "github.com/dropDatabas3/mailgate/internal/http/middlewares"
)

// RegisterDocsRoutes registra GET / (página HTML de uso).
func RegisterDocsRoutes(r chi.Router, c *ctrl.DocsController) {
	r.Group(func(r chi.Router) {
		r.Use(mw.WithSecurityHeaders(mw.DocsContentSecurityPolicy))
		r.Get("/", c.Index)
		r.Head("/", c.Index)
	})
}
