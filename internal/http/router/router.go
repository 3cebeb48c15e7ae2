// Package router arma el árbol de rutas chi del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	docsctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/docs"
	emailctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/email"
	healthctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/health"
	httperrors "github.com/dropDatabas3/mailgate/internal/http/errors"
	mw "github.com/dropDatabas3/mailgate/internal/http/middlewares"
)

// Deps contiene todo lo que necesita el router.
type Deps struct {
	Docs   *docsctrl.DocsController
	Email  *emailctrl.Controllers
	Health *healthctrl.HealthController

	// MetricsHandler sirve /metrics; nil deshabilita la ruta.
	MetricsHandler http.Handler

	// CORSAllowedOrigins; vacío equivale a "*".
	CORSAllowedOrigins []string
}

// New registra middlewares globales y rutas.
//
// Orden de middlewares (de afuera hacia adentro):
//
//	RequestID -> Logging -> Recover -> StripSlashes -> CORS -> Metrics -> handler
func New(deps Deps) http.Handler {
	origins := deps.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithRecover(),
		chimw.StripSlashes,
		mw.WithCORS(origins),
		mw.WithMetrics(),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	if deps.Docs != nil {
		RegisterDocsRoutes(r, deps.Docs)
	}
	if deps.Email != nil {
		RegisterEmailRoutes(r, deps.Email)
	}
	if deps.Health != nil {
		RegisterHealthRoutes(r, deps.Health)
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}
