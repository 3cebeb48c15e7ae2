// Package server arma el http.Handler del servicio con todas sus dependencias.
package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/mailgate/internal/config"
	"github.com/dropDatabas3/mailgate/internal/email"
	docsctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/docs"
	emailctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/email"
	healthctrl "github.com/dropDatabas3/mailgate/internal/http/controllers/health"
	mw "github.com/dropDatabas3/mailgate/internal/http/middlewares"
	"github.com/dropDatabas3/mailgate/internal/http/router"
	emailsvc "github.com/dropDatabas3/mailgate/internal/http/services/email"
	healthsvc "github.com/dropDatabas3/mailgate/internal/http/services/health"
	"github.com/dropDatabas3/mailgate/internal/metrics"
)

// Options permite reemplazar piezas en tests.
type Options struct {
	// Dispatcher por defecto: email.NewSMTPDispatcher(cfg.Mail.TextAlternative).
	Dispatcher email.Dispatcher
	// Registerer por defecto: prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Gatherer para /metrics; por defecto prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// BuildHandler construye el handler HTTP completo a partir de la config.
func BuildHandler(cfg *config.Config, opts Options) (http.Handler, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	// 1. Métricas (antes del router: WithMetrics se resuelve al armar la cadena)
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := opts.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		if err := mw.RegisterHTTPMetrics(reg); err != nil {
			return nil, fmt.Errorf("register http metrics: %w", err)
		}
		if err := metrics.RegisterMail(reg); err != nil {
			return nil, fmt.Errorf("register mail metrics: %w", err)
		}
		gatherer := opts.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		metricsHandler = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}

	// 2. Dispatcher SMTP
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = email.NewSMTPDispatcher(cfg.Mail.TextAlternative)
	}

	// 3. Services
	emailServices := emailsvc.NewServices(emailsvc.Deps{
		Dispatcher:         dispatcher,
		InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
	})
	healthService := healthsvc.NewHealthService(healthsvc.Deps{
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		Commit:      cfg.App.Commit,
	})

	// 4. Controllers + router
	return router.New(router.Deps{
		Docs:               docsctrl.NewDocsController(),
		Email:              emailctrl.NewControllers(emailServices),
		Health:             healthctrl.NewHealthController(healthService),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}), nil
}
