// Package health contiene el service para health checks.
package health

import (
	"context"
	"time"

	dto "github.com/dropDatabas3/mailgate/internal/http/dto/health"
	"github.com/dropDatabas3/mailgate/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene los metadatos que expone /readyz.
// El servicio no tiene dependencias externas propias: los relays los elige
// cada request, así que "ready" significa "el proceso atiende".
type Deps struct {
	ServiceName string
	Version     string
	Commit      string
	StartedAt   time.Time

	// now permite fijar el reloj en tests.
	now func() time.Time
}

type healthService struct {
	deps Deps
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(deps Deps) HealthService {
	if deps.now == nil {
		deps.now = time.Now
	}
	if deps.StartedAt.IsZero() {
		deps.StartedAt = deps.now()
	}
	return &healthService{deps: deps}
}

const componentHealth = "health"

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	now := s.deps.now()
	resp := dto.HealthResponse{
		Status:    "ready",
		Service:   s.deps.ServiceName,
		Version:   s.deps.Version,
		Commit:    s.deps.Commit,
		Uptime:    now.Sub(s.deps.StartedAt).Truncate(time.Second).String(),
		Timestamp: now.UTC(),
	}

	logger.From(ctx).Debug("health check",
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.String("uptime", resp.Uptime),
	)
	return resp
}
