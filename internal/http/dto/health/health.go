// Package health contiene DTOs para endpoints de health check.
package health

import "time"

// HealthResponse es la respuesta de /readyz.
type HealthResponse struct {
	Status    string    `json:"status"` // "ready"
	Service   string    `json:"service,omitempty"`
	Version   string    `json:"version,omitempty"`
	Commit    string    `json:"commit,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
