package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics del envío de mails. Viven en un paquete propio para que
// email y http puedan usarlas sin ciclos de import.

const (
	ResultSent     = "sent"
	ResultError    = "error"
	ResultRejected = "rejected" // validación, nunca llegó al relay
)

var (
	MailSendTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_send_total",
		Help: "Envíos por resultado y código de diagnóstico",
	}, []string{"result", "diag_code"})

	MailSendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mail_send_duration_seconds",
		Help:    "Duración de la sesión SMTP (dial + auth + data)",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"result"})

	MailValidationRejects = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_validation_rejects_total",
		Help: "Requests rechazados antes de abrir sesión SMTP, por campo",
	}, []string{"field"})
)

// RegisterMail registra las métricas de mail en reg (o el default si es nil).
func RegisterMail(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{MailSendTotal, MailSendDuration, MailValidationRejects} {
		if err := register(reg, c); err != nil {
			return err
		}
	}
	return nil
}

// RecordMailSend registra el resultado de un envío. dur == 0 no observa latencia.
func RecordMailSend(result, diagCode string, dur time.Duration) {
	MailSendTotal.WithLabelValues(result, diagCode).Inc()
	if dur > 0 {
		MailSendDuration.WithLabelValues(result).Observe(dur.Seconds())
	}
}

// RecordValidationReject cuenta un rechazo por cada campo faltante o inválido.
func RecordValidationReject(fields ...string) {
	for _, f := range fields {
		MailValidationRejects.WithLabelValues(f).Inc()
	}
}

// register ignora duplicados para que RegisterMail sea idempotente.
func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}
