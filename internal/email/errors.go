package email

import (
	"fmt"
	"strings"
)

// ValidationError indica campos requeridos ausentes o con valor inválido.
// Nunca llega al transporte.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Missing required field(s): " + strings.Join(e.Missing, ", ")
	}
	return "Invalid value for field(s): " + strings.Join(e.Invalid, ", ")
}

// TransportError envuelve cualquier falla al construir o usar la sesión SMTP.
// Error() devuelve el texto crudo del error subyacente.
type TransportError struct {
	Diag SMTPDiag
	Err  error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "smtp: unknown error"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func newTransportError(err error) *TransportError {
	return &TransportError{Diag: DiagnoseSMTP(err), Err: err}
}

func invalidAddress(host string, port int) error {
	return fmt.Errorf("smtp: invalid relay address %q:%d", host, port)
}
