package email

import (
	"context"
	"time"
)

// Options son los parámetros de conexión de un único envío.
type Options struct {
	Host     string
	Port     int
	Secure   bool // TLS implícito; false = STARTTLS oportunista
	Username string
	Password string

	// InsecureSkipVerify desactiva la validación del certificado del relay.
	InsecureSkipVerify bool
}

// Message es el contenido a entregar.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	// Text es opcional; si está vacío se envía solo text/html.
	Text string
}

// Receipt describe un envío aceptado por el relay.
type Receipt struct {
	MessageID string
	Host      string
	Port      int
	Secure    bool
	Duration  time.Duration
}

// Dispatcher entrega un mensaje a través de un relay.
// Implementado por SMTPDispatcher.
type Dispatcher interface {
	// Dispatch abre una sesión, envía msg y la cierra. El contexto solo se usa
	// para logging: una vez iniciado, el envío corre hasta completar o fallar.
	Dispatch(ctx context.Context, opts Options, msg Message) (Receipt, error)
}
