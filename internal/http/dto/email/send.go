// Package email contiene los DTOs del endpoint /send-email.
package email

// Nombres de campo tal como llegan en body o query.
const (
	FieldSMTPHost   = "smtp_host"
	FieldSMTPPort   = "smtp_port"
	FieldSMTPSecure = "smtp_secure"
	FieldSMTPUser   = "smtp_user"
	FieldSMTPPass   = "smtp_pass"
	FieldFrom       = "from"
	FieldTo         = "to"
	FieldSubject    = "subject"
	FieldHTML       = "html"
)

// RequiredFields en el orden en que se reportan los faltantes.
var RequiredFields = []string{
	FieldSMTPHost,
	FieldSMTPPort,
	FieldSMTPUser,
	FieldSMTPPass,
	FieldFrom,
	FieldTo,
	FieldSubject,
	FieldHTML,
}

// SendEmailRequest son los campos ya mezclados (body sobre query) y
// coercionados a string. "" significa ausente.
type SendEmailRequest struct {
	SMTPHost   string `json:"smtp_host"`
	SMTPPort   string `json:"smtp_port"`
	SMTPSecure string `json:"smtp_secure,omitempty"`
	SMTPUser   string `json:"smtp_user"`
	SMTPPass   string `json:"smtp_pass"`
	From       string `json:"from"`
	To         string `json:"to"`
	Subject    string `json:"subject"`
	HTML       string `json:"html"`
}

// Get devuelve el valor de un campo por su nombre de wire.
func (r SendEmailRequest) Get(field string) string {
	switch field {
	case FieldSMTPHost:
		return r.SMTPHost
	case FieldSMTPPort:
		return r.SMTPPort
	case FieldSMTPSecure:
		return r.SMTPSecure
	case FieldSMTPUser:
		return r.SMTPUser
	case FieldSMTPPass:
		return r.SMTPPass
	case FieldFrom:
		return r.From
	case FieldTo:
		return r.To
	case FieldSubject:
		return r.Subject
	case FieldHTML:
		return r.HTML
	}
	return ""
}

// Set es el inverso de Get; usado al mezclar fuentes.
func (r *SendEmailRequest) Set(field, v string) {
	switch field {
	case FieldSMTPHost:
		r.SMTPHost = v
	case FieldSMTPPort:
		r.SMTPPort = v
	case FieldSMTPSecure:
		r.SMTPSecure = v
	case FieldSMTPUser:
		r.SMTPUser = v
	case FieldSMTPPass:
		r.SMTPPass = v
	case FieldFrom:
		r.From = v
	case FieldTo:
		r.To = v
	case FieldSubject:
		r.Subject = v
	case FieldHTML:
		r.HTML = v
	}
}

// AllFields incluye smtp_secure, que es opcional.
var AllFields = append([]string{FieldSMTPSecure}, RequiredFields...)

// SendEmailResponse es el cuerpo de éxito. Los errores usan el contrato de
// internal/http/errors, que comparte success/message.
type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageSent es el mensaje fijo de éxito.
const MessageSent = "Email has been sent successfully!"
