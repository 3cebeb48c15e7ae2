package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field { return zap.String("user_agent", v) }

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v time.Duration) zap.Field {
	return zap.Int64("duration_ms", v.Milliseconds())
}

// =================================================================================
// CAMPOS ESTÁNDAR - SMTP
// =================================================================================

// SMTPHost es el relay elegido por quien llama.
func SMTPHost(v string) zap.Field { return zap.String("smtp_host", v) }

// SMTPPort es el puerto ya parseado.
func SMTPPort(v int) zap.Field { return zap.Int("smtp_port", v) }

// Secure indica TLS implícito (true) o STARTTLS oportunista (false).
func Secure(v bool) zap.Field { return zap.Bool("smtp_secure", v) }

// SMTPUser: usar solo con valores ya enmascarados.
func SMTPUser(v string) zap.Field { return zap.String("smtp_user", v) }

// Recipient: usar solo con valores ya enmascarados.
func Recipient(v string) zap.Field { return zap.String("to", v) }

// MessageID es el Message-ID generado para el mensaje.
func MessageID(v string) zap.Field { return zap.String("message_id", v) }

// DiagCode es la clasificación del error SMTP (auth, tls, dial...).
func DiagCode(v string) zap.Field { return zap.String("diag_code", v) }

// Missing lista los campos requeridos ausentes.
func Missing(v []string) zap.Field { return zap.Strings("missing", v) }

// =================================================================================
// CAMPOS ESTÁNDAR - SISTEMA
// =================================================================================

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Layer(v string) zap.Field     { return zap.String("layer", v) }

// Err crea un campo para un error.
func Err(err error) zap.Field { return zap.Error(err) }

// Any crea un campo genérico para cualquier tipo.
func Any(key string, v any) zap.Field { return zap.Any(key, v) }

func String(key, v string) zap.Field { return zap.String(key, v) }
func Bool(key string, v bool) zap.Field {
	return zap.Bool(key, v)
}
