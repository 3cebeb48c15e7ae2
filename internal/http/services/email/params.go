package email

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	dto "github.com/dropDatabas3/mailgate/internal/http/dto/email"
)

// securePort es el puerto de SMTPS (TLS implícito). Siempre fuerza secure.
const securePort = 465

// Coerce convierte un valor crudo del body en string y dice si está presente.
//
//	nil, "", 0, false, arrays y objetos -> ausente
//	string no vacío                     -> tal cual (incluye "0" y " ")
//	número != 0                         -> texto decimal
//	true                                -> "true"
func Coerce(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case json.Number:
		f, err := t.Float64()
		if err == nil && f == 0 {
			return "", false
		}
		return t.String(), true
	case float64:
		if t == 0 || math.IsNaN(t) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		if t == 0 {
			return "", false
		}
		return strconv.Itoa(t), true
	case bool:
		if t {
			return "true", true
		}
		return "", false
	default:
		return "", false
	}
}

// Merge arma el request: por cada campo, el valor del body si está presente,
// si no el de la query (primer valor). body puede ser nil.
func Merge(body map[string]any, query url.Values) dto.SendEmailRequest {
	var req dto.SendEmailRequest
	for _, f := range dto.AllFields {
		if v, ok := Coerce(body[f]); ok {
			req.Set(f, v)
			continue
		}
		req.Set(f, query.Get(f))
	}
	return req
}

// MissingFields lista los requeridos ausentes, en orden fijo.
func MissingFields(req dto.SendEmailRequest) []string {
	var missing []string
	for _, f := range dto.RequiredFields {
		if req.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// ParsePort acepta enteros en base 10 ("587", " 587 ", "587.0") en 1..65535.
func ParsePort(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false
		}
		if f < 1 || f > 65535 {
			return 0, false
		}
		n = int(f)
	}
	if n < 1 || n > 65535 {
		return 0, false
	}
	return n, true
}

// IsSecure: TLS implícito si smtp_secure es exactamente "true" (el booleano
// true ya llega así desde Coerce) o si el puerto es 465.
func IsSecure(secure string, port int) bool {
	return secure == "true" || port == securePort
}
