package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	httperrors "github.com/dropDatabas3/mailgate/internal/http/errors"
)

// MaxBodyBytes es el límite del body aceptado (1 MiB).
const MaxBodyBytes = 1 << 20

// ReadBodyFields devuelve los campos del body como mapa plano.
//
//   - application/json: objeto; los números quedan como json.Number. Un array
//     se acepta pero no aporta campos (la query decide).
//   - application/x-www-form-urlencoded: primer valor de cada clave.
//   - cualquier otro Content-Type (o body vacío): nil, nil.
//
// Los errores son *httperrors.AppError listos para WriteError.
func ReadBodyFields(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil
	}

	switch {
	case mt == "application/json" || strings.HasSuffix(mt, "+json"):
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		return decodeJSONObject(r.Body)

	case mt == "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		return decodeForm(r.Body)
	}

	return nil, nil
}

func decodeJSONObject(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil // body vacío
		}
		if isTooLarge(err) {
			return nil, httperrors.ErrBodyTooLarge
		}
		return nil, httperrors.ErrInvalidJSON.WithCause(err)
	}

	switch obj := v.(type) {
	case map[string]any:
		return obj, nil
	case []any, nil:
		return nil, nil // array o literal null: sin campos
	default:
		return nil, httperrors.ErrInvalidJSON
	}
}

// decodeForm lee solo el body; la query se mezcla aparte en el service.
func decodeForm(body io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		if isTooLarge(err) {
			return nil, httperrors.ErrBodyTooLarge
		}
		return nil, httperrors.ErrInvalidForm.WithCause(err)
	}
	vals, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, httperrors.ErrInvalidForm.WithCause(err)
	}
	out := make(map[string]any, len(vals))
	for k, vs := range vals {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out, nil
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
