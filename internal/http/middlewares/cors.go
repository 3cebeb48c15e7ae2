package middlewares

import (
	"net/http"
	"strings"
)

// WithCORS maneja CORS para los orígenes permitidos. "*" acepta cualquiera.
// Sin credenciales: el endpoint no usa cookies, así que "*" es válido tal cual.
// Los preflight (OPTIONS) se responden acá con 204 y no llegan al router.
func WithCORS(allowed []string) Middleware {
	trim := func(s string) string { return strings.TrimRight(strings.TrimSpace(s), "/") }

	allowAll := false
	alist := make([]string, 0, len(allowed))
	for _, v := range allowed {
		v = trim(v)
		if v == "*" {
			allowAll = true
		}
		alist = append(alist, v)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := trim(r.Header.Get("Origin"))

			allowedOrigin := ""
			switch {
			case allowAll:
				allowedOrigin = "*"
			case origin != "":
				for _, a := range alist {
					if strings.EqualFold(origin, a) {
						allowedOrigin = origin
						break
					}
				}
			}

			h := w.Header()
			if allowedOrigin != "" {
				if allowedOrigin != "*" {
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Origin", allowedOrigin)
				h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				h.Set("Access-Control-Expose-Headers", "X-Request-ID")
				h.Set("Access-Control-Max-Age", "600") // preflight cache 10 min
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
