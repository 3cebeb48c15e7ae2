package middlewares

import "net/http"

// WithNoStore agrega Cache-Control: no-store a la respuesta.
// Las respuestas de /send-email nunca deben quedar en caches intermedias.
func WithNoStore() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
