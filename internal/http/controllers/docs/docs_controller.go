// Package docs sirve la página de documentación del servicio.
package docs

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// DocsController sirve GET /.
type DocsController struct {
	page []byte
}

// NewDocsController crea el controller con la página embebida.
func NewDocsController() *DocsController {
	return &DocsController{page: indexHTML}
}

// Index devuelve siempre 200 con la página; la query se ignora.
func (c *DocsController) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(c.page)
}
