package email

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy

	// cierres de bloque que en texto plano equivalen a un salto de línea
	blockBreakRE = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|tr|table|blockquote|pre)>`)
	dropBlockRE  = regexp.MustCompile(`(?is)<(style|script|head)[^>]*>.*?</(style|script|head)>`)
	spacesRE     = regexp.MustCompile(`[ \t\f\v]+`)
	blankLinesRE = regexp.MustCompile(`\n{3,}`)
)

// PlainText deriva una alternativa text/plain a partir del HTML del mensaje.
func PlainText(htmlBody string) string {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})

	s := strings.ReplaceAll(htmlBody, "\r\n", "\n")
	s = dropBlockRE.ReplaceAllString(s, "")
	s = blockBreakRE.ReplaceAllString(s, "\n")
	s = strictPolicy.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSpace(spacesRE.ReplaceAllString(ln, " "))
	}
	s = strings.Join(lines, "\n")
	s = blankLinesRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
