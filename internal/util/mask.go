// Package util contiene helpers chicos sin dependencias del dominio.
package util

import (
	"net/mail"
	"strings"
)

// MaskAddress oculta una dirección para logs, dejando lo justo para
// correlacionar: primera letra del usuario y del primer label del dominio.
//
//	"John Doe <john.doe@example.com>" -> "j***@e***.com"
//	"apikey"                          -> "a***"
//	"ops@localhost"                   -> "o***@localhost"
func MaskAddress(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if a, err := mail.ParseAddress(s); err == nil {
		s = a.Address
	}
	s = strings.ToLower(s)

	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return maskPart(s)
	}
	return maskPart(s[:at]) + "@" + maskDomain(s[at+1:])
}

func maskPart(p string) string {
	r := []rune(p)
	if len(r) <= 1 {
		return "***"
	}
	return string(r[0]) + "***"
}

// maskDomain deja intactos los dominios de un solo label (localhost).
func maskDomain(d string) string {
	labels := strings.Split(d, ".")
	if len(labels) < 2 {
		return d
	}
	labels[0] = maskPart(labels[0])
	return strings.Join(labels, ".")
}
