// Package email es el adaptador de envío: abre una sesión SMTP efímera con los
// parámetros que trae cada request y entrega exactamente un mensaje.
//
//	┌──────────────────────────────┐
//	│  services/email.SendService  │  valida y resuelve campos
//	└──────────────┬───────────────┘
//	               ▼
//	┌──────────────────────────────┐
//	│  email.SMTPDispatcher        │  go-mail Dialer por envío, sin reuso
//	└──────────────┬───────────────┘
//	               ▼
//	        relay SMTP de terceros
//
// No hay reintentos, pool de conexiones ni estado compartido entre envíos.
package email
