package errors

import (
	"fmt"
	"net/http"
)

// AppError es el error estándar de la capa HTTP. Se serializa como
// {"success":false,"message":...,"error":...}.
type AppError struct {
	Message    string
	Detail     string // va en el campo "error" si no está vacío
	HTTPStatus int
	Err        error // causa original, solo para logs
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.HTTPStatus, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.HTTPStatus, e.Message)
}

// Unwrap permite acceder al error original.
func (e *AppError) Unwrap() error { return e.Err }

// New crea un AppError.
func New(status int, message string) *AppError {
	return &AppError{Message: message, HTTPStatus: status}
}

// FromError convierte un error genérico en AppError (500 si no lo es ya).
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail devuelve una COPIA con Detail seteado.
func (e *AppError) WithDetail(detail string) *AppError {
	c := *e
	c.Detail = detail
	return &c
}

// WithCause devuelve una COPIA con la causa seteada.
func (e *AppError) WithCause(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

var (
	ErrInvalidJSON = &AppError{
		Message:    "Invalid JSON body",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidForm = &AppError{
		Message:    "Invalid form body",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrBodyTooLarge = &AppError{
		Message:    "Request body too large",
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}

	ErrNotFound = &AppError{
		Message:    "Not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrMethodNotAllowed = &AppError{
		Message:    "Method not allowed",
		HTTPStatus: http.StatusMethodNotAllowed,
	}

	ErrSendFailed = &AppError{
		Message:    "Failed to send email",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrInternalServerError = &AppError{
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
	}
)
