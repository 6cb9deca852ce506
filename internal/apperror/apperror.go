// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps them to status codes in
// exactly one place (handler.writeError). Two of them are intentionally
// non-specific:
//
//   - ErrInvalidCredentials is returned both for "email not registered" and
//     "wrong password", so a caller cannot probe which emails exist.
//   - ErrNotFound covers both "no such plan" and "plan belongs to someone
//     else", so a caller cannot distinguish existence from ownership.
//
// Client-facing messages are in Portuguese, matching the product's locale.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("duplicate email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUpstream           = errors.New("upstream error")
)

type AppError struct {
	Err     error  // sentinel, for errors.Is checks
	Message string // human-readable, client-facing message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns the unified not-found-or-forbidden error for a plan.
// The message deliberately does not say which of the two it was.
func NotFound() *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: "Plano não encontrado ou acesso negado",
	}
}

// UserNotFound is used by the session endpoints when a token references an
// account that no longer exists.
func UserNotFound() *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: "Usuário não encontrado",
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateEmail is returned when registration hits the UNIQUE constraint.
func DuplicateEmail() *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: "Email já cadastrado",
	}
}

// InvalidCredentials is returned for any login failure. One message for
// unknown email and for wrong password.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Email ou senha inválidos",
	}
}

// Upstream wraps a failure of the external plan-generation webhook.
func Upstream(cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrUpstream, cause),
		Message: "Erro ao gerar plano com IA",
	}
}
