// GO TESTING BASICS:
// 1. Test files MUST end in _test.go; Go's tooling auto-discovers them
// 2. Test functions MUST start with "Test" and take *testing.T as the only param
// 3. Same package as the code being tested (so we can access unexported stuff)
// 4. Run with: go test ./internal/apperror/ -v  (-v = verbose, shows each test name)
package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound(),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "DuplicateEmail wraps ErrDuplicateEmail",
			err:       DuplicateEmail(),
			target:    ErrDuplicateEmail,
			wantMatch: true,
		},
		{
			name:      "InvalidCredentials wraps ErrInvalidCredentials",
			err:       InvalidCredentials(),
			target:    ErrInvalidCredentials,
			wantMatch: true,
		},
		{
			name:      "Upstream wraps ErrUpstream",
			err:       Upstream(errors.New("webhook returned 502")),
			target:    ErrUpstream,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound(),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "InvalidCredentials does NOT match ErrNotFound",
			err:       InvalidCredentials(),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

// The whole point of the non-specific errors is that their messages leak
// nothing, so the exact wording is part of the contract.
func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound does not reveal existence vs ownership",
			err:         NotFound(),
			wantMessage: "Plano não encontrado ou acesso negado",
		},
		{
			name:        "InvalidCredentials does not reveal which field was wrong",
			err:         InvalidCredentials(),
			wantMessage: "Email ou senha inválidos",
		},
		{
			name:        "DuplicateEmail",
			err:         DuplicateEmail(),
			wantMessage: "Email já cadastrado",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("name", "name is required"),
			wantMessage: "name is required",
		},
		{
			name:        "Upstream hides the cause from the client",
			err:         Upstream(errors.New("dial tcp: connection refused")),
			wantMessage: "Erro ao gerar plano com IA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUpstream_PreservesCause(t *testing.T) {
	cause := errors.New("status 503")
	err := Upstream(cause)

	// The cause stays reachable for logs even though the client never sees it.
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(Upstream(cause), cause) = false, want true")
	}
}

func TestErrorsIs_SurvivesWrapping(t *testing.T) {
	// Services wrap with fmt.Errorf("...: %w", err); the handler must still
	// recognise the sentinel through the extra layer.
	wrapped := fmt.Errorf("generating plan: %w", NotFound())

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is() should match ErrNotFound through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As() should extract *AppError through fmt.Errorf wrapping")
	}
	if appErr.Message != "Plano não encontrado ou acesso negado" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("email", "invalid email format")

	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}
