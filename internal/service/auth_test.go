package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/study-plan/internal/apperror"
	"github.com/sakif/study-plan/internal/auth"
	"github.com/sakif/study-plan/internal/model"
)

// mockUserRepo is an in-memory repository.UserRepository. It mirrors the
// real store's error contract: duplicate email on Create, invalid
// credentials on a GetByEmail miss.
type mockUserRepo struct {
	byEmail map[string]*model.User
	byID    map[string]*model.User
	nextID  int
	failAll error // when set, every call returns this error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]*model.User),
		byID:    make(map[string]*model.User),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.failAll != nil {
		return m.failAll
	}
	if _, exists := m.byEmail[user.Email]; exists {
		return apperror.DuplicateEmail()
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.byEmail[user.Email] = &stored
	m.byID[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	user, ok := m.byEmail[email]
	if !ok {
		return nil, apperror.InvalidCredentials()
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	user, ok := m.byID[id]
	if !ok {
		return nil, apperror.UserNotFound()
	}
	result := *user
	return &result, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewAuthService(repo, auth.NewPasswordServiceWithCost(bcrypt.MinCost), tokens, logger)
	return svc, repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "Maria", "maria@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.User.ID == "" {
		t.Error("Register() did not assign an ID")
	}
	if result.Token == "" {
		t.Error("Register() did not issue a session token")
	}
	if result.User.PasswordHash == "s3cret" || result.User.PasswordHash == "" {
		t.Error("Register() must store a hash, never the plaintext")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name, userName, email, password string
	}{
		{name: "missing name", userName: "", email: "a@b.com", password: "pw"},
		{name: "missing email", userName: "A", email: "", password: "pw"},
		{name: "missing password", userName: "A", email: "a@b.com", password: ""},
		{name: "whitespace name", userName: "   ", email: "a@b.com", password: "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "First", "dup@example.com", "pw1"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "Second", "dup@example.com", "pw2")
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Errorf("second Register() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	registered, err := svc.Register(context.Background(), "Maria", "maria@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "maria@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("Login() user ID = %q, want %q", result.User.ID, registered.User.ID)
	}
	if result.Token == "" {
		t.Error("Login() did not issue a session token")
	}
}

func TestLogin_WrongPasswordAndUnknownEmailAreIdentical(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "Maria", "maria@example.com", "s3cret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, errWrongPw := svc.Login(context.Background(), "maria@example.com", "nope")
	_, errNoUser := svc.Login(context.Background(), "ghost@example.com", "nope")

	if !errors.Is(errWrongPw, apperror.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrongPw)
	}
	if !errors.Is(errNoUser, apperror.ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", errNoUser)
	}

	// The client-facing messages must match exactly; anything else leaks
	// which emails are registered.
	if errWrongPw.Error() != errNoUser.Error() {
		t.Errorf("messages differ: %q vs %q", errWrongPw.Error(), errNoUser.Error())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	for _, tt := range []struct{ email, password string }{
		{email: "", password: "pw"},
		{email: "a@b.com", password: ""},
	} {
		_, err := svc.Login(context.Background(), tt.email, tt.password)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Login(%q, %q) error = %v, want ErrValidation", tt.email, tt.password, err)
		}
	}
}

func TestGetUserByID(t *testing.T) {
	svc, _ := newTestAuthService(t)

	registered, _ := svc.Register(context.Background(), "Maria", "maria@example.com", "pw")

	user, err := svc.GetUserByID(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Email != "maria@example.com" {
		t.Errorf("GetUserByID() Email = %q", user.Email)
	}
}

func TestRegister_RepoFailurePropagates(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.failAll = errors.New("disk full")

	_, err := svc.Register(context.Background(), "Maria", "maria@example.com", "pw")
	if err == nil {
		t.Fatal("Register() should propagate repository failures")
	}
	if errors.Is(err, apperror.ErrValidation) {
		t.Error("a store failure must not masquerade as a validation error")
	}
}
