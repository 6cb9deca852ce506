package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/study-plan/internal/apperror"
	"github.com/sakif/study-plan/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" gives every test a fresh, isolated database that disappears
// when the connection closes. The migrations run against it exactly as they
// do in production, so the UNIQUE constraint and foreign keys are real.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser creates a user and fails the test if it errors.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$not-a-real-hash-but-opaque-to-the-store",
	}
	if err := NewUserStore(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)

	user := &model.User{
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: "$2a$10$hash",
	}

	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)

	createTestUser(t, db, "dup@example.com")

	duplicate := &model.User{
		Name:         "Someone Else",
		Email:        "dup@example.com",
		PasswordHash: "$2a$10$other",
	}
	err := users.Create(context.Background(), duplicate)
	if err == nil {
		t.Fatal("Create() should have failed for duplicate email")
	}
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Errorf("Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestUserCreate_EmailIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)

	// Uniqueness is enforced on the email exactly as stored; a different
	// casing is a different account.
	createTestUser(t, db, "case@example.com")

	other := &model.User{
		Name:         "Upper",
		Email:        "Case@example.com",
		PasswordHash: "$2a$10$x",
	}
	if err := users.Create(context.Background(), other); err != nil {
		t.Fatalf("Create() with differently-cased email error = %v", err)
	}
}

func TestUserGetByEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	created := createTestUser(t, db, "lookup@example.com")

	got, err := users.GetByEmail(context.Background(), "lookup@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}

	if got.ID != created.ID {
		t.Errorf("GetByEmail() ID = %q, want %q", got.ID, created.ID)
	}
	if got.Name != created.Name {
		t.Errorf("GetByEmail() Name = %q, want %q", got.Name, created.Name)
	}
	// The stored hash must round-trip; login compares against it.
	if got.PasswordHash != created.PasswordHash {
		t.Errorf("GetByEmail() PasswordHash = %q, want %q", got.PasswordHash, created.PasswordHash)
	}
}

func TestUserGetByEmail_UnknownEmailIsInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)

	_, err := users.GetByEmail(context.Background(), "nobody@example.com")
	if err == nil {
		t.Fatal("GetByEmail() should fail for unknown email")
	}
	// Deliberately NOT a not-found error: the login path must not
	// distinguish "unknown email" from "wrong password".
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("GetByEmail() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserGetByID(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	created := createTestUser(t, db, "byid@example.com")

	got, err := users.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "byid@example.com" {
		t.Errorf("GetByID() Email = %q", got.Email)
	}
}

func TestUserGetByID_Missing(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)

	_, err := users.GetByID(context.Background(), "no-such-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}
