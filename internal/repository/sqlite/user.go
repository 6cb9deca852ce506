package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/study-plan/internal/apperror"
	"github.com/sakif/study-plan/internal/model"
	"github.com/sakif/study-plan/internal/repository"
)

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// UserStore implements repository.UserRepository on top of the shared
// connection pool.
type UserStore struct {
	db *DB
}

// NewUserStore returns a UserStore backed by db.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new account, generating its ID and timestamp.
//
// DUPLICATE DETECTION:
// We attempt the INSERT and translate the UNIQUE-constraint failure instead
// of doing a SELECT-then-INSERT. The check-then-act version has a race: two
// concurrent registrations for the same email could both pass the check.
// Letting the constraint decide makes the database the arbiter.
//
// modernc.org/sqlite does not export a typed constraint error, so we match
// on the driver's message, which always contains "UNIQUE constraint failed"
// (the same text the SQLite C library produces).
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.DuplicateEmail()
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	return nil
}

// GetByEmail looks up an account by its exact (case-sensitive) email.
//
// A miss returns InvalidCredentials, not a "no such user" error; the login
// path must not reveal whether an email is registered.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at
		 FROM users
		 WHERE email = ?`,
		email,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	return &user, nil
}

// GetByID retrieves an account by its internal ID. Used by /api/me after the
// session token has been validated.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at
		 FROM users
		 WHERE id = ?`,
		id,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.UserNotFound()
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &user, nil
}
