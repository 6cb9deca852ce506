// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage is the only implementation; tests use
// hand-written in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/study-plan/internal/model"
)

// UserRepository persists accounts. Accounts are immutable after creation;
// there is no update or delete.
type UserRepository interface {
	// Create inserts the user and fills in ID and CreatedAt.
	// Returns apperror.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *model.User) error
	// GetByEmail returns apperror.ErrInvalidCredentials when no account
	// has that email, so the lookup failure is indistinguishable from a
	// wrong password at the API surface.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// PlanRepository persists study plans.
//
// The ownership predicate lives in the queries themselves: every read and
// delete takes the owner's userID and matches it against plans.user_id.
// There is no way to fetch a plan without asserting who is asking.
type PlanRepository interface {
	// Create inserts the plan and fills in ID and CreatedAt.
	Create(ctx context.Context, plan *model.Plan) error
	// ListByUser returns the user's plans, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Plan, error)
	// GetByUser returns apperror.ErrNotFound unless a plan matches BOTH
	// id and userID.
	GetByUser(ctx context.Context, id, userID string) (*model.Plan, error)
	// DeleteByUser removes the plan matching both id and userID;
	// apperror.ErrNotFound when nothing matched (including repeat deletes).
	DeleteByUser(ctx context.Context, id, userID string) error
}
