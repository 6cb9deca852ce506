package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/study-plan/internal/apperror"
	"github.com/sakif/study-plan/internal/model"
	"github.com/sakif/study-plan/internal/repository"
)

// compile-time check that *PlanStore implements repository.PlanRepository
var _ repository.PlanRepository = (*PlanStore)(nil)

// PlanStore implements repository.PlanRepository on top of the shared
// connection pool.
type PlanStore struct {
	db *DB
}

// NewPlanStore returns a PlanStore backed by db.
func NewPlanStore(db *DB) *PlanStore {
	return &PlanStore{db: db}
}

// Create inserts a new plan, generating its ID and timestamp.
//
// xid IDs are creation-time sortable, which ListByUser exploits as a
// tie-breaker for plans created within the same timestamp.
func (s *PlanStore) Create(ctx context.Context, plan *model.Plan) error {
	plan.ID = xid.New().String()
	plan.CreatedAt = time.Now()

	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO plans (id, user_id, theme, duration, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		plan.ID,
		plan.UserID,
		plan.Theme,
		plan.Duration,
		plan.Content,
		plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating plan: %w", err)
	}

	return nil
}

// ListByUser returns all of a user's plans, newest first.
func (s *PlanStore) ListByUser(ctx context.Context, userID string) ([]model.Plan, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, user_id, theme, duration, content, created_at
		 FROM plans
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	plans := make([]model.Plan, 0)
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Theme, &p.Duration, &p.Content, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning plan row: %w", err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating plans: %w", err)
	}

	return plans, nil
}

// GetByUser retrieves a single plan, but only if userID owns it.
//
// The ownership predicate is part of the WHERE clause, so "wrong owner" and
// "no such plan" are the same sql.ErrNoRows; which is exactly the unified
// error the API promises.
func (s *PlanStore) GetByUser(ctx context.Context, id, userID string) (*model.Plan, error) {
	var p model.Plan

	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, theme, duration, content, created_at
		 FROM plans
		 WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(
		&p.ID, &p.UserID, &p.Theme, &p.Duration, &p.Content, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("sqlite: getting plan %s: %w", id, err)
	}

	return &p, nil
}

// DeleteByUser removes a plan, but only if userID owns it.
//
// Same pattern as GetByUser: the ownership check is in the DELETE itself,
// and RowsAffected == 0 covers missing, foreign, and already-deleted plans
// alike. Deleting twice therefore reports not-found the second time.
func (s *PlanStore) DeleteByUser(ctx context.Context, id, userID string) error {
	result, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM plans WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting plan %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound()
	}

	return nil
}
