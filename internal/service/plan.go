package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/study-plan/internal/apperror"
	"github.com/sakif/study-plan/internal/duration"
	"github.com/sakif/study-plan/internal/model"
	"github.com/sakif/study-plan/internal/plangen"
	"github.com/sakif/study-plan/internal/repository"
)

// PlanService handles the study-plan business logic: listing, fetching and
// deleting plans under the ownership rule, and orchestrating generation.
type PlanService struct {
	plans     repository.PlanRepository
	generator plangen.Generator
	logger    *slog.Logger
}

// NewPlanService creates a PlanService. The generator is either the webhook
// client or the mock; the service never knows which.
func NewPlanService(plans repository.PlanRepository, generator plangen.Generator, logger *slog.Logger) *PlanService {
	return &PlanService{
		plans:     plans,
		generator: generator,
		logger:    logger,
	}
}

// List returns all plans owned by userID, newest first.
func (s *PlanService) List(ctx context.Context, userID string) ([]model.Plan, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "User ID is required")
	}

	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list plans",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing plans: %w", err)
	}

	return plans, nil
}

// Get returns one plan, only if userID owns it. A plan that exists but
// belongs to someone else is indistinguishable from a missing one.
func (s *PlanService) Get(ctx context.Context, id, userID string) (*model.Plan, error) {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "Plan ID is required")
	}
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "User ID is required")
	}

	plan, err := s.plans.GetByUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// Delete removes a plan under the same ownership predicate as Get.
// Deleting an already-deleted plan reports not-found, not success.
func (s *PlanService) Delete(ctx context.Context, id, userID string) error {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	if id == "" {
		return apperror.ValidationFailed("id", "Plan ID is required")
	}
	if userID == "" {
		return apperror.ValidationFailed("userId", "User ID is required")
	}

	if err := s.plans.DeleteByUser(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("plan deleted", slog.String("id", id), slog.String("userID", userID))
	return nil
}

// Generate creates and persists a new plan.
//
// The flow: normalize the free-text duration to a day count, ask the
// generator for content (external webhook or mock), serialize the content,
// and persist. The stored Duration is the raw user input; the day count
// only lives inside the generated description.
func (s *PlanService) Generate(ctx context.Context, userID, theme, durationText string) (*model.Plan, error) {
	userID = strings.TrimSpace(userID)
	theme = strings.TrimSpace(theme)
	if userID == "" || theme == "" || strings.TrimSpace(durationText) == "" {
		return nil, apperror.ValidationFailed("", "Todos os campos são obrigatórios")
	}

	days := duration.Days(durationText)

	content, err := s.generator.Generate(ctx, plangen.Request{
		Subject: theme,
		Days:    days,
	})
	if err != nil {
		s.logger.Error("plan generation failed",
			slog.String("userID", userID),
			slog.String("theme", theme),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	serialized, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("serializing plan content: %w", err)
	}

	plan := &model.Plan{
		UserID:   userID,
		Theme:    theme,
		Duration: durationText,
		Content:  string(serialized),
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		s.logger.Error("failed to save plan",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving plan: %w", err)
	}

	s.logger.Info("plan generated",
		slog.String("id", plan.ID),
		slog.String("userID", userID),
		slog.String("theme", theme),
		slog.Int("days", days),
		slog.Int("modules", len(content.Modules)),
	)

	return plan, nil
}
