// Package plangen produces study-plan content for a subject and day count.
//
// The real implementation (webhook subpackage) calls an external AI service;
// the Mock implementation in this package synthesises a placeholder plan.
// Both sit behind the Generator interface so the service layer never knows
// which one it is talking to.
package plangen

import (
	"context"

	"github.com/sakif/study-plan/internal/model"
)

// Request describes one generation call.
type Request struct {
	Subject string `json:"subject"` // raw user-entered theme
	Days    int    `json:"time"`    // normalized day count
}

// Generator produces plan content for a request.
//
// Implementations must honour ctx cancellation; generation is the only
// slow operation in the system (an external round-trip or a deliberate
// mock delay).
type Generator interface {
	Generate(ctx context.Context, req Request) (*model.PlanContent, error)
}
