package plangen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/study-plan/internal/model"
)

// DefaultMockDelay imitates the latency of a real generation round-trip so
// the frontend's loading states stay honest during local development.
const DefaultMockDelay = 2 * time.Second

// Mock is the Generator used when no webhook URL is configured. It returns a
// deterministic placeholder plan that is clearly labeled as mock content.
type Mock struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewMock creates a Mock generator. delay < 0 selects DefaultMockDelay;
// tests pass 0 to skip the wait entirely.
func NewMock(delay time.Duration, logger *slog.Logger) *Mock {
	if delay < 0 {
		delay = DefaultMockDelay
	}
	return &Mock{delay: delay, logger: logger}
}

var _ Generator = (*Mock)(nil)

// Generate returns the placeholder plan after the configured delay.
//
// The wait selects on ctx.Done() rather than plain time.Sleep, so a client
// disconnect or server shutdown cancels it instead of leaving a timer
// running.
func (m *Mock) Generate(ctx context.Context, req Request) (*model.PlanContent, error) {
	m.logger.Warn("webhook URL not configured, generating mock plan",
		slog.String("subject", req.Subject),
		slog.Int("days", req.Days),
	)

	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &model.PlanContent{
		Description: fmt.Sprintf(
			"Plano (Mock) para %s em %d dias. Configure o .env para usar IA real.",
			req.Subject, req.Days,
		),
		Modules: []model.PlanModule{
			{
				Title:  "Módulo Mock 1",
				Topics: []string{"Configure", "O", "Webhook"},
			},
		},
	}, nil
}
