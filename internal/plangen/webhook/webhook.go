// Package webhook implements plangen.Generator against an external AI
// workflow endpoint (an n8n-style webhook).
//
// The contract with the workflow is small: POST {"subject": ..., "time": ...}
// and get back a JSON payload whose envelope varies with the workflow's
// configuration. plangen.Normalize absorbs that variability; this package
// only owns the transport; request encoding, the timeout, and turning any
// transport or HTTP failure into an upstream error.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sakif/study-plan/internal/apperror"
	"github.com/sakif/study-plan/internal/model"
	"github.com/sakif/study-plan/internal/plangen"
)

// Config holds the configuration for the webhook client.
type Config struct {
	// URL is the workflow endpoint to POST generation requests to.
	URL string
	// Timeout bounds the whole round-trip. The upstream runs an LLM, so
	// this is generous compared to a normal API call.
	Timeout time.Duration
}

// DefaultConfig returns the config used in production, with the URL filled
// in from the environment by the caller.
func DefaultConfig(url string) Config {
	return Config{
		URL:     url,
		Timeout: 30 * time.Second,
	}
}

// Configured reports whether url points at a real endpoint. An empty value
// or the placeholder shipped in .env.example ("replace-me") means the
// server should fall back to the mock generator.
func Configured(url string) bool {
	return url != "" && !strings.Contains(url, "replace-me")
}

// Client calls the external workflow and normalizes its response.
type Client struct {
	config Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a webhook Client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

var _ plangen.Generator = (*Client)(nil)

// Generate POSTs the request and normalizes the response body.
//
// Failure handling: transport errors, timeouts, non-2xx statuses, and
// undecodable bodies all surface as apperror.ErrUpstream; the caller
// cannot usefully distinguish them, and the client must not see the
// underlying detail. The detail is logged here instead.
func (c *Client) Generate(ctx context.Context, req plangen.Request) (*model.PlanContent, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("webhook: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("webhook: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error("webhook call failed",
			slog.String("url", c.config.URL),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Upstream(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("webhook returned non-success status",
			slog.String("url", c.config.URL),
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperror.Upstream(fmt.Errorf("webhook status %s", resp.Status))
	}

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error("webhook response is not valid JSON", slog.String("error", err.Error()))
		return nil, apperror.Upstream(fmt.Errorf("decoding webhook response: %w", err))
	}

	content := plangen.Normalize(raw, req.Days, req.Subject)

	c.logger.Info("plan content generated",
		slog.String("subject", req.Subject),
		slog.Int("days", req.Days),
		slog.Int("modules", len(content.Modules)),
		slog.Duration("duration", time.Since(start)),
	)

	return &content, nil
}
