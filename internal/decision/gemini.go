// Package decision provides decision-service adapters for the arbiter.
// The Gemini adapter owns prompt construction and transport; everything it
// returns is treated as untrusted by the arbiter, so it does no parsing or
// validation of its own.
package decision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	genai "google.golang.org/genai"

	"github.com/carbonlens/triage/internal/arbiter"
)

// ErrEmptyResponse is returned when the model produced no candidates.
var ErrEmptyResponse = errors.New("decision model returned no content")

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.0-flash"

	decideAttempts = 3
	backoffBase    = 300 * time.Millisecond
)

// Gemini is a DecisionService backed by the Gemini API. The client reads
// GEMINI_API_KEY from the environment.
type Gemini struct {
	cli    *genai.Client
	model  string
	logger *slog.Logger
}

// NewGemini creates a Gemini decision service for the given model name.
func NewGemini(ctx context.Context, model string, logger *slog.Logger) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		cli:    cli,
		model:  model,
		logger: logger.With("system", "decision", "model", model),
	}, nil
}

// Decide sends the item and roster to the model in JSON response mode and
// returns the raw payload text. Transient failures are retried with
// exponential backoff; the last error is returned once attempts run out.
func (g *Gemini) Decide(ctx context.Context, req arbiter.Request) (string, error) {
	prompt := BuildPrompt(req)
	g.logger.Debug("decision request", "title", req.Title, "prompt_bytes", len(prompt))

	var lastErr error
	for attempt := 0; attempt < decideAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoffBase * time.Duration(1<<(attempt-1))):
			}
		}

		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
		)
		if err != nil {
			lastErr = err
			continue
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrEmptyResponse
			continue
		}

		return resp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("decide after %d attempts: %w", decideAttempts, lastErr)
}
