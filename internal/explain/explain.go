// Package explain turns a scored quiz result into a short narrative
// recommendation using the Anthropic API. It is strictly additive: scoring
// never depends on it, and it degrades to a clean error without an API key.
package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fatehq/fate-cli/internal/model"
	"github.com/fatehq/fate-cli/pkg/anthropic"
)

const systemPrompt = `You are a concise advisor helping a developer choose an AI coding tool.
You are given their quiz-based ranking and any requirement mismatches.
Explain in at most three short paragraphs why the top tool fits, mention the
runner-up, and flag any mismatch plainly. Do not invent tools or scores.`

// maxRankedInPrompt bounds the prompt size; tools past this rank rarely
// change the recommendation.
const maxRankedInPrompt = 5

// Explainer generates recommendation narratives.
type Explainer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates an Explainer. The client may not be nil.
func New(client anthropic.Client, model string, maxTokens int) *Explainer {
	return &Explainer{client: client, model: model, maxTokens: int64(maxTokens)}
}

// Explain produces a short narrative for the ranked quiz outcome.
func (e *Explainer) Explain(ctx context.Context, ranked []model.RankedTool, mismatches []model.RequirementMismatch) (string, error) {
	if len(ranked) == 0 {
		return "", eris.New("explain: no ranked tools")
	}

	req := anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(ranked, mismatches)},
		},
	}

	resp, err := e.createWithRetry(ctx, req)
	if err != nil {
		return "", err
	}
	resp.Usage.LogCost(e.model)

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", eris.New("explain: empty response")
	}
	return text, nil
}

// createWithRetry retries transient API failures with doubling backoff.
// Three attempts is plenty for an interactive command.
func (e *Explainer) createWithRetry(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	const maxAttempts = 3
	backoff := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := e.client.CreateMessage(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, lastErr
		}
		if attempt >= maxAttempts-1 {
			break
		}

		zap.L().Warn("explain: retrying after API error",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, lastErr
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil, eris.Wrap(lastErr, "explain: create message")
}

func buildPrompt(ranked []model.RankedTool, mismatches []model.RequirementMismatch) string {
	var b strings.Builder

	b.WriteString("Quiz ranking:\n")
	for i, rt := range ranked {
		if i >= maxRankedInPrompt {
			break
		}
		fmt.Fprintf(&b, "%d. %s (score %.1f, %s, privacy %s)\n",
			i+1, rt.Tool.Name, rt.Score, rt.Tool.OpenSourceLevel, rt.Tool.PrivacyLevel)
	}

	if len(mismatches) == 0 {
		b.WriteString("\nNo requirement mismatches.\n")
		return b.String()
	}

	b.WriteString("\nRequirement mismatches:\n")
	for _, m := range mismatches {
		fmt.Fprintf(&b, "- [%s] %s", m.Severity, m.Issue)
		if len(m.BetterMatches) > 0 {
			names := make([]string, 0, len(m.BetterMatches))
			for _, alt := range m.BetterMatches {
				names = append(names, alt.Name)
			}
			fmt.Fprintf(&b, " (better: %s)", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
