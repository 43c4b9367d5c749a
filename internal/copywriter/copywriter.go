// Package copywriter generates and rewrites property marketing copy through
// the configured text provider, charging edits against the session ledger.
package copywriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/doorstephq/doorstep/internal/ailink"
	"github.com/doorstephq/doorstep/internal/ailink/content"
	"github.com/doorstephq/doorstep/internal/ailink/driver"
	"github.com/doorstephq/doorstep/internal/core/session"
	"github.com/doorstephq/doorstep/internal/metrics"
	"github.com/doorstephq/doorstep/internal/observability"
)

// Copywriter routes text generation requests and records usage. The ledger
// is optional; requests without a session id are not metered.
type Copywriter struct {
	registry *ailink.Registry
	ledger   *session.Ledger
}

func New(registry *ailink.Registry, ledger *session.Ledger) *Copywriter {
	return &Copywriter{registry: registry, ledger: ledger}
}

// ListingRequest describes a full listing copy generation.
type ListingRequest struct {
	Property    map[string]any
	Location    string
	Audience    string
	Tone        string
	TargetWords int
}

// ListingResult is the generated listing copy.
type ListingResult struct {
	Text      string             `json:"text"`
	WordCount int                `json:"word_count"`
	Usage     *session.EditUsage `json:"usage_stats,omitempty"`
}

// RoomRequest describes a single room description generation.
type RoomRequest struct {
	Prompt      string `json:"prompt"`
	TargetWords int    `json:"target_words"`
	SessionID   string `json:"session_id,omitempty"`
}

// RoomResult is the generated room description plus ledger state.
type RoomResult struct {
	Text      string             `json:"text"`
	WordCount int                `json:"word_count"`
	Usage     *session.EditUsage `json:"usage_stats,omitempty"`
}

// GenerateListing produces full listing copy in the requested tone.
func (c *Copywriter) GenerateListing(ctx context.Context, req ListingRequest) (*ListingResult, error) {
	if strings.TrimSpace(req.Location) == "" && len(req.Property) == 0 {
		return nil, fmt.Errorf("property details or location are required")
	}

	text, _, err := c.complete(ctx, buildListingPrompt(req), listingMaxTokens)
	metrics.RecordCopyGeneration("listing", err == nil)
	if err != nil {
		return nil, err
	}

	return &ListingResult{Text: text, WordCount: wordCount(text)}, nil
}

// GenerateRoomDescription produces a room description from a caller-supplied
// prompt. When a session id is present the edit is charged to the ledger:
// the limit is checked before the provider call and the authoritative
// check-and-increment happens on record.
func (c *Copywriter) GenerateRoomDescription(ctx context.Context, req RoomRequest) (*RoomResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	targetWords := req.TargetWords
	if targetWords <= 0 {
		targetWords = defaultRoomTargetWords
	}

	if err := c.preflightLimit(ctx, req.SessionID); err != nil {
		return nil, err
	}

	text, usage, err := c.complete(ctx, buildRoomPrompt(req.Prompt, targetWords), roomMaxTokens)
	metrics.RecordCopyGeneration("room", err == nil)
	if err != nil {
		return nil, err
	}

	result := &RoomResult{Text: text, WordCount: wordCount(text)}

	if strings.TrimSpace(req.SessionID) != "" && c.ledger != nil {
		cost := CostUSD(usage, buildRoomPrompt(req.Prompt, targetWords), text)
		snapshot, err := c.ledger.RecordEdit(ctx, req.SessionID, cost)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				// Session vanished between preflight and record; return the
				// generated text unmetered, as the original behavior did.
				return result, nil
			}
			return nil, err
		}
		result.Usage = usageFrom(snapshot, cost)
		metrics.RecordSessionEdit("room")

		if observability.ServerLogger != nil {
			observability.ServerLogger.Info("Room edit recorded",
				zap.String("session_id", req.SessionID),
				zap.Int("edits_count", snapshot.EditsCount),
				zap.Float64("request_cost_usd", cost),
				zap.Float64("total_cost_usd", snapshot.TotalCostUSD))
		}
	}

	return result, nil
}

// RefineText rewrites text following a user instruction.
func (c *Copywriter) RefineText(ctx context.Context, text, instruction string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text is required")
	}
	if strings.TrimSpace(instruction) == "" {
		return "", fmt.Errorf("instruction is required")
	}

	refined, _, err := c.complete(ctx, buildRefinePrompt(text, instruction), refineMaxTokens)
	metrics.RecordCopyGeneration("refine", err == nil)
	if err != nil {
		return "", err
	}
	return refined, nil
}

// preflightLimit rejects before spending provider tokens when the session is
// already at its ceiling. Unknown sessions pass; generation then proceeds
// unmetered.
func (c *Copywriter) preflightLimit(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" || c.ledger == nil {
		return nil
	}
	s, err := c.ledger.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return err
	}
	if s.EditsCount >= s.EditLimit {
		metrics.RecordEditLimitRejection()
		return fmt.Errorf("%w: %d of %d edits used", session.ErrLimitExceeded, s.EditsCount, s.EditLimit)
	}
	return nil
}

func (c *Copywriter) complete(ctx context.Context, prompt string, maxTokens int) (string, *driver.Usage, error) {
	if c == nil || c.registry == nil {
		return "", nil, fmt.Errorf("copywriter not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resolved, err := c.registry.Resolve(ailink.RoleCopywriter, "")
	if err != nil {
		return "", nil, fmt.Errorf("resolve copywriter provider: %w", err)
	}

	temperature := defaultTemperature
	req := &driver.Request{
		Model:       resolved.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
		Messages:    []content.Message{content.Text("user", prompt)},
	}

	resp, err := resolved.Driver.Complete(ctx, req)
	if err != nil {
		return "", nil, err
	}

	return strings.TrimSpace(resp.Text()), resp.Usage, nil
}

func usageFrom(s *session.EditSession, requestCost float64) *session.EditUsage {
	if s == nil {
		return nil
	}
	return &session.EditUsage{
		EditsCount:         s.EditsCount,
		EditLimit:          s.EditLimit,
		TotalCostUSD:       s.TotalCostUSD,
		EditLimitReached:   s.LimitReached,
		ThisRequestCostUSD: requestCost,
	}
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
