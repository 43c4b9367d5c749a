package copywriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/doorstephq/doorstep/internal/core/session"
	"github.com/doorstephq/doorstep/internal/metrics"
	"github.com/doorstephq/doorstep/internal/observability"
)

// TransformStyle selects how TransformText rewrites the input.
type TransformStyle string

const (
	StyleParagraph       TransformStyle = "paragraph"
	StyleBulletPoints    TransformStyle = "bullet_points"
	StyleKeyFeatures     TransformStyle = "key_features"
	StyleConcise         TransformStyle = "concise"
	StyleElaborate       TransformStyle = "elaborate"
	StyleProfessional    TransformStyle = "professional"
	StyleFriendly        TransformStyle = "friendly"
	StyleLuxury          TransformStyle = "luxury"
	StyleBoutique        TransformStyle = "boutique"
	StyleLifestyle       TransformStyle = "lifestyle"
	StyleStraightforward TransformStyle = "straightforward"
	StyleFactual         TransformStyle = "factual"
)

var styleInstructions = map[TransformStyle]string{
	StyleParagraph:       "Rewrite this as flowing, elegant prose with smooth transitions between sentences.",
	StyleBulletPoints:    "Extract the key points and present them as a clean bullet point list. Start each point with '•'. Be concise and impactful.",
	StyleKeyFeatures:     "Identify and highlight the 3-5 most compelling features. Present each as a short, punchy statement that emphasizes benefits.",
	StyleConcise:         "Condense this text to be 30-40% shorter while preserving all key selling points. Make every word count.",
	StyleElaborate:       "Expand this text with more vivid descriptions, sensory details, and lifestyle benefits. Make it 50% longer and more evocative.",
	StyleProfessional:    "Rewrite in a formal, professional tone suitable for corporate clients and high-end properties. Use simple, direct language like real estate agents. Include specific measurements and facts where possible.",
	StyleFriendly:        "Rewrite in a warm, welcoming tone that makes readers feel at home. Use inclusive language.",
	StyleLuxury:          "Rewrite in a luxury, boutique, lifestyle tone. Aspirational and sophisticated. Emphasize prestige, quality, exclusivity, and refined living. Use elegant but not flowery language.",
	StyleBoutique:        "Rewrite in a boutique, lifestyle-focused tone. Warm, aspirational storytelling. Focus on experience and emotion. Paint a picture of lifestyle benefits.",
	StyleLifestyle:       "Rewrite with lifestyle-focused aspirational language. Emphasize how the space enhances daily living. Focus on experience, atmosphere, and quality of life.",
	StyleStraightforward: "Rewrite in a basic, straightforward, factual style. Minimal adjectives. Focus on practical details and concrete facts. Simple, direct sentences.",
	StyleFactual:         "Rewrite using ONLY factual information. Remove ALL embellishment, flowery language, and subjective descriptions. Include measurements, dates, specific counts. Focus ONLY on structural features.",
}

var styleNames = map[TransformStyle]string{
	StyleParagraph:       "flowing prose",
	StyleBulletPoints:    "bullet points",
	StyleKeyFeatures:     "key features",
	StyleConcise:         "concise version",
	StyleElaborate:       "detailed version",
	StyleProfessional:    "professional tone",
	StyleFriendly:        "friendly tone",
	StyleLuxury:          "luxury/boutique tone",
	StyleBoutique:        "boutique/lifestyle tone",
	StyleLifestyle:       "lifestyle-focused tone",
	StyleStraightforward: "straightforward/factual",
	StyleFactual:         "pure factual",
}

// TransformRequest rewrites page text in a selected style.
type TransformRequest struct {
	OriginalText      string         `json:"original_text"`
	Style             TransformStyle `json:"transformation_style"`
	PageTitle         string         `json:"page_title,omitempty"`
	PageType          string         `json:"page_type,omitempty"`
	CustomInstruction string         `json:"custom_instruction,omitempty"`
	SessionID         string         `json:"session_id,omitempty"`
}

// TransformResult carries the before/after preview.
type TransformResult struct {
	OriginalText    string             `json:"original_text"`
	TransformedText string             `json:"transformed_text"`
	Style           TransformStyle     `json:"transformation_style"`
	PreviewMessage  string             `json:"preview_message"`
	Success         bool               `json:"success"`
	Usage           *session.EditUsage `json:"usage_stats,omitempty"`
}

// TransformText rewrites text in the requested style. Metered sessions are
// checked against the edit ceiling before the provider call and charged a
// transform on success.
func (c *Copywriter) TransformText(ctx context.Context, req TransformRequest) (*TransformResult, error) {
	if strings.TrimSpace(req.OriginalText) == "" {
		return nil, fmt.Errorf("original_text is required")
	}

	if err := c.preflightLimit(ctx, req.SessionID); err != nil {
		return nil, err
	}

	prompt := buildTransformPrompt(req)
	text, usage, err := c.complete(ctx, prompt, refineMaxTokens)
	metrics.RecordCopyGeneration("transform", err == nil)
	if err != nil {
		return nil, err
	}

	result := &TransformResult{
		OriginalText:    req.OriginalText,
		TransformedText: text,
		Style:           req.Style,
		PreviewMessage:  previewMessage(req.Style, req.OriginalText, text),
		Success:         true,
	}

	if strings.TrimSpace(req.SessionID) != "" && c.ledger != nil {
		cost := CostUSD(usage, prompt, text)
		snapshot, err := c.ledger.RecordTransform(ctx, req.SessionID, cost)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return result, nil
			}
			return nil, err
		}
		result.Usage = usageFrom(snapshot, cost)
		metrics.RecordSessionEdit("transform")

		if observability.ServerLogger != nil {
			observability.ServerLogger.Info("Transform recorded",
				zap.String("session_id", req.SessionID),
				zap.Int("transforms_count", snapshot.TransformsCount),
				zap.Float64("request_cost_usd", cost),
				zap.Float64("total_cost_usd", snapshot.TotalCostUSD))
		}
	}

	return result, nil
}

func buildTransformPrompt(req TransformRequest) string {
	instruction, ok := styleInstructions[req.Style]
	if !ok {
		instruction = "Rewrite this text to improve clarity and impact."
	}
	if strings.TrimSpace(req.CustomInstruction) != "" {
		instruction += "\n\nAdditional instruction: " + req.CustomInstruction
	}

	contextNote := ""
	if strings.TrimSpace(req.PageType) != "" {
		contextNote = fmt.Sprintf("\n\nContext: This describes the %s of a property.", req.PageType)
	}

	return fmt.Sprintf(`%s%s

Page Title: %s

%s

Original Text:
%s

Transformed Text:`, instruction, contextNote, req.PageTitle, baseGuardrails(0), req.OriginalText)
}

func previewMessage(style TransformStyle, original, transformed string) string {
	name, ok := styleNames[style]
	if !ok {
		name = "new format"
	}
	msg := "Transformed to " + name

	origLen := len(original)
	newLen := len(transformed)
	if origLen == 0 {
		return msg
	}
	ratio := float64(newLen) / float64(origLen)
	if ratio < 0.7 {
		msg += fmt.Sprintf(" (%d chars, %d%% shorter)", newLen, int((1-ratio)*100))
	} else if ratio > 1.3 {
		msg += fmt.Sprintf(" (%d chars, %d%% longer)", newLen, int((ratio-1)*100))
	}
	return msg
}
