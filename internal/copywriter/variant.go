package copywriter

import (
	"context"
	"fmt"
	"strings"

	"github.com/doorstephq/doorstep/internal/metrics"
)

const defaultVariantMaxLength = 1000

// VariantRequest regenerates a block of page text in place.
type VariantRequest struct {
	OriginalText string `json:"original_text"`
	PageName     string `json:"page_name,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	PageLayout   string `json:"page_layout,omitempty"`
	Tone         string `json:"tone,omitempty"`
	MaxLength    int    `json:"max_length,omitempty"`
}

// VariantResult is the regenerated text with length bookkeeping.
type VariantResult struct {
	Text           string `json:"text"`
	OriginalLength int    `json:"original_length"`
	NewLength      int    `json:"new_length"`
}

// RegenerateVariant rewrites page text to be more engaging while keeping the
// same facts. Output longer than MaxLength is truncated on a word boundary.
func (c *Copywriter) RegenerateVariant(ctx context.Context, req VariantRequest) (*VariantResult, error) {
	if strings.TrimSpace(req.OriginalText) == "" {
		return nil, fmt.Errorf("original_text is required")
	}
	maxLength := req.MaxLength
	if maxLength <= 0 {
		maxLength = defaultVariantMaxLength
	}

	text, _, err := c.complete(ctx, buildVariantPrompt(req, maxLength), variantMaxTokens)
	metrics.RecordCopyGeneration("variant", err == nil)
	if err != nil {
		return nil, err
	}

	text = truncateOnWordBoundary(text, maxLength)

	return &VariantResult{
		Text:           text,
		OriginalLength: len(req.OriginalText),
		NewLength:      len(text),
	}, nil
}

func buildVariantPrompt(req VariantRequest, maxLength int) string {
	pageName := req.PageName
	if pageName == "" {
		pageName = "Unknown"
	}
	propertyType := req.PropertyType
	if propertyType == "" {
		propertyType = "property"
	}
	pageLayout := req.PageLayout
	if pageLayout == "" {
		pageLayout = "standard"
	}
	toneDesc := toneDescription(req.Tone)

	return fmt.Sprintf(`You are an expert property copywriter. Rewrite the following text to be more engaging and persuasive while maintaining the same key information.

**Original Text:**
%s

**Context:**
- Page: %s
- Property Type: %s
- Page Layout: %s
- Target Tone: %s

**Instructions:**
1. Keep the same facts and features mentioned in the original
2. Make the language more %s
3. Improve flow and readability
4. Avoid cliches like "stunning", "immaculate", "dream home"
5. Use specific, vivid details
6. Maximum %d characters
7. DO NOT add information that wasn't in the original
8. DO NOT use superlatives unless they were in the original

Provide ONLY the rewritten text, no explanations or meta-commentary.`,
		req.OriginalText, pageName, propertyType, pageLayout, toneDesc, toneDesc, maxLength)
}

// truncateOnWordBoundary cuts text to at most maxLength bytes, dropping the
// trailing partial word and appending an ellipsis.
func truncateOnWordBoundary(text string, maxLength int) string {
	if maxLength <= 0 || len(text) <= maxLength {
		return text
	}
	cut := text[:maxLength]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
