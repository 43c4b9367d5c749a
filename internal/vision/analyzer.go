// Package vision analyzes property photographs with a vision-capable model
// and returns structured, hallucination-filtered results.
package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doorstephq/doorstep/internal/ailink"
	"github.com/doorstephq/doorstep/internal/ailink/content"
	"github.com/doorstephq/doorstep/internal/ailink/driver"
	"github.com/doorstephq/doorstep/internal/core"
	"github.com/doorstephq/doorstep/internal/core/pacing"
	"github.com/doorstephq/doorstep/internal/metrics"
	"github.com/doorstephq/doorstep/internal/observability"
)

const analysisMaxTokens = 1024

// Analyzer coordinates photo analysis calls against the vision provider.
// All outbound calls share one pacer so a burst of uploads is spaced out.
type Analyzer struct {
	registry *ailink.Registry
	pacer    *pacing.Pacer
}

func NewAnalyzer(registry *ailink.Registry, pacer *pacing.Pacer) *Analyzer {
	return &Analyzer{registry: registry, pacer: pacer}
}

// AnalyzePhoto analyzes a single photo. Provider failures degrade to a
// minimal fallback analysis flagged for manual review rather than an error;
// only context cancellation and configuration problems are returned as errors.
func (a *Analyzer) AnalyzePhoto(ctx context.Context, filename string, image []byte) (*core.PhotoAnalysis, error) {
	if a == nil || a.registry == nil {
		return nil, fmt.Errorf("vision analyzer not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("image data is required")
	}

	resolved, err := a.registry.Resolve(ailink.RoleVision, "")
	if err != nil {
		return nil, fmt.Errorf("resolve vision provider: %w", err)
	}

	waitStart := time.Now()
	if err := a.pacer.WaitIfNeeded(ctx); err != nil {
		return nil, err
	}
	metrics.RecordPacerWait(time.Since(waitStart))

	maxTokens := analysisMaxTokens
	req := &driver.Request{
		Model:     resolved.Model,
		MaxTokens: &maxTokens,
		Messages: []content.Message{{
			Role: "user",
			Content: []content.ContentBlock{
				content.Image(image, MediaTypeForFilename(filename)),
				{Type: content.ContentTypeText, Text: analysisPrompt},
			},
		}},
	}

	callStart := time.Now()
	resp, err := resolved.Driver.Complete(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if observability.ServerLogger != nil {
			observability.ServerLogger.Warn("Vision analysis failed, using fallback",
				zap.String("filename", filename),
				zap.String("provider", resolved.ProviderID),
				zap.Error(err))
		}
		metrics.RecordVisionAnalysis(false, time.Since(callStart))
		return FallbackAnalysis(filename, err), nil
	}
	metrics.RecordVisionAnalysis(true, time.Since(callStart))

	analysis := parseResponse(resp.Text(), filename)
	validateAnalysis(analysis)

	if observability.ServerLogger != nil {
		observability.ServerLogger.Debug("Photo analyzed",
			zap.String("filename", filename),
			zap.String("room_type", analysis.RoomType),
			zap.Bool("needs_review", analysis.NeedsReview))
	}

	return analysis, nil
}

// AnalyzeBatch analyzes photos sequentially; the pacer spaces out provider
// calls so a whole upload set cannot burst past the provider limit. Results
// are positional with the inputs.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, photos map[string][]byte, order []string) ([]*core.PhotoAnalysis, error) {
	results := make([]*core.PhotoAnalysis, 0, len(order))
	for _, name := range order {
		data, ok := photos[name]
		if !ok {
			continue
		}
		analysis, err := a.AnalyzePhoto(ctx, name, data)
		if err != nil {
			return results, err
		}
		results = append(results, analysis)
	}
	return results, nil
}

// MediaTypeForFilename maps a filename extension to an image media type,
// defaulting to JPEG.
func MediaTypeForFilename(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// FallbackAnalysis returns an honest minimal analysis when the provider
// fails, flagged for manual review instead of inventing features.
func FallbackAnalysis(filename string, cause error) *core.PhotoAnalysis {
	analysis := &core.PhotoAnalysis{
		Filename:         filename,
		RoomType:         "other",
		DetectedFeatures: []string{},
		Finishes:         []string{},
		LightLevel:       "moderate",
		Interior:         true,
		Caption:          "Property photograph",
		NeedsReview:      true,
	}
	if cause != nil {
		analysis.Error = cause.Error()
	}
	return analysis
}
