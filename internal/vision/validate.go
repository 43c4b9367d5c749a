package vision

import (
	"strings"

	"github.com/doorstephq/doorstep/internal/core"
)

// hallucinationIndicators are subjective marketing terms that signal the
// model described the photo generically instead of reporting what it saw.
var hallucinationIndicators = []string{
	"well_presented", "well presented", "modern_finish", "attractive",
	"quality", "excellent", "beautiful", "stunning", "lovely",
	"nice", "good condition", "immaculate", "pristine",
}

// validateAnalysis strips hallucinated features and generic captions.
// An analysis that loses all its features, or whose caption was generic,
// is flagged for manual review.
func validateAnalysis(analysis *core.PhotoAnalysis) {
	if analysis == nil {
		return
	}

	hadFeatures := len(analysis.DetectedFeatures) > 0
	valid := make([]string, 0, len(analysis.DetectedFeatures))
	for _, feature := range analysis.DetectedFeatures {
		if !containsIndicator(feature) {
			valid = append(valid, feature)
		}
	}
	if len(valid) == 0 && hadFeatures {
		analysis.NeedsReview = true
	}
	analysis.DetectedFeatures = valid

	if containsIndicator(analysis.Caption) {
		analysis.Caption = "Property " + strings.ReplaceAll(analysis.RoomType, "_", " ")
		analysis.NeedsReview = true
	}
}

func containsIndicator(value string) bool {
	lower := strings.ToLower(value)
	for _, indicator := range hallucinationIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
