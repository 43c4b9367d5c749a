// Package scoring ranks brochure photos so the strongest shots surface on
// hero pages. Scores are deterministic given the analysis and the property
// character.
package scoring

import (
	"sort"
	"strings"

	"github.com/doorstephq/doorstep/internal/core"
)

const (
	// DefaultScore is assigned to photos without analysis data.
	DefaultScore = 50.0

	maxScore = 100.0
	minScore = 0.0
)

// roomBaseScores reflect how strongly a room type tends to sell a listing.
var roomBaseScores = map[string]float64{
	"exterior":    70,
	"kitchen":     68,
	"living_room": 62,
	"garden":      60,
	"bedroom":     55,
	"dining_room": 52,
	"bathroom":    48,
	"office":      42,
	"hallway":     35,
	"garage":      30,
	"other":       40,
}

// characterRoomBoosts shift emphasis per property character. A rural listing
// leads with the garden; a luxury one with the kitchen and exterior.
var characterRoomBoosts = map[core.PropertyCharacter]map[string]float64{
	core.CharacterModern: {"kitchen": 10, "living_room": 6, "bathroom": 4},
	core.CharacterPeriod: {"living_room": 10, "exterior": 8, "hallway": 5},
	core.CharacterRural:  {"garden": 14, "exterior": 10},
	core.CharacterLuxury: {"kitchen": 8, "exterior": 8, "bathroom": 6},
	core.CharacterFamily: {"garden": 10, "bedroom": 6, "kitchen": 5},
}

// characterFeatures are features that resonate with each character; a match
// scores higher than a generic feature.
var characterFeatures = map[core.PropertyCharacter]map[string]bool{
	core.CharacterModern: {"bifold_doors": true, "skylights": true, "kitchen_island": true, "integrated_appliances": true, "recessed_lighting": true},
	core.CharacterPeriod: {"fireplace": true, "sash_windows": true, "bay_window": true, "exposed_beams": true},
	core.CharacterRural:  {"garden": true, "exposed_beams": true, "patio": true, "decking": true},
	core.CharacterLuxury: {"swimming_pool": true, "marble_flooring": true, "chandeliers": true, "walk_in_wardrobe": true},
	core.CharacterFamily: {"garden": true, "driveway": true, "garage": true, "fitted_wardrobes": true},
}

func lightBonus(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "bright":
		return 8
	case "moderate":
		return 2
	case "dim":
		return -6
	default:
		return 0
	}
}

// ScorePhoto computes an impact score in [0, 100] for one analyzed photo.
func ScorePhoto(analysis *core.PhotoAnalysis, character core.PropertyCharacter) float64 {
	if analysis == nil {
		return DefaultScore
	}

	roomType := strings.ToLower(strings.TrimSpace(analysis.RoomType))
	score, ok := roomBaseScores[roomType]
	if !ok {
		score = roomBaseScores["other"]
	}

	if boosts, ok := characterRoomBoosts[character]; ok {
		score += boosts[roomType]
	}

	matched := characterFeatures[character]
	for _, feature := range analysis.DetectedFeatures {
		if matched[strings.ToLower(feature)] {
			score += 4
		} else {
			score += 1.5
		}
	}
	score += float64(len(analysis.Finishes)) * 1.0
	score += lightBonus(analysis.LightLevel)

	if analysis.ViewHint != "" {
		score += 3
	}
	if analysis.NeedsReview {
		score -= 15
	}

	if score > maxScore {
		score = maxScore
	}
	if score < minScore {
		score = minScore
	}
	return score
}

// ScoreSessionPhotos assigns impact scores in place and returns how many
// photos had analysis data. Photos without one get DefaultScore.
func ScoreSessionPhotos(items []core.BrochurePhoto, character core.PropertyCharacter) int {
	scored := 0
	for i := range items {
		if items[i].Analysis != nil {
			items[i].ImpactScore = ScorePhoto(items[i].Analysis, character)
			scored++
		} else {
			items[i].ImpactScore = DefaultScore
		}
	}
	return scored
}

// TopPhotos returns up to n photos ordered by descending impact score.
func TopPhotos(items []core.BrochurePhoto, n int) []core.BrochurePhoto {
	sorted := make([]core.BrochurePhoto, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ImpactScore > sorted[j].ImpactScore
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// CharacterFromPreferences extracts the property character from session
// preferences, defaulting to modern.
func CharacterFromPreferences(prefs map[string]any) core.PropertyCharacter {
	for _, key := range []string{"character", "propertyCharacter"} {
		if raw, ok := prefs[key]; ok {
			if value, ok := raw.(string); ok {
				switch c := core.PropertyCharacter(strings.ToLower(strings.TrimSpace(value))); c {
				case core.CharacterModern, core.CharacterPeriod, core.CharacterRural, core.CharacterLuxury, core.CharacterFamily:
					return c
				}
			}
		}
	}
	return core.CharacterModern
}
