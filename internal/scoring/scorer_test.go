package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doorstephq/doorstep/internal/core"
)

func TestScorePhotoNilAnalysis(t *testing.T) {
	assert.Equal(t, DefaultScore, ScorePhoto(nil, core.CharacterModern))
}

func TestScorePhotoCharacterBoost(t *testing.T) {
	analysis := &core.PhotoAnalysis{RoomType: "garden", LightLevel: "bright"}

	rural := ScorePhoto(analysis, core.CharacterRural)
	modern := ScorePhoto(analysis, core.CharacterModern)
	assert.Greater(t, rural, modern, "a garden shot should score higher for a rural property")
}

func TestScorePhotoMatchedFeaturesOutscoreGeneric(t *testing.T) {
	period := &core.PhotoAnalysis{
		RoomType:         "living_room",
		DetectedFeatures: []string{"fireplace", "sash_windows"},
		LightLevel:       "moderate",
	}
	generic := &core.PhotoAnalysis{
		RoomType:         "living_room",
		DetectedFeatures: []string{"patio", "driveway"},
		LightLevel:       "moderate",
	}

	assert.Greater(t, ScorePhoto(period, core.CharacterPeriod), ScorePhoto(generic, core.CharacterPeriod))
}

func TestScorePhotoDimAndReviewPenalties(t *testing.T) {
	bright := &core.PhotoAnalysis{RoomType: "kitchen", LightLevel: "bright"}
	dim := &core.PhotoAnalysis{RoomType: "kitchen", LightLevel: "dim"}
	flagged := &core.PhotoAnalysis{RoomType: "kitchen", LightLevel: "bright", NeedsReview: true}

	assert.Greater(t, ScorePhoto(bright, core.CharacterModern), ScorePhoto(dim, core.CharacterModern))
	assert.Greater(t, ScorePhoto(bright, core.CharacterModern), ScorePhoto(flagged, core.CharacterModern))
}

func TestScorePhotoBounds(t *testing.T) {
	loaded := &core.PhotoAnalysis{
		RoomType:         "exterior",
		DetectedFeatures: []string{"swimming_pool", "marble_flooring", "chandeliers", "walk_in_wardrobe", "garden", "patio", "balcony", "terrace", "driveway", "garage"},
		Finishes:         []string{"marble_flooring", "chandeliers", "granite_countertops"},
		LightLevel:       "bright",
		ViewHint:         "park_view",
	}
	score := ScorePhoto(loaded, core.CharacterLuxury)
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestScoreSessionPhotos(t *testing.T) {
	items := []core.BrochurePhoto{
		{ID: "a", Analysis: &core.PhotoAnalysis{RoomType: "kitchen", LightLevel: "bright"}},
		{ID: "b"},
	}

	scored := ScoreSessionPhotos(items, core.CharacterModern)
	assert.Equal(t, 1, scored)
	assert.Greater(t, items[0].ImpactScore, DefaultScore)
	assert.Equal(t, DefaultScore, items[1].ImpactScore)
}

func TestTopPhotos(t *testing.T) {
	items := []core.BrochurePhoto{
		{ID: "low", ImpactScore: 30},
		{ID: "high", ImpactScore: 90},
		{ID: "mid", ImpactScore: 60},
	}

	top := TopPhotos(items, 2)
	assert.Equal(t, "high", top[0].ID)
	assert.Equal(t, "mid", top[1].ID)
	assert.Len(t, TopPhotos(items, 10), 3)
}

func TestCharacterFromPreferences(t *testing.T) {
	assert.Equal(t, core.CharacterRural, CharacterFromPreferences(map[string]any{"character": "rural"}))
	assert.Equal(t, core.CharacterLuxury, CharacterFromPreferences(map[string]any{"propertyCharacter": "Luxury"}))
	assert.Equal(t, core.CharacterModern, CharacterFromPreferences(map[string]any{"character": "brutalist"}))
	assert.Equal(t, core.CharacterModern, CharacterFromPreferences(nil))
}
