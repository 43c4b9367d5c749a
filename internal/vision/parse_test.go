package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResponseJSONWrappedInProse(t *testing.T) {
	text := "Here is the analysis:\n{\"room_type\": \"garden\", \"interior\": false, \"caption\": \"Lawn bordered by mature hedging\"}\nHope that helps."
	analysis := parseResponse(text, "garden.jpg")

	assert.Equal(t, "garden", analysis.RoomType)
	assert.False(t, analysis.Interior)
	assert.Equal(t, "Lawn bordered by mature hedging", analysis.Caption)
	assert.Equal(t, "garden.jpg", analysis.Filename)
}

func TestParseResponseDefaults(t *testing.T) {
	analysis := parseResponse("{}", "x.jpg")

	assert.Equal(t, "other", analysis.RoomType)
	assert.Equal(t, "moderate", analysis.LightLevel)
	assert.True(t, analysis.Interior)
	assert.Empty(t, analysis.DetectedFeatures)
}

func TestParseResponseTextFallback(t *testing.T) {
	text := "room_type: bathroom\ndetected_features: ensuite, skylights\nlight_level: bright\ninterior: true\nview_hint: none\ncaption: Tiled bathroom with walk-in shower"
	analysis := parseResponse(text, "bath.jpg")

	assert.Equal(t, "bathroom", analysis.RoomType)
	assert.Equal(t, []string{"ensuite", "skylights"}, analysis.DetectedFeatures)
	assert.Equal(t, "bright", analysis.LightLevel)
	assert.Empty(t, analysis.ViewHint)
	assert.Equal(t, "Tiled bathroom with walk-in shower", analysis.Caption)
}

func TestParseResponseNullHints(t *testing.T) {
	analysis := parseResponse(`{"view_hint": "null", "orientation_hint": null}`, "x.jpg")
	assert.Empty(t, analysis.ViewHint)
	assert.Empty(t, analysis.OrientationHint)
}

func TestValidateAnalysisStripsHallucinatedFeatures(t *testing.T) {
	analysis := parseResponse(`{"room_type": "living_room", "detected_features": ["well_presented", "stunning"], "caption": "Fireplace with bay window"}`, "x.jpg")
	validateAnalysis(analysis)

	assert.Empty(t, analysis.DetectedFeatures)
	assert.True(t, analysis.NeedsReview)
	assert.Equal(t, "Fireplace with bay window", analysis.Caption)
}

func TestValidateAnalysisKeepsConcreteFeatures(t *testing.T) {
	analysis := parseResponse(`{"room_type": "living_room", "detected_features": ["fireplace", "beautiful"], "caption": "Fireplace with bay window"}`, "x.jpg")
	validateAnalysis(analysis)

	assert.Equal(t, []string{"fireplace"}, analysis.DetectedFeatures)
	assert.False(t, analysis.NeedsReview)
}

func TestValidateAnalysisGenericCaption(t *testing.T) {
	analysis := parseResponse(`{"room_type": "dining_room", "caption": "Stunning well presented room"}`, "x.jpg")
	validateAnalysis(analysis)

	assert.Equal(t, "Property dining room", analysis.Caption)
	assert.True(t, analysis.NeedsReview)
}
