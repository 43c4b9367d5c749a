// Package core defines the shared domain types for Doorstep.
package core

import "time"

// PhotoAnalysis is the structured result of analyzing one property photo.
type PhotoAnalysis struct {
	Filename         string   `json:"filename"`
	RoomType         string   `json:"room_type"`
	DetectedFeatures []string `json:"detected_features"`
	Finishes         []string `json:"finishes"`
	LightLevel       string   `json:"light_level"`
	ViewHint         string   `json:"view_hint,omitempty"`
	Interior         bool     `json:"interior"`
	OrientationHint  string   `json:"orientation_hint,omitempty"`
	Caption          string   `json:"caption"`

	// NeedsReview marks analyses produced by the fallback path after a
	// provider failure; these photos should be checked by a human.
	NeedsReview bool   `json:"needs_review,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BrochurePhoto is one photo attached to a brochure session.
type BrochurePhoto struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	DataURL     string         `json:"dataUrl,omitempty"`
	Analysis    *PhotoAnalysis `json:"analysis,omitempty"`
	ImpactScore float64        `json:"impact_score,omitempty"`
}

// BrochurePage is one page of the brochure editor state.
type BrochurePage struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Layout string         `json:"layout,omitempty"`
	Text   string         `json:"text,omitempty"`
	Photos []string       `json:"photos,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

// BrochureState is the complete editable brochure payload saved per session.
type BrochureState struct {
	UserEmail   string          `json:"user_email"`
	Property    map[string]any  `json:"property"`
	Agent       map[string]any  `json:"agent"`
	Photos      []BrochurePhoto `json:"photos"`
	Pages       []BrochurePage  `json:"pages"`
	Preferences map[string]any  `json:"preferences,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PropertyCharacter categorizes a property for photo scoring and template
// selection.
type PropertyCharacter string

const (
	CharacterModern PropertyCharacter = "modern"
	CharacterPeriod PropertyCharacter = "period"
	CharacterRural  PropertyCharacter = "rural"
	CharacterLuxury PropertyCharacter = "luxury"
	CharacterFamily PropertyCharacter = "family"
)

// TokenUsage reports token consumption for one provider call.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
