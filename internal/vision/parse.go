package vision

import (
	"encoding/json"
	"strings"

	"github.com/doorstephq/doorstep/internal/core"
)

// rawAnalysis matches the JSON shape requested by analysisPrompt. Loose
// typing on view/orientation hints tolerates JSON null and the literal
// strings "null"/"none".
type rawAnalysis struct {
	RoomType         string   `json:"room_type"`
	DetectedFeatures []string `json:"detected_features"`
	Finishes         []string `json:"finishes"`
	LightLevel       string   `json:"light_level"`
	ViewHint         *string  `json:"view_hint"`
	Interior         *bool    `json:"interior"`
	OrientationHint  *string  `json:"orientation_hint"`
	Caption          string   `json:"caption"`
}

// parseResponse extracts the structured analysis from the model's reply.
// The model occasionally wraps the JSON in prose, so the outermost brace
// pair is located first. Unparseable replies fall back to line parsing.
func parseResponse(text, filename string) *core.PhotoAnalysis {
	result := &core.PhotoAnalysis{
		Filename:         filename,
		RoomType:         "other",
		DetectedFeatures: []string{},
		Finishes:         []string{},
		LightLevel:       "moderate",
		Interior:         true,
	}

	jsonStr := extractJSONObject(text)
	if jsonStr == "" {
		parseTextResponse(text, result)
		return result
	}

	var parsed rawAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		parseTextResponse(text, result)
		return result
	}

	if v := strings.TrimSpace(parsed.RoomType); v != "" {
		result.RoomType = strings.ToLower(v)
	}
	result.DetectedFeatures = cleanList(parsed.DetectedFeatures)
	result.Finishes = cleanList(parsed.Finishes)
	if v := strings.TrimSpace(parsed.LightLevel); v != "" {
		result.LightLevel = strings.ToLower(v)
	}
	result.ViewHint = normalizeHint(parsed.ViewHint)
	if parsed.Interior != nil {
		result.Interior = *parsed.Interior
	}
	result.OrientationHint = normalizeHint(parsed.OrientationHint)
	result.Caption = strings.TrimSpace(parsed.Caption)

	return result
}

// extractJSONObject returns the outermost {...} span of text, or "".
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// parseTextResponse handles replies that came back as "key: value" lines
// instead of JSON.
func parseTextResponse(text string, result *core.PhotoAnalysis) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.Trim(strings.TrimSpace(key), `"'`))
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		switch {
		case strings.Contains(key, "room_type"):
			result.RoomType = strings.ToLower(value)
		case strings.Contains(key, "features"):
			result.DetectedFeatures = splitList(value)
		case strings.Contains(key, "finishes"):
			result.Finishes = splitList(value)
		case strings.Contains(key, "light_level"):
			result.LightLevel = strings.ToLower(value)
		case strings.Contains(key, "view_hint"):
			result.ViewHint = normalizeHintString(value)
		case strings.Contains(key, "interior"):
			result.Interior = strings.EqualFold(value, "true")
		case strings.Contains(key, "orientation"):
			result.OrientationHint = normalizeHintString(value)
		case strings.Contains(key, "caption"):
			result.Caption = value
		}
	}
}

func cleanList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"[]`)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func normalizeHint(value *string) string {
	if value == nil {
		return ""
	}
	return normalizeHintString(*value)
}

func normalizeHintString(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "null" || value == "none" {
		return ""
	}
	return value
}
