package copywriter

import (
	"fmt"
	"strings"
)

const (
	defaultTemperature     = 0.7
	defaultRoomTargetWords = 180

	listingMaxTokens = 1500
	roomMaxTokens    = 800
	refineMaxTokens  = 1000
	variantMaxTokens = 500
)

// toneInstructions maps a requested tone to its writing register.
var toneInstructions = map[string]string{
	"professional":   "formal, trustworthy, and detailed",
	"punchy":         "concise, energetic, and impactful",
	"boutique":       "sophisticated, exclusive, and refined",
	"premium":        "luxurious, aspirational, and elegant",
	"conversational": "warm, friendly, and approachable",
}

func toneDescription(tone string) string {
	if desc, ok := toneInstructions[strings.ToLower(strings.TrimSpace(tone))]; ok {
		return desc
	}
	return "professional and engaging"
}

// baseGuardrails are the writing rules applied to every generation. The copy
// must read like an estate agent wrote it, not a language model.
func baseGuardrails(targetWords int) string {
	rules := `WRITING RULES (ALWAYS FOLLOW):
1. Focus ONLY on STRUCTURAL features (built-ins, room sizes, windows, doors, architectural details)
2. NEVER describe furniture, art, rugs, chandeliers, curtains, bedding, decorative items
3. NEVER use AI phrases: "distinguished residence", "epitomises", "seamlessly blending", "sanctuary"
4. NEVER use hyphens mid-sentence (e.g. "open-plan" becomes "open plan")
5. Use SIMPLE language: "wonderfully presented", "excellent proportions", "lovely aspect"
6. NO flowery descriptions: "restorative repose", "enchanting vistas", "morning contemplation"
7. Include CONCRETE FACTS: measurements, dates, specific counts when possible
8. Write SHORT, factual sentences. Professional but direct.`
	if targetWords > 0 {
		rules += fmt.Sprintf("\n9. Target approximately %d words.", targetWords)
	}
	return rules
}

func buildListingPrompt(req ListingRequest) string {
	targetWords := req.TargetWords
	if targetWords <= 0 {
		targetWords = 150
	}

	var sb strings.Builder
	sb.WriteString("You are a professional property copywriter writing natural, engaging property descriptions.\n\n")
	sb.WriteString(baseGuardrails(targetWords))
	sb.WriteString("\n\nPROPERTY DETAILS:\n")
	for key, value := range req.Property {
		fmt.Fprintf(&sb, "- %s: %v\n", key, value)
	}
	if strings.TrimSpace(req.Location) != "" {
		fmt.Fprintf(&sb, "- location: %s\n", req.Location)
	}
	if strings.TrimSpace(req.Audience) != "" {
		fmt.Fprintf(&sb, "\nTarget audience: %s\n", req.Audience)
	}
	fmt.Fprintf(&sb, "\nWrite the listing copy in a %s voice.\n", toneDescription(req.Tone))
	sb.WriteString("\nProvide ONLY the listing text, no headings or meta commentary.")
	return sb.String()
}

func buildRoomPrompt(prompt string, targetWords int) string {
	return fmt.Sprintf(`You are a professional property copywriter writing natural, engaging property descriptions.

%s

ROOM RULES:
- Describe the room itself, not the furniture staged in it
- Mention aspect and natural light only when stated in the task
- One paragraph, no bullet points

TASK:
%s

Remember: Lead with facts, not feelings. Specific details, not vague praise.`, baseGuardrails(targetWords), prompt)
}

func buildRefinePrompt(text, instruction string) string {
	return fmt.Sprintf(`You are an expert property copywriter. The user wants to refine this text:

Original text:
%s

User instruction: %s

Please provide the refined version that follows their instruction while maintaining professional property marketing standards. Return ONLY the refined text, nothing else.`, text, instruction)
}
