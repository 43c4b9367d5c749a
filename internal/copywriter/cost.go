package copywriter

import "github.com/doorstephq/doorstep/internal/ailink/driver"

// Pricing per 1K tokens in USD.
const (
	inputTokenRateUSD  = 0.003
	outputTokenRateUSD = 0.015
)

// CostUSD computes the cost of one provider call. Reported token usage is
// preferred; when the provider omits it, tokens are estimated from text
// length at roughly four characters per token.
func CostUSD(usage *driver.Usage, prompt, output string) float64 {
	inputTokens, outputTokens := 0, 0
	if usage != nil && (usage.InputTokens > 0 || usage.OutputTokens > 0) {
		inputTokens = usage.InputTokens
		outputTokens = usage.OutputTokens
	} else {
		inputTokens = estimateTokens(prompt)
		outputTokens = estimateTokens(output)
	}
	return float64(inputTokens)*inputTokenRateUSD/1000 + float64(outputTokens)*outputTokenRateUSD/1000
}

func estimateTokens(text string) int {
	return len(text) / 4
}
