package anthropic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doorstephq/doorstep/internal/ailink/content"
	"github.com/doorstephq/doorstep/internal/ailink/driver"
)

type messagesResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Role       string          `json:"role"`
	Content    []responseBlock `json:"content"`
	StopReason string          `json:"stop_reason"`
	Usage      *usage          `json:"usage,omitempty"`
}

type responseBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type errorResponse struct {
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func toDriverResponse(resp *messagesResponse) (*driver.Response, error) {
	if resp == nil || len(resp.Content) == 0 {
		return nil, fmt.Errorf("empty response content")
	}

	blocks := make([]content.ContentBlock, 0, len(resp.Content))
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		blocks = append(blocks, content.ContentBlock{Type: content.ContentTypeText, Text: block.Text})
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("response has no text content")
	}

	response := &driver.Response{
		Content:      blocks,
		FinishReason: resp.StopReason,
	}

	if resp.Usage != nil {
		response.Usage = &driver.Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		}
	}

	return response, nil
}

// errorMessage extracts the provider error message, falling back to the raw
// body when the error shape is unrecognized.
func errorMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && strings.TrimSpace(parsed.Error.Message) != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}
