package anthropic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doorstephq/doorstep/internal/ailink/content"
	"github.com/doorstephq/doorstep/internal/ailink/driver"
	"github.com/doorstephq/doorstep/internal/ailink/encode"
)

type messagesRequest struct {
	Model       string         `json:"model"`
	System      string         `json:"system,omitempty"`
	Messages    []chatMessage  `json:"messages"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature *float64       `json:"temperature,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type chatMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

func buildMessagesRequest(req *driver.Request) (*messagesRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}

	messages, err := convertMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	maxTokens := defaultMaxTokens
	if req.MaxTokens != nil && *req.MaxTokens > 0 {
		maxTokens = *req.MaxTokens
	}

	payload := &messagesRequest{
		Model:       req.Model,
		System:      req.System,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	if len(req.Metadata) > 0 {
		if userID, ok := req.Metadata["user_id"]; ok && strings.TrimSpace(userID) != "" {
			payload.Metadata = map[string]any{"user_id": userID}
		}
	}

	return payload, nil
}

func convertMessages(messages []content.Message) ([]chatMessage, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	result := make([]chatMessage, 0, len(messages))
	for _, msg := range messages {
		blocks, err := convertContent(msg.Content)
		if err != nil {
			return nil, err
		}
		result = append(result, chatMessage{Role: msg.Role, Content: blocks})
	}
	return result, nil
}

func convertContent(blocks []content.ContentBlock) ([]contentBlock, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("message content is required")
	}
	converted := make([]contentBlock, 0, len(blocks))
	for _, block := range blocks {
		switch block.Type {
		case content.ContentTypeText, content.ContentTypeJSON:
			converted = append(converted, contentBlock{Type: "text", Text: block.Text})
		case content.ContentTypeImage:
			if len(block.Data) == 0 {
				return nil, fmt.Errorf("image block has no data")
			}
			mediaType := strings.TrimSpace(block.MediaType)
			if mediaType == "" {
				mediaType = "image/jpeg"
			}
			converted = append(converted, contentBlock{
				Type: "image",
				Source: &imageSource{
					Type:      "base64",
					MediaType: mediaType,
					Data:      encode.EncodeBase64String(block.Data),
				},
			})
		default:
			return nil, fmt.Errorf("unsupported content type: %s", block.Type)
		}
	}
	return converted, nil
}

// redactedRequest renders the request for tracing with image payloads
// replaced by a byte-count placeholder.
func redactedRequest(payload *messagesRequest) []byte {
	if payload == nil {
		return nil
	}
	clone := *payload
	clone.Messages = make([]chatMessage, len(payload.Messages))
	for i, msg := range payload.Messages {
		cloned := chatMessage{Role: msg.Role, Content: make([]contentBlock, len(msg.Content))}
		for j, block := range msg.Content {
			if block.Source != nil {
				block.Source = &imageSource{
					Type:      block.Source.Type,
					MediaType: block.Source.MediaType,
					Data:      fmt.Sprintf("<%d base64 bytes>", len(block.Source.Data)),
				}
			}
			cloned.Content[j] = block
		}
		clone.Messages[i] = cloned
	}
	data, err := json.Marshal(&clone)
	if err != nil {
		return nil
	}
	return data
}
