package content

// ContentType represents supported content types using IANA media types.
type ContentType string

const (
	ContentTypeText  ContentType = "text/plain"
	ContentTypeJSON  ContentType = "application/json"
	ContentTypeImage ContentType = "image"
)

// ContentBlock represents a single piece of content.
//
// Image blocks carry the raw bytes in Data plus the concrete media type
// (e.g. "image/jpeg") in MediaType; drivers base64-encode on the wire.
type ContentBlock struct {
	Type      ContentType `json:"type"`
	Text      string      `json:"text,omitempty"`
	Data      []byte      `json:"data,omitempty"`
	MediaType string      `json:"media_type,omitempty"`
}

// Message represents a chat message.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// Text builds a single-block text message.
func Text(role, text string) Message {
	return Message{Role: role, Content: []ContentBlock{{Type: ContentTypeText, Text: text}}}
}

// Image builds an image block from raw bytes and a media type.
func Image(data []byte, mediaType string) ContentBlock {
	return ContentBlock{Type: ContentTypeImage, Data: data, MediaType: mediaType}
}
