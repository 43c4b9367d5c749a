// Package output renders session listings for the CLI in table, JSON, and
// markdown formats.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/doorstephq/doorstep/internal/core/session"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders session listings.
type Formatter interface {
	FormatSessions(sessions []*session.EditSession, now time.Time) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

func statusLabel(s *session.EditSession, now time.Time) string {
	switch {
	case s.Expired(now):
		return "expired"
	case s.LimitReached:
		return "limit reached"
	default:
		return "active"
	}
}

func usageLabel(s *session.EditSession) string {
	return fmt.Sprintf("%d/%d", s.EditsCount, s.EditLimit)
}

func costLabel(s *session.EditSession) string {
	return fmt.Sprintf("$%.4f", s.TotalCostUSD)
}
