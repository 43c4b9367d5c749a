package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/doorstephq/doorstep/internal/core/session"
)

// MarkdownFormatter renders session listings as a markdown table.
type MarkdownFormatter struct{}

// FormatSessions renders the sessions as Markdown.
func (f *MarkdownFormatter) FormatSessions(sessions []*session.EditSession, now time.Time) (string, error) {
	var sb strings.Builder
	sb.WriteString("## Brochure sessions\n\n")
	sb.WriteString("| Session | Status | Edits | Transforms | Cost | Expires |\n")
	sb.WriteString("|---------|--------|-------|------------|------|--------|\n")

	var active int
	for _, s := range sessions {
		if s == nil {
			continue
		}
		if !s.Expired(now) {
			active++
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %s | %s |\n",
			escapeMarkdownCell(s.SessionID),
			statusLabel(s, now),
			usageLabel(s),
			s.TransformsCount,
			costLabel(s),
			s.ExpiresAt.Format(time.RFC3339),
		))
	}

	sb.WriteString(fmt.Sprintf("\n**Active**: %d of %d\n", active, len(sessions)))
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
