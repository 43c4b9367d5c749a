package output

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/doorstephq/doorstep/internal/core/session"
)

// TableFormatter renders session listings as an ASCII table.
type TableFormatter struct{}

// FormatSessions renders the sessions as a table.
func (f *TableFormatter) FormatSessions(sessions []*session.EditSession, now time.Time) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Session", "Status", "Edits", "Transforms", "Cost", "Expires"})

	var active int
	for _, s := range sessions {
		if s == nil {
			continue
		}
		if !s.Expired(now) {
			active++
		}
		t.AppendRow(table.Row{
			s.SessionID,
			statusLabel(s, now),
			usageLabel(s),
			s.TransformsCount,
			costLabel(s),
			s.ExpiresAt.Format(time.RFC3339),
		})
	}

	if len(sessions) > 0 {
		t.AppendFooter(table.Row{
			"",
			fmt.Sprintf("%d/%d active", active, len(sessions)),
			"", "", "", "",
		})
	}

	return t.Render(), nil
}
