package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doorstephq/doorstep/internal/core/session"
)

func sampleSessions(now time.Time) []*session.EditSession {
	return []*session.EditSession{
		{
			SessionID:       "11111111-1111-1111-1111-111111111111",
			EditsCount:      4,
			TransformsCount: 1,
			EditLimit:       100,
			TotalCostUSD:    0.0342,
			CreatedAt:       now.Add(-time.Hour),
			ExpiresAt:       now.Add(23 * time.Hour),
		},
		{
			SessionID:       "22222222-2222-2222-2222-222222222222",
			EditsCount:      100,
			TransformsCount: 12,
			EditLimit:       100,
			LimitReached:    true,
			CreatedAt:       now.Add(-30 * time.Hour),
			ExpiresAt:       now.Add(-6 * time.Hour),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" markdown ", FormatMarkdown, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestTableFormatter(t *testing.T) {
	now := time.Now()
	f := &TableFormatter{}

	out, err := f.FormatSessions(sampleSessions(now), now)
	require.NoError(t, err)

	assert.Contains(t, out, "11111111-1111-1111-1111-111111111111")
	assert.Contains(t, out, "4/100")
	assert.Contains(t, out, "expired")
	assert.Contains(t, out, "1/2 active")
}

func TestJSONFormatter(t *testing.T) {
	now := time.Now()
	f := &JSONFormatter{Indent: true}

	out, err := f.FormatSessions(sampleSessions(now), now)
	require.NoError(t, err)

	var decoded []*session.EditSession
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 4, decoded[0].EditsCount)
	assert.True(t, decoded[1].LimitReached)
}

func TestJSONFormatterEmpty(t *testing.T) {
	f := &JSONFormatter{}

	out, err := f.FormatSessions(nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestMarkdownFormatter(t *testing.T) {
	now := time.Now()
	f := &MarkdownFormatter{}

	out, err := f.FormatSessions(sampleSessions(now), now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "## Brochure sessions"))
	assert.Contains(t, out, "| 22222222-2222-2222-2222-222222222222 |")
	assert.Contains(t, out, "**Active**: 1 of 2")
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &MarkdownFormatter{}, NewFormatter(FormatMarkdown))
}
