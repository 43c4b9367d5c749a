package output

import (
	"encoding/json"
	"time"

	"github.com/doorstephq/doorstep/internal/core/session"
)

// JSONFormatter renders session listings as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatSessions renders the sessions as JSON.
func (f *JSONFormatter) FormatSessions(sessions []*session.EditSession, _ time.Time) (string, error) {
	if sessions == nil {
		sessions = []*session.EditSession{}
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(sessions, "", "  ")
	} else {
		data, err = json.Marshal(sessions)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
