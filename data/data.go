package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date key format used throughout the
// attendance document. Keys are always rendered in the configured
// time zone, so lexical order equals chronological order.
const DateLayout = "2006-01-02"

// Session is one clock-in/clock-out interval. End and Duration are
// either both set (closed session) or both empty (open session).
// Duration holds the H:MM:SS display string as persisted on disk; it
// is re-parsed whenever the worked time is needed as a number.
type Session struct {
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end,omitempty"`
	Duration string     `json:"duration,omitempty"`
}

// Open reports whether the session has a start but no end yet.
func (s *Session) Open() bool {
	return s.End == nil
}

// Worked returns the recorded duration of a closed session.
func (s *Session) Worked() (time.Duration, error) {
	if s.Open() {
		return 0, fmt.Errorf("session starting %s is still open", s.Start.Format(time.RFC3339))
	}
	return ParseDuration(s.Duration)
}

// DayRecord lists one user's sessions for a single date in insertion
// order. At most one session may be open and it is always the last.
type DayRecord = []Session

// UserRecord maps date keys (DateLayout) to that day's sessions.
type UserRecord = map[string]DayRecord

// Document is the whole persisted state: user handle -> UserRecord.
type Document = map[string]UserRecord

// FormatDuration renders d as H:MM:SS, dropping sub-second precision.
// Hours are not zero-padded, matching the stored wire format.
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// ParseDuration is the inverse of FormatDuration.
func ParseDuration(v string) (time.Duration, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q: expected H:MM:SS", v)
	}
	var secs int64
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q: expected H:MM:SS", v)
		}
		secs = secs*60 + n
	}
	return time.Duration(secs) * time.Second, nil
}
