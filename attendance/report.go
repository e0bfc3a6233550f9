package attendance

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"slack-attendance-bot/data"
)

const reportHeader = "📆 Weekly Attendance Report 📆"

// NoDataMessage is returned instead of an empty table when no user
// has a closed session inside the reported window.
const NoDataMessage = "No attendance data for this week."

// weekWindow returns the fixed Saturday-through-Thursday reporting
// window containing now, as midnight dates in now's zone. With
// Monday=0..Sunday=6 weekday numbering the window start is
// now - ((weekday+2) mod 7) days, so a Saturday maps to offset 0.
func weekWindow(now time.Time) (start, end time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	mondayIdx := (int(now.Weekday()) + 6) % 7
	start = day.AddDate(0, 0, -((mondayIdx + 2) % 7))
	return start, start.AddDate(0, 0, 5)
}

// reportText renders one line per user with that user's total hours
// over closed sessions dated within [start, end]. Users are sorted by
// handle so the output is deterministic. Open sessions and
// unparseable entries are skipped.
func reportText(doc data.Document, start, end time.Time) string {
	users := make([]string, 0, len(doc))
	for u := range doc {
		users = append(users, u)
	}
	sort.Strings(users)

	var b strings.Builder
	for _, u := range users {
		var total time.Duration
		counted := false
		for key, day := range doc[u] {
			d, err := time.ParseInLocation(data.DateLayout, key, start.Location())
			if err != nil {
				continue
			}
			if d.Before(start) || d.After(end) {
				continue
			}
			for i := range day {
				if day[i].Open() {
					continue
				}
				worked, err := day[i].Worked()
				if err != nil {
					continue
				}
				total += worked
				counted = true
			}
		}
		if counted {
			fmt.Fprintf(&b, "- %s: %s hours\n", u, formatHours(total))
		}
	}

	if b.Len() == 0 {
		return NoDataMessage
	}
	return reportHeader + "\n\n" + b.String()
}

// formatHours converts a total to hours rounded half-away-from-zero
// to 2 decimal places, printed with trailing zeros trimmed but at
// least one decimal kept: 8h -> "8.0", 7h15m -> "7.25".
func formatHours(total time.Duration) string {
	hours := math.Round(total.Seconds()/3600*100) / 100
	s := strconv.FormatFloat(hours, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// rollover deletes every (user, date) entry dated at or before end,
// keeping later dates untouched. Users left with no dates are removed
// from the document entirely.
func rollover(doc data.Document, end time.Time) {
	endKey := end.Format(data.DateLayout)
	for u, days := range doc {
		for key := range days {
			if key <= endKey {
				delete(days, key)
			}
		}
		if len(days) == 0 {
			delete(doc, u)
		}
	}
}
