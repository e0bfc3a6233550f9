package attendance

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"slack-attendance-bot/data"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(data.DateLayout, value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func closedSession(t *testing.T, start string, worked time.Duration) data.Session {
	t.Helper()
	s := at(t, start)
	e := s.Add(worked)
	return data.Session{Start: s, End: &e, Duration: data.FormatDuration(worked)}
}

func TestWeekWindow(t *testing.T) {
	cases := []struct {
		now        string
		start, end string
	}{
		// Tuesday -> preceding Saturday through following Thursday
		{"2024-01-09T12:00:00Z", "2024-01-06", "2024-01-11"},
		// Saturday opens its own window
		{"2024-01-06T00:30:00Z", "2024-01-06", "2024-01-11"},
		// Thursday closes the window
		{"2024-01-11T23:00:00Z", "2024-01-06", "2024-01-11"},
		// Friday (report day) falls after the window it reports on
		{"2024-01-12T18:00:00Z", "2024-01-06", "2024-01-11"},
		{"2024-01-14T08:00:00Z", "2024-01-13", "2024-01-18"}, // Sunday
	}
	for _, c := range cases {
		start, end := weekWindow(at(t, c.now))
		if start.Format(data.DateLayout) != c.start || end.Format(data.DateLayout) != c.end {
			t.Errorf("weekWindow(%s) = [%s, %s], want [%s, %s]",
				c.now, start.Format(data.DateLayout), end.Format(data.DateLayout), c.start, c.end)
		}
	}
}

func TestReportTextSumsClosedSessionsInRange(t *testing.T) {
	doc := data.Document{
		"alice": {
			"2024-01-05": {closedSession(t, "2024-01-05T09:00:00Z", 8*time.Hour)},
		},
	}
	text := reportText(doc, day(t, "2024-01-01"), day(t, "2024-01-06"))
	if !strings.Contains(text, "- alice: 8.0 hours") {
		t.Errorf("report missing alice line:\n%s", text)
	}
}

func TestReportTextMultipleSessionsAndDays(t *testing.T) {
	doc := data.Document{
		"alice": {
			"2024-01-08": {
				closedSession(t, "2024-01-08T09:00:00Z", 3*time.Hour),
				closedSession(t, "2024-01-08T13:00:00Z", 4*time.Hour),
			},
			"2024-01-09": {closedSession(t, "2024-01-09T09:00:00Z", 15*time.Minute)},
		},
	}
	text := reportText(doc, day(t, "2024-01-06"), day(t, "2024-01-11"))
	if !strings.Contains(text, "- alice: 7.25 hours") {
		t.Errorf("report = %q, want 7.25 hours for alice", text)
	}
}

func TestReportTextSkipsOpenAndOutOfRange(t *testing.T) {
	doc := data.Document{
		"alice": {
			// open session, excluded
			"2024-01-08": {{Start: at(t, "2024-01-08T09:00:00Z")}},
			// before the window, excluded
			"2024-01-01": {closedSession(t, "2024-01-01T09:00:00Z", 6*time.Hour)},
			// in range
			"2024-01-09": {closedSession(t, "2024-01-09T09:00:00Z", 2*time.Hour)},
		},
	}
	text := reportText(doc, day(t, "2024-01-06"), day(t, "2024-01-11"))
	if !strings.Contains(text, "- alice: 2.0 hours") {
		t.Errorf("report = %q, want 2.0 hours", text)
	}
}

func TestReportTextSortsUsers(t *testing.T) {
	doc := data.Document{
		"zoe":   {"2024-01-08": {closedSession(t, "2024-01-08T09:00:00Z", time.Hour)}},
		"alice": {"2024-01-08": {closedSession(t, "2024-01-08T10:00:00Z", time.Hour)}},
	}
	text := reportText(doc, day(t, "2024-01-06"), day(t, "2024-01-11"))
	if strings.Index(text, "alice") > strings.Index(text, "zoe") {
		t.Errorf("users not sorted:\n%s", text)
	}
}

func TestReportTextNoData(t *testing.T) {
	window := []time.Time{day(t, "2024-01-06"), day(t, "2024-01-11")}

	if got := reportText(data.Document{}, window[0], window[1]); got != NoDataMessage {
		t.Errorf("empty document: got %q, want sentinel", got)
	}

	onlyOpen := data.Document{
		"alice": {"2024-01-08": {{Start: at(t, "2024-01-08T09:00:00Z")}}},
	}
	if got := reportText(onlyOpen, window[0], window[1]); got != NoDataMessage {
		t.Errorf("open-only document: got %q, want sentinel", got)
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{8 * time.Hour, "8.0"},
		{7*time.Hour + 15*time.Minute, "7.25"},
		{8*time.Hour + 6*time.Minute, "8.1"},
		{30 * time.Minute, "0.5"},
		{36 * time.Second, "0.01"},
		{0, "0.0"},
	}
	for _, c := range cases {
		if got := formatHours(c.d); got != c.want {
			t.Errorf("formatHours(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestRolloverPartition(t *testing.T) {
	keep := data.UserRecord{
		"2024-01-12": {closedSession(t, "2024-01-12T09:00:00Z", time.Hour)},
	}
	doc := data.Document{
		"alice": {
			"2024-01-08": {closedSession(t, "2024-01-08T09:00:00Z", time.Hour)},
			"2024-01-11": {closedSession(t, "2024-01-11T09:00:00Z", time.Hour)},
			"2024-01-12": keep["2024-01-12"],
		},
		"bob": {
			"2024-01-10": {closedSession(t, "2024-01-10T09:00:00Z", time.Hour)},
		},
	}

	rollover(doc, day(t, "2024-01-11"))

	if !reflect.DeepEqual(doc["alice"], keep) {
		t.Errorf("entries after window end changed: %#v", doc["alice"])
	}
	if _, ok := doc["bob"]; ok {
		t.Error("user with only reported dates should be removed")
	}
}

func TestRunWeeklyRolloverReportsThenPrunes(t *testing.T) {
	// Friday 18:00, reporting on Sat 01-06 .. Thu 01-11
	tracker, _, store := newTracker(t, at(t, "2024-01-12T18:00:00Z"))

	doc := data.Document{
		"alice": {
			"2024-01-08": {closedSession(t, "2024-01-08T09:00:00Z", 8*time.Hour)},
			"2024-01-13": {closedSession(t, "2024-01-13T09:00:00Z", 2*time.Hour)},
		},
	}
	if err := store.Save(doc); err != nil {
		t.Fatal(err)
	}

	text, err := tracker.RunWeeklyRollover()
	if err != nil {
		t.Fatalf("RunWeeklyRollover failed: %v", err)
	}
	if !strings.Contains(text, "- alice: 8.0 hours") {
		t.Errorf("report = %q", text)
	}

	pruned, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := pruned["alice"]["2024-01-08"]; ok {
		t.Error("reported date not pruned")
	}
	if _, ok := pruned["alice"]["2024-01-13"]; !ok {
		t.Error("date after window end was pruned")
	}
}

func TestWeekReportDoesNotPrune(t *testing.T) {
	tracker, _, store := newTracker(t, at(t, "2024-01-09T12:00:00Z"))

	doc := data.Document{
		"alice": {"2024-01-08": {closedSession(t, "2024-01-08T09:00:00Z", time.Hour)}},
	}
	if err := store.Save(doc); err != nil {
		t.Fatal(err)
	}

	text, err := tracker.WeekReport()
	if err != nil {
		t.Fatalf("WeekReport failed: %v", err)
	}
	if !strings.Contains(text, "- alice: 1.0 hours") {
		t.Errorf("report = %q", text)
	}

	after, _ := store.Load()
	if _, ok := after["alice"]["2024-01-08"]; !ok {
		t.Error("read-only report pruned the document")
	}
}
