package attendance

import (
	"errors"
	"fmt"
	"sync"

	"slack-attendance-bot/data"
)

var (
	ErrAlreadyClockedIn  = errors.New("already clocked in")
	ErrAlreadyClockedOut = errors.New("already clocked out")
	ErrNoOpenSession     = errors.New("no open session")
	ErrClockSkew         = errors.New("clock moved backwards during session")
)

// Store is the document storage the tracker runs against.
// *data.FileStore satisfies it.
type Store interface {
	Load() (data.Document, error)
	Save(data.Document) error
}

// Tracker applies clock-in/out commands and weekly reporting to the
// attendance document. Every operation is a full load-mutate-save
// cycle guarded by one mutex, so live commands and the scheduled
// rollover never interleave mid-write.
type Tracker struct {
	store Store
	clock Clock
	mu    sync.Mutex
}

func NewTracker(store Store, clock Clock) *Tracker {
	return &Tracker{store: store, clock: clock}
}

// ClockIn opens a new session for user today. It is rejected with
// ErrAlreadyClockedIn while an earlier session of the day is still
// open; nothing is mutated in that case.
func (t *Tracker) ClockIn(user string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.store.Load()
	if err != nil {
		return "", err
	}

	now := t.clock.Now()
	today := now.Format(data.DateLayout)

	day := doc[user][today]
	if n := len(day); n > 0 && day[n-1].Open() {
		return "", ErrAlreadyClockedIn
	}

	if doc[user] == nil {
		doc[user] = data.UserRecord{}
	}
	doc[user][today] = append(day, data.Session{Start: now})

	if err := t.store.Save(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Clocked in at %s", now.Format("15:04:05")), nil
}

// ClockOut closes today's open session, recording its end and the
// worked duration as H:MM:SS (truncated toward zero).
func (t *Tracker) ClockOut(user string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.store.Load()
	if err != nil {
		return "", err
	}

	now := t.clock.Now()
	today := now.Format(data.DateLayout)

	day := doc[user][today]
	if len(day) == 0 {
		return "", ErrNoOpenSession
	}
	last := &day[len(day)-1]
	if !last.Open() {
		return "", ErrAlreadyClockedOut
	}
	if now.Before(last.Start) {
		return "", ErrClockSkew
	}

	end := now
	last.End = &end
	last.Duration = data.FormatDuration(now.Sub(last.Start))

	if err := t.store.Save(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("👋 Clocked out at %s\n⏱ Worked this session: %s",
		now.Format("15:04:05"), last.Duration), nil
}

// WeekReport builds the report for the week window containing now.
// Read-only: nothing is pruned or persisted.
func (t *Tracker) WeekReport() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.store.Load()
	if err != nil {
		return "", err
	}
	start, end := weekWindow(t.clock.Now())
	return reportText(doc, start, end), nil
}

// RunWeeklyRollover builds the report for the current week window and
// then prunes every entry dated inside or before it, persisting only
// the pruned document. Report and prune are computed from the same
// loaded snapshot.
func (t *Tracker) RunWeeklyRollover() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.store.Load()
	if err != nil {
		return "", err
	}

	start, end := weekWindow(t.clock.Now())
	text := reportText(doc, start, end)
	rollover(doc, end)

	if err := t.store.Save(doc); err != nil {
		return "", err
	}
	return text, nil
}
