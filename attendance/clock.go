package attendance

import "time"

// Clock supplies the current time in the configured zone. Everything
// date-related (day keys, week windows, report times) flows through
// it, which keeps the tracker deterministic under test.
type Clock interface {
	Now() time.Time
}

type zoneClock struct {
	loc *time.Location
}

// NewZoneClock returns a Clock reporting wall time in loc.
func NewZoneClock(loc *time.Location) Clock {
	return zoneClock{loc: loc}
}

func (c zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}
