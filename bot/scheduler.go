package bot

import (
	"log"
	"time"

	"slack-attendance-bot/attendance"
)

// The weekly report goes out after the Thursday that closes each
// Saturday-through-Thursday reporting window.
const (
	reportWeekday = time.Friday
	reportHour    = 18
)

// RunWeekly blocks, generating the weekly report and rollover every
// Friday at 18:00 in the clock's zone and broadcasting it to channel.
// Runs are synchronous, so a slow run can never overlap the next one.
func (b *Bot) RunWeekly(clock attendance.Clock, channel string) {
	for {
		now := clock.Now()
		next := nextReportTime(now)
		log.Printf("next weekly report scheduled for %s", next.Format(time.RFC1123))
		time.Sleep(next.Sub(now))

		text, err := b.tracker.RunWeeklyRollover()
		if err != nil {
			log.Println("weekly report failed:", err)
			continue
		}
		b.post(channel, text)
	}
}

// nextReportTime returns the first Friday 18:00 strictly after now.
func nextReportTime(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), reportHour, 0, 0, 0, now.Location())
	for next.Weekday() != reportWeekday || !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
