package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"slack-attendance-bot/attendance"
	"slack-attendance-bot/bot"
	"slack-attendance-bot/config"
	"slack-attendance-bot/data"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown TIMEZONE %q: %v\n", cfg.Timezone, err)
		os.Exit(1)
	}

	store := data.NewFileStore(cfg.DataFile)
	clock := attendance.NewZoneClock(loc)
	tracker := attendance.NewTracker(store, clock)

	b := bot.New(cfg, tracker)
	go b.RunWeekly(clock, cfg.ReportChannel)

	log.Println("✅ Bot running. Weekly report goes out every Friday at 18:00.")
	if err := b.Run(); err != nil {
		log.Fatalln(err)
	}
}
