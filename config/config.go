package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the deployment surface: Slack credentials, the channel
// the weekly report is broadcast to, and where/when attendance lives.
type Config struct {
	AppToken      string
	BotToken      string
	ReportChannel string
	Timezone      string
	DataFile      string
	Debug         bool
}

// Load reads configuration from the environment, with an optional
// .env file for local runs.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		AppToken:      os.Getenv("SLACK_APP_TOKEN"),
		BotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		ReportChannel: os.Getenv("REPORT_CHANNEL_ID"),
		Timezone:      getEnv("TIMEZONE", "Asia/Riyadh"),
		DataFile:      getEnv("DATA_FILE", "attendance.json"),
		Debug:         getEnvBool("SLACK_DEBUG", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required fields and the Slack token prefixes.
func (c *Config) Validate() error {
	if c.AppToken == "" {
		return fmt.Errorf("SLACK_APP_TOKEN must be set")
	}
	if !strings.HasPrefix(c.AppToken, "xapp-") {
		return fmt.Errorf("SLACK_APP_TOKEN must have the prefix \"xapp-\"")
	}
	if c.BotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN must be set")
	}
	if !strings.HasPrefix(c.BotToken, "xoxb-") {
		return fmt.Errorf("SLACK_BOT_TOKEN must have the prefix \"xoxb-\"")
	}
	if c.ReportChannel == "" {
		return fmt.Errorf("REPORT_CHANNEL_ID must be set")
	}
	if c.Timezone == "" {
		return fmt.Errorf("TIMEZONE cannot be empty")
	}
	if c.DataFile == "" {
		return fmt.Errorf("DATA_FILE cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
