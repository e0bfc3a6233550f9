package bot

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"slack-attendance-bot/attendance"
	"slack-attendance-bot/config"
	"slack-attendance-bot/data"
	"slack-attendance-bot/utility"
)

// Bot wires the socket-mode Slack client to the attendance tracker.
type Bot struct {
	api     *slack.Client
	client  *socketmode.Client
	tracker *attendance.Tracker
}

func New(cfg *config.Config, tracker *attendance.Tracker) *Bot {
	api := slack.New(
		cfg.BotToken,
		slack.OptionDebug(cfg.Debug),
		slack.OptionLog(log.New(os.Stdout, "api: ", log.Lshortfile|log.LstdFlags)),
		slack.OptionAppLevelToken(cfg.AppToken),
	)

	client := socketmode.New(
		api,
		socketmode.OptionDebug(cfg.Debug),
		socketmode.OptionLog(log.New(os.Stdout, "socketmode: ", log.Lshortfile|log.LstdFlags)),
	)

	return &Bot{api: api, client: client, tracker: tracker}
}

// Run starts the event loop and blocks until the connection dies.
func (b *Bot) Run() error {
	go b.events()
	return b.client.Run()
}

func (b *Bot) events() {
	for evt := range b.client.Events {
		switch evt.Type {
		case socketmode.EventTypeConnecting:
			log.Println("Connecting to Slack with Socket Mode...")
		case socketmode.EventTypeConnectionError:
			log.Println("Connection failed. Retrying later...")
		case socketmode.EventTypeConnected:
			log.Println("Connected to Slack with Socket Mode.")
		case socketmode.EventTypeSlashCommand:
			cmd, ok := evt.Data.(slack.SlashCommand)
			if !ok {
				continue
			}
			b.client.Ack(*evt.Request)
			reply := dispatch(b.tracker, strings.TrimPrefix(cmd.Command, "/"), cmd.UserName, cmd.ChannelID)
			b.post(cmd.ChannelID, reply)
		case socketmode.EventTypeEventsAPI:
			apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
			if !ok {
				continue
			}
			b.client.Ack(*evt.Request)
			if apiEvent.Type != slackevents.CallbackEvent {
				b.client.Debugf("unsupported Events API event received")
				continue
			}
			switch ev := apiEvent.InnerEvent.Data.(type) {
			case *slackevents.AppMentionEvent:
				user, err := utility.UserName(b.api, ev.User)
				if err != nil {
					log.Printf("failed resolving user %s: %v", ev.User, err)
					continue
				}
				reply := dispatch(b.tracker, mentionCommand(ev.Text), user, ev.Channel)
				b.post(ev.Channel, reply)
			}
		}
	}
}

// dispatch routes a bare command word to the tracker and maps the
// result to the message sent back to the invoking conversation.
func dispatch(tracker *attendance.Tracker, command, user, channel string) string {
	switch command {
	case "in":
		msg, err := tracker.ClockIn(user)
		return reply(msg, err)
	case "out":
		msg, err := tracker.ClockOut(user)
		return reply(msg, err)
	case "week":
		msg, err := tracker.WeekReport()
		return reply(msg, err)
	case "whereami":
		return "This conversation ID is " + channel
	default:
		return "Unknown command. Try `in`, `out`, `week` or `whereami`."
	}
}

func reply(msg string, err error) string {
	switch {
	case err == nil:
		return msg
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		return "⚠️ You are already clocked in. Clock out before clocking in again."
	case errors.Is(err, attendance.ErrNoOpenSession):
		return "⚠️ You have not clocked in yet. Use `in` first."
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		return "⚠️ You already clocked out. Clock in again before clocking out."
	case errors.Is(err, attendance.ErrClockSkew):
		return "⚠️ Clock-out time is earlier than your clock-in time. Nothing was recorded."
	case errors.Is(err, data.ErrCorrupt):
		log.Println("attendance data corrupt:", err)
		return "🚨 The attendance file is corrupted and the bot refuses to overwrite it. Ask an admin to restore it."
	default:
		log.Println("command failed:", err)
		return "⚠️ Something went wrong saving your attendance. Please try again."
	}
}

// mentionCommand extracts the command word from an app-mention text,
// e.g. "<@U123> in" -> "in".
func mentionCommand(text string) string {
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, "<@") {
			continue
		}
		return strings.ToLower(word)
	}
	return ""
}

func (b *Bot) post(channel, text string) {
	_, _, err := b.api.PostMessage(channel, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("failed posting message: %v", err)
	}
}
