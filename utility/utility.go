package utility

import (
	"fmt"

	"github.com/slack-go/slack"
)

// UserName resolves a Slack user ID to the handle used as the key in
// the attendance document: the username, falling back to the real
// name for accounts without one. The handle is free-form and not
// normalized, so two accounts sharing a display name share a record.
func UserName(api *slack.Client, id string) (string, error) {
	user, err := api.GetUserInfo(id)
	if err != nil {
		return "", fmt.Errorf("looking up user %s: %w", id, err)
	}
	if user.Name != "" {
		return user.Name, nil
	}
	return user.RealName, nil
}
