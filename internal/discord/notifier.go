package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/kristofferp8/paycut-reminder-bot/internal/scheduler"
)

// sendDM opens (or reuses) the user's DM channel and sends text.
// Failures are classified: a recipient the bot is not allowed to message is
// permanent (scheduler.ErrUnreachable); everything else is transient.
func sendDM(s *discordgo.Session, userID, text string) error {
	ch, err := s.UserChannelCreate(userID)
	if err != nil {
		return classifyDeliveryError(err)
	}
	if _, err := s.ChannelMessageSend(ch.ID, text); err != nil {
		return classifyDeliveryError(err)
	}
	return nil
}

// classifyDeliveryError maps Discord REST failures onto the sweep's
// permanent/transient split. 403 covers closed DMs and blocks, 404 a deleted
// account; anything else (rate limits, gateway hiccups) is worth a retry.
func classifyDeliveryError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser {
			return fmt.Errorf("%w: %v", scheduler.ErrUnreachable, err)
		}
		if restErr.Response != nil {
			switch restErr.Response.StatusCode {
			case http.StatusForbidden, http.StatusNotFound:
				return fmt.Errorf("%w: %v", scheduler.ErrUnreachable, err)
			}
		}
	}
	return err
}
