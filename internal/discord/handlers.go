package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kristofferp8/paycut-reminder-bot/internal/domain"
)

// --- Generic helpers ---

func (r *Router) reply(m *discordgo.MessageCreate, text string) {
	if _, err := r.session.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		r.log.Warn("reply failed", zap.String("channelID", m.ChannelID), zap.Error(err))
	}
}

// ephemeral answers an interaction with a message only the actor sees.
func (r *Router) ephemeral(i *discordgo.InteractionCreate, text string) {
	err := r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		r.log.Warn("interaction respond failed", zap.Error(err))
	}
}

// persist flushes the current reminder mapping to disk.
func (r *Router) persist() {
	if err := r.files.Save(r.store.Snapshot()); err != nil {
		r.log.Error("persist reminders failed", zap.Error(err))
	}
}

// isRegisteredAdmin reports whether the message author is the registered
// admin of its guild.
func (r *Router) isRegisteredAdmin(m *discordgo.MessageCreate) bool {
	if m.GuildID == "" {
		return false
	}
	g, ok := r.guilds.Lookup(m.GuildID)
	return ok && m.Author.ID == g.AdminID
}

// --- Core commands ---

func (r *Router) handleCancel(m *discordgo.MessageCreate) {
	userID := m.Author.ID
	if _, ok := r.store.Get(userID); !ok {
		r.reply(m, noReminderText)
		return
	}
	r.store.Remove(userID)
	r.persist()
	r.reply(m, cancelDoneText)
	r.log.Info("reminder cancelled", zap.String("userID", userID))
}

func (r *Router) handleStatus(m *discordgo.MessageCreate) {
	rem, ok := r.store.Get(m.Author.ID)
	if !ok || !rem.Complete() {
		r.reply(m, noReminderText)
		return
	}
	local, err := domain.LocalizeTime(*rem.NextReminderAt, rem.Timezone)
	if err != nil {
		r.log.Error("localize failed", zap.String("tz", rem.Timezone), zap.Error(err))
		r.reply(m, genericErrorText)
		return
	}
	r.reply(m, fmt.Sprintf("⏳ Your reminder is set for: %s your time zone (%s)", local, rem.Timezone))
}

func (r *Router) handleList(m *discordgo.MessageCreate) {
	if !r.isRegisteredAdmin(m) {
		r.reply(m, notAuthorizedText)
		return
	}

	entries := r.store.Snapshot()
	var lines []string
	for _, e := range entries {
		if !e.Reminder.Complete() {
			continue
		}
		name := e.UserID
		if u, err := r.session.User(e.UserID); err == nil {
			name = u.Username
		}
		local, err := domain.LocalizeTime(*e.Reminder.NextReminderAt, e.Reminder.Timezone)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", name, local, e.Reminder.Timezone))
	}

	if len(lines) == 0 {
		r.reply(m, listEmptyText)
		return
	}
	r.reply(m, listTitleText+"\n"+strings.Join(lines, "\n"))
}

func (r *Router) handleRegisterChannel(m *discordgo.MessageCreate) {
	if m.GuildID == "" {
		r.reply(m, notInGuildText)
		return
	}
	if err := r.guilds.Register(context.Background(), m.GuildID, m.ChannelID, m.Author.ID); err != nil {
		r.log.Error("register channel failed", zap.String("guildID", m.GuildID), zap.Error(err))
		r.reply(m, genericErrorText)
		return
	}
	r.reply(m, registeredText)
	r.log.Info("setup channel registered",
		zap.String("guildID", m.GuildID),
		zap.String("channelID", m.ChannelID),
		zap.String("adminID", m.Author.ID),
	)
}

func (r *Router) handleTestReminder(m *discordgo.MessageCreate) {
	if m.GuildID == "" {
		r.reply(m, noAdminInfoText)
		return
	}
	if !r.isRegisteredAdmin(m) {
		r.reply(m, notAuthorizedText)
		return
	}
	if _, ok := r.store.Get(m.Author.ID); !ok {
		r.reply(m, noReminderSetText)
		return
	}

	if err := sendDM(r.session, m.Author.ID, testReminderText); err != nil {
		r.reply(m, dmFailedText)
		return
	}
	// Keep the setup channel tidy.
	_ = r.session.ChannelMessageDelete(m.ChannelID, m.ID)
}

// handleReloadChannels re-reads guild registrations from the database,
// picking up rows edited out of band.
func (r *Router) handleReloadChannels(m *discordgo.MessageCreate) {
	if !r.isRegisteredAdmin(m) {
		r.reply(m, notAuthorizedText)
		return
	}
	if err := r.guilds.Reload(context.Background()); err != nil {
		r.log.Error("reload guild registry failed", zap.Error(err))
		r.reply(m, genericErrorText)
		return
	}
	r.reply(m, reloadedText)
}

// --- Setup channel maintenance ---

// maybeResetSetupChannel purges a registered setup channel after any
// non-command message and re-posts the setup prompt.
func (r *Router) maybeResetSetupChannel(m *discordgo.MessageCreate) {
	if m.GuildID == "" {
		return
	}
	g, ok := r.guilds.Lookup(m.GuildID)
	if !ok || m.ChannelID != g.ChannelID {
		return
	}

	r.purgeChannel(m.ChannelID)

	if _, err := r.session.ChannelMessageSendEmbed(m.ChannelID, infoEmbed()); err != nil {
		r.log.Warn("send info embed failed", zap.Error(err))
	}
	_, err := r.session.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{setupEmbed()},
		Components: []discordgo.MessageComponent{configureButton()},
	})
	if err != nil {
		r.log.Warn("send setup prompt failed", zap.Error(err))
	}
}

// purgeChannel deletes up to the last 100 messages in a channel.
func (r *Router) purgeChannel(channelID string) {
	msgs, err := r.session.ChannelMessages(channelID, 100, "", "", "")
	if err != nil {
		r.log.Warn("purge: list messages failed", zap.String("channelID", channelID), zap.Error(err))
		return
	}
	switch len(msgs) {
	case 0:
	case 1:
		_ = r.session.ChannelMessageDelete(channelID, msgs[0].ID)
	default:
		ids := make([]string, 0, len(msgs))
		for _, msg := range msgs {
			ids = append(ids, msg.ID)
		}
		if err := r.session.ChannelMessagesBulkDelete(channelID, ids); err != nil {
			r.log.Warn("purge: bulk delete failed", zap.String("channelID", channelID), zap.Error(err))
		}
	}
}

// --- Configuration flow ---

// handleConfigureClick starts the flow: the user picks a timezone first.
func (r *Router) handleConfigureClick(i *discordgo.InteractionCreate) {
	err := r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    "Select your timezone:",
			Components: []discordgo.MessageComponent{timezoneSelect()},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		r.log.Warn("configure respond failed", zap.Error(err))
	}
}

// handleTimezoneSelect records the chosen zone and asks for the remaining
// duration. The record is partial until the modal is submitted; partial
// records are never due and never persisted.
func (r *Router) handleTimezoneSelect(i *discordgo.InteractionCreate, values []string) {
	user := interactionUser(i)
	if user == nil || len(values) == 0 {
		return
	}
	tz, err := domain.ValidateTZ(values[0])
	if err != nil {
		r.ephemeral(i, genericErrorText)
		return
	}

	rem, _ := r.store.Get(user.ID)
	rem.Timezone = tz
	r.store.Set(user.ID, rem)
	r.persist()

	err = r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: durationModal(tz),
	})
	if err != nil {
		r.log.Warn("duration modal respond failed", zap.Error(err))
	}
}

// handleDurationSubmit completes the flow: compute the notify instant,
// commit the reminder, persist, and tidy the setup channel.
func (r *Router) handleDurationSubmit(i *discordgo.InteractionCreate, tz string, data discordgo.ModalSubmitInteractionData) {
	user := interactionUser(i)
	if user == nil {
		return
	}

	days, hours, err := domain.ParseRemaining(modalValue(data, inputDays), modalValue(data, inputHours))
	if err != nil {
		r.ephemeral(i, invalidInputText)
		return
	}

	now := r.clk.Now().UTC()
	_, notifyAt, err := domain.ComputeReminder(now, tz, days, hours)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDuration) || errors.Is(err, domain.ErrInvalidTimezone) {
			r.ephemeral(i, invalidInputText)
		} else {
			r.ephemeral(i, genericErrorText)
		}
		return
	}

	r.store.Set(user.ID, domain.Reminder{NextReminderAt: &notifyAt, Timezone: tz})
	r.persist()
	r.log.Info("reminder configured",
		zap.String("userID", user.ID),
		zap.Time("notifyAt", notifyAt),
		zap.String("tz", tz),
	)

	// Remove the user's leftover messages from the setup channel.
	if i.GuildID != "" {
		if g, ok := r.guilds.Lookup(i.GuildID); ok {
			r.deleteUserMessages(g.ChannelID, user.ID)
		}
	}

	local, err := domain.LocalizeTime(notifyAt, tz)
	if err != nil {
		local = notifyAt.Format("2006-01-02 03:04 PM") + " UTC"
	}
	r.ephemeral(i, fmt.Sprintf("✅ Reminder set for %s your time.", local))
}

// deleteUserMessages removes a user's recent messages from a channel,
// ignoring per-message failures.
func (r *Router) deleteUserMessages(channelID, userID string) {
	msgs, err := r.session.ChannelMessages(channelID, 100, "", "", "")
	if err != nil {
		return
	}
	for _, msg := range msgs {
		if msg.Author != nil && msg.Author.ID == userID {
			_ = r.session.ChannelMessageDelete(channelID, msg.ID)
		}
	}
}

// modalValue extracts a text input's value from a modal submission.
func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
