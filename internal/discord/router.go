package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/kristofferp8/paycut-reminder-bot/internal/guildconfig"
	"github.com/kristofferp8/paycut-reminder-bot/internal/store"
)

// Component and modal identifiers used in interaction round-trips.
const (
	customIDConfigure = "configure_reminder"
	customIDTimezone  = "timezone_select"
	customIDDuration  = "duration_modal"

	inputDays  = "days_left"
	inputHours = "hours_left"
)

const commandPrefix = "!"

// Persister is the subset of store.FileStore the adapter needs.
type Persister interface {
	Save(entries []store.Entry) error
}

// Router wires Discord events to handlers.
// It also implements scheduler.Notifier (method: Notify).
type Router struct {
	session *discordgo.Session
	log     *zap.Logger
	store   *store.Store
	files   Persister
	guilds  *guildconfig.Registry
	clk     clock.Clock
}

// NewRouter creates a Router and registers its event handlers on the session.
func NewRouter(session *discordgo.Session, log *zap.Logger, st *store.Store, files Persister, guilds *guildconfig.Registry, clk clock.Clock) *Router {
	r := &Router{
		session: session,
		log:     log,
		store:   st,
		files:   files,
		guilds:  guilds,
		clk:     clk,
	}
	session.AddHandler(r.handleMessageCreate)
	session.AddHandler(r.handleInteractionCreate)
	return r
}

// handleMessageCreate routes commands and maintains the setup channel.
func (r *Router) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	text := strings.TrimSpace(m.Content)
	switch {
	case strings.HasPrefix(text, commandPrefix+"cancel"):
		r.handleCancel(m)
	case strings.HasPrefix(text, commandPrefix+"status"):
		r.handleStatus(m)
	case strings.HasPrefix(text, commandPrefix+"list_reminders"):
		r.handleList(m)
	case strings.HasPrefix(text, commandPrefix+"register_channel"):
		r.handleRegisterChannel(m)
	case strings.HasPrefix(text, commandPrefix+"test_reminder"):
		r.handleTestReminder(m)
	case strings.HasPrefix(text, commandPrefix+"reload_channels"):
		r.handleReloadChannels(m)
	default:
		// Any other message in a registered setup channel resets it.
		r.maybeResetSetupChannel(m)
	}
}

// handleInteractionCreate routes component clicks and modal submissions of
// the configuration flow.
func (r *Router) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		switch data.CustomID {
		case customIDConfigure:
			r.handleConfigureClick(i)
		case customIDTimezone:
			r.handleTimezoneSelect(i, data.Values)
		}
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		if strings.HasPrefix(data.CustomID, customIDDuration+":") {
			tz := strings.TrimPrefix(data.CustomID, customIDDuration+":")
			r.handleDurationSubmit(i, tz, data)
		}
	}
}

// Notify delivers a direct message to the given user. A closed-DM or
// otherwise unreachable recipient is reported as scheduler.ErrUnreachable so
// the sweep drops the reminder instead of retrying.
func (r *Router) Notify(userID, text string) error {
	return sendDM(r.session, userID, text)
}

// interactionUser returns the acting user for an interaction, which Discord
// places differently for guild and DM contexts.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
