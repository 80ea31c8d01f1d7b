package discord

import "github.com/bwmarrin/discordgo"

// UI texts in English
const (
	cancelDoneText    = "❌ Your reminder has been cancelled."
	noReminderText    = "ℹ️ You don't have an active reminder."
	noReminderSetText = "⚠️ You don't have a reminder set."
	notAuthorizedText = "⛔ You are not authorized to use this command."
	notInGuildText    = "❌ This command must be run in a server channel."
	noAdminInfoText   = "⚠️ Cannot verify admin privileges."
	registeredText    = "✅ This channel has been registered as the setup channel for this server. You are now the bot admin for this server."
	reloadedText      = "🔄 Channel registrations reloaded."
	dmFailedText      = "❌ Failed to send DM. You may have DMs disabled."
	testReminderText  = "🧪 Test reminder: Your 7-day item is expiring soon! Don't forget to renew it!"
	invalidInputText  = "❗ Invalid input. Please enter numbers for days and hours."
	genericErrorText  = "⚠️ Something went wrong. Please try again later."

	listEmptyText = "📭 No active reminders."
	listTitleText = "📋 Active Reminders:"
)

// timezoneOptions are the zones offered in the setup select menu.
var timezoneOptions = []discordgo.SelectMenuOption{
	{Label: "Central Europe (Europe/Stockholm)", Value: "Europe/Stockholm"},
	{Label: "USA - Eastern (America/New_York)", Value: "America/New_York"},
	{Label: "USA - Pacific (America/Los_Angeles)", Value: "America/Los_Angeles"},
	{Label: "India (Asia/Kolkata)", Value: "Asia/Kolkata"},
	{Label: "Australia (Australia/Sydney)", Value: "Australia/Sydney"},
}

func infoEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "ℹ️ Reminder Bot Setup Info",
		Description: "✅ To receive reminders, make sure:\n" +
			"- Your **DMs are open** (enable 'Allow direct messages from server members' in Privacy Settings)\n" +
			"- You've configured your **timezone and item duration** via the setup channel\n" +
			"- You haven't left the server\n\n" +
			"🔕 If DMs are off or you block the bot, you won't receive reminder messages.",
		Color: 0x3498db,
	}
}

func setupEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⏰ Weekly Reminder Setup",
		Description: "This bot helps you track your 7-day item renewal. Click below to configure your timezone and current item duration.",
		Color:       0x00ff99,
	}
}

func configureButton() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Configure Reminder",
				Style:    discordgo.PrimaryButton,
				CustomID: customIDConfigure,
			},
		},
	}
}

func timezoneSelect() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    customIDTimezone,
				Placeholder: "Select your timezone...",
				Options:     timezoneOptions,
			},
		},
	}
}

func durationModal(tz string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customIDDuration + ":" + tz,
		Title:    "How much time is left on your 7-day item?",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    inputDays,
						Label:       "Days left",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g. 5",
						Required:    true,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    inputHours,
						Label:       "Hours left",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g. 12",
						Required:    true,
					},
				},
			},
		},
	}
}
