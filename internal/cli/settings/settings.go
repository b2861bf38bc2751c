// Package settings shows and edits user preferences and resets data.
package settings

import (
	"context"
	"strings"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/format"
	"github.com/julianstephens/soberly/internal/models"
)

// languageSystem clears the language override.
const languageSystem = "system"

type SettingsCmd struct {
	List          bool   `help:"Print the current settings without changing anything."`
	Currency      string `help:"ISO 4217 currency code used for display."`
	Notifications *bool  `negatable:"" help:"Enable or disable reminders."`
	Frequency     string `help:"Reminder frequency (daily, weekly, monthly)."`
	Language      string `help:"Interface language, or 'system' to follow the environment."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if !c.List && c.changed() {
		s := ctx.Tracker.Settings()
		if c.Currency != "" {
			s.Currency = c.Currency
		}
		if c.Notifications != nil {
			s.NotificationsEnabled = *c.Notifications
		}
		if c.Frequency != "" {
			s.NotificationFrequency = models.NotificationFrequency(c.Frequency)
		}
		switch lang := strings.ToLower(strings.TrimSpace(c.Language)); lang {
		case "":
		case languageSystem:
			s.SelectedLanguage = nil
		default:
			s.SelectedLanguage = &lang
		}

		if err := ctx.Tracker.UpdateSettings(context.Background(), s); err != nil {
			return err
		}
		ctx.Println(cli.HighlightStyle.Render(ctx.T("settings.saved")))
	}

	printSettings(ctx)
	return nil
}

func (c *SettingsCmd) changed() bool {
	return c.Currency != "" || c.Notifications != nil || c.Frequency != "" || c.Language != ""
}

func printSettings(ctx *cli.Context) {
	s := ctx.Tracker.Settings()

	notifications := ctx.T("common.no")
	if s.NotificationsEnabled {
		notifications = ctx.T("common.yes")
	}
	language := s.Language()
	if language == "" {
		language = ctx.T("settings.language_system") + " (" + ctx.Translator.Language() + ")"
	}

	ctx.Println(cli.Section(ctx.T("settings.title"),
		cli.Row(ctx.T("settings.currency"), s.Currency+" "+cli.MutedStyle.Render(format.Symbol(s.Currency))),
		cli.Row(ctx.T("settings.notifications_enable"), notifications),
		cli.Row(ctx.T("settings.notifications_frequency"), ctx.T("settings.frequency."+string(s.NotificationFrequency))),
		cli.Row(ctx.T("settings.language"), language),
	))
}
