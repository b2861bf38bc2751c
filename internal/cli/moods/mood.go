// Package moods records and reviews mood entries.
package moods

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/format"
	"github.com/julianstephens/soberly/internal/models"
)

var runForm = func(f *huh.Form) error { return f.Run() }

// shortIDLen is how many ID characters are shown and accepted as a prefix.
const shortIDLen = 8

type MoodCmd struct {
	Add    MoodAddCmd    `cmd:"" help:"Record how you feel right now."`
	List   MoodListCmd   `cmd:"" help:"Show recent mood entries." default:"1"`
	Delete MoodDeleteCmd `cmd:"" help:"Delete a mood entry."`
	Stats  MoodStatsCmd  `cmd:"" help:"Show mood statistics."`
}

type MoodAddCmd struct {
	Mood  string `arg:"" optional:"" help:"One of excellent, good, okay, bad, terrible. Prompts when omitted."`
	Notes string `short:"n" help:"Optional notes."`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	var m models.Mood
	notes := c.Notes

	if c.Mood == "" {
		if err := runForm(moodForm(ctx, &m, &notes)); err != nil {
			return err
		}
	} else {
		parsed, err := models.ParseMood(c.Mood)
		if err != nil {
			return err
		}
		m = parsed
	}

	if _, err := ctx.Tracker.AddMood(m, notes); err != nil {
		return err
	}
	ctx.Println(cli.HighlightStyle.Render(m.Emoji() + " " + ctx.T("mood.added")))
	return nil
}

func moodForm(ctx *cli.Context, m *models.Mood, notes *string) *huh.Form {
	options := make([]huh.Option[models.Mood], 0, len(models.AllMoods))
	for _, mood := range models.AllMoods {
		options = append(options, huh.NewOption(mood.Emoji()+" "+ctx.T(mood.LocalizationKey()), mood))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Mood]().
				Title(ctx.T("mood.how_feeling")).
				Options(options...).
				Value(m),
			huh.NewText().
				Title(ctx.T("mood.notes")).
				Value(notes),
		),
	).WithTheme(huh.ThemeDracula())
}

type MoodListCmd struct {
	Limit int `short:"l" default:"10" help:"Maximum number of entries to show (0 for all)."`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	entries := ctx.Tracker.Moods()
	if len(entries) == 0 {
		ctx.Println(ctx.T("mood.empty"))
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	now := ctx.Clock.Now()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s %s  %s",
			cli.MutedStyle.Render(shortID(e.ID)),
			e.Mood.Emoji(),
			cli.Colored(e.Mood.Color(), ctx.T(e.Mood.LocalizationKey())),
			cli.MutedStyle.Render(e.Timestamp.Format(constants.DateFormat+" "+constants.TimeFormat)+
				" ("+format.Ago(e.Timestamp, now)+")"))
		if e.Notes != nil {
			line += "\n          " + *e.Notes
		}
		lines = append(lines, line)
	}
	ctx.Println(cli.Section(ctx.T("mood.recent_entries"), lines...))
	return nil
}

type MoodDeleteCmd struct {
	ID string `arg:"" help:"Entry ID or a unique prefix of it."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(ctx.Tracker.Moods(), c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteMood(id); err != nil {
		return err
	}
	ctx.Println(ctx.T("mood.deleted"))
	return nil
}

// resolveID expands a unique ID prefix to the full entry ID.
func resolveID(entries []models.MoodEntry, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("mood entry ID must not be empty")
	}
	var matches []string
	for _, e := range entries {
		if e.ID == prefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no mood entry matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d entries, use a longer prefix", prefix, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

type MoodStatsCmd struct{}

func (c *MoodStatsCmd) Run(ctx *cli.Context) error {
	summary, ok := ctx.Tracker.MoodSummary()
	if !ok {
		ctx.Println(ctx.Tf("mood.not_enough", constants.MinMoodEntriesForStats, summary.Total))
		return nil
	}

	lines := []string{
		cli.Row(ctx.T("mood.average"), fmt.Sprintf("%.1f · %s", summary.Average, ctx.T(summary.Tier.LocalizationKey()))),
		cli.Row(ctx.T("mood.total_entries"), format.Count(summary.Total)),
		cli.Row(ctx.T("mood.most_common"), summary.MostCommon.Emoji()+" "+ctx.T(summary.MostCommon.LocalizationKey())),
		"",
	}
	for _, m := range models.AllMoods {
		n := summary.Counts[m]
		frac := float64(n) / float64(summary.Total)
		lines = append(lines, cli.LabelStyle.Render(m.Emoji()+" "+ctx.T(m.LocalizationKey()))+
			cli.Bar(frac, 20)+" "+format.Count(n))
	}
	ctx.Println(cli.Section(ctx.T("mood.statistics"), lines...))
	return nil
}
