package progress

import (
	"fmt"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/milestones"
)

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	status, ok := ctx.Tracker.Achievements()
	if !ok {
		return cli.ErrNotOnboarded
	}

	total := len(status.Unlocked) + len(status.Locked)
	lines := []string{
		cli.Bar(float64(len(status.Unlocked))/float64(total), 30),
		cli.Row(ctx.T("achievements.unlocked"), fmt.Sprintf("%d / %d", len(status.Unlocked), total)),
		cli.Row(ctx.T("main.days_streak"), ctx.Translator.Plural("time.day", status.DaysSober)),
	}

	if len(status.Unlocked) > 0 {
		lines = append(lines, "", cli.TitleStyle.Render(ctx.T("achievements.unlocked_section")))
		for _, a := range status.Unlocked {
			lines = append(lines, cli.Colored(a.Color, a.Icon+" "+ctx.T(a.TitleKey))+"  "+
				cli.MutedStyle.Render(ctx.T(a.DescriptionKey)))
		}
	}

	if len(status.Locked) > 0 {
		lines = append(lines, "", cli.TitleStyle.Render(ctx.T("achievements.locked_section")))
		for _, a := range status.Locked {
			line := "🔒 " + ctx.T(a.TitleKey)
			if remaining, ok := milestones.DaysRemaining(a.DaysRequired, status.DaysSober); ok {
				line += "  " + ctx.Tf("achievements.days_remaining", ctx.Translator.Plural("time.day", remaining))
			}
			lines = append(lines, cli.MutedStyle.Render(line))
		}
	}

	ctx.Println(cli.Section(ctx.T("achievements.title"), lines...))
	return nil
}
