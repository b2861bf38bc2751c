package progress

import (
	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/milestones"
	"github.com/julianstephens/soberly/internal/models"
)

type HealthCmd struct {
	All bool `help:"Show descriptions for every stage."`
}

func (c *HealthCmd) Run(ctx *cli.Context) error {
	metrics, ok := ctx.Tracker.Metrics()
	if !ok {
		return cli.ErrNotOnboarded
	}
	progress := milestones.Evaluate(metrics.DaysSober)
	total := len(milestones.HealthMilestones())

	lines := []string{
		cli.Bar(float64(len(progress.Achieved))/float64(total), 30),
		cli.MutedStyle.Render(ctx.Tf("health.milestones_achieved", len(progress.Achieved), total)),
	}

	if len(progress.Achieved) > 0 {
		lines = append(lines, "", cli.TitleStyle.Render(ctx.T("health.completed")))
		for _, m := range progress.Achieved {
			lines = append(lines, c.line(ctx, m, "✓ "))
		}
	}

	if progress.Next != nil {
		lines = append(lines, "", cli.TitleStyle.Render(ctx.T("health.next")))
		lines = append(lines, c.line(ctx, *progress.Next, "→ "))
		lines = append(lines, "  "+ctx.T(progress.Next.DescriptionKey))
		if remaining, ok := milestones.DaysRemaining(progress.Next.DaysRequired, metrics.DaysSober); ok {
			lines = append(lines, cli.MutedStyle.Render("  "+ctx.Tf("main.days_remaining", ctx.Translator.Plural("time.day", remaining))))
		}
	}

	if len(progress.Upcoming) > 0 {
		lines = append(lines, "", cli.TitleStyle.Render(ctx.T("health.upcoming")))
		for _, m := range progress.Upcoming {
			lines = append(lines, cli.MutedStyle.Render(c.line(ctx, m, "  ")))
		}
	}

	ctx.Println(cli.Section(ctx.T("health.title"), lines...))
	return nil
}

func (c *HealthCmd) line(ctx *cli.Context, m models.HealthMilestone, marker string) string {
	s := marker + m.Icon + " " + ctx.T(m.TitleKey) + " (" + ctx.Translator.Plural("time.day", m.DaysRequired) + ")"
	if c.All {
		s += "\n    " + ctx.T(m.DescriptionKey)
	}
	return s
}
