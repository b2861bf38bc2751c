// Package progress renders the sobriety dashboard, health milestones and
// achievements.
package progress

import (
	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/format"
	"github.com/julianstephens/soberly/internal/milestones"
	"github.com/julianstephens/soberly/internal/sobriety"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	metrics, ok := ctx.Tracker.Metrics()
	if !ok {
		ctx.Println(ctx.T("main.not_onboarded"))
		return nil
	}
	profile, _ := ctx.Tracker.Profile()

	headline := ctx.Translator.Plural(unitKey(metrics.Display.Unit), metrics.Display.Value)
	lines := []string{
		cli.BoxStyle.Render(cli.HighlightStyle.Render(headline)),
		cli.MutedStyle.Render(ctx.Tf("main.sober_since", profile.StartDate.Format(constants.DateFormat))),
		"",
		cli.Row(ctx.T("main.days_streak"), format.Count(metrics.DaysSober)),
		cli.Row(ctx.T("main.money_saved"), ctx.Money(metrics.MoneySaved)),
		cli.Row(ctx.T("main.time_saved"), format.Days(metrics.TimeSaved)+" "+
			ctx.Translator.PluralLabel("time.day", int(metrics.TimeSaved.IntPart()))),
		"",
		cli.TitleStyle.Render(ctx.T("main.projections")),
		cli.Row(ctx.T("main.projection_6months"), ctx.Money(metrics.ProjectedSavings6Months)),
		cli.Row(ctx.T("main.projection_12months"), ctx.Money(metrics.ProjectedSavings12Months)),
	}

	if next, ok := milestones.Next(metrics.DaysSober); ok {
		lines = append(lines, "", cli.TitleStyle.Render(ctx.T("main.next_milestone")),
			next.Icon+" "+ctx.T(next.TitleKey))
		if remaining, ok := milestones.DaysRemaining(next.DaysRequired, metrics.DaysSober); ok {
			lines = append(lines, cli.MutedStyle.Render(ctx.Tf("main.days_remaining", ctx.Translator.Plural("time.day", remaining))))
		}
	}

	ctx.Println(cli.Section(ctx.T("app.name"), lines...))
	return nil
}

func unitKey(u sobriety.TimeUnit) string {
	return "time." + string(u)
}
