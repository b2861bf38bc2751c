// Package onboard creates or replaces the sobriety profile.
package onboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/validation"
)

var runForm = func(f *huh.Form) error { return f.Run() }

// fieldLabels maps validation field names to their form labels.
var fieldLabels = map[string]string{
	validation.FieldStartDate:    "onboarding.start_date",
	validation.FieldAlcoholCost:  "onboarding.alcohol_cost",
	validation.FieldRelatedCost:  "onboarding.related_cost",
	validation.FieldTimeLostDays: "onboarding.time_lost",
}

type OnboardCmd struct {
	Start    string `help:"Sobriety start date (YYYY-MM-DD)."`
	Alcohol  string `help:"Monthly spend on alcohol."`
	Related  string `help:"Monthly related costs (taxis, food, etc.)."`
	TimeLost string `name:"time-lost" help:"Days lost to drinking per month."`
}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	var input validation.ProfileInput
	if c.hasFlags() {
		input = validation.ProfileInput{
			StartDate:    c.Start,
			AlcoholCost:  c.Alcohol,
			RelatedCost:  c.Related,
			TimeLostDays: c.TimeLost,
		}
	} else {
		var err error
		if input, err = c.prompt(ctx); err != nil {
			return err
		}
	}

	if _, err := ctx.Tracker.SaveProfile(context.Background(), input); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return fmt.Errorf("%s: %s (%w)", ctx.T("onboarding.error"),
				ctx.Tf("onboarding.error_message", ctx.T(fieldLabels[verr.Field])), err)
		}
		return err
	}

	ctx.Println(cli.HighlightStyle.Render(ctx.T("onboarding.saved")))
	return nil
}

func (c *OnboardCmd) hasFlags() bool {
	return c.Start != "" || c.Alcohol != "" || c.Related != "" || c.TimeLost != ""
}

// prompt collects the profile interactively, prefilled with the current
// profile when editing.
func (c *OnboardCmd) prompt(ctx *cli.Context) (validation.ProfileInput, error) {
	input := validation.ProfileInput{
		StartDate:    ctx.Clock.Now().Format(constants.DateFormat),
		AlcoholCost:  "0",
		RelatedCost:  "0",
		TimeLostDays: "0",
	}
	if p, ok := ctx.Tracker.Profile(); ok {
		input = validation.ProfileToInput(p)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(ctx.T("onboarding.title")).
				Description(ctx.T("onboarding.subtitle")),
			huh.NewInput().
				Title(ctx.T("onboarding.start_date")).
				Value(&input.StartDate).
				Validate(validation.DateValidator(ctx.Clock.Now)),
			huh.NewInput().
				Title(ctx.T("onboarding.alcohol_cost")).
				Value(&input.AlcoholCost).
				Validate(validation.AmountValidator(validation.FieldAlcoholCost)),
			huh.NewInput().
				Title(ctx.T("onboarding.related_cost")).
				Description(ctx.T("onboarding.related_hint")).
				Value(&input.RelatedCost).
				Validate(validation.AmountValidator(validation.FieldRelatedCost)),
			huh.NewInput().
				Title(ctx.T("onboarding.time_lost")).
				Description(ctx.T("onboarding.time_lost_hint")).
				Value(&input.TimeLostDays).
				Validate(validation.AmountValidator(validation.FieldTimeLostDays)),
		),
	).WithTheme(huh.ThemeDracula())

	if err := runForm(form); err != nil {
		return validation.ProfileInput{}, err
	}
	return input, nil
}
