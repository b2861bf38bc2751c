package settings

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/soberly/internal/cli"
)

var runForm = func(f *huh.Form) error { return f.Run() }

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(ctx.T("settings.reset_alert")).
					Description(ctx.T("settings.reset_message")).
					Affirmative(ctx.T("common.delete")).
					Negative(ctx.T("common.cancel")).
					Value(&confirmed),
			),
		).WithTheme(huh.ThemeDracula())
		if err := runForm(form); err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	backupPath, err := ctx.Tracker.Reset()
	if err != nil {
		return err
	}
	if backupPath != "" {
		ctx.Println(cli.MutedStyle.Render(ctx.Tf("settings.reset_backup", backupPath)))
	}
	ctx.Println(cli.WarnStyle.Render(ctx.T("settings.reset_done")))
	return nil
}
