// Package backups manages snapshots of the SQLite database.
package backups

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/soberly/internal/backup"
	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/format"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the database now."`
	List    BackupListCmd    `cmd:"" help:"List available backups, newest first." default:"1"`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the database with a backup."`
}

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if ctx.Backups == nil {
		return nil, errors.New(ctx.T("backup.unsupported"))
	}
	return ctx.Backups, nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	m, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := m.Create()
	if err != nil {
		return err
	}
	ctx.Println(ctx.Tf("backup.created", path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	m, err := manager(ctx)
	if err != nil {
		return err
	}
	infos, err := m.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		ctx.Println(ctx.T("backup.none"))
		return nil
	}

	now := ctx.Clock.Now()
	lines := make([]string, 0, len(infos))
	for i, info := range infos {
		lines = append(lines, fmt.Sprintf("%2d. %s  %s  %s",
			i+1,
			info.Timestamp.Format("2006-01-02 15:04:05"),
			cli.MutedStyle.Render(humanize.Bytes(uint64(info.Size))),
			cli.MutedStyle.Render(format.Ago(info.Timestamp, now))))
	}
	lines = append(lines, "", cli.MutedStyle.Render(m.Dir()))
	ctx.Println(cli.Section(ctx.T("backup.title"), lines...))
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Backup file path, or its number from 'backup list'."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	m, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := resolve(m, c.Backup)
	if err != nil {
		return err
	}
	// The open handle would keep pointing at the replaced file.
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store before restore: %w", err)
	}
	previous, err := m.Restore(path)
	if err != nil {
		return err
	}
	ctx.Println(cli.HighlightStyle.Render(ctx.Tf("backup.restored", path)))
	if previous != "" {
		ctx.Println(cli.MutedStyle.Render(ctx.Tf("backup.previous", previous)))
	}
	return nil
}

// resolve turns a list index into a path; anything else is used as a path.
func resolve(m *backup.Manager, ref string) (string, error) {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref, nil
	}
	infos, err := m.List()
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(infos) {
		return "", fmt.Errorf("no backup number %d (have %d)", n, len(infos))
	}
	return infos[n-1].Path, nil
}
