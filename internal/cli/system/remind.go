package system

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/logger"
	"github.com/julianstephens/soberly/internal/reminder"
)

// refreshInterval is how often the daemon reloads records written by other
// soberly invocations.
const refreshInterval = time.Hour

type RemindCmd struct {
	DryRun bool `help:"Print the reminders that would be scheduled and exit."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireProfile(); err != nil {
		return err
	}
	if c.DryRun {
		return c.dryRun(ctx)
	}

	lock, err := reminder.AcquireLock(ctx.ConfigDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release reminder lock", "error", err)
		}
	}()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !ctx.Reminders.RequestPermission(runCtx) {
		return errors.New("desktop notifications are not available in this session")
	}
	if err := ctx.Tracker.SyncReminders(runCtx); err != nil {
		return err
	}

	ctx.Reminders.Start()
	logger.Info("Reminder daemon started", "pid", os.Getpid())
	ctx.Printf("Reminders running (%d scheduled). Press Ctrl+C to stop.\n", len(ctx.Reminders.Pending()))

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-runCtx.Done():
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			ctx.Reminders.Stop(shutdown)
			cancel()
			logger.Info("Reminder daemon stopped")
			return nil
		case <-ticker.C:
			ctx.Tracker.Load()
			if err := ctx.Tracker.SyncReminders(runCtx); err != nil {
				logger.Warn("Failed to refresh reminders", "error", err)
			}
		}
	}
}

func (c *RemindCmd) dryRun(ctx *cli.Context) error {
	settings := ctx.Tracker.Settings()
	if !settings.NotificationsEnabled {
		ctx.Println("Notifications are disabled. Enable them with 'soberly settings --notifications'.")
		return nil
	}

	profile, _ := ctx.Tracker.Profile()
	if err := ctx.Reminders.Schedule(settings.NotificationFrequency, profile); err != nil {
		return err
	}
	if err := ctx.Tracker.ScheduleMilestoneAlerts(); err != nil {
		return err
	}

	pending := ctx.Reminders.Pending()
	ctx.Println(cli.TitleStyle.Render("Scheduled reminders"))
	for _, p := range pending {
		ctx.Printf("  %s  %s\n", p.Next.Format("2006-01-02 15:04"), p.Title)
	}
	if len(pending) == 0 {
		ctx.Println(cli.MutedStyle.Render("  nothing to schedule"))
	}

	permitted := ctx.Reminders.RequestPermission(context.Background())
	if !permitted {
		ctx.Println(cli.WarnStyle.Render("Desktop notifications are not available in this session."))
	}
	return nil
}
