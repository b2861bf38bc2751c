// Package cli holds the state shared by every soberly command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/soberly/internal/backup"
	"github.com/julianstephens/soberly/internal/clock"
	"github.com/julianstephens/soberly/internal/config"
	"github.com/julianstephens/soberly/internal/format"
	"github.com/julianstephens/soberly/internal/i18n"
	"github.com/julianstephens/soberly/internal/logger"
	"github.com/julianstephens/soberly/internal/reminder"
	"github.com/julianstephens/soberly/internal/storage"
	"github.com/julianstephens/soberly/internal/storage/sqlite"
	"github.com/julianstephens/soberly/internal/tracker"
)

// ErrNotOnboarded is returned by commands that need a profile.
var ErrNotOnboarded = errors.New("no sobriety profile yet, run 'soberly onboard' first")

type Context struct {
	Config    config.Config
	ConfigDir string
	Source    config.Source

	Store      storage.Provider
	Backend    Backend
	Clock      clock.Clock
	Translator *i18n.Translator
	Reminders  *reminder.Service
	Tracker    *tracker.Tracker
	Backups    *backup.Manager // nil unless the store is SQLite

	Out io.Writer
}

// Options are the inputs to NewContext.
type Options struct {
	Config    config.Config
	ConfigDir string
	Source    config.Source
	Store     storage.Provider
	Backend   Backend
	Clock     clock.Clock
	Notifier  reminder.Notifier
	Out       io.Writer
}

// NewContext wires the tracker and its collaborators around an opened
// store. It does not load any records.
func NewContext(opts Options) *Context {
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = reminder.NewDesktopNotifier(opts.Config.Reminder.Icon)
	}

	tr, err := i18n.New("")
	if err != nil {
		logger.Warn("Failed to load translations, using built-in English", "error", err)
		tr = i18n.NewFallback()
	}

	ctx := &Context{
		Config:     opts.Config,
		ConfigDir:  opts.ConfigDir,
		Source:     opts.Source,
		Store:      opts.Store,
		Backend:    opts.Backend,
		Clock:      clk,
		Translator: tr,
		Out:        out,
	}

	ctx.Reminders = reminder.NewService(clk, tr, notifier, reminder.Options{
		Hour:   opts.Config.Reminder.Hour,
		Minute: opts.Config.Reminder.Minute,
		Money:  ctx.Money,
	})
	ctx.Tracker = tracker.New(opts.Store, clk, ctx.Reminders, tr)

	if s, ok := opts.Store.(*sqlite.Store); ok {
		ctx.Backups = backup.NewManager(s.GetConfigPath(), clk)
		ctx.Tracker.WithBackups(ctx.Backups)
	}
	return ctx
}

// T translates key in the active language.
func (c *Context) T(key string) string {
	return c.Translator.T(key)
}

// Tf translates key and formats it with args.
func (c *Context) Tf(key string, args ...any) string {
	return c.Translator.Tf(key, args...)
}

// Money formats an amount in the configured currency and active language.
func (c *Context) Money(d decimal.Decimal) string {
	return format.Money(d, c.Tracker.Settings().Currency, c.Translator.Language())
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// RequireProfile fails with ErrNotOnboarded when no profile exists.
func (c *Context) RequireProfile() error {
	if !c.Tracker.IsSetupComplete() {
		return ErrNotOnboarded
	}
	return nil
}
