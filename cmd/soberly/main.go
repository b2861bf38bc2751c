package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/cli/backups"
	"github.com/julianstephens/soberly/internal/cli/moods"
	"github.com/julianstephens/soberly/internal/cli/onboard"
	"github.com/julianstephens/soberly/internal/cli/progress"
	"github.com/julianstephens/soberly/internal/cli/settings"
	"github.com/julianstephens/soberly/internal/cli/system"
	"github.com/julianstephens/soberly/internal/config"
	"github.com/julianstephens/soberly/internal/constants"
	apperrors "github.com/julianstephens/soberly/internal/errors"
	"github.com/julianstephens/soberly/internal/logger"
	"github.com/julianstephens/soberly/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite path, .json path or PostgreSQL URL ('keyring' reads the URL from the OS keyring). Overrides config.toml and SOBERLY_DB."`
	Debug   bool   `help:"Log debug output to stderr."`
	Lang    string `help:"Interface language for this invocation."`

	Init    system.InitCmd   `cmd:"" help:"Initialize soberly storage."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Remind  system.RemindCmd `cmd:"" help:"Run the reminder daemon."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the database connection stored in the OS keyring."`

	Onboard      onboard.OnboardCmd       `cmd:"" help:"Create or edit your sobriety profile."`
	Status       progress.StatusCmd       `cmd:"" help:"Show your sobriety dashboard." default:"1"`
	Health       progress.HealthCmd       `cmd:"" help:"Show health recovery milestones."`
	Achievements progress.AchievementsCmd `cmd:"" help:"Show unlocked and upcoming achievements."`
	Mood         moods.MoodCmd            `cmd:"" help:"Record and review moods."`
	Settings     settings.SettingsCmd     `cmd:"" help:"Show or change preferences."`
	Reset        settings.ResetCmd        `cmd:"" help:"Delete your profile and mood history."`
	Backup       backups.BackupCmd        `cmd:"" help:"Manage database backups."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track sobriety, money and time saved, health milestones and moods."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	configDir, err := config.Dir()
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg, src, err := config.Load(configDir, os.Getenv)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.DB = CLI.DB
		// An explicit --db wins over the environment connection string.
		cfg.DBConnection = ""
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir, Level: cfg.LogLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close logger: %v\n", err)
		}
	}()

	command := commandName(kctx)

	// Keyring commands must work before a connection exists.
	var store storage.Provider
	var backend cli.Backend
	if command != "keyring" {
		store, backend, err = cli.OpenProvider(cfg)
		if err != nil {
			apperrors.Fatal(err)
		}
		// init creates the store itself and doctor reports load failures.
		if command != "init" && command != "doctor" {
			if err := loadStore(store); err != nil {
				apperrors.Fatal(err)
			}
		}
	}

	appCtx := cli.NewContext(cli.Options{
		Config:    cfg,
		ConfigDir: configDir,
		Source:    src,
		Store:     store,
		Backend:   backend,
	})
	if store != nil && command != "init" && command != "doctor" {
		appCtx.Tracker.Load()
	}
	if CLI.Lang != "" {
		appCtx.Translator.SetLanguage(CLI.Lang)
	}

	err = kctx.Run(appCtx)
	if store != nil {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("Failed to close store", "error", closeErr)
		}
	}
	apperrors.Fatal(err)
}

// loadStore opens the store, creating it on first run.
func loadStore(store storage.Provider) error {
	err := store.Load()
	if !errors.Is(err, storage.ErrNotInitialized) {
		return err
	}
	logger.Info("Initializing storage on first run", "path", store.GetConfigPath())
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return nil
}

// commandName returns the top-level command selected on the command line.
func commandName(kctx *kong.Context) string {
	for _, p := range kctx.Path {
		if p.Command != nil {
			return p.Command.Name
		}
	}
	return ""
}
