package system

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/keyring"
	"github.com/julianstephens/soberly/internal/milestones"
	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/storage"
	"github.com/julianstephens/soberly/internal/validation"
)

type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkipped
)

type check struct {
	name string
	// needsStore skips the check when the store could not be loaded.
	needsStore bool
	// warnOnly downgrades a failure to a warning.
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Configuration", warnOnly: true, run: checkConfig},
	{name: "Storage reachable", run: checkStoreReachable},
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Records readable", needsStore: true, run: checkRecords},
	{name: "Backups present", needsStore: true, warnOnly: true, run: checkBackups},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Notifications", warnOnly: true, run: checkNotifications},
	{name: "Translations", warnOnly: true, run: checkTranslations},
	{name: "Clock/timezone", run: checkClock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := runChecks(ctx, checks)

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func runChecks(ctx *cli.Context, list []check) (failed bool) {
	storeOK := true
	for _, c := range list {
		result := checkOK
		var err error
		if c.needsStore && !storeOK {
			result = checkSkipped
		} else if err = c.run(ctx); err != nil {
			result = checkFail
			if c.warnOnly {
				result = checkWarn
			}
		}
		if c.name == "Storage reachable" && result == checkFail {
			storeOK = false
		}

		switch result {
		case checkOK:
			ctx.Printf("✓ %s: OK\n", c.name)
		case checkWarn:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		case checkFail:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		case checkSkipped:
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
		}
	}
	return failed
}

func checkConfig(ctx *cli.Context) error {
	if len(ctx.Source.Unknown) > 0 {
		return fmt.Errorf("unknown keys in %s: %s", ctx.Source.ConfigFile, strings.Join(ctx.Source.Unknown, ", "))
	}
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	ctx.Tracker.Load()
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkRecords decodes each record directly, bypassing the tracker's
// fallbacks, so damaged records are reported instead of masked.
func checkRecords(ctx *cli.Context) error {
	var errs []error
	profile, err := ctx.Store.LoadProfile()
	if err == nil {
		err = validation.StoredProfile(profile, ctx.Clock.Now())
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		errs = append(errs, fmt.Errorf("profile: %w", err))
	}
	if _, err := ctx.Store.LoadSettings(); err != nil && !errors.Is(err, storage.ErrNotFound) {
		errs = append(errs, fmt.Errorf("settings: %w", err))
	}
	moods, err := ctx.Store.LoadMoodEntries()
	if err != nil {
		errs = append(errs, fmt.Errorf("mood entries: %w", err))
	}
	seen := make(map[string]bool, len(moods))
	for _, m := range moods {
		if seen[m.ID] {
			errs = append(errs, fmt.Errorf("duplicate mood entry ID %s", m.ID))
		}
		seen[m.ID] = true
	}
	return errors.Join(errs...)
}

func checkBackups(ctx *cli.Context) error {
	if ctx.Backups == nil {
		return nil
	}
	backups, err := ctx.Backups.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found, consider creating one with 'soberly backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Backend != cli.BackendPostgres {
		return nil
	}
	if !keyring.Default().Available() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkNotifications(ctx *cli.Context) error {
	if !ctx.Tracker.Settings().NotificationsEnabled {
		return nil
	}
	checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if !ctx.Reminders.RequestPermission(checkCtx) {
		return errors.New("notifications are enabled but cannot be delivered in this session")
	}
	return nil
}

// checkTranslations reports catalog and mood keys that resolve in neither
// the active nor the default bundle.
func checkTranslations(ctx *cli.Context) error {
	var keys []string
	for _, m := range milestones.HealthMilestones() {
		keys = append(keys, m.TitleKey, m.DescriptionKey)
	}
	for _, a := range milestones.Achievements() {
		keys = append(keys, a.TitleKey, a.DescriptionKey)
	}
	for _, m := range models.AllMoods {
		keys = append(keys, m.LocalizationKey())
	}

	var missing []string
	for _, k := range keys {
		if !ctx.Translator.Has(k) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d untranslated keys for %q: %s", len(missing), ctx.Translator.Language(), strings.Join(missing, ", "))
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
