// Package tracker is the coordinating layer. It owns the in-memory snapshot
// of the profile, settings and mood history, is the only writer to storage,
// and recomputes every derived figure from the snapshot and the clock.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/soberly/internal/clock"
	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/i18n"
	"github.com/julianstephens/soberly/internal/logger"
	"github.com/julianstephens/soberly/internal/milestones"
	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/mood"
	"github.com/julianstephens/soberly/internal/reminder"
	"github.com/julianstephens/soberly/internal/sobriety"
	"github.com/julianstephens/soberly/internal/storage"
	"github.com/julianstephens/soberly/internal/validation"
)

// ErrMoodNotFound is returned by DeleteMood for an unknown entry ID.
var ErrMoodNotFound = errors.New("mood entry not found")

// Backuper snapshots the backing store before destructive operations.
type Backuper interface {
	Create() (string, error)
}

type Tracker struct {
	store     storage.Provider
	clock     clock.Clock
	scheduler reminder.Scheduler
	tr        *i18n.Translator
	backups   Backuper

	mu       sync.RWMutex
	profile  *models.SobrietyProfile
	settings models.Settings
	moods    []models.MoodEntry
}

// New wires a tracker. A nil scheduler disables reminders and a nil
// translator uses the built-in English fallback.
func New(store storage.Provider, clk clock.Clock, scheduler reminder.Scheduler, tr *i18n.Translator) *Tracker {
	if clk == nil {
		clk = clock.System{}
	}
	if scheduler == nil {
		scheduler = reminder.Nop{}
	}
	if tr == nil {
		tr = i18n.NewFallback()
	}
	return &Tracker{
		store:     store,
		clock:     clk,
		scheduler: scheduler,
		tr:        tr,
		settings:  models.DefaultSettings(),
	}
}

// WithBackups makes Reset snapshot the store first.
func (t *Tracker) WithBackups(b Backuper) *Tracker {
	t.backups = b
	return t
}

// Load reads all three records. Each one falls back independently: a
// missing, unreadable or invalid profile means not onboarded, settings fall
// back to defaults and moods to an empty history.
func (t *Tracker) Load() {
	profile, err := t.store.LoadProfile()
	if err == nil {
		err = validation.StoredProfile(profile, t.clock.Now())
	}
	var p *models.SobrietyProfile
	switch {
	case err == nil:
		p = &profile
	case errors.Is(err, storage.ErrNotFound):
		logger.Debug("No profile stored")
	default:
		logger.Warn("Failed to load profile, treating as not onboarded", "error", err)
	}

	settings, err := t.store.LoadSettings()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to load settings, using defaults", "error", err)
		}
		settings = models.DefaultSettings()
	}
	models.ApplyDefaultSettings(&settings)

	moods, err := t.store.LoadMoodEntries()
	if err != nil {
		logger.Warn("Failed to load mood history, starting empty", "error", err)
		moods = nil
	}

	t.mu.Lock()
	t.profile = p
	t.settings = settings
	t.moods = moods
	t.mu.Unlock()

	t.tr.SetLanguage(settings.Language())
}

// IsSetupComplete reports whether a profile exists.
func (t *Tracker) IsSetupComplete() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.profile != nil
}

// Profile returns the current profile.
func (t *Tracker) Profile() (models.SobrietyProfile, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.profile == nil {
		return models.SobrietyProfile{}, false
	}
	return *t.profile, true
}

func (t *Tracker) Settings() models.Settings {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.settings
}

// Moods returns a copy of the mood history, newest first.
func (t *Tracker) Moods() []models.MoodEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.MoodEntry, len(t.moods))
	copy(out, t.moods)
	return out
}

// Translator returns the translator whose language follows the settings.
func (t *Tracker) Translator() *i18n.Translator {
	return t.tr
}

// SaveProfile validates input and replaces the profile wholesale. Nothing
// is written when validation fails.
func (t *Tracker) SaveProfile(ctx context.Context, input validation.ProfileInput) (models.SobrietyProfile, error) {
	profile, err := validation.Profile(input, t.clock.Now())
	if err != nil {
		return models.SobrietyProfile{}, err
	}
	if err := t.store.SaveProfile(profile); err != nil {
		return models.SobrietyProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}

	t.mu.Lock()
	t.profile = &profile
	t.mu.Unlock()
	logger.Info("Profile saved", "start", profile.StartDate.Format(constants.DateFormat))

	if err := t.SyncReminders(ctx); err != nil {
		logger.Warn("Failed to schedule reminders", "error", err)
	}
	return profile, nil
}

// UpdateSettings validates and persists settings, then applies the
// language and reminder changes they imply.
func (t *Tracker) UpdateSettings(ctx context.Context, settings models.Settings) error {
	currency, err := validation.Currency(settings.Currency)
	if err != nil {
		return err
	}
	settings.Currency = currency
	if _, err := models.ParseNotificationFrequency(string(settings.NotificationFrequency)); err != nil {
		return fmt.Errorf("%w: %v", validation.ErrInvalidInput, err)
	}
	if lang := settings.Language(); lang != "" && !t.supported(lang) {
		return fmt.Errorf("%w: unsupported language %q", validation.ErrInvalidInput, lang)
	}

	if err := t.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	t.mu.Lock()
	t.settings = settings
	t.mu.Unlock()

	t.tr.SetLanguage(settings.Language())
	return t.SyncReminders(ctx)
}

func (t *Tracker) supported(lang string) bool {
	for _, l := range t.tr.Available() {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

// AddMood records a mood at the current time and prepends it to the history.
func (t *Tracker) AddMood(m models.Mood, notes string) (models.MoodEntry, error) {
	if !m.Valid() {
		return models.MoodEntry{}, fmt.Errorf("%w: unknown mood %q", validation.ErrInvalidInput, m)
	}
	entry := models.MoodEntry{
		ID:        uuid.NewString(),
		Timestamp: t.clock.Now(),
		Mood:      m,
	}
	if n := strings.TrimSpace(notes); n != "" {
		entry.Notes = &n
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	next := make([]models.MoodEntry, 0, len(t.moods)+1)
	next = append(next, entry)
	next = append(next, t.moods...)
	if err := t.store.SaveMoodEntries(next); err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to save mood: %w", err)
	}
	t.moods = next
	return entry, nil
}

// DeleteMood removes the entry with the given ID.
func (t *Tracker) DeleteMood(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, e := range t.moods {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrMoodNotFound, id)
	}

	next := make([]models.MoodEntry, 0, len(t.moods)-1)
	next = append(next, t.moods[:idx]...)
	next = append(next, t.moods[idx+1:]...)
	if err := t.store.SaveMoodEntries(next); err != nil {
		return fmt.Errorf("failed to delete mood: %w", err)
	}
	t.moods = next
	return nil
}

// Reset clears the profile and mood history and cancels reminders.
// Settings survive. When backups are configured the store is snapshotted
// first and the snapshot path is returned.
func (t *Tracker) Reset() (string, error) {
	var backupPath string
	if t.backups != nil {
		path, err := t.backups.Create()
		if err != nil {
			return "", fmt.Errorf("failed to back up before reset: %w", err)
		}
		backupPath = path
	}

	if err := t.store.Clear(); err != nil {
		return backupPath, fmt.Errorf("failed to reset data: %w", err)
	}

	t.mu.Lock()
	t.profile = nil
	t.moods = nil
	t.mu.Unlock()

	t.scheduler.CancelAll()
	logger.Info("Data reset")
	return backupPath, nil
}

// Metrics recomputes sobriety figures as of now.
func (t *Tracker) Metrics() (sobriety.Metrics, bool) {
	p, ok := t.Profile()
	if !ok {
		return sobriety.Metrics{}, false
	}
	return sobriety.Compute(p, t.clock.Now()), true
}

// Progress evaluates the health milestones as of now.
func (t *Tracker) Progress() (milestones.Progress, bool) {
	m, ok := t.Metrics()
	if !ok {
		return milestones.Progress{}, false
	}
	return milestones.Evaluate(m.DaysSober), true
}

// AchievementStatus splits the achievement catalog at the current day count.
type AchievementStatus struct {
	DaysSober int
	Unlocked  []models.Achievement
	Locked    []models.Achievement
}

func (t *Tracker) Achievements() (AchievementStatus, bool) {
	m, ok := t.Metrics()
	if !ok {
		return AchievementStatus{}, false
	}
	return AchievementStatus{
		DaysSober: m.DaysSober,
		Unlocked:  milestones.Unlocked(m.DaysSober),
		Locked:    milestones.Locked(m.DaysSober),
	}, true
}

// MoodSummary summarizes the mood history. ok is false until at least
// constants.MinMoodEntriesForStats entries exist.
func (t *Tracker) MoodSummary() (mood.Summary, bool) {
	moods := t.Moods()
	if len(moods) < constants.MinMoodEntriesForStats {
		return mood.Summary{Total: len(moods)}, false
	}
	return mood.Summarize(moods)
}

// ScheduleMilestoneAlerts schedules a one-shot alert for every milestone
// not yet reached, on the day it will be reached.
func (t *Tracker) ScheduleMilestoneAlerts() error {
	p, ok := t.Profile()
	if !ok {
		return nil
	}
	days := sobriety.Compute(p, t.clock.Now()).DaysSober

	var errs []error
	for _, m := range milestones.HealthMilestones() {
		if milestones.IsAchieved(m, days) {
			continue
		}
		if err := t.scheduler.ScheduleMilestoneAlert(m, milestones.ReachedAt(p.StartDate, m)); err != nil {
			errs = append(errs, fmt.Errorf("milestone %s: %w", m.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// SyncReminders brings the scheduler in line with the current snapshot:
// everything is cancelled when there is no profile, notifications are
// disabled or permission is denied.
func (t *Tracker) SyncReminders(ctx context.Context) error {
	p, hasProfile := t.Profile()
	settings := t.Settings()

	if !hasProfile || !settings.NotificationsEnabled {
		t.scheduler.CancelAll()
		return nil
	}
	if !t.scheduler.RequestPermission(ctx) {
		t.scheduler.CancelAll()
		return nil
	}

	if err := t.scheduler.Schedule(settings.NotificationFrequency, p); err != nil {
		return err
	}
	return t.ScheduleMilestoneAlerts()
}
