// Package storagetest is a conformance suite run against every
// storage.Provider implementation.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/storage"
)

// Harness builds providers for the suite.
type Harness struct {
	// New returns an initialized, empty provider.
	New func(t *testing.T) storage.Provider
	// Reopen closes p and returns a provider loaded from the same backing
	// store. Leave nil for backends without durable state.
	Reopen func(t *testing.T, p storage.Provider) storage.Provider
}

// SampleProfile returns a profile with fractional values and a non-UTC start.
func SampleProfile() models.SobrietyProfile {
	loc := time.FixedZone("UTC+3", 3*60*60)
	return models.SobrietyProfile{
		StartDate:           time.Date(2024, 1, 15, 21, 45, 0, 0, loc),
		MonthlyAlcoholCost:  decimal.RequireFromString("312.75"),
		MonthlyRelatedCost:  decimal.RequireFromString("48.10"),
		MonthlyTimeLostDays: decimal.RequireFromString("2.5"),
	}
}

// SampleMoods returns three entries, newest first.
func SampleMoods() []models.MoodEntry {
	note := "slept well"
	base := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	return []models.MoodEntry{
		{ID: "c3", Timestamp: base, Mood: models.MoodExcellent, Notes: &note},
		{ID: "b2", Timestamp: base.Add(-24 * time.Hour), Mood: models.MoodOkay},
		{ID: "a1", Timestamp: base.Add(-48 * time.Hour), Mood: models.MoodBad},
	}
}

// Run executes the suite.
func Run(t *testing.T, h Harness) {
	t.Run("EmptyStore", func(t *testing.T) { testEmpty(t, h) })
	t.Run("ProfileRoundTrip", func(t *testing.T) { testProfileRoundTrip(t, h) })
	t.Run("ProfileOverwrite", func(t *testing.T) { testProfileOverwrite(t, h) })
	t.Run("SettingsRoundTrip", func(t *testing.T) { testSettingsRoundTrip(t, h) })
	t.Run("MoodOrder", func(t *testing.T) { testMoodOrder(t, h) })
	t.Run("MoodReplace", func(t *testing.T) { testMoodReplace(t, h) })
	t.Run("ClearKeepsSettings", func(t *testing.T) { testClear(t, h) })
	if h.Reopen != nil {
		t.Run("Durable", func(t *testing.T) { testDurable(t, h) })
	}
}

func testEmpty(t *testing.T, h Harness) {
	p := h.New(t)

	if _, err := p.LoadProfile(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("LoadProfile() error = %v, want ErrNotFound", err)
	}
	if _, err := p.LoadSettings(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("LoadSettings() error = %v, want ErrNotFound", err)
	}
	moods, err := p.LoadMoodEntries()
	if err != nil {
		t.Fatalf("LoadMoodEntries() error = %v", err)
	}
	if len(moods) != 0 {
		t.Errorf("LoadMoodEntries() = %d entries, want 0", len(moods))
	}
	if p.GetConfigPath() == "" {
		t.Error("GetConfigPath() is empty")
	}
}

func testProfileRoundTrip(t *testing.T, h Harness) {
	p := h.New(t)
	want := SampleProfile()

	if err := p.SaveProfile(want); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	got, err := p.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("LoadProfile() = %+v, want %+v", got, want)
	}
}

func testProfileOverwrite(t *testing.T, h Harness) {
	p := h.New(t)
	first := SampleProfile()
	second := models.SobrietyProfile{
		StartDate:           time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC),
		MonthlyAlcoholCost:  decimal.NewFromInt(100),
		MonthlyRelatedCost:  decimal.Zero,
		MonthlyTimeLostDays: decimal.NewFromInt(1),
	}

	if err := p.SaveProfile(first); err != nil {
		t.Fatalf("SaveProfile(first) error = %v", err)
	}
	if err := p.SaveProfile(second); err != nil {
		t.Fatalf("SaveProfile(second) error = %v", err)
	}
	got, err := p.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if !got.Equal(second) {
		t.Errorf("LoadProfile() = %+v, want the second profile", got)
	}
}

func testSettingsRoundTrip(t *testing.T, h Harness) {
	p := h.New(t)

	def := models.DefaultSettings()
	if err := p.SaveSettings(def); err != nil {
		t.Fatalf("SaveSettings(default) error = %v", err)
	}
	got, err := p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got.Currency != def.Currency || got.NotificationsEnabled != def.NotificationsEnabled ||
		got.NotificationFrequency != def.NotificationFrequency || got.SelectedLanguage != nil {
		t.Errorf("LoadSettings() = %+v, want %+v", got, def)
	}

	lang := "ru"
	custom := models.Settings{
		Currency:              "RUB",
		NotificationsEnabled:  false,
		NotificationFrequency: models.FrequencyMonthly,
		SelectedLanguage:      &lang,
	}
	if err := p.SaveSettings(custom); err != nil {
		t.Fatalf("SaveSettings(custom) error = %v", err)
	}
	got, err = p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got.Currency != "RUB" || got.NotificationsEnabled || got.NotificationFrequency != models.FrequencyMonthly || got.Language() != "ru" {
		t.Errorf("LoadSettings() = %+v, want %+v", got, custom)
	}
}

func assertMoods(t *testing.T, got, want []models.MoodEntry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Mood != w.Mood || !g.Timestamp.Equal(w.Timestamp) {
			t.Errorf("entry %d = %+v, want %+v", i, g, w)
		}
		switch {
		case w.Notes == nil && g.Notes != nil:
			t.Errorf("entry %d notes = %q, want nil", i, *g.Notes)
		case w.Notes != nil && (g.Notes == nil || *g.Notes != *w.Notes):
			t.Errorf("entry %d notes mismatch", i)
		}
	}
}

func testMoodOrder(t *testing.T, h Harness) {
	p := h.New(t)
	want := SampleMoods()

	if err := p.SaveMoodEntries(want); err != nil {
		t.Fatalf("SaveMoodEntries() error = %v", err)
	}
	got, err := p.LoadMoodEntries()
	if err != nil {
		t.Fatalf("LoadMoodEntries() error = %v", err)
	}
	assertMoods(t, got, want)
}

func testMoodReplace(t *testing.T, h Harness) {
	p := h.New(t)
	all := SampleMoods()

	if err := p.SaveMoodEntries(all); err != nil {
		t.Fatalf("SaveMoodEntries(all) error = %v", err)
	}
	kept := []models.MoodEntry{all[0], all[2]}
	if err := p.SaveMoodEntries(kept); err != nil {
		t.Fatalf("SaveMoodEntries(kept) error = %v", err)
	}
	got, err := p.LoadMoodEntries()
	if err != nil {
		t.Fatalf("LoadMoodEntries() error = %v", err)
	}
	assertMoods(t, got, kept)

	if err := p.SaveMoodEntries(nil); err != nil {
		t.Fatalf("SaveMoodEntries(nil) error = %v", err)
	}
	got, err = p.LoadMoodEntries()
	if err != nil || len(got) != 0 {
		t.Errorf("after clearing entries got %d, %v", len(got), err)
	}
}

func testClear(t *testing.T, h Harness) {
	p := h.New(t)
	lang := "en"
	settings := models.Settings{Currency: "USD", NotificationsEnabled: true, NotificationFrequency: models.FrequencyDaily, SelectedLanguage: &lang}

	if err := p.SaveProfile(SampleProfile()); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := p.SaveMoodEntries(SampleMoods()); err != nil {
		t.Fatalf("SaveMoodEntries() error = %v", err)
	}
	if err := p.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	if err := p.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if _, err := p.LoadProfile(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("LoadProfile() after Clear error = %v, want ErrNotFound", err)
	}
	moods, err := p.LoadMoodEntries()
	if err != nil || len(moods) != 0 {
		t.Errorf("LoadMoodEntries() after Clear = %d, %v", len(moods), err)
	}
	got, err := p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() after Clear error = %v", err)
	}
	if got.Currency != "USD" || got.NotificationFrequency != models.FrequencyDaily {
		t.Errorf("settings did not survive Clear: %+v", got)
	}
}

func testDurable(t *testing.T, h Harness) {
	p := h.New(t)
	if err := p.SaveProfile(SampleProfile()); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := p.SaveMoodEntries(SampleMoods()); err != nil {
		t.Fatalf("SaveMoodEntries() error = %v", err)
	}

	p = h.Reopen(t, p)

	got, err := p.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() after reopen error = %v", err)
	}
	if !got.Equal(SampleProfile()) {
		t.Errorf("profile after reopen = %+v", got)
	}
	moods, err := p.LoadMoodEntries()
	if err != nil {
		t.Fatalf("LoadMoodEntries() after reopen error = %v", err)
	}
	assertMoods(t, moods, SampleMoods())
}
