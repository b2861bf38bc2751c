// Package jsonfile stores every record in a single JSON document. Records are
// decoded independently, so a damaged mood list still lets the profile load.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/soberly/internal/logger"
	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/storage"
)

const documentVersion = 1

// document keeps each record raw until it is requested.
type document struct {
	Version  int             `json:"version"`
	Profile  json.RawMessage `json:"profile,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
	Moods    json.RawMessage `json:"mood_entries,omitempty"`
}

type Store struct {
	path string
	doc  *document
	now  func() time.Time
}

var _ storage.Provider = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{Version: documentVersion}
	return s.save()
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return storage.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return s.quarantine(err)
	}
	if doc.Version > documentVersion {
		return fmt.Errorf("storage version %d is newer than supported version %d", doc.Version, documentVersion)
	}
	s.doc = doc
	return nil
}

// quarantine moves an unparseable document aside and starts over with an
// empty one, leaving each record to its absent-record fallback.
func (s *Store) quarantine(cause error) error {
	aside := s.path + ".corrupt-" + s.now().UTC().Format("20060102T150405Z")
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("failed to parse storage (%v) and to move it aside: %w", cause, err)
	}
	logger.Warn("Storage document is unreadable, starting empty", "path", s.path, "moved_to", aside, "error", cause)

	s.doc = &document{Version: documentVersion}
	return s.save()
}

func (s *Store) Close() error {
	return nil
}

// save writes to a temp file and renames it over the document.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) LoadProfile() (models.SobrietyProfile, error) {
	if len(s.doc.Profile) == 0 || string(s.doc.Profile) == "null" {
		return models.SobrietyProfile{}, storage.ErrNotFound
	}
	var p models.SobrietyProfile
	if err := json.Unmarshal(s.doc.Profile, &p); err != nil {
		return models.SobrietyProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.SobrietyProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	s.doc.Profile = raw
	return s.save()
}

func (s *Store) LoadSettings() (models.Settings, error) {
	if len(s.doc.Settings) == 0 || string(s.doc.Settings) == "null" {
		return models.Settings{}, storage.ErrNotFound
	}
	// Absent fields keep their defaults.
	settings := models.DefaultSettings()
	if err := json.Unmarshal(s.doc.Settings, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if _, err := models.ParseNotificationFrequency(string(settings.NotificationFrequency)); err != nil && settings.NotificationFrequency != "" {
		return models.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	s.doc.Settings = raw
	return s.save()
}

func (s *Store) LoadMoodEntries() ([]models.MoodEntry, error) {
	entries := []models.MoodEntry{}
	if len(s.doc.Moods) == 0 || string(s.doc.Moods) == "null" {
		return entries, nil
	}
	if err := json.Unmarshal(s.doc.Moods, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode mood entries: %w", err)
	}
	for _, e := range entries {
		if !e.Mood.Valid() {
			return nil, fmt.Errorf("failed to decode mood entries: entry %s has unknown mood %q", e.ID, e.Mood)
		}
	}
	return entries, nil
}

func (s *Store) SaveMoodEntries(entries []models.MoodEntry) error {
	if entries == nil {
		entries = []models.MoodEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode mood entries: %w", err)
	}
	s.doc.Moods = raw
	return s.save()
}

func (s *Store) Clear() error {
	s.doc.Profile = nil
	s.doc.Moods = nil
	return s.save()
}
