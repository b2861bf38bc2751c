// Package memory is a non-durable storage.Provider, used for dry runs and as
// a test double. Failure injection fields let callers exercise fallbacks.
package memory

import (
	"sync"

	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/storage"
)

type Store struct {
	mu       sync.Mutex
	profile  *models.SobrietyProfile
	settings *models.Settings
	moods    []models.MoodEntry

	// Set to make the matching call fail.
	ProfileErr  error
	SettingsErr error
	MoodsErr    error
	SaveErr     error
}

var _ storage.Provider = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Init() error  { return nil }
func (s *Store) Load() error  { return nil }
func (s *Store) Close() error { return nil }

func (s *Store) GetConfigPath() string {
	return ":memory:"
}

func (s *Store) LoadProfile() (models.SobrietyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ProfileErr != nil {
		return models.SobrietyProfile{}, s.ProfileErr
	}
	if s.profile == nil {
		return models.SobrietyProfile{}, storage.ErrNotFound
	}
	return *s.profile, nil
}

func (s *Store) SaveProfile(p models.SobrietyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.profile = &p
	return nil
}

func (s *Store) LoadSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SettingsErr != nil {
		return models.Settings{}, s.SettingsErr
	}
	if s.settings == nil {
		return models.Settings{}, storage.ErrNotFound
	}
	out := *s.settings
	if out.SelectedLanguage != nil {
		lang := *out.SelectedLanguage
		out.SelectedLanguage = &lang
	}
	return out, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if settings.SelectedLanguage != nil {
		lang := *settings.SelectedLanguage
		settings.SelectedLanguage = &lang
	}
	s.settings = &settings
	return nil
}

func (s *Store) LoadMoodEntries() ([]models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MoodsErr != nil {
		return nil, s.MoodsErr
	}
	out := make([]models.MoodEntry, len(s.moods))
	copy(out, s.moods)
	return out, nil
}

func (s *Store) SaveMoodEntries(entries []models.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.moods = make([]models.MoodEntry, len(entries))
	copy(s.moods, entries)
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.profile = nil
	s.moods = nil
	return nil
}
