// Package storage defines the persistence gateway used by the tracker. Each
// record (profile, settings, mood history) is stored independently so that a
// damaged record never prevents the others from loading.
package storage

import (
	"errors"
	"net/url"
	"strings"

	"github.com/julianstephens/soberly/internal/models"
)

var (
	// ErrNotFound is returned when a record has never been saved.
	ErrNotFound = errors.New("record not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist.
	ErrNotInitialized = errors.New("storage not initialized, run 'soberly init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile. LoadProfile returns ErrNotFound when no profile exists.
	LoadProfile() (models.SobrietyProfile, error)
	SaveProfile(models.SobrietyProfile) error

	// Settings. LoadSettings returns ErrNotFound when none were saved.
	LoadSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Mood history, newest first. SaveMoodEntries replaces the whole sequence.
	LoadMoodEntries() ([]models.MoodEntry, error)
	SaveMoodEntries([]models.MoodEntry) error

	// Clear removes the profile and mood history. Settings survive.
	Clear() error

	// Utils
	GetConfigPath() string
}

// IsPostgresURL reports whether path is a PostgreSQL connection URL rather
// than a file path.
func IsPostgresURL(path string) bool {
	return strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://")
}

// IsJSONPath reports whether path names a JSON document store.
func IsJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

// HasEmbeddedCredentials reports whether a PostgreSQL URL or DSN carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgresURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		_, set := u.User.Password()
		return set
	}
	for _, pair := range strings.Fields(connStr) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}

// Versioned is implemented by backends whose schema is managed by migrations.
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}
