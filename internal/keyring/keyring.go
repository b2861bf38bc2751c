// Package keyring keeps the PostgreSQL connection string in the OS keyring so
// it never has to appear in config files or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/soberly/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Store reads and writes one secret under a service/user pair.
type Store struct {
	Service string
	User    string
}

// Default returns the store used for the database connection string.
func Default() Store {
	return Store{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

func (s Store) Get() (string, error) {
	secret, err := keyring.Get(s.Service, s.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (s Store) Set(secret string) error {
	if secret == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(s.Service, s.User, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (s Store) Delete() error {
	if err := keyring.Delete(s.Service, s.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available is a best-effort probe; a missing probe entry still counts as available.
func (s Store) Available() bool {
	_, err := keyring.Get(s.Service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// GetConnectionString reads the connection string from the default store.
func GetConnectionString() (string, error) {
	return Default().Get()
}

// SetConnectionString writes the connection string to the default store.
func SetConnectionString(connStr string) error {
	return Default().Set(connStr)
}

// DeleteConnectionString removes the connection string from the default store.
func DeleteConnectionString() error {
	return Default().Delete()
}
