package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/soberly/internal/constants"
)

// DefaultSettings returns the settings used when none have been saved.
func DefaultSettings() Settings {
	return Settings{
		Currency:              constants.DefaultCurrency,
		NotificationsEnabled:  constants.DefaultNotificationsEnabled,
		NotificationFrequency: NotificationFrequency(constants.DefaultNotificationFrequency),
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys that are absent keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingCurrency:
			settings.Currency = value
		case constants.SettingNotificationsEnabled:
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing notifications_enabled: %w", err)
			}
			settings.NotificationsEnabled = enabled
		case constants.SettingNotificationFrequency:
			freq, err := ParseNotificationFrequency(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing notification_frequency: %w", err)
			}
			settings.NotificationFrequency = freq
		case constants.SettingSelectedLanguage:
			if value != "" {
				lang := value
				settings.SelectedLanguage = &lang
			}
		}
	}

	ApplyDefaultSettings(&settings)
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
// An unset language is stored as an empty string.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingCurrency:              settings.Currency,
		constants.SettingNotificationsEnabled:  strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingNotificationFrequency: string(settings.NotificationFrequency),
		constants.SettingSelectedLanguage:      settings.Language(),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Currency == "" {
		settings.Currency = constants.DefaultCurrency
	}
	if settings.NotificationFrequency == "" {
		settings.NotificationFrequency = NotificationFrequency(constants.DefaultNotificationFrequency)
	}
	if settings.SelectedLanguage != nil && *settings.SelectedLanguage == "" {
		settings.SelectedLanguage = nil
	}
}
