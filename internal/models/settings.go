package models

import (
	"fmt"
	"strings"
)

// NotificationFrequency controls how often recurring reminders fire.
type NotificationFrequency string

const (
	FrequencyDaily   NotificationFrequency = "daily"
	FrequencyWeekly  NotificationFrequency = "weekly"
	FrequencyMonthly NotificationFrequency = "monthly"
)

// ParseNotificationFrequency parses a frequency name case-insensitively.
func ParseNotificationFrequency(s string) (NotificationFrequency, error) {
	switch f := NotificationFrequency(strings.ToLower(strings.TrimSpace(s))); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return f, nil
	default:
		return "", fmt.Errorf("invalid notification frequency %q (expected daily, weekly or monthly)", s)
	}
}

// Settings represents user preferences. They survive a data reset.
type Settings struct {
	Currency              string                `json:"currency"`                    // ISO 4217 code, display only
	NotificationsEnabled  bool                  `json:"notifications_enabled"`       // whether reminders are scheduled
	NotificationFrequency NotificationFrequency `json:"notification_frequency"`      // daily, weekly or monthly
	SelectedLanguage      *string               `json:"selected_language,omitempty"` // nil means follow the system language
}

// Language returns the selected language or "" when the system default applies.
func (s Settings) Language() string {
	if s.SelectedLanguage == nil {
		return ""
	}
	return *s.SelectedLanguage
}
