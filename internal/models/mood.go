package models

import (
	"fmt"
	"strings"
	"time"
)

// Mood is one of the fixed mood categories a user can record.
type Mood string

const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodOkay      Mood = "okay"
	MoodBad       Mood = "bad"
	MoodTerrible  Mood = "terrible"
)

// AllMoods lists every mood in declaration order. The order and the scores
// below drive average classification and must not change.
var AllMoods = []Mood{MoodExcellent, MoodGood, MoodOkay, MoodBad, MoodTerrible}

// Score returns the numeric value used for averages.
func (m Mood) Score() float64 {
	switch m {
	case MoodExcellent:
		return 5.0
	case MoodGood:
		return 4.0
	case MoodOkay:
		return 3.0
	case MoodBad:
		return 2.0
	case MoodTerrible:
		return 1.0
	default:
		return 0
	}
}

// Emoji returns the display glyph for the mood.
func (m Mood) Emoji() string {
	switch m {
	case MoodExcellent:
		return "😄"
	case MoodGood:
		return "🙂"
	case MoodOkay:
		return "😐"
	case MoodBad:
		return "😟"
	case MoodTerrible:
		return "😢"
	default:
		return "?"
	}
}

// Color returns the color tag used when rendering the mood.
func (m Mood) Color() string {
	switch m {
	case MoodExcellent:
		return "green"
	case MoodGood:
		return "blue"
	case MoodOkay:
		return "gray"
	case MoodBad:
		return "orange"
	case MoodTerrible:
		return "red"
	default:
		return ""
	}
}

// LocalizationKey returns the resource key for the mood's display name.
func (m Mood) LocalizationKey() string {
	return "mood." + string(m)
}

// Valid reports whether m is a member of the enumeration.
func (m Mood) Valid() bool {
	for _, known := range AllMoods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMood parses a mood name case-insensitively.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid mood %q (expected one of excellent, good, okay, bad, terrible)", s)
	}
	return m, nil
}

// MoodEntry is a single recorded mood. Entries are never edited, only
// created and deleted.
type MoodEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Mood      Mood      `json:"mood"`
	Notes     *string   `json:"notes,omitempty"`
}
