package models

// HealthMilestone is a recovery checkpoint reached after DaysRequired days.
// Title and description are localization keys, never display text.
type HealthMilestone struct {
	DaysRequired   int    `json:"days_required"`
	TitleKey       string `json:"title_key"`
	DescriptionKey string `json:"description_key"`
	Icon           string `json:"icon"`
}

// ID returns a stable identifier for the milestone.
func (m HealthMilestone) ID() string {
	return m.TitleKey
}

// Achievement is a badge unlocked after DaysRequired days.
type Achievement struct {
	DaysRequired   int    `json:"days_required"`
	TitleKey       string `json:"title_key"`
	DescriptionKey string `json:"description_key"`
	Icon           string `json:"icon"`
	Color          string `json:"color"`
}
