package constants

const (
	// Setting keys
	SettingCurrency              = "currency"
	SettingNotificationsEnabled  = "notifications_enabled"
	SettingNotificationFrequency = "notification_frequency"
	SettingSelectedLanguage      = "selected_language"

	// Default Settings Values
	DefaultCurrency              = "EUR"
	DefaultNotificationsEnabled  = true
	DefaultNotificationFrequency = "weekly"
	DefaultLanguage              = "en"
)
