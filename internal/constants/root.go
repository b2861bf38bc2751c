package constants

import "time"

const (
	AppName            = "soberly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/soberly"
	DefaultConfigPath  = "~/.config/soberly/soberly.db"
	ConfigFileName     = "config.toml"
	EnvFileName        = ".env"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "soberly-"
	BackupFileSuffix = ".db"

	// Reminder constants
	DefaultReminderHour     = 9
	ReminderLockfileName    = "soberly-remind.lock"
	NotifyMaxRetries        = 3
	NotifyRetryDelay        = 100 * time.Millisecond
	MilestoneAlertIDPrefix  = "milestone_"
	RecurringReminderID     = "soberReminder"
	DefaultNotificationIcon = ""

	// DaysPerInterpolatedMonth is the month length assumed when pro-rating the
	// partial month of savings.
	DaysPerInterpolatedMonth = 30

	// MinMoodEntriesForStats is how many entries must exist before mood
	// statistics are shown.
	MinMoodEntriesForStats = 7

	// Environment variables
	EnvDBPath       = "SOBERLY_DB"
	EnvDBConnection = "SOBERLY_DB_CONNECTION"
	EnvDebug        = "SOBERLY_DEBUG"
	EnvReminderHour = "SOBERLY_REMINDER_HOUR"
	EnvLanguage     = "SOBERLY_LANG"
)
