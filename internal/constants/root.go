package constants

import "time"

// AlarmType is the recurrence discriminator of an alarm
type AlarmType string

// AppState is the host application lifecycle state reported by the platform
type AppState string

const (
	AppName            = "alarmnote"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/alarmnote/alarmnote.db"
	DefaultConfigFile  = "~/.config/alarmnote/config.toml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Alarm types
	AlarmOneTime   AlarmType = "ONE_TIME"
	AlarmRepeating AlarmType = "REPEATING"
	AlarmRandom    AlarmType = "RANDOM"

	// App states
	StateActive     AppState = "active"
	StateInactive   AppState = "inactive"
	StateBackground AppState = "background"

	// Scheduling constants
	ScanHorizonDays          = 7
	DaysPerWeek              = 7
	DefaultBackgroundBudget  = 25 * time.Second
	DefaultDeliverSchedule   = "@every 1m"
	DefaultReconcileSchedule = "@every 15m"
	DefaultNotificationTitle = "Alarm"

	// Notification payload keys
	PayloadAlarmID = "alarmId"
	PayloadNoteID  = "noteId"
	PayloadWeekday = "weekday"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "alarmnote-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.alarmnote"
	TrayProcessName        = "alarmnote-tray"
	TraySecretHeader       = "X-Alarmnote-Secret"
)
