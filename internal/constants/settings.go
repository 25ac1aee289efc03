package constants

const (
	// Preference keys
	PrefSnoozeMinutesDefault = "snoozeMinutesDefault"
	PrefTimezone             = "timezone"
	PrefOnboardingCompleted  = "onboardingCompleted"
	PrefNotificationsEnabled = "notificationsEnabled"

	// Default preference values
	DefaultSnoozeMinutes        = 10
	DefaultTimezone             = "Local" // Display only; alarm arithmetic always uses the device clock
	DefaultNotificationsEnabled = true
)
