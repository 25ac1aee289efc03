package models

// Preferences represents user-level settings stored alongside notes and alarms
type Preferences struct {
	SnoozeMinutesDefault int    `json:"snoozeMinutesDefault"` // minutes used when snooze is called without an explicit value
	Timezone             string `json:"timezone"`             // IANA name or "Local"; only used to display instants
	OnboardingCompleted  bool   `json:"onboardingCompleted"`
	NotificationsEnabled bool   `json:"notificationsEnabled"` // gates delivery of due notifications
}
