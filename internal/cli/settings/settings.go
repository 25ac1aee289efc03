package settings

import (
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/utils"
)

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	fmt.Println("Current Preferences:")
	fmt.Printf("  Snooze Minutes:        %d\n", prefs.SnoozeMinutesDefault)
	fmt.Printf("  Timezone:              %s\n", prefs.Timezone)
	fmt.Printf("  Notifications Enabled: %v\n", prefs.NotificationsEnabled)
	fmt.Printf("  Onboarding Completed:  %v\n", prefs.OnboardingCompleted)
	return nil
}

type PrefsSetCmd struct {
	SnoozeMinutes       *int    `help:"Minutes used when snoozing without --minutes."`
	Timezone            *string `help:"IANA timezone used to display fire times, or Local."`
	Notifications       *bool   `help:"Enable or disable delivery of due notifications." negatable:""`
	OnboardingCompleted *bool   `help:"Mark onboarding as completed." negatable:""`
}

func (c *PrefsSetCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	updated := false
	if c.SnoozeMinutes != nil {
		if *c.SnoozeMinutes <= 0 {
			return fmt.Errorf("snooze minutes must be positive")
		}
		prefs.SnoozeMinutesDefault = *c.SnoozeMinutes
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		prefs.Timezone = *c.Timezone
		updated = true
	}
	if c.Notifications != nil {
		prefs.NotificationsEnabled = *c.Notifications
		updated = true
	}
	if c.OnboardingCompleted != nil {
		prefs.OnboardingCompleted = *c.OnboardingCompleted
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use 'prefs show' to view preferences or flags to update them.")
		return nil
	}
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	fmt.Println("✓ Preferences updated.")
	return nil
}
