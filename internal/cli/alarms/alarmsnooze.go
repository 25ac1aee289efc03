package alarms

import (
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
)

type AlarmSnoozeCmd struct {
	ID      string `arg:"" help:"Alarm ID to snooze."`
	Minutes int    `short:"m" help:"Minutes to snooze for. Defaults to the snooze preference."`
}

func (c *AlarmSnoozeCmd) Run(ctx *cli.Context) error {
	if c.Minutes < 0 {
		return fmt.Errorf("minutes must not be negative")
	}

	snoozed, err := ctx.Alarms().Snooze(ctx.Context(), c.ID, c.Minutes)
	if err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	fmt.Printf("✓ Snoozed until %s (ID: %s)\n", cli.FormatInstant(snoozed.NextFireAt, prefs.Timezone), snoozed.ID)
	return nil
}

type AlarmNextCmd struct {
	ID string `arg:"" help:"Alarm ID."`
}

func (c *AlarmNextCmd) Run(ctx *cli.Context) error {
	alarm, err := ctx.Store.GetAlarm(c.ID)
	if err != nil {
		return fmt.Errorf("alarm not found: %w", err)
	}
	next, ok, err := ctx.Alarms().Next(c.ID)
	if err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	fmt.Printf("Alarm %s: %s at %s\n", alarm.ID, alarm.FormatRecurrence(), alarm.DisplayTime())
	fmt.Printf("  Stored next fire:   %s\n", cli.FormatInstant(alarm.NextFireAt, prefs.Timezone))
	if !ok {
		fmt.Println("  Computed next fire: none")
		return nil
	}
	fmt.Printf("  Computed next fire: %s\n", cli.FormatInstant(&next, prefs.Timezone))
	if !alarm.Enabled {
		fmt.Println(cli.WarningStyle.Render("  Alarm is disabled and will not fire"))
	}
	return nil
}
