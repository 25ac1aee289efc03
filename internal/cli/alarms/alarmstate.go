package alarms

import (
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
)

type AlarmEnableCmd struct {
	ID string `arg:"" help:"Alarm ID to enable."`
}

func (c *AlarmEnableCmd) Run(ctx *cli.Context) error {
	alarm, err := ctx.Alarms().SetEnabled(ctx.Context(), c.ID, true)
	if err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	fmt.Printf("✓ Alarm enabled: %s at %s\n", alarm.FormatRecurrence(), alarm.DisplayTime())
	fmt.Printf("  Next fire: %s\n", cli.FormatInstant(alarm.NextFireAt, prefs.Timezone))
	return nil
}

type AlarmDisableCmd struct {
	ID string `arg:"" help:"Alarm ID to disable."`
}

func (c *AlarmDisableCmd) Run(ctx *cli.Context) error {
	alarm, err := ctx.Alarms().SetEnabled(ctx.Context(), c.ID, false)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Alarm disabled: %s at %s\n", alarm.FormatRecurrence(), alarm.DisplayTime())
	return nil
}

type AlarmDeleteCmd struct {
	ID string `arg:"" help:"Alarm ID to delete."`
}

func (c *AlarmDeleteCmd) Run(ctx *cli.Context) error {
	alarm, err := ctx.Store.GetAlarm(c.ID)
	if err != nil {
		return fmt.Errorf("alarm not found: %w", err)
	}

	if err := ctx.Alarms().Delete(ctx.Context(), c.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Alarm deleted: %s at %s\n", alarm.FormatRecurrence(), alarm.DisplayTime())
	return nil
}
