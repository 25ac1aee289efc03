package alarms

import (
	"fmt"
	"time"

	alarmsvc "github.com/julianstephens/alarmnote/internal/alarms"
	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/utils"
)

type AlarmEditCmd struct {
	ID          string  `arg:"" help:"Alarm ID."`
	Type        *string `short:"t" help:"New alarm type (once|repeating|random)."`
	Time        *string `help:"New time of day (HH:MM)."`
	Date        *string `help:"New date for a one-time alarm (YYYY-MM-DD)."`
	Weekdays    *string `short:"w" help:"New comma-separated weekdays."`
	RandomTimes *string `help:"New random times (e.g., mon=09:00,wed=21:30)."`
}

func (c *AlarmEditCmd) Run(ctx *cli.Context) error {
	in := alarmsvc.UpdateInput{
		ID:        c.ID,
		TimeOfDay: c.Time,
		Date:      c.Date,
	}

	if c.Type != nil {
		t, err := cli.ParseAlarmType(*c.Type)
		if err != nil {
			return err
		}
		in.Type = &t
	}
	if c.Weekdays != nil {
		weekdays, err := utils.ParseWeekdays(*c.Weekdays)
		if err != nil {
			return fmt.Errorf("failed to parse weekdays: %w", err)
		}
		if weekdays == nil {
			weekdays = []time.Weekday{}
		}
		in.Weekdays = weekdays
	}
	if c.RandomTimes != nil {
		times, err := utils.ParseRandomTimes(*c.RandomTimes)
		if err != nil {
			return err
		}
		if times == nil {
			times = models.RandomTimes{}
		}
		in.RandomTimes = times
	}

	alarm, err := ctx.Alarms().Update(ctx.Context(), in)
	if err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	fmt.Printf("✓ Alarm updated: %s at %s\n", alarm.FormatRecurrence(), alarm.DisplayTime())
	fmt.Printf("  Next fire: %s\n", cli.FormatInstant(alarm.NextFireAt, prefs.Timezone))
	return nil
}
