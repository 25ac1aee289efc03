package alarms

import (
	"fmt"

	alarmsvc "github.com/julianstephens/alarmnote/internal/alarms"
	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/utils"
)

type AlarmAddCmd struct {
	NoteID      string `arg:"" help:"ID of the note the alarm belongs to."`
	Type        string `short:"t" help:"Alarm type (once|repeating|random)." default:"once"`
	Time        string `help:"Time of day (HH:MM). Ignored for random alarms."`
	Date        string `help:"Date for a one-time alarm (YYYY-MM-DD)."`
	Weekdays    string `short:"w" help:"Comma-separated weekdays for repeating and random alarms (e.g., mon,wed,fri)."`
	RandomTimes string `help:"Fixed times for some random weekdays (e.g., mon=09:00,wed=21:30). Missing days are generated."`
}

func (c *AlarmAddCmd) Run(ctx *cli.Context) error {
	alarmType, err := cli.ParseAlarmType(c.Type)
	if err != nil {
		return err
	}
	weekdays, err := utils.ParseWeekdays(c.Weekdays)
	if err != nil {
		return fmt.Errorf("failed to parse weekdays: %w", err)
	}
	randomTimes, err := utils.ParseRandomTimes(c.RandomTimes)
	if err != nil {
		return err
	}

	alarm, err := ctx.Alarms().Create(ctx.Context(), alarmsvc.CreateInput{
		NoteID:      c.NoteID,
		Type:        alarmType,
		TimeOfDay:   c.Time,
		Date:        c.Date,
		Weekdays:    weekdays,
		RandomTimes: randomTimes,
	})
	if err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	fmt.Printf("✓ Alarm added: %s at %s (ID: %s)\n", alarm.FormatRecurrence(), alarm.DisplayTime(), alarm.ID)
	fmt.Printf("  Next fire: %s\n", cli.FormatInstant(alarm.NextFireAt, prefs.Timezone))
	return nil
}
