package system

import (
	"fmt"
	"slices"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/models"
)

// NotificationsListCmd lists the registered notification requests
type NotificationsListCmd struct {
	Alarm string `help:"Only list notifications of this alarm."`
}

func (c *NotificationsListCmd) Run(ctx *cli.Context) error {
	reqs, err := ctx.Registry().Pending(ctx.Context())
	if err != nil {
		return err
	}
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	if c.Alarm != "" {
		reqs = slices.DeleteFunc(reqs, func(r models.NotificationRequest) bool { return r.AlarmID != c.Alarm })
	}
	if len(reqs) == 0 {
		fmt.Println("No notifications registered")
		return nil
	}
	slices.SortFunc(reqs, func(a, b models.NotificationRequest) int { return a.FireAt.Compare(b.FireAt) })

	now := ctx.Now()
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		repeat := "once"
		if r.RepeatWeekly {
			repeat = "weekly"
		}
		fireAt := r.FireAt
		rows = append(rows, []string{r.ID, r.Title, r.Body, cli.FormatInstant(&fireAt, prefs.Timezone), repeat})
	}

	fmt.Println(cli.Table(
		[]string{"ID", "Title", "Body", "Fires", "Repeat"},
		rows,
		func(row int) bool { return !reqs[row].FireAt.After(now) },
	))
	return nil
}
