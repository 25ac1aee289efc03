package system

import (
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/notification"
)

// DeliverCmd shows every registered notification whose fire time has passed
type DeliverCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *DeliverCmd) Run(ctx *cli.Context) error {
	report, err := deliverDue(ctx, c.DryRun)
	if err != nil {
		return err
	}

	switch {
	case report.Disabled:
		fmt.Println("Notifications are disabled in preferences.")
	case len(report.Deliveries) == 0:
		fmt.Println("No notifications due.")
	case c.DryRun:
		for _, d := range report.Deliveries {
			fmt.Printf("[DryRun] %s: %s (%s)\n", d.Request.Title, d.Request.Body, d.Request.FireAt.Format(constants.DateFormat+" "+constants.TimeFormat))
		}
	default:
		for _, d := range report.Deliveries {
			if d.Err != nil {
				fmt.Printf("❌ %s: %v\n", d.Request.ID, d.Err)
			}
		}
		fmt.Printf("✓ Delivered %d notification(s)\n", report.Sent())
	}

	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d notification(s) could not be delivered", n)
	}
	return nil
}

func deliverDue(ctx *cli.Context, dryRun bool) (notification.DeliveryReport, error) {
	return ctx.Dispatcher(dryRun).DeliverDue(ctx.Context(), ctx.Now())
}
