package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/reconcile"
)

// LifecycleCmd feeds an app state transition to the reconciliation controller.
// The host application reports either an explicit --from/--to pair or one of
// the shorthands "background" (active to background) and "foreground"
// (background to active).
type LifecycleCmd struct {
	Event string `arg:"" optional:"" help:"Shorthand transition (background|foreground)."`
	From  string `help:"Previous app state (active|inactive|background)."`
	To    string `help:"New app state (active|inactive|background)."`
}

func (c *LifecycleCmd) Run(ctx *cli.Context) error {
	from, to, err := c.transition()
	if err != nil {
		return err
	}
	return runTransition(ctx, from, to)
}

func (c *LifecycleCmd) transition() (constants.AppState, constants.AppState, error) {
	if c.Event != "" {
		if c.From != "" || c.To != "" {
			return "", "", errors.New("use either a shorthand or --from/--to, not both")
		}
		switch c.Event {
		case "background":
			return constants.StateActive, constants.StateBackground, nil
		case "foreground":
			return constants.StateBackground, constants.StateActive, nil
		default:
			return "", "", fmt.Errorf("invalid transition: %s (must be background or foreground)", c.Event)
		}
	}

	if c.From == "" || c.To == "" {
		return "", "", errors.New("both --from and --to are required")
	}
	from, err := cli.ParseAppState(c.From)
	if err != nil {
		return "", "", err
	}
	to, err := cli.ParseAppState(c.To)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

func runTransition(ctx *cli.Context, from, to constants.AppState) error {
	report, err := ctx.Controller().HandleTransition(ctx.Context(), from, to)
	if err != nil {
		return err
	}
	fmt.Println(cli.FormatReport(report))
	return reportError(report)
}

// reportError turns per-alarm failures into a non-zero exit.
func reportError(r reconcile.Report) error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d alarm(s) failed to reconcile", r.Failed, r.Total)
}

// ReconcileCmd rebuilds every enabled alarm's notifications on demand
type ReconcileCmd struct{}

func (c *ReconcileCmd) Run(ctx *cli.Context) error {
	report, err := ctx.Controller().ForceReconcileAll(ctx.Context())
	if err != nil {
		return err
	}
	fmt.Println(cli.FormatReport(report))
	return reportError(report)
}
