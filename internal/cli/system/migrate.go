package system

import (
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
)

// MigrateCmd applies pending schema migrations to an existing database
type MigrateCmd struct {
	Status bool `help:"Only show the schema version and pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	before, err := ctx.Store.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	if c.Status {
		fmt.Printf("Schema version: %d (latest %d)\n", before.Current, before.Latest)
		for _, m := range before.Pending {
			fmt.Printf("  pending: %03d_%s\n", m.Version, m.Name)
		}
		return nil
	}

	if before.UpToDate() {
		fmt.Println("No migrations to apply. Database is up to date.")
		return nil
	}

	// Init applies pending migrations and fills in missing preferences
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	after, err := ctx.Store.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	fmt.Printf("Successfully applied %d migration(s). Schema version: %d\n", after.Current-before.Current, after.Current)
	return nil
}
