package system

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/migration"
)

// migrator is implemented by both storage backends.
type migrator interface {
	Runner() (*migration.Runner, error)
}

func runnerFor(ctx *cli.Context) (*migration.Runner, error) {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil, fmt.Errorf("storage backend does not support migrations")
	}
	return m.Runner()
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	// Load the database
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
