package system

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Store.(storage.Versioned); !ok {
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}

	// Init applies every pending migration and is a no-op on an up-to-date schema.
	if err := ctx.Store.Init(ctx.Ctx()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	current, latest, err := ctx.Store.(storage.Versioned).SchemaVersion(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	ctx.Printf("Database schema is at version %d (latest %d).\n", current, latest)
	return nil
}
