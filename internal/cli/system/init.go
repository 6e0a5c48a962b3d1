package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete all existing data before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	_, isFile := ctx.SQLitePath()
	if _, ok := ctx.Store.(*storage.JSONStore); ok {
		isFile = true
	}

	if c.Force && isFile {
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Ctx()); err != nil {
		return err
	}
	if c.Force && !isFile {
		if err := ctx.Store.EraseAll(ctx.Ctx()); err != nil {
			return fmt.Errorf("failed to erase existing data: %w", err)
		}
		ctx.Println("Erased existing data.")
	}

	ctx.Printf("Initialized streakly storage at: %s\n", path)
	return nil
}
