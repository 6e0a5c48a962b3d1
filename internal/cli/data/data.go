package data

import (
	"fmt"
	"os"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage"
)

const (
	firstDate = "0001-01-01"
	lastDate  = "9999-12-31"
)

type ExportCmd struct {
	File string `arg:"" type:"path" help:"Destination JSON file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	logs, err := ctx.Store.GetDailyLogs(ctx.Ctx(), firstDate, lastDate)
	if err != nil {
		return fmt.Errorf("failed to read daily logs: %w", err)
	}
	profile, err := ctx.Store.GetProfile(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}

	doc := &storage.Document{
		Version: 1,
		Profile: &profile,
		Logs:    make(map[string]models.DailyLog, len(logs)),
	}
	for _, entry := range logs {
		doc.Logs[entry.Date] = entry
	}
	if err := storage.WriteDocument(c.File, doc); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d days to %s\n", len(logs), c.File)
	return nil
}

type ImportCmd struct {
	File    string `arg:"" type:"existingfile" help:"JSON file produced by export."`
	Replace bool   `help:"Erase all existing data before importing."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if _, err := os.Stat(c.File); err != nil {
		return fmt.Errorf("cannot read import file: %w", err)
	}
	doc, err := storage.ReadDocument(c.File)
	if err != nil {
		return err
	}

	// Validate everything before touching the store.
	for date, entry := range doc.Logs {
		if entry.Date == "" {
			entry.Date = date
		}
		if entry.Date != date {
			return fmt.Errorf("log keyed %s carries date %s", date, entry.Date)
		}
		if err := models.ValidateDate(date); err != nil {
			return err
		}
		for _, m := range entry.Meals {
			if err := m.Validate(); err != nil {
				return fmt.Errorf("%s: %w", date, err)
			}
		}
	}
	if doc.Profile != nil {
		if err := doc.Profile.Validate(); err != nil {
			return fmt.Errorf("invalid profile: %w", err)
		}
	}

	if c.Replace {
		ctx.PerformAutomaticBackup()
		if err := ctx.Store.EraseAll(ctx.Ctx()); err != nil {
			return fmt.Errorf("failed to erase existing data: %w", err)
		}
	}
	for date, entry := range doc.Logs {
		entry.Date = date
		if err := ctx.Store.PutDailyLog(ctx.Ctx(), entry); err != nil {
			return fmt.Errorf("failed to import %s: %w", date, err)
		}
	}
	if doc.Profile != nil {
		if err := ctx.Store.SaveProfile(ctx.Ctx(), *doc.Profile); err != nil {
			return fmt.Errorf("failed to import profile: %w", err)
		}
	}
	ctx.Printf("✓ Imported %d days from %s\n", len(doc.Logs), c.File)
	return nil
}
