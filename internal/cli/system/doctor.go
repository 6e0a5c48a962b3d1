package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/streakly/internal/backup"
	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/keyring"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/utils"
)

type DoctorCmd struct{}

type checkLevel int

const (
	levelError checkLevel = iota
	levelWarning
)

type check struct {
	name    string
	level   checkLevel
	needsDB bool
	run     func(*cli.Context) error
}

var checks = []check{
	{name: "Database reachable", level: levelError, run: checkDBReachable},
	{name: "Schema version", level: levelError, needsDB: true, run: checkSchemaVersion},
	{name: "Profile", level: levelError, needsDB: true, run: checkProfile},
	{name: "Daily logs", level: levelError, needsDB: true, run: checkDailyLogs},
	{name: "Clock/timezone", level: levelError, run: checkClockTimezone},
	{name: "Backups present", level: levelWarning, run: checkBackupsPresent},
	{name: "OS keyring", level: levelWarning, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.level == levelWarning:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Database reachable" {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(ctx.Ctx()); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion(ctx.Ctx())
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema at version %d, latest is %d (run 'streakly migrate')", current, latest)
	}
	return nil
}

func checkProfile(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(ctx.Ctx())
	if err != nil {
		return err
	}
	return p.Validate()
}

func checkDailyLogs(ctx *cli.Context) error {
	logs, err := ctx.Store.GetDailyLogs(ctx.Ctx(), "0001-01-01", "9999-12-31")
	if err != nil {
		return err
	}
	var problems []error
	for _, entry := range logs {
		if err := models.ValidateDate(entry.Date); err != nil {
			problems = append(problems, err)
			continue
		}
		if entry.Steps < 0 || entry.WaterGlasses < 0 {
			problems = append(problems, fmt.Errorf("%s: negative counters", entry.Date))
		}
		for _, m := range entry.Meals {
			if err := m.Validate(); err != nil {
				problems = append(problems, fmt.Errorf("%s: meal %s: %w", entry.Date, m.ID, err))
			}
		}
	}
	return errors.Join(problems...)
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := utils.LoadLocation(ctx.Timezone); err != nil {
		return err
	}
	if now := ctx.Now(); now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path, ok := ctx.SQLitePath()
	if !ok {
		return nil
	}
	backups, err := backup.NewManager(path).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found, run 'streakly backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
