package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/cli/backups"
	"github.com/julianstephens/streakly/internal/cli/data"
	"github.com/julianstephens/streakly/internal/cli/profiles"
	"github.com/julianstephens/streakly/internal/cli/system"
	"github.com/julianstephens/streakly/internal/cli/tracking"
	"github.com/julianstephens/streakly/internal/config"
	"github.com/julianstephens/streakly/internal/constants"
	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/keyring"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/telemetry"
	"github.com/julianstephens/streakly/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Database path (.db for SQLite, .json for a JSON file) or PostgreSQL connection string without a password. Overrides STREAKLY_DB." type:"string"`
	Debug    bool   `help:"Log debug output to stderr."`
	Timezone string `help:"IANA timezone that decides calendar days. Overrides STREAKLY_TIMEZONE."`

	Init    system.InitCmd    `cmd:"" help:"Initialize streakly storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`

	Water struct {
		Add    tracking.WaterAddCmd    `cmd:"" help:"Add glasses of water." default:"withargs"`
		Remove tracking.WaterRemoveCmd `cmd:"" help:"Remove glasses of water."`
	} `cmd:"" help:"Track water intake."`
	Steps struct {
		Add    tracking.StepsAddCmd    `cmd:"" help:"Add steps." default:"withargs"`
		Remove tracking.StepsRemoveCmd `cmd:"" help:"Remove steps."`
	} `cmd:"" help:"Track steps."`
	Meal struct {
		Add  tracking.MealAddCmd  `cmd:"" help:"Log a meal."`
		List tracking.MealListCmd `cmd:"" help:"List meals for a day."`
	} `cmd:"" help:"Track meals."`
	Today   tracking.TodayCmd   `cmd:"" help:"Show today's progress and trophy."`
	History tracking.HistoryCmd `cmd:"" help:"Show the last 7 days."`
	Trophy  tracking.TrophyCmd  `cmd:"" help:"Show the current streak trophy."`

	Profile struct {
		Show profiles.ProfileShowCmd `cmd:"" help:"Show profile and goals." default:"1"`
		Set  profiles.ProfileSetCmd  `cmd:"" help:"Update profile and goals."`
	} `cmd:"" help:"Manage profile and daily goals."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Export data.ExportCmd `cmd:"" help:"Export logs and profile to a JSON file."`
	Import data.ImportCmd `cmd:"" help:"Import logs and profile from a JSON export."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

// Commands that run without loading the store first.
var noLoad = []string{"init", "migrate", "doctor", "keyring", "backup restore"}

func needsLoad(command string) bool {
	for _, prefix := range noLoad {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily wellness tracker: water, steps, meals and a streak trophy"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"step_increment": strconv.Itoa(constants.StepIncrement),
		},
	)

	apperrors.Fatal(run(kctx))
}

func run(kctx *kong.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	debug := CLI.Debug || cfg.Debug
	timezone := cfg.WithTimezone(CLI.Timezone)
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return err
	}

	store, err := cli.OpenStore(cfg, CLI.Config, keyring.Lookup)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := logger.Init(logger.Config{Debug: debug, ConfigDir: cli.LogDir(store)}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: constants.AppName,
		Version:     constants.Version,
		Endpoint:    cfg.OTelEndpoint,
		Enabled:     cfg.OTelEnabled,
	})
	if err != nil {
		logger.Warn("Tracing disabled", "error", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("Failed to flush traces", "error", err)
		}
	}()

	appCtx := cli.NewContext(store, cli.Options{
		Timezone:     timezone,
		Location:     loc,
		FetchTimeout: cfg.FetchTimeout,
	})
	appCtx.Base = ctx

	command := kctx.Command()
	logger.Debug("Running command", "command", command, "store", store.GetConfigPath(), "timezone", timezone)
	if needsLoad(command) {
		if err := store.Load(ctx); err != nil {
			return err
		}
	}
	return kctx.Run(appCtx)
}
