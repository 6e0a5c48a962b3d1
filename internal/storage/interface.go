package storage

import (
	"context"

	"github.com/julianstephens/streakly/internal/models"
)

// Provider is the Daily Log Store. A date with no stored entry reads back as
// models.EmptyDailyLog(date); "not found" is never an error for daily logs.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Daily logs
	GetDailyLog(ctx context.Context, date string) (models.DailyLog, error)
	GetDailyLogs(ctx context.Context, startDate, endDate string) ([]models.DailyLog, error)
	// AdjustCounters applies water and step deltas as one read-modify-write,
	// flooring both counters at zero, and returns the updated entry.
	AdjustCounters(ctx context.Context, date string, waterDelta, stepsDelta int) (models.DailyLog, error)
	AppendMeal(ctx context.Context, date string, meal models.Meal) (models.DailyLog, error)
	PutDailyLog(ctx context.Context, entry models.DailyLog) error

	// Profile
	GetProfile(ctx context.Context) (models.Profile, error)
	SaveProfile(ctx context.Context, profile models.Profile) error

	// EraseAll removes every log and the profile (account erasure).
	EraseAll(ctx context.Context) error

	// Utils
	GetConfigPath() string
}

// Versioned is implemented by SQL-backed providers.
type Versioned interface {
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}
