package constants

import "time"

// GoalID identifies a tracked daily goal
type GoalID string

// MealType is the slot of the day a meal was logged against
type MealType string

const (
	AppName            = "streakly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/streakly/streakly.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// WindowDays is the number of trailing days in the rolling history window, today included
	WindowDays = 7

	// CelebrationTimeout is how long a goal celebration stays on screen before auto-dismissing
	CelebrationTimeout = 5 * time.Second

	// DefaultFetchTimeout bounds a single per-date log fetch during aggregation
	DefaultFetchTimeout = 2 * time.Second

	// DefaultFetchConcurrency caps in-flight per-date fetches
	DefaultFetchConcurrency = 4

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "streakly-"
	BackupFileSuffix = ".db"

	// Goal identifiers, in celebration priority order
	GoalWater GoalID = "water"
	GoalSteps GoalID = "steps"

	// Meal types
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"

	// Profile defaults
	DefaultStepGoal    = 8000
	DefaultWaterGoal   = 8
	DefaultCalorieGoal = 2000
	DefaultTimezone    = "Local"

	// TUI step increment per key press
	StepIncrement = 1000
)

// TrackedGoals lists goals in the fixed order the watcher checks them.
var TrackedGoals = []GoalID{GoalWater, GoalSteps}

// MealTypes lists every valid meal type.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}
