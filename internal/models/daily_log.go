package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/streakly/internal/constants"
	apperrors "github.com/julianstephens/streakly/internal/errors"
)

// Meal represents a single food-logging event
type Meal struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Calories  float64            `json:"calories"`
	Type      constants.MealType `json:"type"`
	Timestamp time.Time          `json:"timestamp"`
}

// Validate checks the meal fields a store is allowed to persist.
func (m Meal) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("meal name cannot be empty")
	}
	if m.Calories < 0 {
		return fmt.Errorf("meal calories must be non-negative, got %v", m.Calories)
	}
	if !ValidMealType(m.Type) {
		return fmt.Errorf("invalid meal type %q (expected breakfast, lunch, dinner or snack)", m.Type)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("meal timestamp is required")
	}
	return nil
}

// ValidMealType reports whether t is one of the known meal types.
func ValidMealType(t constants.MealType) bool {
	for _, mt := range constants.MealTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// DailyLog represents one user's activity for one calendar date.
// A day with no stored row is equivalent to EmptyDailyLog(date).
type DailyLog struct {
	Date         string    `json:"date"` // YYYY-MM-DD format
	Steps        int       `json:"steps"`
	WaterGlasses int       `json:"water_glasses"`
	Meals        []Meal    `json:"meals"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// EmptyDailyLog returns the zero-valued entry for a date.
func EmptyDailyLog(date string) DailyLog {
	return DailyLog{Date: date, Meals: []Meal{}}
}

// Normalize clamps counters to their floor and replaces absent fields with zero values.
// The returned entry never shares its meal slice with d.
func (d DailyLog) Normalize() DailyLog {
	if d.Steps < 0 {
		d.Steps = 0
	}
	if d.WaterGlasses < 0 {
		d.WaterGlasses = 0
	}
	meals := make([]Meal, len(d.Meals))
	copy(meals, d.Meals)
	for i := range meals {
		if meals[i].Calories < 0 {
			meals[i].Calories = 0
		}
	}
	d.Meals = meals
	return d
}

// TotalCalories sums the calories of every meal logged that day.
func (d DailyLog) TotalCalories() float64 {
	var total float64
	for _, m := range d.Meals {
		total += m.Calories
	}
	return total
}

// ApplyDeltas adjusts the water and step counters, never going below zero.
func (d DailyLog) ApplyDeltas(waterDelta, stepsDelta int) DailyLog {
	d.WaterGlasses = max(d.WaterGlasses+waterDelta, 0)
	d.Steps = max(d.Steps+stepsDelta, 0)
	return d
}

// ValidateDate checks that date is a YYYY-MM-DD calendar key.
func ValidateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("%w: %s (expected YYYY-MM-DD)", apperrors.ErrInvalidDate, date)
	}
	return nil
}
