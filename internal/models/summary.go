package models

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/constants"
)

// DaySummary is the derived, never persisted rollup of one day in the history window
type DaySummary struct {
	Date        string  `json:"date"`
	Steps       int     `json:"steps"`
	Water       int     `json:"water"`
	Calories    float64 `json:"calories"`
	WeightKg    float64 `json:"weight_kg"` // the user's current weight; history is not tracked
	MealCount   int     `json:"meal_count"`
	HasActivity bool    `json:"has_activity"`
}

// TrophyStatus is the tri-state streak indicator
type TrophyStatus string

const (
	TrophyGolden TrophyStatus = "golden"
	TrophyIce    TrophyStatus = "ice"
	TrophyBroken TrophyStatus = "broken"
)

// Valid reports whether s is one of the three trophy states.
func (s TrophyStatus) Valid() bool {
	switch s {
	case TrophyGolden, TrophyIce, TrophyBroken:
		return true
	}
	return false
}

// ParseTrophyStatus converts a stored or user-supplied string to a TrophyStatus.
func ParseTrophyStatus(s string) (TrophyStatus, error) {
	status := TrophyStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("invalid trophy status %q", s)
	}
	return status, nil
}

// Celebration is the one-shot event raised the first time a goal is met in a session
type Celebration struct {
	GoalID   constants.GoalID `json:"goal_id"`
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Icon     string           `json:"icon"`
	Color    string           `json:"color"`
}
