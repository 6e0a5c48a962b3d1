package models

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/constants"
)

// Profile holds the user's body metrics and daily goals
type Profile struct {
	Name             string  `json:"name"`
	WeightKg         float64 `json:"weight_kg"`
	HeightCm         float64 `json:"height_cm"`
	DailyStepGoal    int     `json:"daily_step_goal"`
	DailyWaterGoal   int     `json:"daily_water_goal"`   // glasses
	DailyCalorieGoal int     `json:"daily_calorie_goal"` // informational only
}

// DefaultProfile returns the profile used before the user has saved one.
func DefaultProfile() Profile {
	return Profile{
		DailyStepGoal:    constants.DefaultStepGoal,
		DailyWaterGoal:   constants.DefaultWaterGoal,
		DailyCalorieGoal: constants.DefaultCalorieGoal,
	}
}

// Target returns the configured target for a tracked goal, 0 when untracked.
func (p Profile) Target(goal constants.GoalID) int {
	switch goal {
	case constants.GoalWater:
		return p.DailyWaterGoal
	case constants.GoalSteps:
		return p.DailyStepGoal
	default:
		return 0
	}
}

// Validate rejects negative metrics and goals.
func (p Profile) Validate() error {
	if p.WeightKg < 0 {
		return fmt.Errorf("weight must be non-negative, got %v", p.WeightKg)
	}
	if p.HeightCm < 0 {
		return fmt.Errorf("height must be non-negative, got %v", p.HeightCm)
	}
	if p.DailyStepGoal < 0 || p.DailyWaterGoal < 0 || p.DailyCalorieGoal < 0 {
		return fmt.Errorf("goals must be non-negative")
	}
	return nil
}
