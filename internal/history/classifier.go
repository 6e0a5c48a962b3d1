package history

import "github.com/julianstephens/streakly/internal/models"

// HasActivity reports whether a day counts as active: any steps, any water,
// or at least one meal. Meal count matters, not calories.
func HasActivity(s models.DaySummary) bool {
	return s.Steps > 0 || s.Water > 0 || s.MealCount > 0
}

// Summarize derives the DaySummary for one normalized daily log.
func Summarize(entry models.DailyLog, weightKg float64) models.DaySummary {
	entry = entry.Normalize()
	s := models.DaySummary{
		Date:      entry.Date,
		Steps:     entry.Steps,
		Water:     entry.WaterGlasses,
		Calories:  entry.TotalCalories(),
		WeightKg:  weightKg,
		MealCount: len(entry.Meals),
	}
	s.HasActivity = HasActivity(s)
	return s
}
