package history

import "github.com/julianstephens/streakly/internal/models"

// Window is the rolling history, newest first: index 0 is today, index 1 yesterday.
type Window []models.DaySummary

// Chronological returns a copy ordered oldest first, for charts.
func (w Window) Chronological() []models.DaySummary {
	out := make([]models.DaySummary, len(w))
	for i, s := range w {
		out[len(w)-1-i] = s
	}
	return out
}

// Totals aggregates a window for display.
type Totals struct {
	Steps       int
	Water       int
	Calories    float64
	ActiveDays  int
	AvgSteps    float64
	AvgWater    float64
	AvgCalories float64
}

// Totals sums the window and averages over every day in it, active or not.
func (w Window) Totals() Totals {
	var t Totals
	for _, s := range w {
		t.Steps += s.Steps
		t.Water += s.Water
		t.Calories += s.Calories
		if s.HasActivity {
			t.ActiveDays++
		}
	}
	if n := float64(len(w)); n > 0 {
		t.AvgSteps = float64(t.Steps) / n
		t.AvgWater = float64(t.Water) / n
		t.AvgCalories = t.Calories / n
	}
	return t
}
