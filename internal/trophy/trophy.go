// Package trophy derives the streak trophy from the rolling history window.
//
// The status is recomputed from scratch on every evaluation; nothing about
// previous evaluations is stored.
package trophy

import "github.com/julianstephens/streakly/internal/models"

// Result is the outcome of one evaluation.
type Result struct {
	Status models.TrophyStatus
	// TotalEarned counts active days inside the window. It is a rolling
	// count, not a lifetime total.
	TotalEarned int
}

// Evaluate applies the trophy rules to a newest-first history:
//
//	empty history                -> broken
//	today active                 -> golden
//	today idle, yesterday active -> ice
//	otherwise                    -> broken
func Evaluate(history []models.DaySummary) Result {
	return Result{
		Status:      statusOf(history),
		TotalEarned: countActive(history),
	}
}

func statusOf(history []models.DaySummary) models.TrophyStatus {
	if len(history) == 0 {
		return models.TrophyBroken
	}
	if history[0].HasActivity {
		return models.TrophyGolden
	}
	if len(history) > 1 && history[1].HasActivity {
		return models.TrophyIce
	}
	return models.TrophyBroken
}

func countActive(history []models.DaySummary) int {
	n := 0
	for _, day := range history {
		if day.HasActivity {
			n++
		}
	}
	return n
}
