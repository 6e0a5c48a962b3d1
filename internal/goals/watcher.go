package goals

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
)

// Progress is the live value of each tracked counter for today.
type Progress struct {
	Water int
	Steps int
}

// ProgressOf reads the tracked counters off a daily log.
func ProgressOf(entry models.DailyLog) Progress {
	return Progress{Water: entry.WaterGlasses, Steps: entry.Steps}
}

func (p Progress) current(goal constants.GoalID) int {
	switch goal {
	case constants.GoalWater:
		return p.Water
	case constants.GoalSteps:
		return p.Steps
	default:
		return 0
	}
}

// Watcher raises one-shot celebrations when a goal is met. The celebrated
// set lives for the session, not the calendar day: a goal celebrated once
// stays quiet until Reset.
type Watcher struct {
	mu         sync.Mutex
	celebrated map[constants.GoalID]bool
}

func NewWatcher() *Watcher {
	return &Watcher{celebrated: make(map[constants.GoalID]bool)}
}

// Check returns at most one celebration per call. Goals are checked in
// constants.TrackedGoals order and the first met, uncelebrated goal wins;
// any other goal met in the same pass waits for a later check.
func (w *Watcher) Check(progress Progress, profile models.Profile) *models.Celebration {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, goal := range constants.TrackedGoals {
		target := profile.Target(goal)
		if target <= 0 || progress.current(goal) < target {
			continue
		}
		if w.celebrated[goal] {
			continue
		}
		w.celebrated[goal] = true
		c := celebrationFor(goal, target)
		return &c
	}
	return nil
}

// Celebrated reports whether goal already fired this session.
func (w *Watcher) Celebrated(goal constants.GoalID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.celebrated[goal]
}

// Reset clears the celebrated set. Call it when a new session starts.
func (w *Watcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.celebrated = make(map[constants.GoalID]bool)
}

func celebrationFor(goal constants.GoalID, target int) models.Celebration {
	switch goal {
	case constants.GoalWater:
		return models.Celebration{
			GoalID:   goal,
			Title:    "Hydration goal reached!",
			Subtitle: fmt.Sprintf("You drank %d glasses of water today.", target),
			Icon:     "💧",
			Color:    "39",
		}
	case constants.GoalSteps:
		return models.Celebration{
			GoalID:   goal,
			Title:    "Step goal reached!",
			Subtitle: fmt.Sprintf("You walked %s steps today.", humanize.Comma(int64(target))),
			Icon:     "👟",
			Color:    "42",
		}
	default:
		return models.Celebration{
			GoalID:   goal,
			Title:    "Goal reached!",
			Subtitle: fmt.Sprintf("You hit your %s goal.", goal),
			Icon:     "🎉",
			Color:    "205",
		}
	}
}
