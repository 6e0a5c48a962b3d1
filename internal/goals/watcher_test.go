package goals

import (
	"strings"
	"testing"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
)

func TestCelebrationFiresOncePerSession(t *testing.T) {
	w := NewWatcher()
	profile := models.Profile{DailyStepGoal: 8000}

	fired := 0
	for _, steps := range []int{7000, 8000, 8500, 8000} {
		if c := w.Check(Progress{Steps: steps}, profile); c != nil {
			fired++
			if steps != 8000 || fired != 1 {
				t.Errorf("unexpected celebration at steps=%d", steps)
			}
			if c.GoalID != constants.GoalSteps {
				t.Errorf("expected steps celebration, got %s", c.GoalID)
			}
		}
	}
	if fired != 1 {
		t.Errorf("expected exactly one celebration, got %d", fired)
	}
}

func TestWaterWinsWhenBothGoalsMet(t *testing.T) {
	w := NewWatcher()
	profile := models.Profile{DailyWaterGoal: 8, DailyStepGoal: 8000}
	progress := Progress{Water: 8, Steps: 9000}

	c := w.Check(progress, profile)
	if c == nil || c.GoalID != constants.GoalWater {
		t.Fatalf("expected water celebration first, got %+v", c)
	}
	if w.Celebrated(constants.GoalSteps) {
		t.Error("steps must not be marked celebrated in the same pass")
	}

	// The next pass picks up the goal that was held back.
	c = w.Check(progress, profile)
	if c == nil || c.GoalID != constants.GoalSteps {
		t.Fatalf("expected steps celebration on the next pass, got %+v", c)
	}
	if c := w.Check(progress, profile); c != nil {
		t.Errorf("expected no further celebrations, got %+v", c)
	}
}

func TestZeroTargetNeverCelebrates(t *testing.T) {
	w := NewWatcher()
	if c := w.Check(Progress{Water: 20, Steps: 20000}, models.Profile{}); c != nil {
		t.Errorf("expected no celebration without targets, got %+v", c)
	}
}

func TestNotKeyedByDate(t *testing.T) {
	w := NewWatcher()
	profile := models.Profile{DailyWaterGoal: 2}

	if c := w.Check(Progress{Water: 2}, profile); c == nil {
		t.Fatal("expected first celebration")
	}
	// Counter resets at midnight, then the goal is met again in the same session.
	if c := w.Check(Progress{Water: 0}, profile); c != nil {
		t.Errorf("unexpected celebration: %+v", c)
	}
	if c := w.Check(Progress{Water: 2}, profile); c != nil {
		t.Errorf("expected no re-celebration within the session, got %+v", c)
	}

	w.Reset()
	if c := w.Check(Progress{Water: 2}, profile); c == nil {
		t.Error("expected celebration after Reset")
	}
}

func TestCelebrationPayload(t *testing.T) {
	w := NewWatcher()
	c := w.Check(Progress{Steps: 12000}, models.Profile{DailyStepGoal: 10000})
	if c == nil {
		t.Fatal("expected celebration")
	}
	if c.Title == "" || c.Icon == "" || c.Color == "" {
		t.Errorf("incomplete payload: %+v", c)
	}
	if !strings.Contains(c.Subtitle, "10,000") {
		t.Errorf("expected formatted target in subtitle, got %q", c.Subtitle)
	}
}

func TestProgressOf(t *testing.T) {
	p := ProgressOf(models.DailyLog{Steps: 42, WaterGlasses: 3})
	if p.Steps != 42 || p.Water != 3 {
		t.Errorf("ProgressOf() = %+v", p)
	}
}
