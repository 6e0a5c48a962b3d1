package tracking

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/streakly/internal/cli"
	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage/sqlite"
)

var clock = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store, cli.Options{
		Location: time.UTC,
		Now:      func() time.Time { return clock },
	})
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func setGoals(t *testing.T, ctx *cli.Context, water, steps int) {
	t.Helper()
	p := models.DefaultProfile()
	p.DailyWaterGoal = water
	p.DailyStepGoal = steps
	if err := ctx.Store.SaveProfile(context.Background(), p); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
}

func TestWaterAddCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	setGoals(t, ctx, 2, 8000)

	if err := (&WaterAddCmd{Glasses: 1}).Run(ctx); err != nil {
		t.Fatalf("water add failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 / 2 glasses") {
		t.Errorf("expected counter in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Trophy:") {
		t.Errorf("expected trophy change on first activity, got %q", out.String())
	}

	out.Reset()
	if err := (&WaterAddCmd{Glasses: 1}).Run(ctx); err != nil {
		t.Fatalf("water add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Hydration goal reached!") {
		t.Errorf("expected celebration, got %q", out.String())
	}

	// A fresh invocation starts above the goal and must not celebrate again.
	next := cli.NewContext(ctx.Store, cli.Options{Location: time.UTC, Now: ctx.Now})
	nextOut := &bytes.Buffer{}
	next.Out = nextOut
	if err := (&WaterAddCmd{Glasses: 1}).Run(next); err != nil {
		t.Fatalf("water add failed: %v", err)
	}
	if strings.Contains(nextOut.String(), "goal reached") {
		t.Errorf("goal already met before the command, got %q", nextOut.String())
	}
	if !strings.Contains(nextOut.String(), "3 / 2 glasses") {
		t.Errorf("expected 3 glasses, got %q", nextOut.String())
	}
}

func TestWaterRemoveCmdFloorsAtZero(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&WaterRemoveCmd{Glasses: 3}).Run(ctx); err != nil {
		t.Fatalf("water remove failed: %v", err)
	}
	if !strings.Contains(out.String(), "0 / 8 glasses") {
		t.Errorf("expected floor at zero, got %q", out.String())
	}
	entry, err := ctx.Store.GetDailyLog(context.Background(), "2026-10-19")
	if err != nil {
		t.Fatalf("GetDailyLog failed: %v", err)
	}
	if entry.WaterGlasses != 0 {
		t.Errorf("expected 0 glasses stored, got %d", entry.WaterGlasses)
	}
}

func TestCounterCmdsRejectNonPositive(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmds := map[string]interface{ Run(*cli.Context) error }{
		"water add":    &WaterAddCmd{Glasses: 0},
		"water remove": &WaterRemoveCmd{Glasses: -1},
		"steps add":    &StepsAddCmd{Steps: 0},
		"steps remove": &StepsRemoveCmd{Steps: -500},
	}
	for name, cmd := range cmds {
		if err := cmd.Run(ctx); !errors.Is(err, apperrors.ErrInvalidAmount) {
			t.Errorf("%s: expected ErrInvalidAmount, got %v", name, err)
		}
	}
}

func TestStepsCmds(t *testing.T) {
	ctx, out := setupTestDB(t)
	setGoals(t, ctx, 8, 2000)

	if err := (&StepsAddCmd{Steps: 2500}).Run(ctx); err != nil {
		t.Fatalf("steps add failed: %v", err)
	}
	if !strings.Contains(out.String(), "2,500 / 2,000") {
		t.Errorf("expected formatted steps, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Step goal reached!") {
		t.Errorf("expected step celebration, got %q", out.String())
	}

	out.Reset()
	if err := (&StepsRemoveCmd{Steps: 1000}).Run(ctx); err != nil {
		t.Fatalf("steps remove failed: %v", err)
	}
	if !strings.Contains(out.String(), "1,500 / 2,000") {
		t.Errorf("expected 1,500 steps, got %q", out.String())
	}
}

func TestMealAddCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &MealAddCmd{Name: "  Oatmeal ", Calories: 350.5, Type: "Breakfast", At: "08:15"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("meal add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Oatmeal (350.5 kcal) at 2026-10-19 08:15") {
		t.Errorf("unexpected output %q", out.String())
	}

	entry, err := ctx.Store.GetDailyLog(context.Background(), "2026-10-19")
	if err != nil {
		t.Fatalf("GetDailyLog failed: %v", err)
	}
	if len(entry.Meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(entry.Meals))
	}
	if entry.Meals[0].Name != "Oatmeal" || entry.Meals[0].Type != "breakfast" {
		t.Errorf("unexpected meal %+v", entry.Meals[0])
	}
}

func TestMealAddCmdOtherDay(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &MealAddCmd{Name: "Pizza", Calories: 800, Type: "dinner", At: "2026-10-17 19:30"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("meal add failed: %v", err)
	}
	entry, err := ctx.Store.GetDailyLog(context.Background(), "2026-10-17")
	if err != nil {
		t.Fatalf("GetDailyLog failed: %v", err)
	}
	if len(entry.Meals) != 1 {
		t.Errorf("expected meal on 2026-10-17, got %d meals", len(entry.Meals))
	}
}

func TestMealAddCmdValidation(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tests := []struct {
		name string
		cmd  MealAddCmd
	}{
		{"bad type", MealAddCmd{Name: "Toast", Calories: 100, Type: "brunch"}},
		{"bad time", MealAddCmd{Name: "Toast", Calories: 100, Type: "snack", At: "noon"}},
		{"empty name", MealAddCmd{Name: "   ", Calories: 100, Type: "snack"}},
		{"negative calories", MealAddCmd{Name: "Toast", Calories: -1, Type: "snack"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMealListCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&MealListCmd{Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("meal list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No meals logged on 2026-10-19") {
		t.Errorf("unexpected output %q", out.String())
	}

	for _, m := range []MealAddCmd{
		{Name: "Eggs", Calories: 200, Type: "breakfast", At: "07:00"},
		{Name: "Salad", Calories: 1150.25, Type: "lunch", At: "12:30"},
	} {
		if err := m.Run(ctx); err != nil {
			t.Fatalf("meal add failed: %v", err)
		}
	}

	out.Reset()
	if err := (&MealListCmd{Date: "2026-10-19"}).Run(ctx); err != nil {
		t.Fatalf("meal list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Eggs") || !strings.Contains(got, "Salad") {
		t.Errorf("expected both meals, got %q", got)
	}
	if !strings.Contains(got, "1,350.2 kcal across 2 meals") {
		t.Errorf("expected total, got %q", got)
	}

	if err := (&MealListCmd{Date: "19-10-2026"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestTodayCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Today 2026-10-19") {
		t.Errorf("expected header, got %q", got)
	}
	if !strings.Contains(got, "Broken") {
		t.Errorf("expected broken trophy with no activity, got %q", got)
	}
}

func TestHistoryCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	bg := context.Background()

	if _, err := ctx.Store.AdjustCounters(bg, "2026-10-18", 2, 3000); err != nil {
		t.Fatalf("AdjustCounters failed: %v", err)
	}
	if _, err := ctx.Store.AdjustCounters(bg, "2026-10-13", 0, 4000); err != nil {
		t.Fatalf("AdjustCounters failed: %v", err)
	}
	// Outside the window.
	if _, err := ctx.Store.AdjustCounters(bg, "2026-10-12", 5, 0); err != nil {
		t.Fatalf("AdjustCounters failed: %v", err)
	}

	if err := (&HistoryCmd{}).Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Last 7 days") {
		t.Errorf("expected 7-day title, got %q", got)
	}
	if strings.Contains(got, "2026-10-12") {
		t.Errorf("window must not include 2026-10-12, got %q", got)
	}
	if strings.Index(got, "2026-10-19") > strings.Index(got, "2026-10-13") {
		t.Errorf("expected newest day first")
	}
	if !strings.Contains(got, "Totals: 7,000 steps, 2 glasses") {
		t.Errorf("unexpected totals in %q", got)
	}
	if !strings.Contains(got, "Active days: 2 / 7") {
		t.Errorf("unexpected active days in %q", got)
	}

	out.Reset()
	if err := (&HistoryCmd{Oldest: true}).Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	got = out.String()
	if strings.Index(got, "2026-10-13") > strings.Index(got, "2026-10-19") {
		t.Errorf("expected oldest day first with --oldest")
	}
}

func TestTrophyCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if _, err := ctx.Store.AdjustCounters(context.Background(), "2026-10-18", 1, 0); err != nil {
		t.Fatalf("AdjustCounters failed: %v", err)
	}
	if err := (&TrophyCmd{}).Run(ctx); err != nil {
		t.Fatalf("trophy failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Frozen") {
		t.Errorf("expected ice trophy when only yesterday is active, got %q", got)
	}
	if !strings.Contains(got, "last 7 days: 1") {
		t.Errorf("expected 1 trophy earned, got %q", got)
	}
}
