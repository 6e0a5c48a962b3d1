package data

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store, cli.Options{Location: time.UTC})
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func seed(t *testing.T, ctx *cli.Context) {
	t.Helper()
	bg := context.Background()
	if _, err := ctx.Store.AdjustCounters(bg, "2026-10-18", 4, 6500); err != nil {
		t.Fatalf("AdjustCounters failed: %v", err)
	}
	meal := models.Meal{
		ID:        "0192c0de-0000-7000-8000-000000000001",
		Name:      "Ramen",
		Calories:  640,
		Type:      constants.MealDinner,
		Timestamp: time.Date(2026, 10, 19, 19, 0, 0, 0, time.UTC),
	}
	if _, err := ctx.Store.AppendMeal(bg, "2026-10-19", meal); err != nil {
		t.Fatalf("AppendMeal failed: %v", err)
	}
	p := models.DefaultProfile()
	p.Name = "Robin"
	p.DailyWaterGoal = 10
	if err := ctx.Store.SaveProfile(bg, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src, out := setupTestDB(t)
	seed(t, src)

	file := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{File: file}).Run(src); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out.String(), "Exported 2 days") {
		t.Errorf("unexpected output %q", out.String())
	}

	dst, out := setupTestDB(t)
	if err := (&ImportCmd{File: file}).Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 2 days") {
		t.Errorf("unexpected output %q", out.String())
	}

	bg := context.Background()
	counters, err := dst.Store.GetDailyLog(bg, "2026-10-18")
	if err != nil {
		t.Fatalf("GetDailyLog failed: %v", err)
	}
	if counters.WaterGlasses != 4 || counters.Steps != 6500 {
		t.Errorf("unexpected counters %+v", counters)
	}
	meals, err := dst.Store.GetDailyLog(bg, "2026-10-19")
	if err != nil {
		t.Fatalf("GetDailyLog failed: %v", err)
	}
	if len(meals.Meals) != 1 || meals.Meals[0].Name != "Ramen" || meals.Meals[0].Calories != 640 {
		t.Errorf("unexpected meals %+v", meals.Meals)
	}
	p, err := dst.Store.GetProfile(bg)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Name != "Robin" || p.DailyWaterGoal != 10 {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestImportReplaceErasesExisting(t *testing.T) {
	src, _ := setupTestDB(t)
	seed(t, src)
	file := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{File: file}).Run(src); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dst, _ := setupTestDB(t)
	bg := context.Background()
	if _, err := dst.Store.AdjustCounters(bg, "2026-01-01", 1, 1); err != nil {
		t.Fatalf("AdjustCounters failed: %v", err)
	}
	if err := (&ImportCmd{File: file, Replace: true}).Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	logs, err := dst.Store.GetDailyLogs(bg, "0001-01-01", "9999-12-31")
	if err != nil {
		t.Fatalf("GetDailyLogs failed: %v", err)
	}
	for _, entry := range logs {
		if entry.Date == "2026-01-01" {
			t.Error("--replace must erase days missing from the import")
		}
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 days after replace, got %d", len(logs))
	}
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  storage.Document
	}{
		{
			name: "mismatched date",
			doc: storage.Document{Version: 1, Logs: map[string]models.DailyLog{
				"2026-10-19": {Date: "2026-10-18"},
			}},
		},
		{
			name: "malformed key",
			doc: storage.Document{Version: 1, Logs: map[string]models.DailyLog{
				"19/10/2026": {},
			}},
		},
		{
			name: "invalid meal",
			doc: storage.Document{Version: 1, Logs: map[string]models.DailyLog{
				"2026-10-19": {Meals: []models.Meal{{ID: "m1", Name: "", Calories: 10, Type: constants.MealSnack, Timestamp: time.Now()}}},
			}},
		},
		{
			name: "negative goal",
			doc:  storage.Document{Version: 1, Profile: &models.Profile{DailyStepGoal: -5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			file := filepath.Join(t.TempDir(), "bad.json")
			if err := storage.WriteDocument(file, &tt.doc); err != nil {
				t.Fatalf("WriteDocument failed: %v", err)
			}
			if err := (&ImportCmd{File: file}).Run(ctx); err == nil {
				t.Fatal("expected import to fail")
			}
			logs, err := ctx.Store.GetDailyLogs(context.Background(), "0001-01-01", "9999-12-31")
			if err != nil {
				t.Fatalf("GetDailyLogs failed: %v", err)
			}
			if len(logs) != 0 {
				t.Errorf("failed import must not write anything, got %d days", len(logs))
			}
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)
	missing := filepath.Join(t.TempDir(), "nope.json")
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be missing", missing)
	}
	if err := (&ImportCmd{File: missing}).Run(ctx); err == nil {
		t.Error("expected error for missing file")
	}
}
