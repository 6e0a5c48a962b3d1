package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/goals"
	"github.com/julianstephens/streakly/internal/history"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/trophy"
	"github.com/julianstephens/streakly/internal/utils"
)

var tracer = otel.Tracer("github.com/julianstephens/streakly/internal/tracker")

// Snapshot is everything presentation needs after one refresh pass.
// All of it comes from the same pass.
type Snapshot struct {
	Pass    uint64
	Date    string
	Profile models.Profile
	Window  history.Window
	Trophy  trophy.Result
	// StatusChanged is set when the trophy differs from the previously applied
	// pass, so callers can play a cue. Always false for the first pass.
	StatusChanged  bool
	PreviousStatus models.TrophyStatus
	Celebration    *models.Celebration
}

// Today returns the summary for the reference day.
func (s Snapshot) Today() models.DaySummary {
	if len(s.Window) == 0 {
		return models.DaySummary{Date: s.Date}
	}
	return s.Window[0]
}

// Session owns the per-session state: the celebrated-goals set and the last
// applied snapshot. Mutations go straight to the store, which applies them
// atomically, and are followed by an explicit Refresh.
type Session struct {
	store      storage.Provider
	aggregator *history.Aggregator
	watcher    *goals.Watcher
	loc        *time.Location
	now        func() time.Time

	mu         sync.Mutex
	started    uint64
	applied    uint64
	current    Snapshot
	hasCurrent bool
}

type Option func(*Session)

// WithLocation sets the timezone that decides calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithFetchTimeout bounds each per-date fetch during aggregation.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Session) { s.aggregator.Timeout = d }
}

func New(store storage.Provider, opts ...Option) *Session {
	s := &Session{
		store:   store,
		watcher: goals.NewWatcher(),
		loc:     time.Local,
		now:     time.Now,
	}
	s.aggregator = &history.Aggregator{Fetch: store.GetDailyLog}
	for _, opt := range opts {
		opt(s)
	}
	s.aggregator.Location = s.loc
	return s
}

// Today returns the current date key in the session's timezone.
func (s *Session) Today() string {
	return utils.DateKey(s.now(), s.loc)
}

// Refresh recomputes the window, trophy and goal check. Passes are numbered
// in start order; a pass finishing after a later-started pass was applied is
// discarded, and the returned bool is false with the newer snapshot returned.
func (s *Session) Refresh(ctx context.Context) (Snapshot, bool) {
	s.mu.Lock()
	s.started++
	pass := s.started
	s.mu.Unlock()

	ctx, span := tracer.Start(ctx, "tracker.refresh")
	defer span.End()

	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		logger.Warn("Profile fetch failed, using empty profile", "error", err)
		profile = models.Profile{}
	}

	now := s.now()
	window := s.aggregator.Build(ctx, now, profile.WeightKg)
	result := trophy.Evaluate(window)

	s.mu.Lock()
	defer s.mu.Unlock()

	if pass < s.applied {
		logger.Debug("Discarding stale refresh pass", "pass", pass, "applied", s.applied)
		span.SetAttributes(attribute.Bool("tracker.stale", true))
		return s.current, false
	}

	snap := Snapshot{
		Pass:    pass,
		Date:    utils.DateKey(now, s.loc),
		Profile: profile,
		Window:  window,
		Trophy:  result,
	}
	if s.hasCurrent {
		snap.PreviousStatus = s.current.Trophy.Status
		snap.StatusChanged = snap.PreviousStatus != result.Status
	}
	today := snap.Today()
	snap.Celebration = s.watcher.Check(goals.Progress{Water: today.Water, Steps: today.Steps}, profile)
	if snap.Celebration != nil {
		span.AddEvent("goal.celebrated", trace.WithAttributes(attribute.String("goal.id", string(snap.Celebration.GoalID))))
	}

	s.applied = pass
	s.current = snap
	s.hasCurrent = true

	span.SetAttributes(
		attribute.Int64("tracker.pass", int64(pass)),
		attribute.String("trophy.status", string(result.Status)),
	)
	return snap, true
}

// Prime runs refresh passes until no celebration is pending, so a
// short-lived session only reports goals crossed by its own mutations. The
// returned snapshot carries no celebration.
func (s *Session) Prime(ctx context.Context) Snapshot {
	snap, _ := s.Refresh(ctx)
	for range constants.TrackedGoals {
		if snap.Celebration == nil {
			break
		}
		snap, _ = s.Refresh(ctx)
	}
	snap.Celebration = nil
	return snap
}

// Current returns the last applied snapshot.
func (s *Session) Current() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.hasCurrent
}

// Reset starts a new session: the celebrated-goals set is cleared and the
// next refresh has no previous status to compare against.
func (s *Session) Reset() {
	s.watcher.Reset()
	s.mu.Lock()
	s.hasCurrent = false
	s.mu.Unlock()
}

// AddWater adjusts today's water count by delta glasses and refreshes.
func (s *Session) AddWater(ctx context.Context, delta int) (Snapshot, error) {
	return s.adjust(ctx, delta, 0)
}

// AddSteps adjusts today's step count by delta and refreshes.
func (s *Session) AddSteps(ctx context.Context, delta int) (Snapshot, error) {
	return s.adjust(ctx, 0, delta)
}

func (s *Session) adjust(ctx context.Context, waterDelta, stepsDelta int) (Snapshot, error) {
	if _, err := s.store.AdjustCounters(ctx, s.Today(), waterDelta, stepsDelta); err != nil {
		return Snapshot{}, fmt.Errorf("failed to update today's log: %w", err)
	}
	snap, _ := s.Refresh(ctx)
	return snap, nil
}

// MealInput describes a meal to log. A zero At means now.
type MealInput struct {
	Name     string
	Calories float64
	Type     constants.MealType
	At       time.Time
}

// LogMeal appends a meal to the day its timestamp falls on and refreshes.
func (s *Session) LogMeal(ctx context.Context, in MealInput) (models.Meal, Snapshot, error) {
	at := in.At
	if at.IsZero() {
		at = s.now()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Meal{}, Snapshot{}, fmt.Errorf("failed to generate meal id: %w", err)
	}

	meal := models.Meal{
		ID:        id.String(),
		Name:      strings.TrimSpace(in.Name),
		Calories:  in.Calories,
		Type:      in.Type,
		Timestamp: at,
	}
	if err := meal.Validate(); err != nil {
		return models.Meal{}, Snapshot{}, err
	}
	if _, err := s.store.AppendMeal(ctx, utils.DateKey(at, s.loc), meal); err != nil {
		return models.Meal{}, Snapshot{}, fmt.Errorf("failed to log meal: %w", err)
	}

	snap, _ := s.Refresh(ctx)
	return meal, snap, nil
}

// UpdateProfile saves the profile and refreshes, since goals may have changed.
func (s *Session) UpdateProfile(ctx context.Context, p models.Profile) (Snapshot, error) {
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return Snapshot{}, err
	}
	snap, _ := s.Refresh(ctx)
	return snap, nil
}
