package history

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

var tracer = otel.Tracer("github.com/julianstephens/streakly/internal/history")

// Fetcher loads the stored log for one date key. It may fail or block.
type Fetcher func(ctx context.Context, date string) (models.DailyLog, error)

// Aggregator builds the rolling history window from per-date fetches.
type Aggregator struct {
	Fetch    Fetcher
	Location *time.Location
	// Timeout bounds each fetch; zero means constants.DefaultFetchTimeout.
	Timeout time.Duration
	// Concurrency caps in-flight fetches; zero means constants.DefaultFetchConcurrency.
	Concurrency int
}

// Build returns exactly constants.WindowDays summaries for the days ending at
// today, newest first. A date whose fetch fails, times out or panics degrades
// to a zero summary; Build itself never fails.
func (a *Aggregator) Build(ctx context.Context, today time.Time, weightKg float64) Window {
	ctx, span := tracer.Start(ctx, "history.build")
	defer span.End()

	dates := utils.TrailingDates(today, constants.WindowDays, a.Location)
	window := make(Window, len(dates))
	var degraded atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(a.concurrency())
	for offset, date := range dates {
		g.Go(func() error {
			entry, err := a.fetchOne(ctx, date)
			if err != nil {
				degraded.Add(1)
				logger.Warn("Daily log fetch failed, using empty day", "date", date, "error", err)
				entry = models.EmptyDailyLog(date)
			}
			// Pin the slot's date so a misbehaving fetcher cannot reorder the window.
			entry.Date = date
			window[offset] = Summarize(entry, weightKg)
			return nil
		})
	}
	_ = g.Wait()

	span.SetAttributes(
		attribute.Int("history.days", len(window)),
		attribute.Int64("history.degraded_days", degraded.Load()),
	)
	return window
}

func (a *Aggregator) fetchOne(ctx context.Context, date string) (models.DailyLog, error) {
	if a.Fetch == nil {
		return models.DailyLog{}, fmt.Errorf("no log fetcher configured")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	type result struct {
		entry models.DailyLog
		err   error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("fetch panicked: %v", r)}
			}
		}()
		entry, err := a.Fetch(ctx, date)
		done <- result{entry: entry, err: err}
	}()

	select {
	case r := <-done:
		return r.entry, r.err
	case <-ctx.Done():
		return models.DailyLog{}, ctx.Err()
	}
}

func (a *Aggregator) timeout() time.Duration {
	if a.Timeout > 0 {
		return a.Timeout
	}
	return constants.DefaultFetchTimeout
}

func (a *Aggregator) concurrency() int {
	if a.Concurrency > 0 {
		return a.Concurrency
	}
	return constants.DefaultFetchConcurrency
}
