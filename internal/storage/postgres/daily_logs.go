package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/streakly/internal/models"
)

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) GetDailyLog(ctx context.Context, date string) (models.DailyLog, error) {
	if err := models.ValidateDate(date); err != nil {
		return models.DailyLog{}, err
	}
	return getDailyLog(ctx, s.db, date)
}

func getDailyLog(ctx context.Context, q querier, date string) (models.DailyLog, error) {
	entry := models.EmptyDailyLog(date)

	err := q.QueryRowContext(ctx, `
		SELECT steps, water_glasses, updated_at
		FROM daily_logs WHERE date = $1`, date).Scan(&entry.Steps, &entry.WaterGlasses, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entry, nil
	}
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to read daily log %s: %w", date, err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, calories, type, timestamp
		FROM meals WHERE day = $1 ORDER BY timestamp, id`, date)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to read meals for %s: %w", date, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.Name, &m.Calories, &m.Type, &m.Timestamp); err != nil {
			return models.DailyLog{}, err
		}
		entry.Meals = append(entry.Meals, m)
	}
	if err := rows.Err(); err != nil {
		return models.DailyLog{}, err
	}

	return entry.Normalize(), nil
}

func (s *Store) GetDailyLogs(ctx context.Context, startDate, endDate string) ([]models.DailyLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date FROM daily_logs
		WHERE date >= $1 AND date <= $2 ORDER BY date`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			rows.Close()
			return nil, err
		}
		dates = append(dates, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logs := make([]models.DailyLog, 0, len(dates))
	for _, d := range dates {
		entry, err := getDailyLog(ctx, s.db, d)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

// AdjustCounters is a single upsert, so concurrent increments serialize on the row lock.
func (s *Store) AdjustCounters(ctx context.Context, date string, waterDelta, stepsDelta int) (models.DailyLog, error) {
	if err := models.ValidateDate(date); err != nil {
		return models.DailyLog{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.DailyLog{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO daily_logs (date, water_glasses, steps, updated_at)
		VALUES ($1, GREATEST($2::int, 0), GREATEST($3::int, 0), $4)
		ON CONFLICT (date) DO UPDATE SET
			water_glasses = GREATEST(daily_logs.water_glasses + $2::int, 0),
			steps = GREATEST(daily_logs.steps + $3::int, 0),
			updated_at = $4`,
		date, waterDelta, stepsDelta, time.Now().UTC()); err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to update counters for %s: %w", date, err)
	}

	entry, err := getDailyLog(ctx, tx, date)
	if err != nil {
		return models.DailyLog{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.DailyLog{}, err
	}
	return entry, nil
}

func (s *Store) AppendMeal(ctx context.Context, date string, meal models.Meal) (models.DailyLog, error) {
	if err := models.ValidateDate(date); err != nil {
		return models.DailyLog{}, err
	}
	if err := meal.Validate(); err != nil {
		return models.DailyLog{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.DailyLog{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO daily_logs (date, steps, water_glasses, updated_at)
		VALUES ($1, 0, 0, $2)
		ON CONFLICT (date) DO UPDATE SET updated_at = $2`, date, time.Now().UTC()); err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to create daily log %s: %w", date, err)
	}
	if err := insertMeal(ctx, tx, date, meal); err != nil {
		return models.DailyLog{}, err
	}

	entry, err := getDailyLog(ctx, tx, date)
	if err != nil {
		return models.DailyLog{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.DailyLog{}, err
	}
	return entry, nil
}

func (s *Store) PutDailyLog(ctx context.Context, entry models.DailyLog) error {
	if err := models.ValidateDate(entry.Date); err != nil {
		return err
	}
	entry = entry.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	updatedAt := entry.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO daily_logs (date, steps, water_glasses, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			steps = EXCLUDED.steps,
			water_glasses = EXCLUDED.water_glasses,
			updated_at = EXCLUDED.updated_at`,
		entry.Date, entry.Steps, entry.WaterGlasses, updatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save daily log %s: %w", entry.Date, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM meals WHERE day = $1`, entry.Date); err != nil {
		return err
	}
	for _, m := range entry.Meals {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("day %s: %w", entry.Date, err)
		}
		if err := insertMeal(ctx, tx, entry.Date, m); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) EraseAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE meals, daily_logs, profile`); err != nil {
		return fmt.Errorf("failed to erase data: %w", err)
	}
	return nil
}

func insertMeal(ctx context.Context, tx *sql.Tx, date string, m models.Meal) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO meals (id, day, name, calories, type, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, date, m.Name, m.Calories, string(m.Type), m.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert meal %s: %w", m.ID, err)
	}
	return nil
}
