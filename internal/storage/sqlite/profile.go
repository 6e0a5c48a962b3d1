package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/streakly/internal/models"
)

func (s *Store) GetProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT name, weight_kg, height_cm, daily_step_goal, daily_water_goal, daily_calorie_goal
		FROM profile WHERE id = 1`).Scan(
		&p.Name, &p.WeightKg, &p.HeightCm, &p.DailyStepGoal, &p.DailyWaterGoal, &p.DailyCalorieGoal)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultProfile(), nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile (id, name, weight_kg, height_cm, daily_step_goal, daily_water_goal, daily_calorie_goal)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			weight_kg = excluded.weight_kg,
			height_cm = excluded.height_cm,
			daily_step_goal = excluded.daily_step_goal,
			daily_water_goal = excluded.daily_water_goal,
			daily_calorie_goal = excluded.daily_calorie_goal`,
		p.Name, p.WeightKg, p.HeightCm, p.DailyStepGoal, p.DailyWaterGoal, p.DailyCalorieGoal)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
