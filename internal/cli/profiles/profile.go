package profiles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/models"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	name := p.Name
	if name == "" {
		name = cli.Muted("(not set)")
	}
	ctx.Println(cli.Title("Profile"))
	ctx.Printf("  Name:          %s\n", name)
	ctx.Printf("  Weight:        %s kg\n", formatFloat(p.WeightKg))
	ctx.Printf("  Height:        %s cm\n", formatFloat(p.HeightCm))
	ctx.Printf("  Step goal:     %s\n", cli.FormatSteps(p.DailyStepGoal))
	ctx.Printf("  Water goal:    %d glasses\n", p.DailyWaterGoal)
	ctx.Printf("  Calorie goal:  %s kcal\n", cli.FormatSteps(p.DailyCalorieGoal))
	return nil
}

type ProfileSetCmd struct {
	Name        *string  `help:"Display name."`
	Weight      *float64 `help:"Weight in kg."`
	Height      *float64 `help:"Height in cm."`
	StepsGoal   *int     `help:"Daily step goal (0 disables the celebration)."`
	WaterGoal   *int     `help:"Daily water goal in glasses (0 disables the celebration)."`
	CalorieGoal *int     `help:"Daily calorie goal (informational)."`
	Interactive bool     `short:"i" help:"Edit the profile with an interactive form."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if c.Interactive {
		if p, err = editProfile(p); err != nil {
			return err
		}
	} else {
		if !c.anySet() {
			return fmt.Errorf("nothing to update, pass at least one flag or --interactive")
		}
		p = c.apply(p)
	}

	snap, err := ctx.Session.UpdateProfile(ctx.Ctx(), p)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	ctx.Println("✓ Profile updated")
	ctx.Report(snap)
	return nil
}

func (c *ProfileSetCmd) anySet() bool {
	return c.Name != nil || c.Weight != nil || c.Height != nil ||
		c.StepsGoal != nil || c.WaterGoal != nil || c.CalorieGoal != nil
}

func (c *ProfileSetCmd) apply(p models.Profile) models.Profile {
	if c.Name != nil {
		p.Name = strings.TrimSpace(*c.Name)
	}
	if c.Weight != nil {
		p.WeightKg = *c.Weight
	}
	if c.Height != nil {
		p.HeightCm = *c.Height
	}
	if c.StepsGoal != nil {
		p.DailyStepGoal = *c.StepsGoal
	}
	if c.WaterGoal != nil {
		p.DailyWaterGoal = *c.WaterGoal
	}
	if c.CalorieGoal != nil {
		p.DailyCalorieGoal = *c.CalorieGoal
	}
	return p
}

// profileForm holds the string values bound to the form inputs.
type profileForm struct {
	Name, Weight, Height, Steps, Water, Calories string
}

func editProfile(p models.Profile) (models.Profile, error) {
	fm := &profileForm{
		Name:     p.Name,
		Weight:   formatFloat(p.WeightKg),
		Height:   formatFloat(p.HeightCm),
		Steps:    strconv.Itoa(p.DailyStepGoal),
		Water:    strconv.Itoa(p.DailyWaterGoal),
		Calories: strconv.Itoa(p.DailyCalorieGoal),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&fm.Name),
			huh.NewInput().Title("Weight (kg)").Value(&fm.Weight).Validate(nonNegativeFloat),
			huh.NewInput().Title("Height (cm)").Value(&fm.Height).Validate(nonNegativeFloat),
		),
		huh.NewGroup(
			huh.NewInput().Title("Daily step goal").Value(&fm.Steps).Validate(nonNegativeInt),
			huh.NewInput().Title("Daily water goal (glasses)").Value(&fm.Water).Validate(nonNegativeInt),
			huh.NewInput().Title("Daily calorie goal").Value(&fm.Calories).Validate(nonNegativeInt),
		),
	)
	if err := form.Run(); err != nil {
		return p, err
	}
	return fm.toProfile()
}

func (fm *profileForm) toProfile() (models.Profile, error) {
	var p models.Profile
	var err error
	p.Name = strings.TrimSpace(fm.Name)
	if p.WeightKg, err = strconv.ParseFloat(strings.TrimSpace(fm.Weight), 64); err != nil {
		return p, fmt.Errorf("invalid weight: %w", err)
	}
	if p.HeightCm, err = strconv.ParseFloat(strings.TrimSpace(fm.Height), 64); err != nil {
		return p, fmt.Errorf("invalid height: %w", err)
	}
	if p.DailyStepGoal, err = strconv.Atoi(strings.TrimSpace(fm.Steps)); err != nil {
		return p, fmt.Errorf("invalid step goal: %w", err)
	}
	if p.DailyWaterGoal, err = strconv.Atoi(strings.TrimSpace(fm.Water)); err != nil {
		return p, fmt.Errorf("invalid water goal: %w", err)
	}
	if p.DailyCalorieGoal, err = strconv.Atoi(strings.TrimSpace(fm.Calories)); err != nil {
		return p, fmt.Errorf("invalid calorie goal: %w", err)
	}
	return p, nil
}

func nonNegativeFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}

func nonNegativeInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative whole number")
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
