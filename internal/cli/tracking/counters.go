package tracking

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/cli"
	apperrors "github.com/julianstephens/streakly/internal/errors"
)

type WaterAddCmd struct {
	Glasses int `arg:"" optional:"" default:"1" help:"Glasses to add."`
}

func (c *WaterAddCmd) Run(ctx *cli.Context) error {
	if c.Glasses <= 0 {
		return fmt.Errorf("glasses: %w", apperrors.ErrInvalidAmount)
	}
	return adjustWater(ctx, c.Glasses)
}

type WaterRemoveCmd struct {
	Glasses int `arg:"" optional:"" default:"1" help:"Glasses to remove."`
}

func (c *WaterRemoveCmd) Run(ctx *cli.Context) error {
	if c.Glasses <= 0 {
		return fmt.Errorf("glasses: %w", apperrors.ErrInvalidAmount)
	}
	return adjustWater(ctx, -c.Glasses)
}

type StepsAddCmd struct {
	Steps int `arg:"" optional:"" default:"${step_increment}" help:"Steps to add."`
}

func (c *StepsAddCmd) Run(ctx *cli.Context) error {
	if c.Steps <= 0 {
		return fmt.Errorf("steps: %w", apperrors.ErrInvalidAmount)
	}
	return adjustSteps(ctx, c.Steps)
}

type StepsRemoveCmd struct {
	Steps int `arg:"" optional:"" default:"${step_increment}" help:"Steps to remove."`
}

func (c *StepsRemoveCmd) Run(ctx *cli.Context) error {
	if c.Steps <= 0 {
		return fmt.Errorf("steps: %w", apperrors.ErrInvalidAmount)
	}
	return adjustSteps(ctx, -c.Steps)
}

func adjustWater(ctx *cli.Context, delta int) error {
	ctx.Session.Prime(ctx.Ctx())
	snap, err := ctx.Session.AddWater(ctx.Ctx(), delta)
	if err != nil {
		return err
	}
	ctx.Printf("💧 Water: %d / %d glasses\n", snap.Today().Water, snap.Profile.DailyWaterGoal)
	ctx.Report(snap)
	return nil
}

func adjustSteps(ctx *cli.Context, delta int) error {
	ctx.Session.Prime(ctx.Ctx())
	snap, err := ctx.Session.AddSteps(ctx.Ctx(), delta)
	if err != nil {
		return err
	}
	ctx.Printf("👟 Steps: %s / %s\n", cli.FormatSteps(snap.Today().Steps), cli.FormatSteps(snap.Profile.DailyStepGoal))
	ctx.Report(snap)
	return nil
}
