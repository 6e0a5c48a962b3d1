package tracking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/tracker"
)

type MealAddCmd struct {
	Name        string  `help:"Meal name."`
	Calories    float64 `help:"Calories (kcal)."`
	Type        string  `help:"Meal type: breakfast, lunch, dinner or snack." default:"snack"`
	At          string  `help:"When the meal was eaten (HH:MM today, or YYYY-MM-DD HH:MM). Defaults to now."`
	Interactive bool    `short:"i" help:"Fill in the meal with an interactive form."`
}

func (c *MealAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	mealType := constants.MealType(strings.ToLower(strings.TrimSpace(c.Type)))
	if !models.ValidMealType(mealType) {
		return fmt.Errorf("invalid meal type %q", c.Type)
	}
	at, err := parseMealTime(ctx, c.At)
	if err != nil {
		return err
	}

	ctx.Session.Prime(ctx.Ctx())
	meal, snap, err := ctx.Session.LogMeal(ctx.Ctx(), tracker.MealInput{
		Name:     c.Name,
		Calories: c.Calories,
		Type:     mealType,
		At:       at,
	})
	if err != nil {
		return err
	}

	ctx.Printf("🍽  Logged %s: %s (%s kcal) at %s\n",
		meal.Type, meal.Name, cli.FormatCalories(meal.Calories), meal.Timestamp.In(ctx.Location).Format("2006-01-02 15:04"))
	ctx.Report(snap)
	return nil
}

func (c *MealAddCmd) prompt() error {
	calories := ""
	if c.Calories > 0 {
		calories = strconv.FormatFloat(c.Calories, 'f', -1, 64)
	}
	options := make([]huh.Option[string], 0, len(constants.MealTypes))
	for _, t := range constants.MealTypes {
		options = append(options, huh.NewOption(string(t), string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Meal").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Calories (kcal)").
				Value(&calories).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 {
						return fmt.Errorf("must be a non-negative number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(options...).
				Value(&c.Type),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(calories), 64)
	if err != nil {
		return fmt.Errorf("invalid calories: %w", err)
	}
	c.Calories = v
	return nil
}

// parseMealTime accepts "", "HH:MM" (today) or "YYYY-MM-DD HH:MM" in the
// configured timezone. An empty value means now.
func parseMealTime(ctx *cli.Context, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ctx.Now(), nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, s, ctx.Location); err == nil {
		return t, nil
	}
	clock, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, use HH:MM or YYYY-MM-DD HH:MM", s)
	}
	now := ctx.Now().In(ctx.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, ctx.Location), nil
}

type MealListCmd struct {
	Date string `help:"Day to list (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *MealListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	entry, err := ctx.Store.GetDailyLog(ctx.Ctx(), date)
	if err != nil {
		return err
	}

	if len(entry.Meals) == 0 {
		ctx.Printf("No meals logged on %s.\n", date)
		return nil
	}

	ctx.Println(cli.Title("Meals on " + date))
	for _, m := range entry.Meals {
		ctx.Printf("  %s  %-9s  %-24s %8s kcal\n",
			m.Timestamp.In(ctx.Location).Format(constants.TimeFormat), m.Type, m.Name, cli.FormatCalories(m.Calories))
	}
	ctx.Printf("\n  Total: %s kcal across %d meals\n", cli.FormatCalories(entry.TotalCalories()), len(entry.Meals))
	return nil
}
