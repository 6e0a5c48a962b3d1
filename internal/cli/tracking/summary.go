package tracking

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/trophy"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	snap, _ := ctx.Session.Refresh(ctx.Ctx())
	ctx.Print(cli.RenderToday(snap))
	if snap.Celebration != nil {
		ctx.Println()
		ctx.Println(cli.RenderCelebration(snap.Celebration))
	}
	return nil
}

type HistoryCmd struct {
	Oldest bool `help:"List the oldest day first."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	snap, _ := ctx.Session.Refresh(ctx.Ctx())

	days := []string{}
	rows := [][]string{}
	window := snap.Window
	if c.Oldest {
		window = window.Chronological()
	}
	for _, s := range window {
		active := ""
		if s.HasActivity {
			active = "✓"
		}
		days = append(days, s.Date)
		rows = append(rows, []string{
			s.Date,
			cli.FormatSteps(s.Steps),
			fmt.Sprintf("%d", s.Water),
			cli.FormatCalories(s.Calories),
			fmt.Sprintf("%d", s.MealCount),
			active,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Date", "Steps", "Water", "kcal", "Meals", "Active").
		Rows(rows...)

	ctx.Println(cli.Title(fmt.Sprintf("Last %d days", len(days))))
	ctx.Println(t.String())

	totals := snap.Window.Totals()
	ctx.Printf("Totals: %s steps, %d glasses, %s kcal\n",
		cli.FormatSteps(totals.Steps), totals.Water, cli.FormatCalories(totals.Calories))
	ctx.Printf("Daily average: %s steps, %s glasses, %s kcal\n",
		humanize.CommafWithDigits(totals.AvgSteps, 0), humanize.FtoaWithDigits(totals.AvgWater, 1), humanize.CommafWithDigits(totals.AvgCalories, 0))
	ctx.Printf("Active days: %d / %d\n", totals.ActiveDays, len(days))
	return nil
}

type TrophyCmd struct{}

func (c *TrophyCmd) Run(ctx *cli.Context) error {
	snap, _ := ctx.Session.Refresh(ctx.Ctx())
	badge := trophy.BadgeFor(snap.Trophy.Status)

	ctx.Printf("%s\n", cli.RenderBadge(snap.Trophy.Status))
	ctx.Printf("%s\n", cli.Muted(badge.Hint))
	ctx.Printf("Trophies earned in the last %d days: %d\n", len(snap.Window), snap.Trophy.TotalEarned)
	return nil
}
