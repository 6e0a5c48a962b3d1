package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/trophy"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func Title(s string) string {
	return titleStyle.Render(s)
}

func Muted(s string) string {
	return mutedStyle.Render(s)
}

// FormatSteps renders a step count with thousands separators.
func FormatSteps(n int) string {
	return humanize.Comma(int64(n))
}

// FormatCalories renders calories with at most one decimal.
func FormatCalories(kcal float64) string {
	return humanize.CommafWithDigits(kcal, 1)
}

// RenderBadge renders the trophy icon and label in the status color.
func RenderBadge(status models.TrophyStatus) string {
	b := trophy.BadgeFor(status)
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(b.Color)).Render(b.Icon + " " + b.Label)
}

// ProgressBar renders current/target as a fixed-width bar. A non-positive
// target renders an empty bar.
func ProgressBar(current, target, width int) string {
	filled := 0
	if target > 0 {
		filled = current * width / target
	}
	filled = min(max(filled, 0), width)
	return barStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

// RenderCelebration renders a celebration as a bordered box.
func RenderCelebration(c *models.Celebration) string {
	if c == nil {
		return ""
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Color)).
		Padding(0, 2)
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Color)).Render(c.Icon + "  " + c.Title)
	return style.Render(head + "\n" + c.Subtitle)
}

// RenderToday renders today's counters against the profile goals.
func RenderToday(snap tracker.Snapshot) string {
	today := snap.Today()
	p := snap.Profile

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", Title("Today "+snap.Date), RenderBadge(snap.Trophy.Status))
	fmt.Fprintf(&b, "  Water     %s  %d / %d glasses\n", ProgressBar(today.Water, p.DailyWaterGoal, 20), today.Water, p.DailyWaterGoal)
	fmt.Fprintf(&b, "  Steps     %s  %s / %s\n", ProgressBar(today.Steps, p.DailyStepGoal, 20), FormatSteps(today.Steps), FormatSteps(p.DailyStepGoal))
	fmt.Fprintf(&b, "  Calories  %s  %s / %s kcal (%d meals)\n",
		ProgressBar(int(today.Calories), p.DailyCalorieGoal, 20), FormatCalories(today.Calories), FormatSteps(p.DailyCalorieGoal), today.MealCount)
	fmt.Fprintf(&b, "\n  %s\n", Muted(trophy.BadgeFor(snap.Trophy.Status).Hint))
	return b.String()
}

// Report prints the outcome of a mutation: the status change cue and any celebration.
func (c *Context) Report(snap tracker.Snapshot) {
	if snap.StatusChanged {
		c.Printf("Trophy: %s → %s\n", RenderBadge(snap.PreviousStatus), RenderBadge(snap.Trophy.Status))
	}
	if snap.Celebration != nil {
		c.Println(RenderCelebration(snap.Celebration))
	}
}
