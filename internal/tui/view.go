package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/trophy"
)

const barWidth = 24

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		return docStyle.Render("Loading...")
	}

	sections := []string{m.header(), m.counters(), m.strip()}
	if m.banner != nil {
		sections = append(sections, renderBanner(m.banner))
	}
	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) header() string {
	b := trophy.BadgeFor(m.snap.Trophy.Status)
	title := titleStyle.Render("streakly · " + m.snap.Date)
	badge := badgeStyle(b.Color).Render(b.Icon + " " + b.Label)
	earned := mutedStyle.Render(fmt.Sprintf("%d 🏆 in the last %d days", m.snap.Trophy.TotalEarned, len(m.snap.Window)))
	return title + "   " + badge + "\n" + mutedStyle.Render(b.Hint) + "\n" + earned + "\n"
}

func (m Model) counters() string {
	today := m.snap.Today()
	p := m.snap.Profile
	rows := []string{
		row("Water", today.Water, p.DailyWaterGoal, fmt.Sprintf("%d / %d glasses", today.Water, p.DailyWaterGoal)),
		row("Steps", today.Steps, p.DailyStepGoal,
			fmt.Sprintf("%s / %s", humanize.Comma(int64(today.Steps)), humanize.Comma(int64(p.DailyStepGoal)))),
		row("Calories", int(today.Calories), p.DailyCalorieGoal,
			fmt.Sprintf("%s / %s kcal · %d meals", humanize.Commaf(today.Calories), humanize.Comma(int64(p.DailyCalorieGoal)), today.MealCount)),
	}
	return strings.Join(rows, "\n") + "\n"
}

func row(label string, current, target int, detail string) string {
	return labelStyle.Render(label) + progressBar(current, target) + "  " + detail
}

func progressBar(current, target int) string {
	filled := 0
	if target > 0 {
		filled = current * barWidth / target
	}
	filled = min(max(filled, 0), barWidth)
	return barFilledStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}

// strip renders the window oldest first, one cell per day.
func (m Model) strip() string {
	var days, marks []string
	for _, s := range m.snap.Window.Chronological() {
		days = append(days, fmt.Sprintf("%-3s", weekday(s.Date)))
		if s.HasActivity {
			marks = append(marks, activeDayStyle.Render(fmt.Sprintf("%-3s", "●")))
		} else {
			marks = append(marks, mutedStyle.Render(fmt.Sprintf("%-3s", "○")))
		}
	}
	return mutedStyle.Render(strings.Join(days, "")) + "\n" + strings.Join(marks, "") + "\n"
}

func weekday(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return "?"
	}
	return t.Weekday().String()[:2]
}

func renderBanner(c *models.Celebration) string {
	head := badgeStyle(c.Color).Render(c.Icon + "  " + c.Title)
	return bannerStyle(c.Color).Render(head + "\n" + c.Subtitle + "\n" + mutedStyle.Render("esc to dismiss"))
}
