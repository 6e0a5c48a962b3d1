package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/trophy"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case snapshotMsg:
		return m.applySnapshot(msg)

	case errMsg:
		m.err = msg.err

	case dismissMsg:
		if msg.seq == m.bannerSeq {
			m.banner = nil
		}

	case tickMsg:
		return m, tea.Batch(m.refresh(), scheduleTick())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Dismiss):
		m.banner = nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.WaterUp):
		return m, m.mutate(func(ctx context.Context) (tracker.Snapshot, error) { return m.session.AddWater(ctx, 1) })
	case key.Matches(msg, m.keys.WaterDown):
		return m, m.mutate(func(ctx context.Context) (tracker.Snapshot, error) { return m.session.AddWater(ctx, -1) })
	case key.Matches(msg, m.keys.StepsUp):
		return m, m.mutate(func(ctx context.Context) (tracker.Snapshot, error) {
			return m.session.AddSteps(ctx, constants.StepIncrement)
		})
	case key.Matches(msg, m.keys.StepsDown):
		return m, m.mutate(func(ctx context.Context) (tracker.Snapshot, error) {
			return m.session.AddSteps(ctx, -constants.StepIncrement)
		})
	}
	return m, nil
}

// applySnapshot renders the newest applied pass. Commands finish in any
// order, and a discarded pass hands back the snapshot that beat it, so
// anything not newer than what is shown is not rendered. A same-pass
// duplicate is dropped entirely; an older pass can still raise its banner.
func (m Model) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if m.loaded && msg.snap.Pass <= m.snap.Pass {
		if msg.snap.Pass == m.snap.Pass {
			return m, nil
		}
		return m.raiseBanner(msg.snap.Celebration)
	}

	m.snap = msg.snap
	m.loaded = true
	m.err = nil

	if msg.snap.StatusChanged {
		m.notice = fmt.Sprintf("Trophy is now %s", trophy.BadgeFor(msg.snap.Trophy.Status).Label)
	}
	return m.raiseBanner(msg.snap.Celebration)
}

// raiseBanner shows c unless a banner for the same goal was already shown;
// stale passes can hand back copies of an applied celebration.
func (m Model) raiseBanner(c *models.Celebration) (tea.Model, tea.Cmd) {
	if c == nil || m.shown[c.GoalID] {
		return m, nil
	}
	m.shown[c.GoalID] = true
	m.banner = c
	m.bannerSeq++
	return m, dismissAfter(m.bannerSeq)
}
