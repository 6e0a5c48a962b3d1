package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/tracker"
)

// refreshInterval re-runs the refresh pass so the dashboard rolls over at midnight.
const refreshInterval = time.Minute

// snapshotMsg carries the snapshot a refresh pass or mutation ended with.
type snapshotMsg struct {
	snap tracker.Snapshot
}

type errMsg struct{ err error }

// dismissMsg hides the celebration banner shown under seq. Ticks for older
// banners are ignored.
type dismissMsg struct{ seq int }

type tickMsg time.Time

type Model struct {
	ctx     context.Context
	session *tracker.Session
	keys    KeyMap
	help    help.Model

	snap   tracker.Snapshot
	loaded bool
	err    error
	notice string

	banner    *models.Celebration
	bannerSeq int
	shown     map[constants.GoalID]bool

	width    int
	height   int
	quitting bool
}

func NewModel(ctx context.Context, session *tracker.Session) Model {
	return Model{
		ctx:     ctx,
		session: session,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		shown:   make(map[constants.GoalID]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), scheduleTick())
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		snap, _ := m.session.Refresh(m.ctx)
		return snapshotMsg{snap: snap}
	}
}

func (m Model) mutate(fn func(context.Context) (tracker.Snapshot, error)) tea.Cmd {
	return func() tea.Msg {
		snap, err := fn(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{snap: snap}
	}
}

func scheduleTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func dismissAfter(seq int) tea.Cmd {
	return tea.Tick(constants.CelebrationTimeout, func(time.Time) tea.Msg { return dismissMsg{seq: seq} })
}
