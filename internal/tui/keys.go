package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	WaterUp   key.Binding
	WaterDown key.Binding
	StepsUp   key.Binding
	StepsDown key.Binding
	Refresh   key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.WaterUp, k.StepsUp, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.WaterUp, k.WaterDown, k.StepsUp, k.StepsDown},
		{k.Refresh, k.Dismiss, k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		WaterUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "+1 water"),
		),
		WaterDown: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "-1 water"),
		),
		StepsUp: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "+1000 steps"),
		),
		StepsDown: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "-1000 steps"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
