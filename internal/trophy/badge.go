package trophy

import "github.com/julianstephens/streakly/internal/models"

// Badge holds the display tokens for a trophy status.
type Badge struct {
	Icon  string
	Color string // lipgloss/ANSI-256 color token
	Label string
	Hint  string
}

var badges = map[models.TrophyStatus]Badge{
	models.TrophyGolden: {Icon: "🏆", Color: "220", Label: "Golden", Hint: "You're active today. Keep it up!"},
	models.TrophyIce:    {Icon: "🧊", Color: "45", Label: "Frozen", Hint: "Log anything today to thaw your streak."},
	models.TrophyBroken: {Icon: "💔", Color: "240", Label: "Broken", Hint: "Log water, steps or a meal to start a new streak."},
}

// BadgeFor returns the display tokens for status; unknown values render as broken.
func BadgeFor(status models.TrophyStatus) Badge {
	if b, ok := badges[status]; ok {
		return b
	}
	return badges[models.TrophyBroken]
}
