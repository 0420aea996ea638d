package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/history"
	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotCurious     MascotVariant = iota // no sessions yet
	MascotIdle                             // last session earned nothing
	MascotCelebrating                      // last session earned a badge
)

const mascotCurious = `┌─────┐
│ ◉ ◉ │ ?
│  ○  │
│ A B │
└─────┘`

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ A B │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ A B │
└─╥═╥─┘
  ╚═╝`

// MascotFor picks the variant for the most recent history entry.
func MascotFor(latest *history.Entry) MascotVariant {
	switch {
	case latest == nil:
		return MascotCurious
	case len(latest.Badges) > 0:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotCurious:
		art, fg = mascotCurious, theme.Secondary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
