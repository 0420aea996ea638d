package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/ui/theme"
)

const bannerArt = ` ___ __  __   _   ___ _____ ___  _   _ ___ ____
/ __|  \/  | /_\ | _ \_   _/ _ \| | | |_ _|_  /
\__ \ |\/| |/ _ \|   / | || (_) | |_| || | / /
|___/_|  |_/_/ \_\_|_\ |_| \__\_\\___/|___/___|`

const bannerCompact = "S M A R T Q U I Z"

// RenderBanner returns the title banner, or a one-line fallback for
// terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
