package components

import "github.com/abhisek/smartquiz/internal/ui/theme"

// Button is a focusable label. Screens handle Enter themselves.
type Button struct {
	Label   string
	Focused bool
}

func (b Button) View() string {
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + b.Label + " ◂")
	}
	return theme.ButtonInactive.Render("  " + b.Label + "  ")
}
