package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used by framed screens so
// their boxes line up.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// CabinetFrame wraps content in a double-border frame centred in the given
// dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ArcadeButton renders one fixed-width menu button.
func ArcadeButton(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	}
	return style.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(label)
}

// ArcadeMenu stacks a menu's items as buttons, or as plain lines when
// compact is set.
func ArcadeMenu(m Menu, cw int, compact bool) string {
	var rows []string
	for i, label := range m.Labels() {
		selected := i == m.Selected
		switch {
		case compact && selected:
			rows = append(rows, lipgloss.NewStyle().
				Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true).
				Render(" ▸ "+label+" "))
		case compact:
			rows = append(rows, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
		default:
			rows = append(rows, ArcadeButton(label, selected, 22))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}
