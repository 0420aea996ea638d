package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// ProgressBar is a one-line bar of filled and empty cells.
type ProgressBar struct {
	Percent     float64
	ShowPercent bool
	Width       int

	// Fill colours the filled cells; nil means theme.Secondary.
	Fill color.Color
}

// Fraction returns n/d clamped to [0, 1].
func Fraction(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return min(max(float64(n)/float64(d), 0), 1)
}

// Cells returns how many of width cells a bar at percent fills.
func Cells(percent float64, width int) int {
	return min(max(int(float64(width)*percent+0.5), 0), width)
}

func (p ProgressBar) View() string {
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf(" %3d%%", int(p.Percent*100+0.5))
	}
	width := max(p.Width-len(suffix), 4)
	filled := Cells(p.Percent, width)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	bar := lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled))
	if suffix != "" {
		bar += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}
	return bar
}
