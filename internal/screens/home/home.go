package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/history"
	"github.com/abhisek/smartquiz/internal/router"
	"github.com/abhisek/smartquiz/internal/screen"
	"github.com/abhisek/smartquiz/internal/ui/components"
	"github.com/abhisek/smartquiz/internal/ui/layout"
	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// HistorySource supplies the past sessions shown in the stats bar.
type HistorySource interface {
	LoadHistory(ctx context.Context) []history.Entry
}

// Factories builds the screens reachable from the home menu.
type Factories struct {
	Setup   func() screen.Screen
	History func() screen.Screen
}

type statsLoadedMsg struct {
	entries []history.Entry
}

// HomeScreen is the main menu.
type HomeScreen struct {
	source  HistorySource
	menu    components.Menu
	entries []history.Entry
	loaded  bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(source HistorySource, f Factories) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	items := []components.MenuItem{
		{Label: "START QUIZ", Action: push(f.Setup)},
		{Label: "HISTORY", Action: push(f.History)},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{source: source, menu: components.NewMenu(items)}
}

// Init reloads stats; home is re-initialised each time a session ends.
func (h *HomeScreen) Init() tea.Cmd {
	return h.reload()
}

func (h *HomeScreen) reload() tea.Cmd {
	return func() tea.Msg {
		return statsLoadedMsg{entries: h.source.LoadHistory(context.Background())}
	}
}

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.entries = msg.entries
		h.loaded = true
		return h, nil
	case router.RefreshMsg:
		return h, h.reload()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)

	var latest *history.Entry
	if len(h.entries) > 0 {
		latest = &h.entries[0]
	}

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(RenderMascot(MascotFor(latest))))
	}
	sections = append(sections,
		renderStats(h.entries, cw),
		components.ArcadeMenu(h.menu, cw, compact),
	)
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func renderTitle(cw int, compact bool) string {
	title := "S M A R T Q U I Z"
	if compact {
		title = "SMARTQUIZ"
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(title)
}

// Stats summarises the history shown on the home screen.
type Stats struct {
	Played     int
	Best       string
	LastPlayer string
}

// ComputeStats derives the home screen readout from most-recent-first entries.
func ComputeStats(entries []history.Entry) Stats {
	s := Stats{Played: len(entries)}
	if len(entries) == 0 {
		return s
	}
	s.LastPlayer = entries[0].Player
	bestScore, bestTotal := -1, 0
	for _, e := range entries {
		// compare e.Score/e.Total against bestScore/bestTotal without floats
		if e.Total > 0 && (bestScore < 0 || e.Score*bestTotal > bestScore*e.Total) {
			bestScore, bestTotal = e.Score, e.Total
		}
	}
	if bestScore >= 0 {
		s.Best = fmt.Sprintf("%d/%d", bestScore, bestTotal)
	}
	return s
}

func renderStats(entries []history.Entry, cw int) string {
	s := ComputeStats(entries)
	var text string
	if s.Played == 0 {
		text = theme.Hint.Render("No quizzes yet. Ready for your first?")
	} else {
		hi := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
		parts := []string{hi.Render(fmt.Sprintf("▶ %d PLAYED", s.Played))}
		if s.Best != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
				Render("★ BEST "+s.Best))
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render("last: "+s.LastPlayer))
		text = strings.Join(parts, "  ")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}
