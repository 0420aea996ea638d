package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/badges"
	"github.com/abhisek/smartquiz/internal/history"
	"github.com/abhisek/smartquiz/internal/router"
	"github.com/abhisek/smartquiz/internal/screen"
	"github.com/abhisek/smartquiz/internal/ui/layout"
	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// EmptyMessage is shown when no sessions have been recorded.
const EmptyMessage = "No quizzes played yet. Start one from the home screen!"

// Source loads and clears past sessions.
type Source interface {
	LoadHistory(ctx context.Context) []history.Entry
	ClearHistory(ctx context.Context) error
}

type historyLoadedMsg struct {
	entries []history.Entry
}

type historyClearedMsg struct {
	err error
}

// HistoryScreen lists past sessions, most recent first.
type HistoryScreen struct {
	source       Source
	entries      []history.Entry
	selected     int
	loaded       bool
	confirmClear bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.EscapeHandler = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{source: source}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{entries: s.source.LoadHistory(context.Background())}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) HandlesEscape() bool { return true }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear all"},
			{Key: "N", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}}
	if len(s.entries) > 0 {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.entries = msg.entries
		s.selected = min(s.selected, max(len(s.entries)-1, 0))
		s.loaded = true
		return s, nil

	case historyClearedMsg:
		if msg.err != nil {
			s.errMsg = "Could not clear history: " + msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		return s, s.Init()

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	if s.confirmClear {
		switch key {
		case "y", "Y":
			s.confirmClear = false
			source := s.source
			return func() tea.Msg {
				return historyClearedMsg{err: source.ClearHistory(context.Background())}
			}
		case "n", "N", "esc":
			s.confirmClear = false
		}
		return nil
	}

	switch key {
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.entries)-1 {
			s.selected++
		}
	case "c", "C":
		s.confirmClear = len(s.entries) > 0
	}
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\n" + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case s.confirmClear:
		return center.Render("\n\n" + theme.Title.Render("Clear all quiz history?") + "\n\n" +
			theme.Body.Render("[Y] Yes    [N] No"))
	case len(s.entries) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n" + EmptyMessage)
	}

	var b strings.Builder
	b.WriteString("\n")
	// Keep the selection visible when the list is taller than the screen.
	visible := max(height-2, 1)
	first := max(s.selected-visible+1, 0)
	for i := first; i < len(s.entries) && i < first+visible; i++ {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
			prefix = "> "
		}
		b.WriteString(layout.Centered(style.Render(prefix+FormatEntry(s.entries[i])), width))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatEntry renders one history row.
func FormatEntry(e history.Entry) string {
	date := "unknown date"
	if !e.Date.IsZero() {
		date = e.Date.Local().Format("Jan 02, 2006 15:04")
	}
	line := fmt.Sprintf("%-18s  %-16s  %d/%d", date, e.Player, e.Score, e.Total)
	if len(e.Badges) > 0 {
		icons := make([]string, len(e.Badges))
		for i, name := range e.Badges {
			icons[i] = badges.Badge(name).Icon()
		}
		line += "  " + strings.Join(icons, " ")
	}
	return line
}
