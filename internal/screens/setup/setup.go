// Package setup is the pre-quiz form: player name, category and length.
package setup

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/router"
	"github.com/abhisek/smartquiz/internal/screen"
	"github.com/abhisek/smartquiz/internal/session"
	"github.com/abhisek/smartquiz/internal/ui/components"
	"github.com/abhisek/smartquiz/internal/ui/layout"
	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// DefaultCounts are the session lengths offered.
var DefaultCounts = []int{3, 5, 10}

// Starter begins sessions.
type Starter interface {
	Start(category bank.Category, count int, name string) error
	LastPlayer(ctx context.Context) string
}

// Options preselects the form.
type Options struct {
	Name       string
	Categories []bank.Category
	Category   bank.Category
	Count      int

	// Quiz builds the screen that plays the started session.
	Quiz func() screen.Screen
}

type field int

const (
	fieldName field = iota
	fieldCategory
	fieldCount
	fieldStart
	numFields
)

// SetupScreen collects the parameters of a new session.
type SetupScreen struct {
	starter    Starter
	quiz       func() screen.Screen
	name       components.TextInput
	categories []bank.Category
	catIdx     int
	counts     []int
	countIdx   int
	focus      field
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New builds the form. A blank opts.Name is prefilled with the last player.
func New(starter Starter, opts Options) *SetupScreen {
	name := opts.Name
	if name == "" {
		name = starter.LastPlayer(context.Background())
	}
	input := components.NewTextInput("Name", session.DefaultPlayerName, 24)
	input.SetValue(name)

	cats := []bank.Category{bank.CategoryAll}
	for _, c := range opts.Categories {
		if c != bank.CategoryAll {
			cats = append(cats, c)
		}
	}

	counts := slices.Clone(DefaultCounts)
	if opts.Count > 0 && !slices.Contains(counts, opts.Count) {
		counts = append(counts, opts.Count)
		slices.Sort(counts)
	}

	s := &SetupScreen{
		starter:    starter,
		quiz:       opts.Quiz,
		name:       input,
		categories: cats,
		counts:     counts,
	}
	if i := slices.Index(cats, opts.Category); i >= 0 {
		s.catIdx = i
	}
	s.countIdx = slices.Index(counts, 5)
	if i := slices.Index(counts, opts.Count); i >= 0 {
		s.countIdx = i
	}
	return s
}

func (s *SetupScreen) Init() tea.Cmd { return s.name.Init() }

func (s *SetupScreen) Title() string { return "New Quiz" }

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Category returns the selected category.
func (s *SetupScreen) Category() bank.Category { return s.categories[s.catIdx] }

// Count returns the selected session length.
func (s *SetupScreen) Count() int { return s.counts[s.countIdx] }

// Name returns the entered player name.
func (s *SetupScreen) Name() string { return s.name.Value() }

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "enter":
		return s, s.start()
	case "tab", "down":
		s.setFocus((s.focus + 1) % numFields)
		return s, nil
	case "shift+tab", "up":
		s.setFocus((s.focus + numFields - 1) % numFields)
		return s, nil
	}

	switch s.focus {
	case fieldName:
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	case fieldCategory:
		s.catIdx = cycle(s.catIdx, len(s.categories), kmsg.String())
	case fieldCount:
		s.countIdx = cycle(s.countIdx, len(s.counts), kmsg.String())
	}
	return s, nil
}

func cycle(i, n int, key string) int {
	switch key {
	case "left", "h":
		return (i + n - 1) % n
	case "right", "l", "space":
		return (i + 1) % n
	}
	return i
}

func (s *SetupScreen) setFocus(f field) {
	s.focus = f
	s.name.SetFocused(f == fieldName)
}

func (s *SetupScreen) start() tea.Cmd {
	if err := s.starter.Start(s.Category(), s.Count(), s.Name()); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	next := s.quiz()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	rows := []string{
		theme.Title.Render("Set up your quiz"),
		"",
		s.name.View(),
		"",
		s.selector("Category", s.Category().DisplayName(), s.focus == fieldCategory),
		s.selector("Questions", fmt.Sprintf("%d", s.Count()), s.focus == fieldCount),
		"",
		components.Button{Label: "Start Quiz", Focused: s.focus == fieldStart}.View(),
	}
	if s.errMsg != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	return components.CabinetFrame(components.ArcadeCard(strings.Join(rows, "\n"), cw), width, height)
}

func (s *SetupScreen) selector(label, value string, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valueStyle := theme.Unselected
	if focused {
		labelStyle = theme.Selected
		valueStyle = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	}
	return fmt.Sprintf("%s  %s", labelStyle.Render(label), valueStyle.Render("◂ "+value+" ▸"))
}
