// Package app wires the quiz screens into a Bubble Tea program.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/router"
	"github.com/abhisek/smartquiz/internal/screen"
	historyscreen "github.com/abhisek/smartquiz/internal/screens/history"
	"github.com/abhisek/smartquiz/internal/screens/home"
	"github.com/abhisek/smartquiz/internal/screens/quiz"
	"github.com/abhisek/smartquiz/internal/screens/result"
	"github.com/abhisek/smartquiz/internal/screens/setup"
	"github.com/abhisek/smartquiz/internal/screens/welcome"
	"github.com/abhisek/smartquiz/internal/session"
	"github.com/abhisek/smartquiz/internal/ui/layout"
)

// Controller is the session controller as the screens use it.
type Controller interface {
	quiz.Controller
	setup.Starter
	historyscreen.Source
}

// Options holds the dependencies of the terminal UI.
type Options struct {
	Controller Controller

	// Clock advances the controller's countdown once per second.
	Clock quiz.Clock

	Categories []bank.Category
	Category   bank.Category
	Count      int
	Player     string

	// Explainer is optional.
	Explainer result.Explainer

	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// New builds the screen graph and returns the root model.
func New(opts Options) AppModel {
	var (
		newSetup   func() screen.Screen
		newQuiz    func() screen.Screen
		newResult  func(session.Summary) screen.Screen
		newHistory func() screen.Screen
	)
	newHistory = func() screen.Screen { return historyscreen.New(opts.Controller) }
	newSetup = func() screen.Screen {
		return setup.New(opts.Controller, setup.Options{
			Name:       opts.Player,
			Categories: opts.Categories,
			Category:   opts.Category,
			Count:      opts.Count,
			Quiz:       newQuiz,
		})
	}
	newQuiz = func() screen.Screen { return quiz.New(opts.Controller, opts.Clock, newResult) }
	newResult = func(s session.Summary) screen.Screen {
		return result.New(s, opts.Explainer, result.Factories{PlayAgain: newSetup, History: newHistory})
	}
	newHome := func() screen.Screen {
		return home.New(opts.Controller, home.Factories{Setup: newSetup, History: newHistory})
	}

	first := newHome()
	if !opts.SkipSplash {
		first = welcome.New(newHome)
	}
	return AppModel{router: router.New(first)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame around the active screen.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var status *layout.Status
	if sp, ok := active.(screen.StatusProvider); ok {
		if score, streak, ok := sp.Status(); ok {
			status = &layout.Status{Score: score, Streak: streak}
		}
	}
	header := layout.RenderHeader(active.Title(), status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithContext(ctx)).Run()
	return err
}
