// Package result shows a finished session: score, badges and an optional
// per-question review.
package result

import (
	"context"
	"fmt"
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

// NoBadgesMessage is shown when a session earned nothing.
const NoBadgesMessage = "Keep going, try again to earn badges!"

// Explainer fills in explanations the bank does not carry.
type Explainer interface {
	Enabled() bool
	Explain(ctx context.Context, q bank.Question) (string, error)
}

// Factories builds the screens reachable from the results.
type Factories struct {
	PlayAgain func() screen.Screen
	History   func() screen.Screen
}

type explainedMsg struct {
	index int
	text  string
	err   error
}

// ResultScreen displays a session summary.
type ResultScreen struct {
	summary   session.Summary
	explainer Explainer
	factories Factories

	reviewing  bool
	selected   int
	explaining map[int]bool
	explained  map[int]string
	errs       map[int]string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.EscapeHandler = (*ResultScreen)(nil)

// New creates the results screen. explainer may be nil.
func New(summary session.Summary, explainer Explainer, f Factories) *ResultScreen {
	return &ResultScreen{
		summary:    summary,
		explainer:  explainer,
		factories:  f,
		explaining: make(map[int]bool),
		explained:  make(map[int]string),
		errs:       make(map[int]string),
	}
}

func (r *ResultScreen) Init() tea.Cmd { return nil }

func (r *ResultScreen) Title() string { return "Results" }

func (r *ResultScreen) HandlesEscape() bool { return true }

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	if r.reviewing {
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Question"},
			{Key: "R", Description: "Hide review"},
		}
		if r.canExplain(r.selected) {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play again"},
		{Key: "R", Description: "Review"},
		{Key: "H", Description: "History"},
		{Key: "Esc", Description: "Home"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainedMsg:
		delete(r.explaining, msg.index)
		if msg.err != nil {
			r.errs[msg.index] = "Could not fetch an explanation right now."
		} else {
			r.explained[msg.index] = msg.text
		}
		return r, nil

	case tea.KeyPressMsg:
		return r, r.handleKey(msg.String())
	}
	return r, nil
}

func (r *ResultScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "esc":
		return func() tea.Msg { return router.PopToRootMsg{} }
	case "r", "R":
		r.reviewing = !r.reviewing && len(r.summary.Review) > 0
	case "h", "H":
		if r.factories.History != nil {
			next := r.factories.History()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	case "enter", "p", "P":
		if r.factories.PlayAgain != nil {
			next := r.factories.PlayAgain()
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "up", "k":
		if r.reviewing && r.selected > 0 {
			r.selected--
		}
	case "down", "j":
		if r.reviewing && r.selected < len(r.summary.Review)-1 {
			r.selected++
		}
	case "e", "E":
		if r.reviewing {
			return r.explain(r.selected)
		}
	}
	return nil
}

// canExplain reports whether item i lacks an explanation a model could supply.
func (r *ResultScreen) canExplain(i int) bool {
	if r.explainer == nil || !r.explainer.Enabled() || i < 0 || i >= len(r.summary.Review) {
		return false
	}
	_, done := r.explained[i]
	return r.summary.Review[i].Explanation == "" && !done && !r.explaining[i]
}

func (r *ResultScreen) explain(i int) tea.Cmd {
	if !r.canExplain(i) {
		return nil
	}
	r.explaining[i] = true
	delete(r.errs, i)
	q := r.summary.Review[i].Question()
	explainer := r.explainer
	return func() tea.Msg {
		text, err := explainer.Explain(context.Background(), q)
		return explainedMsg{index: i, text: text, err: err}
	}
}

func (r *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{r.renderScore(cw), r.renderBadges()}
	if r.reviewing {
		sections = append(sections, r.renderReview(cw))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (r *ResultScreen) renderScore(cw int) string {
	s := r.summary
	if s.Total == 0 {
		return theme.Title.Render("No questions matched that category.")
	}
	headline := fmt.Sprintf("%s scored %d / %d", s.Player, s.Score, s.Total)
	bar := components.ProgressBar{
		Percent:     components.Fraction(s.Score, s.Total),
		ShowPercent: true,
		Width:       min(cw, 40),
		Fill:        theme.Success,
	}
	return theme.Title.Render(headline) + "\n\n" + bar.View()
}

func (r *ResultScreen) renderBadges() string {
	if len(r.summary.Badges) == 0 {
		return theme.Hint.Render(NoBadgesMessage)
	}
	lines := []string{lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Badges earned")}
	for _, b := range r.summary.Badges {
		lines = append(lines, theme.Badge.Render(b.Icon()+" "+string(b))+"  "+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(b.Description()))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultScreen) renderReview(cw int) string {
	var b strings.Builder
	for i, item := range r.summary.Review {
		marker := "  "
		if i == r.selected {
			marker = "▸ "
		}
		status := theme.Incorrect.Render("✘")
		switch {
		case item.IsCorrect():
			status = theme.Correct.Render("✔")
		case item.Skipped():
			status = theme.Skipped.Render("↷")
		}
		fmt.Fprintf(&b, "%s%s %d. %s\n", marker, status, i+1, item.Prompt)
		if i != r.selected {
			continue
		}

		dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 4)
		fmt.Fprintf(&b, "     Your answer: %s\n", item.AnswerText())
		fmt.Fprintf(&b, "     Correct:     %s\n", item.CorrectText())
		switch {
		case item.Explanation != "":
			b.WriteString("     " + dim.Render(item.Explanation) + "\n")
		case r.explained[i] != "":
			b.WriteString("     " + dim.Render(r.explained[i]) + "\n")
		case r.explaining[i]:
			b.WriteString("     " + theme.Hint.Render("Thinking...") + "\n")
		case r.errs[i] != "":
			b.WriteString("     " + lipgloss.NewStyle().Foreground(theme.Error).Render(r.errs[i]) + "\n")
		case r.canExplain(i):
			b.WriteString("     " + theme.Hint.Render("Press E for an explanation") + "\n")
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Left).Render(strings.TrimRight(b.String(), "\n"))
}
