// Package quiz is the screen that plays an active session.
package quiz

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/router"
	"github.com/abhisek/smartquiz/internal/screen"
	"github.com/abhisek/smartquiz/internal/session"
	"github.com/abhisek/smartquiz/internal/ui/components"
	"github.com/abhisek/smartquiz/internal/ui/layout"
	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// TickInterval is the wall-clock length of one countdown unit.
const TickInterval = time.Second

// Controller is the part of the session controller the screen drives.
type Controller interface {
	SubmitAnswer(choice int) bool
	SkipCurrent() bool
	Advance() bool
	Reset()
	Snapshot() session.Snapshot
}

// Clock advances the controller's countdown by one unit.
type Clock interface {
	Tick()
}

// tickMsg belongs to the session and question that scheduled it. Each
// question starts its own tick loop, so a loop left over from an earlier
// question or session is ignored.
type tickMsg struct {
	sessionID string
	gen       int
}

// QuizScreen shows the active question and forwards answers to the
// controller.
type QuizScreen struct {
	ctrl        Controller
	clock       Clock
	result      func(session.Summary) screen.Screen
	snap        session.Snapshot
	gen         int
	confirmQuit bool
	done        bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New returns a screen for the session already started on ctrl. result
// builds the screen shown once the session finishes.
func New(ctrl Controller, clock Clock, result func(session.Summary) screen.Screen) *QuizScreen {
	return &QuizScreen{ctrl: ctrl, clock: clock, result: result, snap: ctrl.Snapshot()}
}

func (q *QuizScreen) Init() tea.Cmd {
	q.refresh()
	if cmd := q.finishIfDone(); cmd != nil {
		return cmd
	}
	return q.tick()
}

func (q *QuizScreen) tick() tea.Cmd {
	msg := tickMsg{sessionID: q.snap.SessionID, gen: q.gen}
	return tea.Tick(TickInterval, func(time.Time) tea.Msg { return msg })
}

// restartTick abandons the running tick loop and starts a full-length one
// for the question now active.
func (q *QuizScreen) restartTick() tea.Cmd {
	q.gen++
	return q.tick()
}

func (q *QuizScreen) Title() string {
	if q.snap.Total == 0 {
		return "Quiz"
	}
	return fmt.Sprintf("Question %d of %d", q.snap.Index+1, q.snap.Total)
}

func (q *QuizScreen) HandlesEscape() bool { return true }

func (q *QuizScreen) Status() (score, streak int, ok bool) {
	return q.snap.Score, q.snap.Streak, q.snap.Phase == session.PhaseInProgress
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case q.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon quiz"},
			{Key: "N", Description: "Keep playing"},
		}
	case q.resolved():
		next := "Next"
		if q.snap.IsLast() {
			next = "Results"
		}
		return []layout.KeyHint{
			{Key: "Enter/N", Description: next},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4/A-D", Description: "Answer"},
			{Key: "S", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if q.done || msg.sessionID != q.snap.SessionID || msg.gen != q.gen || q.resolved() {
			return q, nil
		}
		q.clock.Tick()
		q.refresh()
		if q.resolved() {
			return q, nil
		}
		return q, q.tick()

	case tea.KeyPressMsg:
		return q, q.handleKey(msg.String())
	}
	return q, nil
}

func (q *QuizScreen) handleKey(key string) tea.Cmd {
	if q.done {
		return nil
	}
	if q.confirmQuit {
		switch key {
		case "y", "Y":
			q.done = true
			q.ctrl.Reset()
			return func() tea.Msg { return router.PopToRootMsg{} }
		case "n", "N", "esc":
			q.confirmQuit = false
		}
		return nil
	}

	switch key {
	case "esc":
		q.confirmQuit = true
		return nil
	case "s", "S":
		q.ctrl.SkipCurrent()
	case "n", "N", "enter":
		if q.ctrl.Advance() {
			q.refresh()
			if cmd := q.finishIfDone(); cmd != nil {
				return cmd
			}
			return q.restartTick()
		}
	default:
		if choice, ok := components.ChoiceKey(key); ok {
			q.ctrl.SubmitAnswer(choice)
		}
	}
	q.refresh()
	return nil
}

func (q *QuizScreen) refresh() {
	q.snap = q.ctrl.Snapshot()
}

func (q *QuizScreen) resolved() bool {
	return q.snap.Question != nil && q.snap.Question.Resolved
}

func (q *QuizScreen) finishIfDone() tea.Cmd {
	if q.snap.Phase != session.PhaseFinished || q.snap.Summary == nil {
		return nil
	}
	q.done = true
	next := q.result(*q.snap.Summary)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (q *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if q.confirmQuit {
		body := theme.Title.Render("Abandon this quiz?") + "\n\n" +
			theme.Hint.Render("Your progress will not be saved.") + "\n\n" +
			theme.Body.Render("[Y] Yes    [N] No")
		return components.CabinetFrame(components.ArcadeCard(body, cw), width, height)
	}

	qv := q.snap.Question
	if qv == nil {
		return components.CabinetFrame(theme.Hint.Render("Loading..."), width, height)
	}

	sections := []string{
		q.renderStatusLine(cw),
		q.renderTimer(cw),
		"",
		lipgloss.NewStyle().Width(cw).Bold(true).Foreground(theme.Text).Render(qv.Prompt),
		"",
		components.MultiChoice{Options: qv.Choices, Correct: qv.Correct, Chosen: qv.Choice}.View(),
	}
	if qv.Resolved {
		sections = append(sections, "", q.renderFeedback(qv, cw))
	}
	return components.CabinetFrame(strings.Join(sections, "\n"), width, height)
}

func (q *QuizScreen) renderStatusLine(cw int) string {
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(q.snap.Question.Category.DisplayName())
	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score %d  Streak %d", q.snap.Score, q.snap.Streak))
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (q *QuizScreen) renderTimer(cw int) string {
	clock := theme.TimerStyle(q.snap.Remaining, q.snap.TimeLimit).
		Render("⏱ " + layout.FormatClock(q.snap.Remaining))
	bar := components.ProgressBar{
		Percent: components.Fraction(q.snap.Remaining, q.snap.TimeLimit),
		Width:   cw - lipgloss.Width(clock) - 2,
		Fill:    theme.TimerHue(q.snap.Remaining, q.snap.TimeLimit),
	}
	return clock + "  " + bar.View()
}

func (q *QuizScreen) renderFeedback(qv *session.QuestionView, cw int) string {
	correct := qv.Correct != nil && qv.Choice != nil && *qv.Choice == *qv.Correct
	var verdict string
	switch {
	case qv.Skipped && q.snap.Remaining == 0:
		verdict = theme.Skipped.Render("⌛ Time's up!")
	case qv.Skipped:
		verdict = theme.Skipped.Render("↷ Skipped")
	case correct:
		verdict = theme.Correct.Render("✔ Correct!")
	default:
		verdict = theme.Incorrect.Render("✘ Not quite")
	}
	if qv.QuickBonus && correct {
		verdict += "  " + lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("⚡ Quick!")
	}

	lines := []string{verdict}
	if qv.Correct != nil {
		lines = append(lines, theme.Body.Render(fmt.Sprintf("Answer: %s) %s",
			components.Letter(*qv.Correct), qv.Choices[*qv.Correct])))
	}
	if qv.Explanation != "" {
		lines = append(lines, lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(qv.Explanation))
	}
	next := "Press Enter for the next question"
	if q.snap.IsLast() {
		next = "Press Enter to see your results"
	}
	lines = append(lines, "", theme.Hint.Render(next))
	return strings.Join(lines, "\n")
}
