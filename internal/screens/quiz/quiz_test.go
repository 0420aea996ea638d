package quiz

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/history"
	"github.com/abhisek/smartquiz/internal/router"
	"github.com/abhisek/smartquiz/internal/screen"
	"github.com/abhisek/smartquiz/internal/session"
	"github.com/abhisek/smartquiz/internal/timer"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

var testQuestions = []bank.Question{
	{ID: 1, Category: bank.CategoryMath, Prompt: "What is 2 + 2?", Choices: []string{"3", "4", "5", "6"}, Answer: 1, Explanation: "Two pairs make four."},
	{ID: 2, Category: bank.CategoryScience, Prompt: "H2O is?", Choices: []string{"Salt", "Air", "Water", "Gold"}, Answer: 2},
}

type fixture struct {
	screen    *QuizScreen
	ctrl      *session.Controller
	clock     *timer.Timer
	summaries []session.Summary
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b, err := bank.New(testQuestions)
	if err != nil {
		t.Fatalf("bank.New: %v", err)
	}
	f := &fixture{clock: timer.NewManual()}
	f.ctrl = session.NewController(session.Options{
		Questions: b,
		Timer:     f.clock,
		History:   history.NewLog(history.NewMemoryRecords(), nil),
		Rand:      rand.New(rand.NewPCG(7, 7)),
	})
	if err := f.ctrl.Start(bank.CategoryAll, 2, "Ada"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.screen = New(f.ctrl, f.clock, func(s session.Summary) screen.Screen {
		f.summaries = append(f.summaries, s)
		return &stubScreen{title: "result"}
	})
	f.screen.Init()
	return f
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func (f *fixture) press(t *testing.T, s string) tea.Cmd {
	t.Helper()
	_, cmd := f.screen.Update(key(s))
	return cmd
}

func (f *fixture) correctKey(t *testing.T) string {
	t.Helper()
	id := f.screen.snap.Question.ID
	for _, q := range testQuestions {
		if q.ID == id {
			return string(rune('1' + q.Answer))
		}
	}
	t.Fatalf("unknown question %d", id)
	return ""
}

func TestQuizScreen_AnswerWithNumberKey(t *testing.T) {
	f := newFixture(t)

	f.press(t, f.correctKey(t))

	snap := f.ctrl.Snapshot()
	if !snap.Question.Resolved {
		t.Fatal("expected question to be resolved")
	}
	if snap.Score != 1 || snap.Streak != 1 {
		t.Errorf("score/streak = %d/%d, want 1/1", snap.Score, snap.Streak)
	}
	if !strings.Contains(f.screen.View(100, 30), "Correct!") {
		t.Error("expected correct feedback in view")
	}
}

func TestQuizScreen_LetterKeysAnswer(t *testing.T) {
	f := newFixture(t)
	letter := string(rune('a' + (f.correctKey(t)[0] - '1')))

	f.press(t, letter)

	if f.ctrl.Snapshot().Score != 1 {
		t.Errorf("letter %q should answer correctly", letter)
	}
}

func TestQuizScreen_SkipKey(t *testing.T) {
	f := newFixture(t)

	f.press(t, "s")

	snap := f.ctrl.Snapshot()
	if !snap.Question.Skipped {
		t.Error("expected question to be skipped")
	}
	if !strings.Contains(f.screen.View(100, 30), "Skipped") {
		t.Error("expected skipped feedback in view")
	}
}

func TestQuizScreen_TicksCountDownAndExpire(t *testing.T) {
	f := newFixture(t)
	id := f.screen.snap.SessionID

	f.screen.Update(tickMsg{sessionID: id})
	if got := f.screen.snap.Remaining; got != timer.DefaultUnits-1 {
		t.Fatalf("remaining = %d, want %d", got, timer.DefaultUnits-1)
	}
	if !strings.Contains(f.screen.View(100, 30), "00:19") {
		t.Error("expected clock 00:19 in view")
	}

	var cmd tea.Cmd
	for range timer.DefaultUnits - 1 {
		_, cmd = f.screen.Update(tickMsg{sessionID: id})
	}
	if cmd != nil {
		t.Error("an expired question should stop ticking")
	}
	snap := f.ctrl.Snapshot()
	if !snap.Question.Resolved || !snap.Question.Skipped {
		t.Fatal("expected question to time out")
	}
	if !strings.Contains(f.screen.View(100, 30), "Time's up!") {
		t.Error("expected timeout feedback in view")
	}
}

func TestQuizScreen_StaleTickIgnored(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.screen.Update(tickMsg{sessionID: "old-session"})
	if cmd != nil {
		t.Error("stale tick should not reschedule")
	}
	if f.ctrl.Snapshot().Remaining != timer.DefaultUnits {
		t.Error("stale tick should not advance the countdown")
	}
}

func TestQuizScreen_NextQuestionRestartsTicks(t *testing.T) {
	f := newFixture(t)
	id := f.screen.snap.SessionID
	for range 5 {
		f.screen.Update(tickMsg{sessionID: id})
	}

	f.press(t, f.correctKey(t))
	if cmd := f.press(t, "n"); cmd == nil {
		t.Fatal("expected a fresh tick for the next question")
	}
	if f.screen.snap.Index != 1 {
		t.Fatalf("index = %d, want 1", f.screen.snap.Index)
	}

	// A tick from the first question's loop must not shorten the new countdown.
	if _, cmd := f.screen.Update(tickMsg{sessionID: id, gen: 0}); cmd != nil {
		t.Error("tick from the previous question should not reschedule")
	}
	if got := f.ctrl.Snapshot().Remaining; got != timer.DefaultUnits {
		t.Errorf("remaining = %d, want %d", got, timer.DefaultUnits)
	}

	f.screen.Update(tickMsg{sessionID: id, gen: 1})
	if got := f.ctrl.Snapshot().Remaining; got != timer.DefaultUnits-1 {
		t.Errorf("remaining = %d, want %d", got, timer.DefaultUnits-1)
	}
}

func TestQuizScreen_ResolvedQuestionStopsTicking(t *testing.T) {
	f := newFixture(t)
	id := f.screen.snap.SessionID

	f.press(t, "s")
	if _, cmd := f.screen.Update(tickMsg{sessionID: id}); cmd != nil {
		t.Error("a resolved question should not keep ticking")
	}
}

func TestQuizScreen_FinishReplacesWithResult(t *testing.T) {
	f := newFixture(t)

	f.press(t, f.correctKey(t))
	f.press(t, "enter")
	if f.screen.done || len(f.summaries) != 0 {
		t.Fatal("advancing to the second question should not finish")
	}
	f.press(t, "s")
	cmd := f.press(t, "n")
	if cmd == nil {
		t.Fatal("expected navigation after the last question")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "result" {
		t.Errorf("replacement = %q, want result", msg.Screen.Title())
	}
	if len(f.summaries) != 1 || f.summaries[0].Score != 1 || f.summaries[0].Total != 2 {
		t.Errorf("summaries = %+v", f.summaries)
	}
	if entries := f.ctrl.LoadHistory(t.Context()); len(entries) != 1 {
		t.Errorf("history entries = %d, want 1", len(entries))
	}
}

func TestQuizScreen_NextIgnoredUntilResolved(t *testing.T) {
	f := newFixture(t)
	before := f.screen.snap.Index

	f.press(t, "enter")

	if f.ctrl.Snapshot().Index != before {
		t.Error("enter should not advance an unresolved question")
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	f := newFixture(t)

	f.press(t, "esc")
	if !f.screen.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	f.press(t, "n")
	if f.screen.confirmQuit {
		t.Fatal("expected confirmation to be dismissed")
	}

	f.press(t, "esc")
	cmd := f.press(t, "y")
	if cmd == nil {
		t.Fatal("expected navigation after confirming")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
	if f.ctrl.Phase() != session.PhaseNotStarted {
		t.Errorf("phase = %v, want not started", f.ctrl.Phase())
	}
	if entries := f.ctrl.LoadHistory(t.Context()); len(entries) != 0 {
		t.Error("abandoned session should not be recorded")
	}
}

func TestQuizScreen_KeysIgnoredDuringConfirm(t *testing.T) {
	f := newFixture(t)
	f.press(t, "esc")
	f.press(t, f.correctKey(t))

	if f.ctrl.Snapshot().Question.Resolved {
		t.Error("answers should be ignored while confirming quit")
	}
}

func TestQuizScreen_Chrome(t *testing.T) {
	f := newFixture(t)

	if got := f.screen.Title(); got != "Question 1 of 2" {
		t.Errorf("Title = %q", got)
	}
	if !f.screen.HandlesEscape() {
		t.Error("quiz screen should handle Esc itself")
	}
	if _, _, ok := f.screen.Status(); !ok {
		t.Error("status should be shown while in progress")
	}
	if len(f.screen.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
