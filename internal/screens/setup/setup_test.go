package setup

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/router"
	"github.com/abhisek/smartquiz/internal/screen"
)

type startCall struct {
	category bank.Category
	count    int
	name     string
}

type fakeStarter struct {
	last  string
	err   error
	calls []startCall
}

func (f *fakeStarter) Start(category bank.Category, count int, name string) error {
	f.calls = append(f.calls, startCall{category, count, name})
	return f.err
}

func (f *fakeStarter) LastPlayer(context.Context) string { return f.last }

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                             { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                      { return "quiz" }
func (stubScreen) Title() string                             { return "quiz" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newSetup(st *fakeStarter, opts Options) *SetupScreen {
	if opts.Quiz == nil {
		opts.Quiz = func() screen.Screen { return stubScreen{} }
	}
	if opts.Categories == nil {
		opts.Categories = []bank.Category{bank.CategoryMath, bank.CategoryScience}
	}
	return New(st, opts)
}

func TestSetup_Defaults(t *testing.T) {
	s := newSetup(&fakeStarter{}, Options{})

	if s.Category() != bank.CategoryAll {
		t.Errorf("Category = %q, want all", s.Category())
	}
	if s.Count() != 5 {
		t.Errorf("Count = %d, want 5", s.Count())
	}
	if s.Name() != "" {
		t.Errorf("Name = %q, want empty", s.Name())
	}
}

func TestSetup_PrefillsLastPlayer(t *testing.T) {
	s := newSetup(&fakeStarter{last: "Grace"}, Options{})
	if s.Name() != "Grace" {
		t.Errorf("Name = %q, want Grace", s.Name())
	}

	s = newSetup(&fakeStarter{last: "Grace"}, Options{Name: "Ada"})
	if s.Name() != "Ada" {
		t.Errorf("explicit name should win, got %q", s.Name())
	}
}

func TestSetup_PreselectedOptions(t *testing.T) {
	s := newSetup(&fakeStarter{}, Options{Category: bank.CategoryScience, Count: 7})

	if s.Category() != bank.CategoryScience {
		t.Errorf("Category = %q", s.Category())
	}
	if s.Count() != 7 {
		t.Errorf("Count = %d, want 7", s.Count())
	}
}

func TestSetup_CycleCategoryAndCount(t *testing.T) {
	s := newSetup(&fakeStarter{}, Options{})

	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyRight))
	if s.Category() != bank.CategoryMath {
		t.Errorf("Category = %q, want math", s.Category())
	}
	s.Update(specialKey(tea.KeyLeft))
	s.Update(specialKey(tea.KeyLeft))
	if s.Category() != bank.CategoryScience {
		t.Errorf("left should wrap, got %q", s.Category())
	}

	s.Update(specialKey(tea.KeyDown))
	s.Update(keyPress('l'))
	if s.Count() != 10 {
		t.Errorf("Count = %d, want 10", s.Count())
	}
	s.Update(keyPress('l'))
	if s.Count() != 3 {
		t.Errorf("right should wrap, got %d", s.Count())
	}
}

func TestSetup_FocusWraps(t *testing.T) {
	s := newSetup(&fakeStarter{}, Options{})

	s.Update(specialKey(tea.KeyUp))
	if s.focus != fieldStart {
		t.Errorf("focus = %d, want start", s.focus)
	}
	s.Update(specialKey(tea.KeyDown))
	if s.focus != fieldName || !s.name.Focused() {
		t.Error("expected focus back on the name field")
	}
}

func TestSetup_TypingName(t *testing.T) {
	s := newSetup(&fakeStarter{}, Options{})

	for _, r := range "Lin" {
		s.Update(keyPress(r))
	}
	if s.Name() != "Lin" {
		t.Errorf("Name = %q, want Lin", s.Name())
	}
}

func TestSetup_EnterStartsSession(t *testing.T) {
	st := &fakeStarter{}
	s := newSetup(st, Options{Name: "Ada", Category: bank.CategoryMath, Count: 3})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "quiz" {
		t.Errorf("replacement = %q", msg.Screen.Title())
	}
	want := startCall{bank.CategoryMath, 3, "Ada"}
	if len(st.calls) != 1 || st.calls[0] != want {
		t.Errorf("calls = %+v, want %+v", st.calls, want)
	}
}

func TestSetup_StartErrorShown(t *testing.T) {
	st := &fakeStarter{err: errors.New("session already in progress")}
	s := newSetup(st, Options{})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("failed start should not navigate")
	}
	if !strings.Contains(s.View(100, 30), "session already in progress") {
		t.Error("expected error message in view")
	}
}
