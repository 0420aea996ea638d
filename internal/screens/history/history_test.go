package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartquiz/internal/history"
	"github.com/abhisek/smartquiz/internal/router"
)

type fakeSource struct {
	entries  []history.Entry
	clearErr error
	cleared  int
}

func (f *fakeSource) LoadHistory(context.Context) []history.Entry { return f.entries }

func (f *fakeSource) ClearHistory(context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared++
	f.entries = nil
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sampleEntries() []history.Entry {
	day := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []history.Entry{
		{Player: "Ada", Date: day, Score: 5, Total: 5, Badges: []string{"Perfect Score", "High Achiever"}},
		{Player: "Grace", Date: day.Add(-time.Hour), Score: 2, Total: 5},
	}
}

// load runs Init and feeds the loaded message back.
func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected Init to load history")
	}
	s.Update(cmd())
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeSource{})
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading state before Init completes")
	}

	load(t, s)
	if !strings.Contains(s.View(100, 30), EmptyMessage) {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_ListsEntries(t *testing.T) {
	s := New(&fakeSource{entries: sampleEntries()})
	load(t, s)

	view := s.View(120, 30)
	for _, want := range []string{"Ada", "5/5", "Grace", "2/5", "🏆"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Index(view, "Ada") > strings.Index(view, "Grace") {
		t.Error("entries should keep most-recent-first order")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := New(&fakeSource{entries: sampleEntries()})
	load(t, s)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(keyPress('k'))
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(&fakeSource{})
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestHistoryScreen_ClearConfirmed(t *testing.T) {
	src := &fakeSource{entries: sampleEntries()}
	s := New(src)
	load(t, s)

	s.Update(keyPress('c'))
	if !strings.Contains(s.View(100, 30), "Clear all quiz history?") {
		t.Fatal("expected confirmation prompt")
	}
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected clear command")
	}
	_, reload := s.Update(cmd())
	if reload == nil {
		t.Fatal("expected reload after clearing")
	}
	s.Update(reload())

	if src.cleared != 1 {
		t.Errorf("cleared = %d, want 1", src.cleared)
	}
	if !strings.Contains(s.View(100, 30), EmptyMessage) {
		t.Error("expected empty list after clearing")
	}
}

func TestHistoryScreen_ClearCancelled(t *testing.T) {
	src := &fakeSource{entries: sampleEntries()}
	s := New(src)
	load(t, s)

	s.Update(keyPress('c'))
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd != nil {
		t.Error("cancel should not pop the screen")
	}
	if s.confirmClear || src.cleared != 0 {
		t.Error("history should be untouched after cancelling")
	}
}

func TestHistoryScreen_ClearIgnoredWhenEmpty(t *testing.T) {
	s := New(&fakeSource{})
	load(t, s)

	s.Update(keyPress('c'))
	if s.confirmClear {
		t.Error("nothing to clear")
	}
}

func TestHistoryScreen_ClearError(t *testing.T) {
	s := New(&fakeSource{entries: sampleEntries(), clearErr: errors.New("disk full")})
	load(t, s)

	s.Update(keyPress('c'))
	_, cmd := s.Update(keyPress('y'))
	s.Update(cmd())

	if !strings.Contains(s.View(100, 30), "disk full") {
		t.Error("expected clear error in view")
	}
}

func TestFormatEntry(t *testing.T) {
	line := FormatEntry(history.Entry{Player: "Ada", Score: 3, Total: 5, Badges: []string{"Streak Master"}})

	if !strings.Contains(line, "unknown date") {
		t.Errorf("zero date should render as unknown: %q", line)
	}
	if !strings.Contains(line, "3/5") || !strings.Contains(line, "🔥") {
		t.Errorf("unexpected line %q", line)
	}
}
