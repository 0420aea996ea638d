package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/ui/theme"
)

var choiceLetters = []string{"A", "B", "C", "D"}

// ChoiceState is how one option of a multiple-choice question is drawn.
type ChoiceState int

const (
	ChoiceOpen ChoiceState = iota
	ChoiceCorrect
	ChoiceWrong
	ChoiceFaded
)

// MultiChoice renders the lettered options of a question. Correct and Chosen
// are nil until the question is resolved.
type MultiChoice struct {
	Options []string
	Correct *int
	Chosen  *int
}

// ChoiceKey maps "1"-"4" and "a"-"d" to an option index.
func ChoiceKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch c := key[0]; {
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	}
	return 0, false
}

// State reports how option i should be drawn.
func (m MultiChoice) State(i int) ChoiceState {
	if m.Correct == nil {
		return ChoiceOpen
	}
	switch {
	case i == *m.Correct:
		return ChoiceCorrect
	case m.Chosen != nil && i == *m.Chosen:
		return ChoiceWrong
	default:
		return ChoiceFaded
	}
}

// View renders one option per line.
func (m MultiChoice) View() string {
	lines := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		label := fmt.Sprintf("[%d] %s)  %s", i+1, choiceLetters[i%len(choiceLetters)], opt)
		switch m.State(i) {
		case ChoiceCorrect:
			lines = append(lines, theme.Correct.Render("✔ "+label))
		case ChoiceWrong:
			lines = append(lines, theme.Incorrect.Render("✘ "+label))
		case ChoiceFaded:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+label))
		default:
			lines = append(lines, theme.Unselected.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

// Letter returns the display letter of option i.
func Letter(i int) string {
	if i < 0 || i >= len(choiceLetters) {
		return "?"
	}
	return choiceLetters[i]
}
