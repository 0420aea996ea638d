package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app's styling.
type TextInput struct {
	Model   textinput.Model
	Label   string
	focused bool
}

// NewTextInput creates a focused text input limited to charLimit runes.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti, Label: label, focused: true}
}

// Init returns the cursor blink command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the underlying input while focused.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if !t.focused {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetFocused focuses or blurs the input.
func (t *TextInput) SetFocused(focused bool) {
	t.focused = focused
	if focused {
		t.Model.Focus()
	} else {
		t.Model.Blur()
	}
}

// Focused reports whether the input receives keys.
func (t TextInput) Focused() bool { return t.focused }

// SetValue replaces the current text.
func (t *TextInput) SetValue(v string) { t.Model.SetValue(v) }

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// View renders the label and the input.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.focused {
		labelStyle = theme.Selected
	}
	return labelStyle.Render(t.Label) + "  " + t.Model.View()
}
