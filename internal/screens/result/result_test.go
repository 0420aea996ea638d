package result

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartquiz/internal/badges"
	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/explain"
	"github.com/abhisek/smartquiz/internal/llm"
	"github.com/abhisek/smartquiz/internal/router"
	"github.com/abhisek/smartquiz/internal/screen"
	"github.com/abhisek/smartquiz/internal/session"
)

type stubScreen struct{ title string }

func (s stubScreen) Init() tea.Cmd                           { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s stubScreen) View(int, int) string                    { return s.title }
func (s stubScreen) Title() string                           { return s.title }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func intPtr(i int) *int { return &i }

func sampleSummary() session.Summary {
	return session.Summary{
		Player:   "Ada",
		Category: bank.CategoryAll,
		Score:    1,
		Total:    2,
		Streak:   0,
		Review: []session.ReviewItem{
			{
				QuestionID: 1, Category: bank.CategoryMath, Prompt: "What is 2 + 2?",
				Choices: []string{"3", "4", "5", "6"}, Correct: 1, Choice: intPtr(1),
				Explanation: "Two pairs make four.",
			},
			{
				QuestionID: 2, Category: bank.CategoryScience, Prompt: "What gas do plants absorb?",
				Choices: []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"}, Correct: 1,
			},
		},
	}
}

func factories() Factories {
	return Factories{
		PlayAgain: func() screen.Screen { return stubScreen{"setup"} },
		History:   func() screen.Screen { return stubScreen{"history"} },
	}
}

func TestResult_ScoreAndNoBadges(t *testing.T) {
	r := New(sampleSummary(), nil, factories())
	view := r.View(100, 40)

	assert.Contains(t, view, "Ada scored 1 / 2")
	assert.Contains(t, view, NoBadgesMessage)
}

func TestResult_ListsBadges(t *testing.T) {
	s := sampleSummary()
	s.Score, s.Badges = 2, []badges.Badge{badges.PerfectScore, badges.HighAchiever}
	view := New(s, nil, factories()).View(100, 40)

	assert.Contains(t, view, "Perfect Score")
	assert.Contains(t, view, "High Achiever")
	assert.NotContains(t, view, NoBadgesMessage)
}

func TestResult_EmptySession(t *testing.T) {
	r := New(session.Summary{Player: "Ada", Category: bank.CategoryHistory}, nil, factories())
	assert.Contains(t, r.View(100, 40), "No questions matched that category.")

	r.Update(keyPress('r'))
	assert.False(t, r.reviewing, "nothing to review")
}

func TestResult_Navigation(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
		want func(t *testing.T, msg tea.Msg)
	}{
		{"esc goes home", specialKey(tea.KeyEscape), func(t *testing.T, msg tea.Msg) {
			assert.IsType(t, router.PopToRootMsg{}, msg)
		}},
		{"enter plays again", specialKey(tea.KeyEnter), func(t *testing.T, msg tea.Msg) {
			m, ok := msg.(router.ReplaceScreenMsg)
			require.True(t, ok)
			assert.Equal(t, "setup", m.Screen.Title())
		}},
		{"h opens history", keyPress('h'), func(t *testing.T, msg tea.Msg) {
			m, ok := msg.(router.PushScreenMsg)
			require.True(t, ok)
			assert.Equal(t, "history", m.Screen.Title())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(sampleSummary(), nil, factories())
			_, cmd := r.Update(tt.key)
			require.NotNil(t, cmd)
			tt.want(t, cmd())
		})
	}
}

func TestResult_ReviewShowsAnswers(t *testing.T) {
	r := New(sampleSummary(), nil, factories())

	r.Update(keyPress('r'))
	require.True(t, r.reviewing)
	view := r.View(100, 40)
	assert.Contains(t, view, "Your answer: 4")
	assert.Contains(t, view, "Two pairs make four.")

	r.Update(specialKey(tea.KeyDown))
	view = r.View(100, 40)
	assert.Contains(t, view, "Your answer: Skipped")
	assert.Contains(t, view, "Correct:     Carbon dioxide")
	assert.NotContains(t, view, "Press E", "no explainer configured")

	r.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 1, r.selected, "selection stops at the last item")
}

func TestResult_ExplainFetchesMissingExplanation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"Plants absorb carbon dioxide for photosynthesis."}`),
	})
	r := New(sampleSummary(), explain.New(mock, nil), factories())
	r.Update(keyPress('r'))

	_, cmd := r.Update(keyPress('e'))
	assert.Nil(t, cmd, "first item already has an explanation")

	r.Update(specialKey(tea.KeyDown))
	assert.Contains(t, r.View(100, 40), "Press E for an explanation")

	_, cmd = r.Update(keyPress('e'))
	require.NotNil(t, cmd)
	assert.Contains(t, r.View(100, 40), "Thinking...")

	r.Update(cmd())
	assert.Contains(t, r.View(100, 40), "Plants absorb carbon dioxide")
	assert.Equal(t, 1, mock.CallCount())

	_, cmd = r.Update(keyPress('e'))
	assert.Nil(t, cmd, "explanation already fetched")
}

func TestResult_ExplainFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	r := New(sampleSummary(), explain.New(mock, nil), factories())
	r.Update(keyPress('r'))
	r.Update(specialKey(tea.KeyDown))

	_, cmd := r.Update(keyPress('e'))
	require.NotNil(t, cmd)
	r.Update(cmd())

	view := r.View(100, 40)
	assert.True(t, strings.Contains(view, "Could not fetch an explanation"), view)
}
