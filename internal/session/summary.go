package session

import (
	"time"

	"github.com/abhisek/smartquiz/internal/badges"
	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/history"
)

// Summary describes a finished session.
type Summary struct {
	SessionID string         `json:"session_id"`
	Player    string         `json:"player"`
	Category  bank.Category  `json:"category"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Streak    int            `json:"streak"`
	Badges    []badges.Badge `json:"badges"`
	Date      time.Time      `json:"date"`
	Duration  time.Duration  `json:"duration"`
	Review    []ReviewItem   `json:"review"`
}

// ReviewItem is one question as it played out.
type ReviewItem struct {
	QuestionID  int           `json:"question_id"`
	Category    bank.Category `json:"category"`
	Prompt      string        `json:"prompt"`
	Choices     []string      `json:"choices"`
	Correct     int           `json:"correct"`
	Explanation string        `json:"explanation,omitempty"`

	// Choice is the submitted choice, or nil when skipped or timed out.
	Choice     *int `json:"choice"`
	QuickBonus bool `json:"quick_bonus"`
}

// Skipped reports whether the question was skipped or timed out.
func (r ReviewItem) Skipped() bool {
	return r.Choice == nil
}

// IsCorrect reports whether the submitted choice was right.
func (r ReviewItem) IsCorrect() bool {
	return r.Choice != nil && *r.Choice == r.Correct
}

// AnswerText returns the submitted choice text, or "Skipped".
func (r ReviewItem) AnswerText() string {
	if r.Choice == nil || *r.Choice < 0 || *r.Choice >= len(r.Choices) {
		return "Skipped"
	}
	return r.Choices[*r.Choice]
}

// CorrectText returns the text of the correct choice.
func (r ReviewItem) CorrectText() string {
	if r.Correct < 0 || r.Correct >= len(r.Choices) {
		return ""
	}
	return r.Choices[r.Correct]
}

// Question rebuilds the bank question this item came from.
func (r ReviewItem) Question() bank.Question {
	return bank.Question{
		ID:          r.QuestionID,
		Category:    r.Category,
		Prompt:      r.Prompt,
		Choices:     append([]string(nil), r.Choices...),
		Answer:      r.Correct,
		Explanation: r.Explanation,
	}
}

// Entry converts the summary into a history entry.
func (s Summary) Entry() history.Entry {
	return history.Entry{
		Player: s.Player,
		Date:   s.Date,
		Score:  s.Score,
		Total:  s.Total,
		Badges: badges.Names(s.Badges),
	}
}

// BuildSummary evaluates badges for a completed run of questions.
func BuildSummary(questions []SessionQuestion, score, streak int) Summary {
	review := make([]ReviewItem, len(questions))
	anyQuick := false
	for i, q := range questions {
		item := ReviewItem{
			QuestionID:  q.ID,
			Category:    q.Category,
			Prompt:      q.Prompt,
			Choices:     append([]string(nil), q.Choices...),
			Correct:     q.Answer,
			Explanation: q.Explanation,
			QuickBonus:  q.QuickBonus,
		}
		if choice, ok := q.UserAnswer.Chosen(); ok {
			item.Choice = &choice
		}
		review[i] = item
		anyQuick = anyQuick || q.QuickBonus
	}

	return Summary{
		Score:  score,
		Total:  len(questions),
		Streak: streak,
		Badges: badges.Evaluate(badges.Stats{
			Score:         score,
			Length:        len(questions),
			Streak:        streak,
			AnyQuickBonus: anyQuick,
		}),
		Review: review,
	}
}
