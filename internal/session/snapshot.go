package session

import "github.com/abhisek/smartquiz/internal/bank"

// Snapshot is the outbound view of the controller at one instant.
type Snapshot struct {
	// Seq increases with every snapshot a controller emits. Collaborators
	// receiving snapshots from several goroutines can drop stale ones.
	Seq uint64 `json:"seq"`

	Phase     Phase         `json:"phase"`
	SessionID string        `json:"session_id,omitempty"`
	Player    string        `json:"player,omitempty"`
	Category  bank.Category `json:"category,omitempty"`
	Index     int           `json:"index"`
	Total     int           `json:"total"`
	Score     int           `json:"score"`
	Streak    int           `json:"streak"`
	Remaining int           `json:"remaining"`
	TimeLimit int           `json:"time_limit"`

	// Question is the active question while in progress.
	Question *QuestionView `json:"question,omitempty"`

	// Summary is set once the session has finished.
	Summary *Summary `json:"summary,omitempty"`
}

// QuestionView exposes the active question. The correct choice and the
// explanation stay hidden until the question is resolved.
type QuestionView struct {
	ID         int           `json:"id"`
	Category   bank.Category `json:"category"`
	Prompt     string        `json:"prompt"`
	Choices    []string      `json:"choices"`
	Resolved   bool          `json:"resolved"`
	Skipped    bool          `json:"skipped"`
	QuickBonus bool          `json:"quick_bonus"`

	// Choice is the submitted choice, if any.
	Choice *int `json:"choice,omitempty"`

	// Correct is the correct choice index, set once resolved.
	Correct *int `json:"correct,omitempty"`

	Explanation string `json:"explanation,omitempty"`
}

// IsLast reports whether the active question is the final one.
func (s Snapshot) IsLast() bool {
	return s.Phase == PhaseInProgress && s.Index == s.Total-1
}

func newQuestionView(q SessionQuestion) *QuestionView {
	v := &QuestionView{
		ID:       q.ID,
		Category: q.Category,
		Prompt:   q.Prompt,
		Choices:  append([]string(nil), q.Choices...),
		Resolved: q.UserAnswer.Resolved(),
	}
	if !v.Resolved {
		return v
	}

	correct := q.Answer
	v.Correct = &correct
	v.Explanation = q.Explanation
	v.QuickBonus = q.QuickBonus
	if choice, ok := q.UserAnswer.Chosen(); ok {
		v.Choice = &choice
	} else {
		v.Skipped = true
	}
	return v
}
