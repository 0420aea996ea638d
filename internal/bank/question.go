package bank

import (
	"errors"
	"fmt"
	"strings"
)

// Category tags a question with a topic.
type Category string

const (
	CategoryMath    Category = "math"
	CategoryScience Category = "science"
	CategoryHistory Category = "history"

	// CategoryAll selects every question regardless of topic.
	CategoryAll Category = "all"
)

// ChoiceCount is the number of choices every question carries.
const ChoiceCount = 4

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAll:
		return "All topics"
	case "":
		return ""
	default:
		return strings.ToUpper(string(c[:1])) + string(c[1:])
	}
}

// Question is an immutable multiple-choice question.
type Question struct {
	ID          int      `json:"id" yaml:"id"`
	Category    Category `json:"category" yaml:"category"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
	Choices     []string `json:"choices" yaml:"choices"`
	Answer      int      `json:"answer" yaml:"answer"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// CorrectChoice returns the text of the correct choice.
func (q Question) CorrectChoice() string {
	if q.Answer < 0 || q.Answer >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.Answer]
}

// IsCorrect reports whether choice is the correct choice index.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.Answer
}

// ErrInvalidQuestion is returned when a question fails validation.
var ErrInvalidQuestion = errors.New("invalid question")

// Validate checks the structural rules every bank question must satisfy.
func (q Question) Validate() error {
	switch {
	case q.ID <= 0:
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidQuestion, q.ID)
	case q.Category == "" || q.Category == CategoryAll:
		return fmt.Errorf("%w %d: category %q not allowed", ErrInvalidQuestion, q.ID, q.Category)
	case strings.TrimSpace(q.Prompt) == "":
		return fmt.Errorf("%w %d: empty prompt", ErrInvalidQuestion, q.ID)
	case len(q.Choices) != ChoiceCount:
		return fmt.Errorf("%w %d: want %d choices, got %d", ErrInvalidQuestion, q.ID, ChoiceCount, len(q.Choices))
	case q.Answer < 0 || q.Answer >= ChoiceCount:
		return fmt.Errorf("%w %d: answer index %d out of range", ErrInvalidQuestion, q.ID, q.Answer)
	}
	for i, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w %d: choice %d is empty", ErrInvalidQuestion, q.ID, i)
		}
	}
	return nil
}
