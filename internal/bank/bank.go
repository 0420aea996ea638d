package bank

import (
	"fmt"
	"slices"
)

// Bank is a static catalog of questions.
type Bank struct {
	questions []Question
}

// New validates questions and returns a Bank holding copies of them.
// IDs must be unique across the catalog.
func New(questions []Question) (*Bank, error) {
	seen := make(map[int]bool, len(questions))
	qs := make([]Question, 0, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidQuestion, q.ID)
		}
		seen[q.ID] = true
		q.Choices = slices.Clone(q.Choices)
		qs = append(qs, q)
	}
	return &Bank{questions: qs}, nil
}

// ListByCategory returns the questions tagged with category, in bank order.
// CategoryAll returns every question. The result is a copy the caller may
// reorder freely; it is empty when nothing matches.
func (b *Bank) ListByCategory(category Category) []Question {
	out := make([]Question, 0, len(b.questions))
	for _, q := range b.questions {
		if category == CategoryAll || q.Category == category {
			q.Choices = slices.Clone(q.Choices)
			out = append(out, q)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (b *Bank) Categories() []Category {
	var cats []Category
	for _, q := range b.questions {
		if !slices.Contains(cats, q.Category) {
			cats = append(cats, q.Category)
		}
	}
	return cats
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}
