package session

import (
	"math/rand/v2"

	"github.com/abhisek/smartquiz/internal/bank"
)

// QuestionSource lists bank questions by category.
type QuestionSource interface {
	ListByCategory(category bank.Category) []bank.Question
}

// Select draws up to count questions of category from src in uniformly random
// order. Every permutation of the matching questions is equally likely. A
// count larger than the pool yields the whole pool; a nil rng uses the global
// source.
func Select(src QuestionSource, category bank.Category, count int, rng *rand.Rand) []SessionQuestion {
	if category == "" {
		category = bank.CategoryAll
	}
	pool := src.ListByCategory(category)

	swap := func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }
	if rng != nil {
		rng.Shuffle(len(pool), swap)
	} else {
		rand.Shuffle(len(pool), swap)
	}

	if count < 0 {
		count = 0
	}
	if count < len(pool) {
		pool = pool[:count]
	}

	out := make([]SessionQuestion, len(pool))
	for i, q := range pool {
		out[i] = SessionQuestion{Question: q}
	}
	return out
}
