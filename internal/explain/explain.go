// Package explain supplies review explanations for quiz questions, asking a
// language model when the bank carries none.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/llm"
)

// ErrUnavailable is returned when a question has no stored explanation and no
// model is configured.
var ErrUnavailable = errors.New("no explanation available")

const systemPrompt = `You explain multiple-choice quiz answers to a learner.
Given a question, its choices and the correct answer, reply with a short,
friendly explanation (at most three sentences) of why the answer is correct.
Do not restate the question.`

var responseSchema = &llm.Schema{
	Name:        "quiz-explanation",
	Description: "Explanation of a quiz answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}

// Explainer returns explanations by question id. Generated text is cached
// for the life of the Explainer.
type Explainer struct {
	provider llm.Provider
	logger   *slog.Logger
	timeout  time.Duration

	mu    sync.Mutex
	cache map[int]string
}

// New returns an Explainer. provider may be nil, in which case only stored
// explanations are served.
func New(provider llm.Provider, logger *slog.Logger) *Explainer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Explainer{
		provider: provider,
		logger:   logger.With("component", "explain"),
		timeout:  30 * time.Second,
		cache:    make(map[int]string),
	}
}

// Enabled reports whether a model is available for missing explanations.
func (e *Explainer) Enabled() bool { return e != nil && e.provider != nil }

// Explain returns q's stored explanation, or a generated one.
func (e *Explainer) Explain(ctx context.Context, q bank.Question) (string, error) {
	if text := strings.TrimSpace(q.Explanation); text != "" {
		return text, nil
	}
	if !e.Enabled() {
		return "", ErrUnavailable
	}

	e.mu.Lock()
	cached, ok := e.cache[q.ID]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, "explain"), e.timeout)
	defer cancel()

	req := llm.UserPrompt(systemPrompt, buildPrompt(q))
	req.Schema = responseSchema
	req.MaxTokens = 300
	req.Temperature = 0.3

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		e.logger.WarnContext(ctx, "explanation request failed", "question", q.ID, "err", err)
		return "", fmt.Errorf("explain question %d: %w", q.ID, err)
	}

	var out struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("decode explanation: %w", err)
	}
	text := strings.TrimSpace(out.Explanation)

	e.mu.Lock()
	e.cache[q.ID] = text
	e.mu.Unlock()
	return text, nil
}

func buildPrompt(q bank.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", q.Category.DisplayName())
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	for i, c := range q.Choices {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, c)
	}
	fmt.Fprintf(&b, "Correct answer: %s", q.CorrectChoice())
	return b.String()
}
