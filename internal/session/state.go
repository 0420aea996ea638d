package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/smartquiz/internal/bank"
)

// DefaultPlayerName is used when the player leaves their name blank.
const DefaultPlayerName = "Player"

// ErrInvalidConfiguration is returned by Start for an unusable request.
var ErrInvalidConfiguration = errors.New("invalid session configuration")

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // No session yet, or the last one was abandoned
	PhaseInProgress              // Serving questions
	PhaseFinished                // Every question resolved; summary available
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name written by MarshalText.
func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "not_started":
		*p = PhaseNotStarted
	case "in_progress":
		*p = PhaseInProgress
	case "finished":
		*p = PhaseFinished
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// AnswerKind distinguishes how a question was resolved.
type AnswerKind int

const (
	AnswerUnset  AnswerKind = iota // Not yet resolved
	AnswerNone                     // Skipped or timed out
	AnswerChoice                   // A choice was submitted
)

// UserAnswer records the player's response to one question.
type UserAnswer struct {
	Kind   AnswerKind
	Choice int
}

// Resolved reports whether the question has been answered, skipped or timed out.
func (a UserAnswer) Resolved() bool {
	return a.Kind != AnswerUnset
}

// Chosen returns the submitted choice, if any.
func (a UserAnswer) Chosen() (int, bool) {
	if a.Kind != AnswerChoice {
		return 0, false
	}
	return a.Choice, true
}

// SessionQuestion is a bank question plus the player's progress on it.
type SessionQuestion struct {
	bank.Question

	// UserAnswer is set at most once per session.
	UserAnswer UserAnswer

	// QuickBonus is set when the answer arrived with enough time left.
	QuickBonus bool
}

// AnsweredCorrectly reports whether the submitted choice was right.
func (q SessionQuestion) AnsweredCorrectly() bool {
	choice, ok := q.UserAnswer.Chosen()
	return ok && q.IsCorrect(choice)
}

// NormalizePlayerName trims name and substitutes DefaultPlayerName when blank.
func NormalizePlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	return name
}
