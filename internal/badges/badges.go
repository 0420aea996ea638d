// Package badges derives achievement badges from a finished session.
package badges

// Badge names an achievement. The value is also the label written to history.
type Badge string

const (
	PerfectScore Badge = "Perfect Score"
	QuickThinker Badge = "Quick Thinker"
	StreakMaster Badge = "Streak Master"
	HighAchiever Badge = "High Achiever"
)

// StreakMasterThreshold is the final streak length that earns StreakMaster.
const StreakMasterThreshold = 3

// All returns every badge in display order.
func All() []Badge {
	return []Badge{PerfectScore, QuickThinker, StreakMaster, HighAchiever}
}

// Icon returns the display icon for the badge.
func (b Badge) Icon() string {
	switch b {
	case PerfectScore:
		return "🏆"
	case QuickThinker:
		return "⚡"
	case StreakMaster:
		return "🔥"
	case HighAchiever:
		return "⭐"
	default:
		return "✦"
	}
}

// Description explains how the badge is earned.
func (b Badge) Description() string {
	switch b {
	case PerfectScore:
		return "Answered every question correctly"
	case QuickThinker:
		return "Answered a question with time to spare"
	case StreakMaster:
		return "Finished on a streak of 3 or more"
	case HighAchiever:
		return "Scored at least 80%"
	default:
		return ""
	}
}

// Stats summarizes a finished session.
type Stats struct {
	// Score is the number of correct answers.
	Score int

	// Length is the number of questions in the session.
	Length int

	// Streak is the streak at the end of the session, not the longest one.
	Streak int

	// AnyQuickBonus is true when at least one question earned the quick bonus.
	AnyQuickBonus bool
}

// Evaluate returns the badges earned by s in display order.
// A session without questions earns nothing.
func Evaluate(s Stats) []Badge {
	if s.Length <= 0 {
		return nil
	}

	var out []Badge
	if s.Score == s.Length {
		out = append(out, PerfectScore)
	}
	if s.AnyQuickBonus {
		out = append(out, QuickThinker)
	}
	if s.Streak >= StreakMasterThreshold {
		out = append(out, StreakMaster)
	}
	if s.Score >= highAchieverScore(s.Length) {
		out = append(out, HighAchiever)
	}
	return out
}

// highAchieverScore returns ceil(length * 0.8) without floating point.
func highAchieverScore(length int) int {
	return (4*length + 4) / 5
}

// Names converts badges to their string labels.
func Names(bs []Badge) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}
