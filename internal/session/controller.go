package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/history"
	"github.com/abhisek/smartquiz/internal/timer"
)

// DefaultQuickBonusPercent is the share of the time limit that must remain
// for an answer to earn the quick bonus.
const DefaultQuickBonusPercent = 60

// Timer is the countdown the controller runs for each question.
type Timer interface {
	Start(units int, onTick func(remaining int), onExpire func())
	Stop()
}

// Options configures a Controller.
type Options struct {
	// Questions supplies the bank. Required.
	Questions QuestionSource

	// Timer drives the per-question countdown. Required.
	Timer Timer

	// History receives an entry for every finished session. Optional.
	History history.Store

	// TimeLimit is the countdown length per question; 0 selects timer.DefaultUnits.
	TimeLimit int

	// QuickBonusPercent is in 1-100; 0 selects DefaultQuickBonusPercent.
	QuickBonusPercent int

	Rand     *rand.Rand
	Now      func() time.Time
	NewID    func() string
	Logger   *slog.Logger
	OnChange func(Snapshot)
}

// Controller runs one quiz session at a time. All methods are safe for
// concurrent use; timer callbacks may arrive on another goroutine.
type Controller struct {
	questions QuestionSource
	timer     Timer
	history   history.Store
	timeLimit int
	quickPct  int
	rng       *rand.Rand
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
	onChange  func(Snapshot)

	mu        sync.Mutex
	seq       uint64
	phase     Phase
	id        string
	player    string
	category  bank.Category
	startedAt time.Time
	session   []SessionQuestion
	index     int
	score     int
	streak    int
	remaining int
	summary   *Summary

	// token identifies the running countdown. Callbacks carrying an older
	// token belong to a question that has since been resolved or replaced.
	token uint64
}

// NewController returns a Controller in PhaseNotStarted.
func NewController(opts Options) *Controller {
	c := &Controller{
		questions: opts.Questions,
		timer:     opts.Timer,
		history:   opts.History,
		timeLimit: opts.TimeLimit,
		quickPct:  opts.QuickBonusPercent,
		rng:       opts.Rand,
		now:       opts.Now,
		newID:     opts.NewID,
		logger:    opts.Logger,
		onChange:  opts.OnChange,
	}
	if c.timeLimit <= 0 {
		c.timeLimit = timer.DefaultUnits
	}
	if c.quickPct <= 0 {
		c.quickPct = DefaultQuickBonusPercent
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Start begins a new session of up to count questions from category,
// abandoning any session in progress. A blank name becomes DefaultPlayerName.
// When no question matches, the session finishes immediately with score 0.
func (c *Controller) Start(category bank.Category, count int, name string) error {
	if count <= 0 {
		return fmt.Errorf("%w: question count must be positive, got %d", ErrInvalidConfiguration, count)
	}
	if category == "" {
		category = bank.CategoryAll
	}

	c.mu.Lock()
	c.stopTimerLocked()
	c.id = c.newID()
	c.player = NormalizePlayerName(name)
	c.category = category
	c.startedAt = c.now()
	c.session = Select(c.questions, category, count, c.rng)
	c.index = 0
	c.score = 0
	c.streak = 0
	c.remaining = 0
	c.summary = nil

	c.logger.Info("session started",
		"session_id", c.id,
		"player", c.player,
		"category", string(category),
		"questions", len(c.session),
	)

	if len(c.session) == 0 {
		// Nothing to play; not worth a history entry.
		c.finishLocked()
	} else {
		c.phase = PhaseInProgress
		c.startQuestionLocked()
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// SubmitAnswer resolves the active question with choice. It returns false and
// changes nothing when there is no unresolved active question or the choice
// is out of range.
func (c *Controller) SubmitAnswer(choice int) bool {
	c.mu.Lock()
	q := c.activeLocked()
	if q == nil || choice < 0 || choice >= len(q.Choices) {
		c.mu.Unlock()
		return false
	}

	c.stopTimerLocked()
	q.UserAnswer = UserAnswer{Kind: AnswerChoice, Choice: choice}
	if q.IsCorrect(choice) {
		c.score++
		c.streak++
	} else {
		c.streak = 0
	}
	if c.remaining*100 >= c.timeLimit*c.quickPct {
		q.QuickBonus = true
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return true
}

// SkipCurrent resolves the active question with no answer.
func (c *Controller) SkipCurrent() bool {
	return c.resolveWithoutAnswer(0, false)
}

// TimeoutCurrent resolves the active question as timed out. It behaves like
// SkipCurrent and is what the countdown triggers on expiry.
func (c *Controller) TimeoutCurrent() bool {
	return c.resolveWithoutAnswer(0, true)
}

// Advance moves past a resolved question. After the last question the
// session finishes: badges are evaluated and the result is appended to
// history. It returns false when the active question is still unresolved.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	if c.phase != PhaseInProgress || !c.session[c.index].UserAnswer.Resolved() {
		c.mu.Unlock()
		return false
	}

	var record *Summary
	if c.index+1 < len(c.session) {
		c.index++
		c.startQuestionLocked()
	} else {
		c.index = len(c.session)
		c.finishLocked()
		s := *c.summary
		record = &s
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if record != nil {
		c.record(*record)
	}
	c.notify(snap)
	return true
}

// Reset abandons the current session without recording it.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.phase == PhaseInProgress {
		c.logger.Info("session abandoned", "session_id", c.id, "index", c.index)
	}
	c.stopTimerLocked()
	c.phase = PhaseNotStarted
	c.id = ""
	c.session = nil
	c.index = 0
	c.score = 0
	c.streak = 0
	c.remaining = 0
	c.summary = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Summary returns the result of the finished session.
func (c *Controller) Summary() (Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.summary == nil {
		return Summary{}, false
	}
	return *c.summary, true
}

// TimeLimit returns the per-question countdown length.
func (c *Controller) TimeLimit() int {
	return c.timeLimit
}

// LoadHistory returns past sessions, most recent first.
func (c *Controller) LoadHistory(ctx context.Context) []history.Entry {
	if c.history == nil {
		return []history.Entry{}
	}
	return c.history.LoadAll(ctx)
}

// ClearHistory removes every past session. Failures are logged and returned.
func (c *Controller) ClearHistory(ctx context.Context) error {
	if c.history == nil {
		return nil
	}
	if err := c.history.Clear(ctx); err != nil {
		c.logger.Warn("clear history failed", "error", err)
		return err
	}
	return nil
}

// LastPlayer returns the player name of the most recent session, or "".
func (c *Controller) LastPlayer(ctx context.Context) string {
	if c.history == nil {
		return ""
	}
	if e, ok := history.Latest(ctx, c.history); ok {
		return e.Player
	}
	return ""
}

// resolveWithoutAnswer resolves the active question with no answer. A
// non-zero token restricts it to the countdown that token identifies.
func (c *Controller) resolveWithoutAnswer(token uint64, expired bool) bool {
	c.mu.Lock()
	if token != 0 && token != c.token {
		c.mu.Unlock()
		return false
	}
	q := c.activeLocked()
	if q == nil {
		c.mu.Unlock()
		return false
	}

	c.stopTimerLocked()
	q.UserAnswer = UserAnswer{Kind: AnswerNone}
	c.streak = 0
	if expired {
		c.remaining = 0
		c.logger.Debug("question timed out", "session_id", c.id, "index", c.index)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return true
}

func (c *Controller) onTick(token uint64, remaining int) {
	c.mu.Lock()
	if token != c.token || c.activeLocked() == nil {
		c.mu.Unlock()
		return
	}
	c.remaining = remaining
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) onExpire(token uint64) {
	c.resolveWithoutAnswer(token, true)
}

// activeLocked returns the active question if it is still unresolved.
func (c *Controller) activeLocked() *SessionQuestion {
	if c.phase != PhaseInProgress || c.index >= len(c.session) {
		return nil
	}
	q := &c.session[c.index]
	if q.UserAnswer.Resolved() {
		return nil
	}
	return q
}

func (c *Controller) startQuestionLocked() {
	c.token++
	token := c.token
	c.remaining = c.timeLimit
	c.timer.Start(c.timeLimit,
		func(remaining int) { c.onTick(token, remaining) },
		func() { c.onExpire(token) },
	)
}

func (c *Controller) stopTimerLocked() {
	c.timer.Stop()
	c.token++
}

func (c *Controller) finishLocked() {
	c.stopTimerLocked()
	c.phase = PhaseFinished
	s := BuildSummary(c.session, c.score, c.streak)
	s.SessionID = c.id
	s.Player = c.player
	s.Category = c.category
	s.Date = c.now()
	s.Duration = s.Date.Sub(c.startedAt)
	c.summary = &s

	c.logger.Info("session finished",
		"session_id", c.id,
		"score", s.Score,
		"total", s.Total,
		"badges", len(s.Badges),
	)
}

func (c *Controller) record(s Summary) {
	if c.history == nil {
		return
	}
	if err := c.history.Append(context.Background(), s.Entry()); err != nil {
		c.logger.Warn("save history failed", "session_id", s.SessionID, "error", err)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	c.seq++
	snap := Snapshot{
		Seq:       c.seq,
		Phase:     c.phase,
		SessionID: c.id,
		Player:    c.player,
		Category:  c.category,
		Index:     c.index,
		Total:     len(c.session),
		Score:     c.score,
		Streak:    c.streak,
		Remaining: c.remaining,
		TimeLimit: c.timeLimit,
	}
	if c.phase == PhaseNotStarted {
		snap.Player = ""
		snap.Category = ""
	}
	if c.phase == PhaseInProgress && c.index < len(c.session) {
		snap.Question = newQuestionView(c.session[c.index])
	}
	if c.summary != nil {
		s := *c.summary
		snap.Summary = &s
	}
	return snap
}

func (c *Controller) notify(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}
