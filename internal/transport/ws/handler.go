// Package ws exposes the session commands over a WebSocket so a browser page
// on the player's machine can drive a quiz. Every connection gets its own
// controller; nothing is shared between connections except the history log.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/history"
	"github.com/abhisek/smartquiz/internal/session"
	"github.com/abhisek/smartquiz/internal/timer"
)

// Message types exchanged over the socket.
const (
	TypeStart        = "start"
	TypeAnswer       = "answer"
	TypeSkip         = "skip"
	TypeNext         = "next"
	TypeReset        = "reset"
	TypeHistory      = "history"
	TypeClearHistory = "clearHistory"
	TypeExplain      = "explain"

	TypeState       = "state"
	TypeExplanation = "explanation"
	TypeError       = "error"
)

const sendBuffer = 32

// Explainer fills in explanations the bank does not carry.
type Explainer interface {
	Enabled() bool
	Explain(ctx context.Context, q bank.Question) (string, error)
}

// Options configures a Handler.
type Options struct {
	Questions session.QuestionSource
	History   history.Store

	TimeLimit         int
	QuickBonusPercent int

	// Unit is the wall-clock length of one countdown unit; 0 means one second.
	Unit time.Duration

	// Explainer is optional.
	Explainer Explainer
	Logger    *slog.Logger
}

// Handler upgrades HTTP requests and runs one quiz per connection.
type Handler struct {
	opts     Options
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler returns a Handler for opts.
func NewHandler(opts Options) *Handler {
	if opts.Unit <= 0 {
		opts.Unit = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// checkOrigin accepts clients without an Origin header, pages served by this
// host, and pages served from the loopback interface. Any other site is
// refused so it cannot drive the player's quiz or clear their history.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Routes returns a mux serving /ws and /healthz.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", h.ServeWS)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type startPayload struct {
	Category bank.Category `json:"category"`
	Count    int           `json:"count"`
	Name     string        `json:"name"`
}

type answerPayload struct {
	Choice int `json:"choice"`
}

type explainPayload struct {
	Index int `json:"index"`
}

type explanationPayload struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs a quiz until the client disconnects.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := newConnection(h, conn)
	c.run(ctx)
}

// connection is one client and the controller it drives.
type connection struct {
	h    *Handler
	conn *websocket.Conn
	ctrl *session.Controller

	send    chan outboundMessage
	pending chan struct{}
	done    chan struct{}

	mu     sync.Mutex
	latest session.Snapshot
	fresh  bool

	sendMu sync.Mutex
}

func newConnection(h *Handler, conn *websocket.Conn) *connection {
	c := &connection{
		h:       h,
		conn:    conn,
		send:    make(chan outboundMessage, sendBuffer),
		pending: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	c.ctrl = session.NewController(session.Options{
		Questions:         h.opts.Questions,
		Timer:             timer.New(h.opts.Unit),
		History:           h.opts.History,
		TimeLimit:         h.opts.TimeLimit,
		QuickBonusPercent: h.opts.QuickBonusPercent,
		Logger:            h.logger,
		OnChange:          c.publish,
	})
	return c
}

// publish keeps the newest snapshot. Timer callbacks run on their own
// goroutine, so snapshots may arrive out of order; older ones are dropped.
func (c *connection) publish(snap session.Snapshot) {
	c.mu.Lock()
	if snap.Seq <= c.latest.Seq {
		c.mu.Unlock()
		return
	}
	c.latest = snap
	c.fresh = true
	c.mu.Unlock()

	select {
	case c.pending <- struct{}{}:
	default:
	}
}

func (c *connection) takeLatest() (session.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fresh {
		return session.Snapshot{}, false
	}
	c.fresh = false
	return c.latest, true
}

func (c *connection) run(ctx context.Context) {
	writerDone := make(chan struct{})
	forwardDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range c.send {
			if err := c.conn.WriteJSON(msg); err != nil {
				c.h.logger.Debug("ws write failed", "error", err)
				// Keep draining so producers never block on a dead socket.
				for range c.send {
				}
				return
			}
		}
	}()

	go func() {
		defer close(forwardDone)
		for {
			select {
			case <-c.pending:
				if snap, ok := c.takeLatest(); ok {
					c.emit(TypeState, snap)
				}
			case <-c.done:
				return
			}
		}
	}()

	c.publish(c.ctrl.Snapshot())

	for {
		var in inboundMessage
		if err := c.conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.h.logger.Debug("ws read ended", "error", err)
			}
			break
		}
		c.handle(ctx, in)
	}

	c.ctrl.Reset()
	close(c.done)
	<-forwardDone
	c.closeSend()
	<-writerDone
}

func (c *connection) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	close(c.send)
	c.send = nil
}

// emit queues msg unless the connection is shutting down.
func (c *connection) emit(typ string, payload any) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.send == nil {
		return
	}
	select {
	case c.send <- outboundMessage{Type: typ, Payload: payload}:
	case <-c.done:
	}
}

func (c *connection) fail(message string) {
	c.emit(TypeError, errorPayload{Message: message})
}

func (c *connection) handle(ctx context.Context, in inboundMessage) {
	switch in.Type {
	case TypeStart:
		var p startPayload
		if err := decode(in.Payload, &p); err != nil {
			c.fail("invalid start payload")
			return
		}
		if err := c.ctrl.Start(p.Category, p.Count, p.Name); err != nil {
			c.fail(err.Error())
		}
	case TypeAnswer:
		var p answerPayload
		if err := decode(in.Payload, &p); err != nil {
			c.fail("invalid answer payload")
			return
		}
		c.ctrl.SubmitAnswer(p.Choice)
	case TypeSkip:
		c.ctrl.SkipCurrent()
	case TypeNext:
		c.ctrl.Advance()
	case TypeReset:
		c.ctrl.Reset()
	case TypeHistory:
		entries := c.ctrl.LoadHistory(ctx)
		if entries == nil {
			entries = []history.Entry{}
		}
		c.emit(TypeHistory, entries)
	case TypeClearHistory:
		if err := c.ctrl.ClearHistory(ctx); err != nil {
			c.fail("could not clear history")
			return
		}
		c.emit(TypeHistory, []history.Entry{})
	case TypeExplain:
		var p explainPayload
		if err := decode(in.Payload, &p); err != nil {
			c.fail("invalid explain payload")
			return
		}
		c.explain(ctx, p.Index)
	default:
		c.fail("unsupported message type")
	}
}

func (c *connection) explain(ctx context.Context, index int) {
	summary, ok := c.ctrl.Summary()
	if !ok {
		c.fail("no finished session")
		return
	}
	if index < 0 || index >= len(summary.Review) {
		c.fail("question index out of range")
		return
	}
	item := summary.Review[index]
	if item.Explanation != "" {
		c.emit(TypeExplanation, explanationPayload{Index: index, Text: item.Explanation})
		return
	}
	if c.h.opts.Explainer == nil || !c.h.opts.Explainer.Enabled() {
		c.fail("explanations are not available")
		return
	}
	text, err := c.h.opts.Explainer.Explain(ctx, item.Question())
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.h.logger.Warn("explain failed", "question_id", item.QuestionID, "error", err)
		}
		c.fail("could not fetch an explanation")
		return
	}
	c.emit(TypeExplanation, explanationPayload{Index: index, Text: text})
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	return json.Unmarshal(raw, v)
}
