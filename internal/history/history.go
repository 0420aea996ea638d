// Package history keeps a bounded, most-recent-first log of finished sessions.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	// RecordName is the name of the record holding the serialized log.
	RecordName = "smartquiz_history_v1"

	// MaxEntries caps the number of entries kept.
	MaxEntries = 50
)

// ErrPersistenceUnavailable is returned when the backing store cannot be
// written or cleared.
var ErrPersistenceUnavailable = errors.New("history persistence unavailable")

// Entry summarizes one finished session. Entries are never edited.
type Entry struct {
	Player string    `json:"player"`
	Date   time.Time `json:"date"`
	Score  int       `json:"score"`
	Total  int       `json:"total"`
	Badges []string  `json:"badges"`
}

// Store is the session history log.
type Store interface {
	// Append prepends e and drops entries beyond MaxEntries.
	Append(ctx context.Context, e Entry) error

	// LoadAll returns all entries, most recent first. A missing, unreadable,
	// or corrupted log yields an empty result.
	LoadAll(ctx context.Context) []Entry

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// RecordStore persists named opaque records.
type RecordStore interface {
	// Get returns the record's value, or nil with no error when it is absent.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put creates or replaces the record.
	Put(ctx context.Context, name string, value []byte) error

	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, name string) error
}

// Log is a Store serialized as a JSON array inside a single record.
// Append and Clear are serialized so concurrent sessions sharing a Log do
// not overwrite each other.
type Log struct {
	records RecordStore
	logger  *slog.Logger

	mu sync.Mutex
}

// NewLog returns a Log persisted in records. A nil logger discards warnings.
func NewLog(records RecordStore, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Log{records: records, logger: logger}
}

// Append implements Store. When the existing record cannot be read nothing
// is written, so a failed read never discards stored entries.
func (l *Log) Append(ctx context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.records.Get(ctx, RecordName)
	if err != nil {
		return fmt.Errorf("%w: read: %w", ErrPersistenceUnavailable, err)
	}
	entries := append([]Entry{e}, l.decode(data)...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	data, err = json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersistenceUnavailable, err)
	}
	if err := l.records.Put(ctx, RecordName, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	return nil
}

// LoadAll implements Store.
func (l *Log) LoadAll(ctx context.Context) []Entry {
	data, err := l.records.Get(ctx, RecordName)
	if err != nil {
		l.logger.Warn("history unreadable", "error", err)
		return []Entry{}
	}
	return l.decode(data)
}

// decode parses a stored record. A corrupted record counts as empty.
func (l *Log) decode(data []byte) []Entry {
	if len(data) == 0 {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		l.logger.Warn("history corrupted, ignoring", "error", err)
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Clear implements Store.
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.records.Delete(ctx, RecordName); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	return nil
}

// Latest returns the most recent entry, if any.
func Latest(ctx context.Context, s Store) (Entry, bool) {
	entries := s.LoadAll(ctx)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}
