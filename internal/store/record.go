package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const recordsTable = "records"

// migrate creates the records table. The schema is a single key/value table,
// so it is managed with raw DDL rather than a generated ent schema.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

// RecordRepo stores named records in SQLite. It satisfies history.RecordStore.
type RecordRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Get returns the value of the named record, or nil when it does not exist.
func (r *RecordRepo) Get(ctx context.Context, name string) ([]byte, error) {
	query, args := builder().
		Select("value").
		From(entsql.Table(recordsTable)).
		Where(entsql.EQ("name", name)).
		Limit(1).
		Query()

	var value string
	err := r.drv.DB().QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %q: %w", name, err)
	}
	return []byte(value), nil
}

// Put creates or replaces the named record.
func (r *RecordRepo) Put(ctx context.Context, name string, value []byte) error {
	query, args := builder().
		Insert(recordsTable).
		Columns("name", "value", "updated_at").
		Values(name, string(value), time.Now().UTC().Format(time.RFC3339Nano)).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.drv.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put record %q: %w", name, err)
	}
	return nil
}

// Delete removes the named record if present.
func (r *RecordRepo) Delete(ctx context.Context, name string) error {
	query, args := builder().
		Delete(recordsTable).
		Where(entsql.EQ("name", name)).
		Query()

	if _, err := r.drv.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete record %q: %w", name, err)
	}
	return nil
}

// UpdatedAt returns when the named record was last written, or the zero time
// when it does not exist.
func (r *RecordRepo) UpdatedAt(ctx context.Context, name string) (time.Time, error) {
	query, args := builder().
		Select("updated_at").
		From(entsql.Table(recordsTable)).
		Where(entsql.EQ("name", name)).
		Query()

	var raw string
	err := r.drv.DB().QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("record %q timestamp: %w", name, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse record %q timestamp: %w", name, err)
	}
	return ts, nil
}
