package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Value states mirror the three states of a field value.
const (
	StateValid   = "valid"
	StateInvalid = "invalid"
	StateEmpty   = "empty"
)

// Entry is one named field value. Value is RFC 3339 when State is valid and
// empty otherwise.
type Entry struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Format    string    `json:"format"`
	Locale    string    `json:"locale"`
	Value     string    `json:"value"`
	State     string    `json:"state"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HistoryEntry is one past write of a named value.
type HistoryEntry struct {
	Seq   int64     `json:"seq"`
	Name  string    `json:"name"`
	Value string    `json:"value"`
	State string    `json:"state"`
	At    time.Time `json:"at"`
}

var ErrNotFound = errors.New("not found")

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func (e notFoundError) Unwrap() error { return ErrNotFound }

// ValueStore persists named field values and every write to them in a
// SQLite file.
type ValueStore struct {
	db  *sql.DB
	now func() time.Time
}

func OpenValueStore(ctx context.Context, path string) (*ValueStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateValues(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &ValueStore{db: db, now: time.Now}, nil
}

func migrateValues(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS field_values (
			name TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			format TEXT NOT NULL,
			locale TEXT NOT NULL,
			value TEXT NOT NULL,
			state TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS value_history (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			state TEXT NOT NULL,
			at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_value_history_name ON value_history(name, seq);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '1');`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (s *ValueStore) Close() error { return s.db.Close() }

// Put upserts e and appends it to the name's history in one transaction.
// UpdatedAt is set by the store.
func (s *ValueStore) Put(ctx context.Context, e Entry) (Entry, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return Entry{}, errors.New("value name is empty")
	}
	switch e.State {
	case StateValid, StateInvalid, StateEmpty:
	default:
		return Entry{}, fmt.Errorf("unknown value state %q", e.State)
	}
	e.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)
	at := e.UpdatedAt.UnixMilli()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return Entry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO field_values(name, kind, format, locale, value, state, updated_at_unixms)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET kind=excluded.kind, format=excluded.format, locale=excluded.locale,
			value=excluded.value, state=excluded.state, updated_at_unixms=excluded.updated_at_unixms`,
		e.Name, e.Kind, e.Format, e.Locale, e.Value, e.State, at); err != nil {
		return Entry{}, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO value_history(name, value, state, at_unixms) VALUES(?, ?, ?, ?)`,
		e.Name, e.Value, e.State, at); err != nil {
		return Entry{}, err
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *ValueStore) Get(ctx context.Context, name string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT name, kind, format, locale, value, state, updated_at_unixms
		FROM field_values WHERE name = ?`, strings.TrimSpace(name))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, notFoundError{kind: "value", id: name}
	}
	return e, err
}

func (s *ValueStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, kind, format, locale, value, state, updated_at_unixms
		FROM field_values ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the value and its history.
func (s *ValueStore) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	res, err := tx.ExecContext(ctx, `DELETE FROM field_values WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFoundError{kind: "value", id: name}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM value_history WHERE name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}

// History returns the writes to name, newest first. limit <= 0 means all.
func (s *ValueStore) History(ctx context.Context, name string, limit int) ([]HistoryEntry, error) {
	q := `SELECT seq, name, value, state, at_unixms FROM value_history WHERE name = ? ORDER BY seq DESC`
	args := []any{name}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []HistoryEntry{}
	for rows.Next() {
		var h HistoryEntry
		var at int64
		if err := rows.Scan(&h.Seq, &h.Name, &h.Value, &h.State, &at); err != nil {
			return nil, err
		}
		h.At = time.UnixMilli(at).UTC()
		out = append(out, h)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var e Entry
	var at int64
	if err := r.Scan(&e.Name, &e.Kind, &e.Format, &e.Locale, &e.Value, &e.State, &at); err != nil {
		return Entry{}, err
	}
	e.UpdatedAt = time.UnixMilli(at).UTC()
	return e, nil
}
