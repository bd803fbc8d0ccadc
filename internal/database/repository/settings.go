package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Kind tags the stored type of a setting value.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
)

// Setting represents a settings row. Value is the textual encoding of the
// typed value named by Kind.
type Setting struct {
	Key       string
	Kind      Kind
	Value     string
	UpdatedAt time.Time
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SettingRepo handles settings.
type SettingRepo struct {
	db DBTX
}

func NewSettingRepo(db DBTX) *SettingRepo {
	return &SettingRepo{db: db}
}

// Get returns the row for key. The bool is false when the key is absent.
func (r *SettingRepo) Get(ctx context.Context, key string) (Setting, bool, error) {
	var s Setting
	err := r.db.QueryRowContext(ctx, `SELECT key, kind, value, updated_at FROM settings WHERE key = ?`, key).
		Scan(&s.Key, &s.Kind, &s.Value, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Setting{}, false, nil
	}
	if err != nil {
		return Setting{}, false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return s, true, nil
}

func (r *SettingRepo) Upsert(ctx context.Context, s Setting) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO settings(key, kind, value, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
	 kind=excluded.kind,
	 value=excluded.value,
	 updated_at=excluded.updated_at;
	`, s.Key, s.Kind, s.Value)
	if err != nil {
		return fmt.Errorf("upsert setting %q: %w", s.Key, err)
	}
	return nil
}

func (r *SettingRepo) InsertIfAbsent(ctx context.Context, s Setting) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO settings(key, kind, value) VALUES (?, ?, ?)
	ON CONFLICT(key) DO NOTHING;
	`, s.Key, s.Kind, s.Value)
	if err != nil {
		return fmt.Errorf("seed setting %q: %w", s.Key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *SettingRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

func (r *SettingRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *SettingRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings`)
	return err
}
