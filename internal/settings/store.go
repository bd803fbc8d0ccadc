// Package settings is the typed key/value store behind user preferences.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/database/repository"
)

// Well-known keys.
const (
	KeyUserName            = "user.name"
	KeyOnboardingCompleted = "onboarding.completed"
)

// ErrKindMismatch is returned when a key holds a value of another type.
var ErrKindMismatch = errors.New("settings: stored value has a different type")

// Store reads and writes typed settings. Getters return def when the key is
// absent.
type Store struct {
	repo *repository.SettingRepo
	log  *zap.Logger
}

// NewStore wraps a migrated database.
func NewStore(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{repo: repository.NewSettingRepo(db), log: log.Named("settings")}
}

func (s *Store) GetString(ctx context.Context, key, def string) (string, error) {
	raw, ok, err := s.get(ctx, key, repository.KindString)
	if err != nil || !ok {
		return def, err
	}
	return raw, nil
}

func (s *Store) PutString(ctx context.Context, key, value string) error {
	return s.put(ctx, key, repository.KindString, value)
}

func (s *Store) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	raw, ok, err := s.get(ctx, key, repository.KindBool)
	if err != nil || !ok {
		return def, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("decode %q: %w", key, err)
	}
	return v, nil
}

func (s *Store) PutBool(ctx context.Context, key string, value bool) error {
	return s.put(ctx, key, repository.KindBool, strconv.FormatBool(value))
}

func (s *Store) GetInt(ctx context.Context, key string, def int64) (int64, error) {
	raw, ok, err := s.get(ctx, key, repository.KindInt)
	if err != nil || !ok {
		return def, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def, fmt.Errorf("decode %q: %w", key, err)
	}
	return v, nil
}

func (s *Store) PutInt(ctx context.Context, key string, value int64) error {
	return s.put(ctx, key, repository.KindInt, strconv.FormatInt(value, 10))
}

func (s *Store) GetFloat(ctx context.Context, key string, def float64) (float64, error) {
	raw, ok, err := s.get(ctx, key, repository.KindFloat)
	if err != nil || !ok {
		return def, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("decode %q: %w", key, err)
	}
	return v, nil
}

func (s *Store) PutFloat(ctx context.Context, key string, value float64) error {
	return s.put(ctx, key, repository.KindFloat, strconv.FormatFloat(value, 'g', -1, 64))
}

func (s *Store) HasKey(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.repo.Get(ctx, key)
	return ok, err
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Keys lists every stored key in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.repo.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return keys, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	s.log.Info("settings cleared")
	return nil
}

func (s *Store) get(ctx context.Context, key string, kind repository.Kind) (string, bool, error) {
	row, ok, err := s.repo.Get(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	if row.Kind != kind {
		return "", false, fmt.Errorf("%w: %q is %s, want %s", ErrKindMismatch, key, row.Kind, kind)
	}
	return row.Value, true, nil
}

func (s *Store) put(ctx context.Context, key string, kind repository.Kind, value string) error {
	if err := s.repo.Upsert(ctx, repository.Setting{Key: key, Kind: kind, Value: value}); err != nil {
		return err
	}
	s.log.Debug("setting stored", zap.String("key", key), zap.String("kind", string(kind)))
	return nil
}
