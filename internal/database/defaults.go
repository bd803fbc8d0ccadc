package database

import (
	"context"
	"database/sql"

	"github.com/healthkathon/jkb/internal/database/repository"
)

// DefaultSettings are written on first start. Existing values are kept.
var DefaultSettings = []repository.Setting{
	{Key: "user.name", Kind: repository.KindString, Value: "Admin"},
	{Key: "onboarding.completed", Kind: repository.KindBool, Value: "false"},
}

// SeedDefaults ensures baseline settings exist for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	return Seed(ctx, db, DefaultSettings...)
}

// Seed inserts the settings that are not stored yet. Either all of them are
// written or none is.
func Seed(ctx context.Context, db *sql.DB, settings ...repository.Setting) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		repo := repository.NewSettingRepo(tx)
		for _, s := range settings {
			if err := repo.InsertIfAbsent(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
}
