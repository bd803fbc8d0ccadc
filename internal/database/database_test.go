package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/healthkathon/jkb/internal/database/repository"
)

func openMigrated(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jkb.db")
	require.NoError(t, RunMigrations(path))
	return path
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	path := openMigrated(t)
	require.NoError(t, RunMigrations(path))
}

func TestSeedDefaultsKeepsExistingValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := Open(openMigrated(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewSettingRepo(db)
	require.NoError(t, repo.Upsert(ctx, repository.Setting{Key: "user.name", Kind: repository.KindString, Value: "Sari"}))

	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	name, ok, err := repo.Get(ctx, "user.name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Sari", name.Value)

	done, ok, err := repo.Get(ctx, "onboarding.completed")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, repository.KindBool, done.Kind)
	require.Equal(t, "false", done.Value)

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"onboarding.completed", "user.name"}, keys)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := Open(openMigrated(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := context.Canceled
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings(key, kind, value) VALUES ('a', 'string', 'x')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, err := repository.NewSettingRepo(db).Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSeedWritesNothingWhenOneSettingFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := Open(openMigrated(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = Seed(ctx, db,
		repository.Setting{Key: "user.name", Kind: repository.KindString, Value: "Admin"},
		repository.Setting{Key: "theme", Kind: "colour", Value: "dark"},
	)
	require.Error(t, err)

	keys, err := repository.NewSettingRepo(db).Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)
}
