package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, zap.WarnLevel, ParseLevel("WARNING", ModeProd))
	require.Equal(t, zap.ErrorLevel, ParseLevel(" error ", ModeProd))
	require.Equal(t, zap.InfoLevel, ParseLevel("", ModeProd))
	require.Equal(t, zap.DebugLevel, ParseLevel("", ModeDev))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jkb.log")

	log, level := New(Options{AppName: "jkb-test", Level: "warn", Path: path, Mode: ModeProd})
	require.Equal(t, zap.WarnLevel, level.Level())

	log.Warn("something odd", zap.String("screen", "menu"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"something odd"`)
	require.Contains(t, string(data), `"screen":"menu"`)
	require.NotContains(t, string(data), "logger initialized")
}

func TestDefaultPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	require.Equal(t, filepath.Join(dir, "jkb", "app-debug.log"), DefaultPath("jkb", ModeDev))
	require.Equal(t, filepath.Join(dir, "jkb", "app.log"), DefaultPath("jkb", ModeProd))
}
