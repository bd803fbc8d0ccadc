// Package logging builds the process logger.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Mode selects the log encoding.
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

// Options configures New. Zero values pick defaults.
type Options struct {
	AppName string
	Level   string
	Path    string
	Mode    Mode
}

// New returns a file-backed logger and the atomic level that controls it.
// The mode is taken from JKB_ENV when Options.Mode is empty.
func New(opts Options) (*zap.Logger, zap.AtomicLevel) {
	if opts.AppName == "" {
		opts.AppName = "jkb"
	}
	if opts.Mode == "" {
		opts.Mode = DetectMode()
	}
	if opts.Path == "" {
		opts.Path = DefaultPath(opts.AppName, opts.Mode)
	}
	_ = os.MkdirAll(filepath.Dir(opts.Path), 0o755)

	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level, opts.Mode))
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    20, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if opts.Mode == ModeDev {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	log := zap.New(zapcore.NewCore(encoder, writer, level), zap.AddCaller()).
		With(zap.String("app", opts.AppName))
	log.Info("logger initialized", zap.String("mode", string(opts.Mode)), zap.String("path", opts.Path))
	return log, level
}

// DetectMode reads JKB_ENV.
func DetectMode() Mode {
	switch strings.ToLower(os.Getenv("JKB_ENV")) {
	case "dev", "development":
		return ModeDev
	default:
		return ModeProd
	}
}

// DefaultPath picks a state directory for the log file.
func DefaultPath(appName string, mode Mode) string {
	fileName := "app.log"
	if mode == ModeDev {
		fileName = "app-debug.log"
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, fileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", appName, fileName)
	}
	return filepath.Join(os.TempDir(), appName, fileName)
}

// ParseLevel maps a level name to a zap level. Unknown names fall back to
// debug in dev mode and info otherwise.
func ParseLevel(name string, mode Mode) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		if mode == ModeDev {
			return zap.DebugLevel
		}
		return zap.InfoLevel
	}
}
