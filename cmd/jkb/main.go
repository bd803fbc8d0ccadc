package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/app"
	"github.com/healthkathon/jkb/internal/config"
	"github.com/healthkathon/jkb/internal/database"
	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/logging"
	"github.com/healthkathon/jkb/internal/service"
	"github.com/healthkathon/jkb/internal/settings"
	"github.com/healthkathon/jkb/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := logging.New(logging.Options{AppName: "jkb", Level: cfg.Log.Level, Path: cfg.Log.Path})
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("exit", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := database.SeedDefaults(ctx, db); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}

	catalog, err := i18n.New(cfg.UI.Language)
	if err != nil {
		logger.Warn("unknown language, using id", zap.String("language", cfg.UI.Language), zap.Error(err))
		catalog = i18n.MustNew("id")
	}

	apis, err := service.New(cfg.API, logger.Named("service"))
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}

	a := app.New(app.Deps{
		API:        apis,
		Settings:   settings.NewStore(db, logger.Named("settings")),
		Catalog:    catalog,
		SplashHold: cfg.UI.SplashDelay,
		Log:        logger,
	})
	defer a.Close()

	model := tui.New(ctx, a, catalog, logger.Named("tui"))
	if err := a.Start(); err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
