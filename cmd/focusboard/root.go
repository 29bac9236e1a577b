package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusboard/internal/backend"
	"github.com/sandeepkv93/focusboard/internal/config"
	"github.com/sandeepkv93/focusboard/internal/logging"
	"github.com/sandeepkv93/focusboard/internal/notify"
	"github.com/sandeepkv93/focusboard/internal/scheduler"
	"github.com/sandeepkv93/focusboard/internal/storage"
	"github.com/sandeepkv93/focusboard/internal/update"
)

type rootOptions struct {
	configPath string
	dbPath     string
}

// app is everything a command needs once config, logging and storage are up.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	repo   *storage.SQLiteRepository
	client backend.Client
	close  func()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "focusboard",
		Short:         "Plan todos on a calendar by dragging them, then focus on them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()
			return runTUI(cmd.Context(), a)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/focusboard/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "sqlite database path (overrides storage.path)")
	cmd.AddCommand(newAddCmd(opts))
	return cmd
}

func openApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Storage.Path = opts.dbPath
	}

	logger, closeLog, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	repo, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	logger.Info("storage opened", "path", cfg.Storage.Path)

	return &app{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		client: backend.NewLocal(repo),
		close: func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close storage failed", "err", err)
			}
			_ = closeLog()
		},
	}, nil
}

func runTUI(parent context.Context, a *app) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGTERM)
	defer cancel()

	engine := scheduler.NewEngine(a.cfg.Scheduler.Buffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(update.Deps{
		Client:    a.client,
		Scheduler: engine,
		Notifier:  notify.Logged(notify.New(a.cfg.Notifications.Desktop), a.logger),
		Logger:    a.logger,
		Config:    a.cfg,
		Context:   ctx,
	})
	defer m.Close()

	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	a.logger.Info("tui started")
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}
	a.logger.Info("tui stopped")
	return nil
}
