package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/MisterMaroki/Superclip-sub001/internal/clipboard"
	"github.com/MisterMaroki/Superclip-sub001/internal/config"
	"github.com/MisterMaroki/Superclip-sub001/internal/pastestack"
	"github.com/MisterMaroki/Superclip-sub001/internal/store"
)

// Build-time variables (set via -ldflags)
var (
	Version   = "0.0.0-dev"
	GitCommit = "unknown"
)

const AppName = "Superclip"

// App wires the clipboard engine together: the monitor feeds the live
// history, every history change schedules a debounced save, and the
// paste stack session overlays the same live sequence.
type App struct {
	config  *config.Config
	logger  *slog.Logger
	history *clipboard.History
	store   *store.Store
	monitor *clipboard.Monitor
	session *pastestack.Session

	cancelSave func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg.Log.Level)

	historyPath, err := cfg.HistoryPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve history path: %w", err)
	}

	a := &App{
		config:  cfg,
		logger:  logger,
		history: clipboard.NewHistory(),
		store:   store.New(historyPath, cfg.History.Debounce, logger),
	}
	a.monitor = clipboard.NewMonitor(a.history, cfg, logger)
	a.session = pastestack.NewSession(a.history, a.monitor, logger)

	return a, nil
}

// Run loads the persisted history, starts the monitor, and blocks
// until ctx is cancelled. On the way out the latest history state is
// written synchronously so an in-flight debounce window cannot lose
// data.
func (a *App) Run(ctx context.Context) error {
	entries := a.store.Load()
	a.history.Replace(entries)
	a.logger.Info("history loaded", "entries", len(entries))

	// Subscribe after seeding so startup does not immediately
	// rewrite the document it just read.
	a.cancelSave = a.history.Subscribe(func() {
		a.store.ScheduleSave(a.history.Snapshot())
	})

	if err := a.monitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start clipboard monitor: %w", err)
	}

	a.logger.Info("started", "app", AppName, "version", Version)

	<-ctx.Done()

	a.shutdown()
	return nil
}

func (a *App) shutdown() {
	a.logger.Info("shutting down")

	a.session.End()
	a.monitor.Stop()
	if a.cancelSave != nil {
		a.cancelSave()
	}
	a.store.SaveImmediately(a.history.Snapshot())

	a.logger.Info("shutdown complete")
}

// History exposes the live sequence to the presentation layer.
func (a *App) History() *clipboard.History {
	return a.history
}

// Session exposes the paste stack session.
func (a *App) Session() *pastestack.Session {
	return a.session
}

// Store exposes the persistent store, e.g. for a "clear all history"
// action.
func (a *App) Store() *store.Store {
	return a.store
}

// Config exposes the loaded configuration.
func (a *App) Config() *config.Config {
	return a.config
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
