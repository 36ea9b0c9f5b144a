package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/jackzampolin/promptgen/internal/config"
	"github.com/jackzampolin/promptgen/internal/home"
	"github.com/jackzampolin/promptgen/internal/menu"
	"github.com/jackzampolin/promptgen/internal/repository"
	"github.com/jackzampolin/promptgen/internal/store"
)

// app is the state shared by every command: resolved home, live config,
// logger, and the collection file.
type app struct {
	home   *home.Dir
	cfg    *config.Manager
	level  *slog.LevelVar
	logger *slog.Logger
	store  *store.File
}

// newApp resolves the home directory and loads config from the persistent
// flags. Logs go to logOut at the configured level.
func newApp(logOut io.Writer) (*app, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}

	mgr, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level := new(slog.LevelVar)
	lvl, _ := cfg.LogLevel()
	level.Set(lvl)
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: level,
	}))

	path := storePath
	if path == "" {
		path = cfg.StorePath(h.StorePath())
	}

	logger.Debug("configuration loaded",
		"home", h.Path(),
		"config_file", mgr.File(),
		"store", path,
	)

	return &app{
		home:   h,
		cfg:    mgr,
		level:  level,
		logger: logger,
		store:  store.NewFile(path, cfg.Store.Indent, logger),
	}, nil
}

// openRepo loads the collection. found is false when there was no file yet.
func (a *app) openRepo(ctx context.Context) (repo *repository.Repository, found bool, err error) {
	repo, err = repository.Open(ctx, a.store, a.logger)
	if errors.Is(err, store.ErrNotFound) {
		return repo, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return repo, true, nil
}

// watch reloads config on file edits and keeps the log level in sync.
func (a *app) watch() {
	a.cfg.OnChange(func(cfg *config.Config) {
		if lvl, err := cfg.LogLevel(); err == nil {
			a.level.Set(lvl)
		}
		a.logger.Info("configuration reloaded", "file", a.cfg.File())
	})
	a.cfg.WatchConfig()
}

// menuSettings maps the current config onto session settings.
func (a *app) menuSettings() menu.Settings {
	cfg := a.cfg.Get()
	pause, err := cfg.PauseDuration()
	if err != nil {
		pause = menu.DefaultSettings().Pause
	}
	return menu.Settings{
		Pause:       pause,
		ClearScreen: cfg.UI.ClearScreen,
		Clipboard:   cfg.Clipboard.Enabled,
		Indent:      cfg.Store.Indent,
	}
}
