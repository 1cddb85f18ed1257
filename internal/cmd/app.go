package cmd

import (
	"os"

	"github.com/fatih/color"

	"github.com/earoncy/cyberdiag/internal/catalog"
	"github.com/earoncy/cyberdiag/internal/config"
	"github.com/earoncy/cyberdiag/internal/logger"
	"github.com/earoncy/cyberdiag/internal/session"
	"github.com/earoncy/cyberdiag/internal/store"
)

// app bundles the wiring every command needs: config, logger, catalog and
// the session store.
type app struct {
	cfg   *config.Config
	log   *logger.Console
	cat   *catalog.Catalog
	store *store.Store
}

// newApp loads configuration and the question catalog and opens the session
// store. sessionFile, when non-empty, overrides the configured document
// path (used by tests and scripted runs).
func newApp(sessionFile string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewConsole(os.Stderr, cfg.LogLevel)
	if cfg.NoColor {
		color.NoColor = true
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}

	path := sessionFile
	if path == "" {
		path, err = cfg.SessionPath()
		if err != nil {
			return nil, err
		}
	}

	return &app{
		cfg:   cfg,
		log:   log,
		cat:   cat,
		store: store.New(path, cat, log),
	}, nil
}

// loadOrNewSession rehydrates the persisted session or starts a fresh one.
func (a *app) loadOrNewSession() (*session.Session, error) {
	sess, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		a.log.Debugf("no persisted session, starting fresh")
		sess = session.New(a.cat)
	}
	return sess, nil
}

// historyPath resolves the history database path with an optional override.
func (a *app) historyPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return a.cfg.HistoryPath()
}
