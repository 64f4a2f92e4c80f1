// Package cli provides the command-line interface for quicksearch.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"quicksearch/internal/config"
	"quicksearch/internal/eventbus"
	"quicksearch/internal/index"
	"quicksearch/internal/logging"
	"quicksearch/internal/ui/services/query"
)

// Options are the global flags shared by every command
type Options struct {
	ConfigPath string
	LogLevel   string
	LogDir     string
	MaxResults int // overrides [ui] max_results when positive
}

// App holds the services every command needs
type App struct {
	Config     *config.Config
	ConfigSvc  config.ConfigService
	Bus        eventbus.EventBus
	Logs       *logging.Logs
	Logger     zerolog.Logger
	Classifier *query.Classifier
	Index      *index.Index

	store *index.Store
}

// NewApp opens the logs, loads the config and builds the classifier and index
func NewApp(opts Options) (*App, error) {
	logs, err := logging.Open(logging.Options{Dir: opts.LogDir, Level: opts.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("open logs: %w", err)
	}
	logger := logs.App

	app := &App{
		Logs:   logs,
		Logger: logger,
		Bus:    eventbus.New(logger),
	}

	app.ConfigSvc = config.NewConfigServiceWithBus(opts.ConfigPath, app.Bus)
	cfg, err := app.ConfigSvc.Load()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.MaxResults != 0 {
		cfg.UISettings.MaxResults = opts.MaxResults
		if err := cfg.Validate(); err != nil {
			app.Close()
			return nil, err
		}
	}
	app.Config = cfg
	logger.Info().Str("path", app.ConfigSvc.Path()).Msg("config loaded")

	app.Classifier, err = query.NewDefaultClassifier(bangEntries(cfg.Bangs))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load bangs: %w", err)
	}

	indexOpts := index.OptionsFromConfig(cfg.Search)
	if cfg.Index.CachePath != "" {
		store, err := index.OpenStore(cfg.Index.CachePath)
		if err != nil {
			// Searching still works, only the warm start is lost
			logger.Warn().Err(err).Str("path", cfg.Index.CachePath).Msg("index snapshot unavailable")
		} else {
			app.store = store
			indexOpts.Store = store
		}
	}

	app.Index, err = index.New(indexOpts, app.Bus, logging.WithComponent(logger, "index"))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return app, nil
}

// Close releases the store, the bus and the log files
func (a *App) Close() error {
	if a.Bus != nil {
		a.Bus.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to close index store")
		}
	}
	if a.Logs != nil {
		return a.Logs.Close()
	}
	return nil
}

func bangEntries(bangs []config.Bang) []query.BangEntry {
	out := make([]query.BangEntry, 0, len(bangs))
	for _, b := range bangs {
		out = append(out, query.BangEntry{Trigger: b.Trigger, Service: b.Service, URLTemplate: b.URL})
	}
	return out
}
