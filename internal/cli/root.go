package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"quicksearch/internal/eventbus"
	"quicksearch/internal/index"
	"quicksearch/internal/logging"
	"quicksearch/internal/opener"
	"quicksearch/internal/ui"
)

// watchDebounce delays a rebuild until file changes settle
const watchDebounce = 2 * time.Second

// NewRootCmd creates the root command for quicksearch
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "quicksearch",
		Short: "Find files, open websites and run bang searches from one prompt",
		Long: `quicksearch is a keyboard-driven launcher for the terminal.

Type a file name to search the indexed directories, a hostname such as
example.com to open it in the browser, or a bang such as "!gh cats" or
"cats !gh" to search an external service.

Search flags:
  /e           also search the extended directories
  <md,txt>     only these extensions (folder for directories)
  notes.md     a trailing extension filters as well`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), *opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/quicksearch/config.toml)")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.LogDir, "log-dir", "", "log directory (default $XDG_STATE_HOME/quicksearch)")
	flags.IntVarP(&opts.MaxResults, "max-results", "n", 0, "visible result rows, overrides [ui] max_results")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "quicksearch %s\n", version)
			fmt.Fprintf(out, "commit: %s\n", commit)
			fmt.Fprintf(out, "built: %s\n", buildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newClassifyCmd(opts))
	rootCmd.AddCommand(newIndexCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute(version, commit, buildDate string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(version, commit, buildDate).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// runTUI wires the index, opener and event bus into the Bubble Tea program
func runTUI(parent context.Context, opts Options) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	home, _ := os.UserHomeDir()
	model, err := ui.NewModel(app.Config, ui.Deps{
		Bus:        app.Bus,
		Classifier: app.Classifier,
		Searcher:   app.Index,
		Opener:     opener.New(app.Bus, app.Logs.History),
		Indexer:    app.Index,
		Logger:     logging.WithComponent(app.Logger, "ui"),
		Context:    ctx,
		Home:       home,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward index events to the UI. Send blocks until the program reads,
	// so it runs off the bus goroutine.
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			app.Logger.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventIndexStarted,
		eventbus.EventIndexCompleted,
		eventbus.EventSnapshotLoaded,
		eventbus.EventError,
	} {
		unsubscribe := app.Bus.Subscribe(t, forwardEvent)
		defer unsubscribe()
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			}
		}
	}()

	go startIndexing(ctx, app)

	app.Logger.Info().Msg("starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run UI: %w", err)
	}
	app.Logger.Info().Msg("UI exited normally")
	return nil
}

// startIndexing loads the snapshot, rebuilds both sets and keeps them fresh
func startIndexing(ctx context.Context, app *App) {
	logger := app.Logger
	ix := app.Index
	search := app.Config.Search

	if err := ix.LoadSnapshot(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to load index snapshot")
	}

	if err := ix.Rebuild(ctx, false); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("initial index build failed")
	}

	if search.Watch {
		w, err := index.NewWatcher(ix.DefaultRoots(), watcherRules(app), watchDebounce, logging.WithComponent(logger, "watcher"))
		if err != nil {
			logger.Warn().Err(err).Msg("file watcher unavailable")
		} else {
			go func() {
				defer w.Stop()
				ix.Watch(ctx, w)
			}()
		}
	}

	if err := ix.Rebuild(ctx, true); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("extended index build failed")
	}

	ix.Refresh(ctx, index.RefreshIntervals{
		Default:  time.Duration(search.DefaultRefreshSeconds) * time.Second,
		Extended: time.Duration(search.ExtendedRefreshSeconds) * time.Second,
	})
}

// watcherRules compiles the exclude rules for the watcher
func watcherRules(app *App) index.Rules {
	rules, err := index.CompileRules(app.Config.Search.Exclude)
	if err != nil {
		app.Logger.Warn().Err(err).Msg("exclude rules ignored by watcher")
		return index.Rules{}
	}
	return rules
}
