package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"quicksearch/internal/eventbus"
)

// Watcher signals when anything changes directly inside a root or one of its
// immediate subdirectories. fsnotify does not recurse, and watching every
// directory below $HOME would exhaust inotify watches.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    zerolog.Logger
	exclude   Rules
	events    chan string
	stop      chan struct{}
	debounce  *time.Timer
	delay     time.Duration
	mu        sync.Mutex
	closed    bool
	last      string
}

// NewWatcher creates a watcher over roots; changes are reported after delay of quiet
func NewWatcher(roots []string, exclude Rules, delay time.Duration, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		logger:    logger,
		exclude:   exclude,
		events:    make(chan string, 1),
		stop:      make(chan struct{}),
		delay:     delay,
	}

	added := 0
	for _, root := range roots {
		if err := w.addShallow(root); err != nil {
			logger.Warn().Err(err).Str("root", root).Msg("cannot watch root")
			continue
		}
		added++
	}
	if added == 0 && len(roots) > 0 {
		fsw.Close()
		return nil, errors.New("no watchable roots")
	}

	go w.run()
	return w, nil
}

// addShallow watches dir and its direct subdirectories
func (w *Watcher) addShallow(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(dir, d.Name())
		if w.exclude.Match(path) {
			continue
		}
		// unreadable subdirectories are ignored
		_ = w.fsWatcher.Add(path)
	}
	return nil
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}

			w.mu.Lock()
			w.last = event.Name
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.debounce = time.AfterFunc(w.delay, w.signal)
			w.mu.Unlock()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Debug().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) signal() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	select {
	case w.events <- w.last:
	default: // a refresh is already pending
	}
}

// Events delivers the last changed path after each quiet period
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Stop shuts down the watcher
func (w *Watcher) Stop() {
	close(w.stop)
	w.fsWatcher.Close()
}

// Watch rebuilds the default set whenever w reports a change, until ctx ends
func (ix *Index) Watch(ctx context.Context, w *Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-w.Events():
			if !ok {
				return
			}
			ix.publish(eventbus.IndexInvalidatedEvent{Path: path})
			if err := ix.Rebuild(ctx, false); err != nil && !errors.Is(err, ErrScanInProgress) && ctx.Err() == nil {
				ix.logger.Warn().Err(err).Msg("refresh after change failed")
			}
		}
	}
}
