// Package index keeps an in-memory file index over the configured base dirs
// and answers ranked name searches against it.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"quicksearch/internal/config"
	"quicksearch/internal/domain"
	"quicksearch/internal/eventbus"
)

// ErrScanInProgress is returned when a rebuild of the same set is already running
var ErrScanInProgress = errors.New("scan already in progress")

// Options configures an Index
type Options struct {
	DefaultDirs        []string
	ExtendedDirs       []string
	Exclude            config.Rules
	ExcludeFromDefault config.Rules
	MatchMode          string
	Workers            int
	MaxResults         int    // 0 means unlimited
	Store              *Store // optional snapshot store
}

// OptionsFromConfig maps the search settings onto index options
func OptionsFromConfig(s config.SearchSettings) Options {
	return Options{
		DefaultDirs:        s.DefaultDirs,
		ExtendedDirs:       s.ExtendedDirs,
		Exclude:            s.Exclude,
		ExcludeFromDefault: s.ExcludeFromDefault,
		MatchMode:          s.MatchMode,
		Workers:            Workers(s.MaxWorkersPercent),
		MaxResults:         s.MaxResults,
	}
}

// Index is safe for concurrent use. Searches read an immutable snapshot
// that rebuilds swap wholesale.
type Index struct {
	bus     eventbus.EventBus
	logger  zerolog.Logger
	opts    Options
	exclude Rules
	moveOut Rules
	matcher matcher
	walker  *walker
	now     func() time.Time

	mu           sync.RWMutex
	defaults     []domain.Entry
	extended     []domain.Entry
	defaultRoots []string
	movedRoots   []string
	scanning     map[bool]bool
}

// New creates an empty index. Call Rebuild or LoadSnapshot to fill it.
func New(opts Options, bus eventbus.EventBus, logger zerolog.Logger) (*Index, error) {
	exclude, err := CompileRules(opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude rules: %w", err)
	}
	moveOut, err := CompileRules(opts.ExcludeFromDefault)
	if err != nil {
		return nil, fmt.Errorf("exclude_from_default rules: %w", err)
	}

	roots := make([]string, 0, len(opts.DefaultDirs))
	for _, d := range opts.DefaultDirs {
		roots = append(roots, dirPath(expandHome(d)))
	}

	return &Index{
		bus:          bus,
		logger:       logger,
		opts:         opts,
		exclude:      exclude,
		moveOut:      moveOut,
		matcher:      newMatcher(opts.MatchMode),
		walker:       &walker{logger: logger},
		now:          time.Now,
		defaultRoots: roots,
		scanning:     make(map[bool]bool),
	}, nil
}

// Rebuild walks the default or extended dirs and swaps in the new entries
func (ix *Index) Rebuild(ctx context.Context, extended bool) error {
	ix.mu.Lock()
	if ix.scanning[extended] {
		ix.mu.Unlock()
		return ErrScanInProgress
	}
	ix.scanning[extended] = true
	walkOpts := ix.walkOptions(extended)
	ix.mu.Unlock()

	defer func() {
		ix.mu.Lock()
		ix.scanning[extended] = false
		ix.mu.Unlock()
	}()

	ix.publish(eventbus.IndexStartedEvent{Roots: walkOpts.roots, Extended: extended})
	start := time.Now()

	result, err := ix.walker.walk(ctx, walkOpts)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			ix.publish(eventbus.ErrorEvent{Message: "Failed to index files", Err: err})
		}
		return fmt.Errorf("failed to walk %v: %w", walkOpts.roots, err)
	}

	ix.mu.Lock()
	if extended {
		ix.extended = result.entries
	} else {
		ix.defaults = result.entries
		ix.movedRoots = dedupe(result.moved)
	}
	ix.mu.Unlock()

	took := time.Since(start)
	ix.logger.Info().
		Bool("extended", extended).
		Int("entries", len(result.entries)).
		Dur("took", took).
		Msg("index rebuilt")

	if ix.opts.Store != nil {
		if err := ix.opts.Store.Replace(ctx, extended, result.entries); err != nil {
			ix.logger.Warn().Err(err).Msg("failed to save index snapshot")
		}
	}

	ix.publish(eventbus.IndexCompletedEvent{Extended: extended, Entries: len(result.entries), Took: took})
	return nil
}

// walkOptions must be called with mu held
func (ix *Index) walkOptions(extended bool) walkOptions {
	opts := walkOptions{
		exclude:  ix.exclude,
		extended: extended,
		workers:  ix.opts.Workers,
		skip:     make(map[string]bool),
	}

	if !extended {
		opts.roots = ix.defaultRoots
		opts.moveOut = ix.moveOut
		for _, d := range ix.opts.ExtendedDirs {
			opts.skip[dirPath(expandHome(d))] = true
		}
		return opts
	}

	for _, d := range ix.opts.ExtendedDirs {
		opts.roots = append(opts.roots, dirPath(expandHome(d)))
	}
	opts.roots = append(opts.roots, ix.movedRoots...)
	for _, root := range ix.defaultRoots {
		opts.skip[root] = true
	}
	return opts
}

// LoadSnapshot fills the index from the store without walking
func (ix *Index) LoadSnapshot(ctx context.Context) error {
	if ix.opts.Store == nil {
		return nil
	}

	defaults, err := ix.opts.Store.Load(ctx, false)
	if err != nil {
		return err
	}
	extended, err := ix.opts.Store.Load(ctx, true)
	if err != nil {
		return err
	}

	ix.mu.Lock()
	ix.defaults = defaults
	ix.extended = extended
	ix.mu.Unlock()

	ix.publish(eventbus.SnapshotLoadedEvent{Entries: len(defaults) + len(extended)})
	return nil
}

// Search returns the paths matching a search line, best first.
// Directories end with a separator.
func (ix *Index) Search(ctx context.Context, input string) ([]string, error) {
	q := ParseQuery(input)
	if q.Name == "" {
		return []string{}, nil
	}

	ix.mu.RLock()
	sets := [][]domain.Entry{ix.defaults}
	if q.Extended {
		sets = append(sets, ix.extended)
	}
	roots := ix.defaultRoots
	ix.mu.RUnlock()

	now := ix.now()
	var ranked []rankedEntry
	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates := set
		if len(q.Extensions) > 0 {
			candidates = make([]domain.Entry, 0, len(set)/4)
			for _, e := range set {
				if q.allows(e) {
					candidates = append(candidates, e)
				}
			}
		}

		for _, m := range ix.matcher.match(q.Name, candidates) {
			ranked = append(ranked, rankedEntry{
				entry:  m.entry,
				points: score(m.entry, q.Name, m.index, roots, now),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].points != ranked[j].points {
			return ranked[i].points > ranked[j].points
		}
		return ranked[i].entry.Path < ranked[j].entry.Path
	})

	if ix.opts.MaxResults > 0 && len(ranked) > ix.opts.MaxResults {
		ranked = ranked[:ix.opts.MaxResults]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.entry.Path
	}
	return out, nil
}

// Progress reports the indexing state
func (ix *Index) Progress() domain.IndexProgress {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return domain.IndexProgress{
		IsIndexing: ix.scanning[false] || ix.scanning[true],
		Entries:    len(ix.defaults) + len(ix.extended),
		Roots:      append([]string(nil), ix.defaultRoots...),
	}
}

// Len returns the number of indexed entries
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.defaults) + len(ix.extended)
}

// DefaultRoots returns the cleaned default base dirs
func (ix *Index) DefaultRoots() []string {
	return append([]string(nil), ix.defaultRoots...)
}

func (ix *Index) publish(e eventbus.DomainEvent) {
	if ix.bus != nil {
		ix.bus.Publish(e)
	}
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
