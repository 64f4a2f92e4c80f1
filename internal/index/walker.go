package index

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"quicksearch/internal/domain"
)

// walkOptions describes one pass over a set of base dirs
type walkOptions struct {
	roots    []string
	exclude  Rules
	moveOut  Rules           // dirs matching are skipped and reported in walkResult.moved
	skip     map[string]bool // base dirs of the other set
	extended bool
	workers  int
}

type walkResult struct {
	entries []domain.Entry
	moved   []string
}

// Workers converts a share of the CPU threads into a worker count, rounding up
func Workers(percent float64) int {
	n := int(math.Ceil(percent * float64(runtime.NumCPU())))
	if n < 1 {
		return 1
	}
	return n
}

// walker collects entries below a set of roots. Each top-level subdirectory
// of a root is walked by its own goroutine.
type walker struct {
	logger zerolog.Logger
}

func (w *walker) walk(ctx context.Context, opts walkOptions) (walkResult, error) {
	var (
		mu     sync.Mutex
		result walkResult
	)
	collect := func(entries []domain.Entry, moved []string) {
		mu.Lock()
		result.entries = append(result.entries, entries...)
		result.moved = append(result.moved, moved...)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))

	for _, root := range opts.roots {
		root = dirPath(root)
		dirents, err := os.ReadDir(root)
		if err != nil {
			w.logger.Warn().Err(err).Str("root", root).Msg("skipping unreadable root")
			continue
		}

		var top []domain.Entry
		for _, d := range dirents {
			if err := gctx.Err(); err != nil {
				break
			}
			path := filepath.Join(root, d.Name())
			if !d.IsDir() {
				if e, ok := newEntry(path, d, opts.extended); ok {
					top = append(top, e)
				}
				continue
			}

			keep, moved := w.admitDir(path, opts)
			if moved {
				collect(nil, []string{dirPath(path)})
			}
			if !keep {
				continue
			}
			if e, ok := newEntry(path, d, opts.extended); ok {
				top = append(top, e)
			}

			g.Go(func() error {
				entries, moved, err := w.walkDir(gctx, path, opts)
				collect(entries, moved)
				return err
			})
		}
		collect(top, nil)
	}

	if err := g.Wait(); err != nil {
		return walkResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return walkResult{}, err
	}
	return result, nil
}

// admitDir applies the rules to a directory below a root
func (w *walker) admitDir(path string, opts walkOptions) (keep, moved bool) {
	dir := dirPath(path)
	if opts.skip[dir] {
		return false, false
	}
	if opts.exclude.Match(dir) {
		return false, false
	}
	if opts.moveOut.Match(dir) {
		return false, true
	}
	return true, false
}

// walkDir walks one subtree. Unreadable directories are skipped.
func (w *walker) walkDir(ctx context.Context, root string, opts walkOptions) ([]domain.Entry, []string, error) {
	var (
		entries []domain.Entry
		moved   []string
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			// permissions, vanished files
			w.logger.Debug().Err(err).Str("path", path).Msg("walk error")
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			keep, m := w.admitDir(path, opts)
			if m {
				moved = append(moved, dirPath(path))
			}
			if !keep {
				return fs.SkipDir
			}
		}

		if e, ok := newEntry(path, d, opts.extended); ok {
			entries = append(entries, e)
		}
		return nil
	})

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, nil, err
	}
	if err != nil {
		w.logger.Warn().Err(err).Str("root", root).Msg("walk failed")
	}
	return entries, moved, nil
}

// newEntry builds the index entry for a directory entry
func newEntry(path string, d fs.DirEntry, extended bool) (domain.Entry, bool) {
	info, err := d.Info()
	if err != nil {
		return domain.Entry{}, false
	}

	parent := dirPath(filepath.Dir(path))
	e := domain.Entry{
		Dir:      parent,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Extended: extended,
	}

	if d.IsDir() {
		e.Path = dirPath(path)
		e.Name = d.Name()
		e.Ext = domain.FolderExt
		return e, true
	}

	e.Path = path
	ext := filepath.Ext(d.Name())
	name := strings.TrimSuffix(d.Name(), ext)
	if name == "" {
		// dotfiles such as .bashrc have no extension
		name, ext = d.Name(), ""
	}
	e.Name = name
	e.Ext = strings.ToLower(ext)
	return e, true
}
