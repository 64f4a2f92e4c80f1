package search

import (
	"context"
	"time"
)

// Searcher is the file-search backend
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// State holds the identity of the most recent request
type State struct {
	Query string
	Seq   uint64
}

// ResultsMsg carries one backend response back into the UI loop
type ResultsMsg struct {
	Seq     uint64
	Query   string
	Results []string
	Err     error
	Took    time.Duration
	Refresh bool // re-run of the same query after the index changed
}
