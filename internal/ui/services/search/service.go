package search

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Service dispatches backend searches and drops superseded responses.
// Only the UI loop calls it.
type Service struct {
	state    *State
	searcher Searcher
	logger   zerolog.Logger
	cancel   context.CancelFunc
	timeout  time.Duration
}

// NewService creates a new search service
func NewService(searcher Searcher, logger zerolog.Logger) *Service {
	return &Service{
		state:    &State{},
		searcher: searcher,
		logger:   logger,
		timeout:  10 * time.Second,
	}
}

// Query returns the text of the most recent request
func (s *Service) Query() string {
	return s.state.Query
}

// Dispatch cancels any in-flight request and returns a command running a new one
func (s *Service) Dispatch(query string) tea.Cmd {
	return s.dispatch(query, false)
}

// Refresh re-runs the current query. Its response is marked so the caller
// can keep the user's position instead of starting over.
func (s *Service) Refresh() tea.Cmd {
	if s.state.Query == "" {
		return nil
	}
	return s.dispatch(s.state.Query, true)
}

func (s *Service) dispatch(query string, refresh bool) tea.Cmd {
	s.Cancel()
	s.state.Seq++
	s.state.Query = query

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.cancel = cancel
	seq := s.state.Seq
	searcher := s.searcher

	return func() tea.Msg {
		defer cancel()
		start := time.Now()
		results, err := searcher.Search(ctx, query)
		return ResultsMsg{
			Seq:     seq,
			Query:   query,
			Results: results,
			Err:     err,
			Took:    time.Since(start),
			Refresh: refresh,
		}
	}
}

// Accept reports whether msg answers the current request
func (s *Service) Accept(msg ResultsMsg) bool {
	if msg.Seq != s.state.Seq || msg.Query != s.state.Query {
		s.logger.Debug().
			Uint64("seq", msg.Seq).
			Uint64("current", s.state.Seq).
			Str("query", msg.Query).
			Msg("dropping stale results")
		return false
	}

	s.cancel = nil
	if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
		s.logger.Warn().Err(msg.Err).Str("query", msg.Query).Msg("search failed")
	} else {
		s.logger.Debug().
			Str("query", msg.Query).
			Int("results", len(msg.Results)).
			Dur("took", msg.Took).
			Msg("search completed")
	}
	return true
}

// Cancel aborts the in-flight request, if any
func (s *Service) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Clear cancels and forgets the current request so late responses are dropped
func (s *Service) Clear() {
	s.Cancel()
	s.state.Seq++
	s.state.Query = ""
}
