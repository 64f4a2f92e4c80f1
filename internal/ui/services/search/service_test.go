package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu   sync.Mutex
	ctxs map[string]context.Context
	err  error
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ctxs == nil {
		f.ctxs = make(map[string]context.Context)
	}
	f.ctxs[query] = ctx
	if f.err != nil {
		return nil, f.err
	}
	return []string{"/home/user/" + query}, nil
}

func TestLatestDispatchWins(t *testing.T) {
	backend := &fakeSearcher{}
	svc := NewService(backend, zerolog.Nop())

	first := svc.Dispatch("rep")
	second := svc.Dispatch("report")

	secondMsg, ok := second().(ResultsMsg)
	require.True(t, ok)
	firstMsg, ok := first().(ResultsMsg)
	require.True(t, ok)

	assert.False(t, svc.Accept(firstMsg))
	assert.True(t, svc.Accept(secondMsg))
	assert.Equal(t, []string{"/home/user/report"}, secondMsg.Results)
	assert.Equal(t, "report", svc.Query())
}

func TestDispatchCancelsPrevious(t *testing.T) {
	backend := &fakeSearcher{}
	svc := NewService(backend, zerolog.Nop())

	first := svc.Dispatch("a")
	svc.Dispatch("ab")
	first()

	backend.mu.Lock()
	ctx := backend.ctxs["a"]
	backend.mu.Unlock()
	require.NotNil(t, ctx)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestSameQueryRedispatchedDropsOlder(t *testing.T) {
	svc := NewService(&fakeSearcher{}, zerolog.Nop())

	older := svc.Dispatch("notes")().(ResultsMsg)
	newer := svc.Dispatch("notes")().(ResultsMsg)

	assert.False(t, svc.Accept(older))
	assert.True(t, svc.Accept(newer))
}

func TestClearDropsLateResults(t *testing.T) {
	svc := NewService(&fakeSearcher{}, zerolog.Nop())

	cmd := svc.Dispatch("todo")
	svc.Clear()

	assert.False(t, svc.Accept(cmd().(ResultsMsg)))
	assert.Empty(t, svc.Query())
}

func TestErrorsAreDelivered(t *testing.T) {
	boom := errors.New("index unavailable")
	svc := NewService(&fakeSearcher{err: boom}, zerolog.Nop())

	msg := svc.Dispatch("x")().(ResultsMsg)
	assert.True(t, svc.Accept(msg))
	assert.ErrorIs(t, msg.Err, boom)
}

func TestRefreshRerunsCurrentQuery(t *testing.T) {
	svc := NewService(&fakeSearcher{}, zerolog.Nop())
	assert.Nil(t, svc.Refresh(), "nothing to refresh before a search")

	first := svc.Dispatch("notes")
	refresh := svc.Refresh()
	require.NotNil(t, refresh)

	msg, ok := refresh().(ResultsMsg)
	require.True(t, ok)
	assert.True(t, msg.Refresh)
	assert.Equal(t, "notes", msg.Query)
	assert.True(t, svc.Accept(msg))

	old, ok := first().(ResultsMsg)
	require.True(t, ok)
	assert.False(t, old.Refresh)
	assert.False(t, svc.Accept(old), "the refresh supersedes the original request")
}
