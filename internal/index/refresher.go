package index

import (
	"context"
	"errors"
	"time"
)

// RefreshIntervals controls periodic rebuilds; zero disables a set
type RefreshIntervals struct {
	Default  time.Duration
	Extended time.Duration
}

// Refresh rebuilds each set on its own interval until ctx ends
func (ix *Index) Refresh(ctx context.Context, every RefreshIntervals) {
	defaultTick := tickerChan(every.Default)
	extendedTick := tickerChan(every.Extended)
	defer defaultTick.stop()
	defer extendedTick.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-defaultTick.c:
			ix.refresh(ctx, false)
		case <-extendedTick.c:
			ix.refresh(ctx, true)
		}
	}
}

func (ix *Index) refresh(ctx context.Context, extended bool) {
	err := ix.Rebuild(ctx, extended)
	if err == nil || errors.Is(err, ErrScanInProgress) || ctx.Err() != nil {
		return
	}
	ix.logger.Warn().Err(err).Bool("extended", extended).Msg("periodic refresh failed")
}

type ticker struct {
	c <-chan time.Time
	t *time.Ticker
}

// tickerChan returns a ticker whose channel never fires when d is zero
func tickerChan(d time.Duration) ticker {
	if d <= 0 {
		return ticker{}
	}
	t := time.NewTicker(d)
	return ticker{c: t.C, t: t}
}

func (t ticker) stop() {
	if t.t != nil {
		t.t.Stop()
	}
}
