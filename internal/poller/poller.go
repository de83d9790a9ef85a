// Package poller keeps the feature-flag registry fresh with a
// cancellable periodic refresh loop.
package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/state"
)

// DefaultInterval is how often the flag set is re-requested.
const DefaultInterval = 30 * time.Second

// Fetcher reads the current value of one named flag. Both service
// clients implement it.
type Fetcher interface {
	FetchFlagValue(ctx context.Context, name string) (bool, error)
}

// Start launches a goroutine that refreshes the named flags immediately
// and then on every tick until the context is cancelled. It returns
// immediately. Flags whose fetch fails in a given round keep their last
// known registry value.
func Start(ctx context.Context, reg *state.Registry, fetcher Fetcher, names []string, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			Refresh(ctx, reg, fetcher, names, log)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Refresh fetches every named flag once and upserts the results.
func Refresh(ctx context.Context, reg *state.Registry, fetcher Fetcher, names []string, log zerolog.Logger) {
	for _, name := range names {
		enabled, err := fetcher.FetchFlagValue(ctx, name)
		if err != nil {
			reg.RecordError(err)
			log.Warn().Err(err).Str("flag", name).Msg("flag poll failed")
			continue
		}
		reg.Upsert(name, enabled)
	}
}
