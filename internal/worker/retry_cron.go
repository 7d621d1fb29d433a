package worker

// retry_cron.go
// Background goroutine that re-saves the inventory snapshot after a failed
// write. Mutations keep their in-memory effect when storage is down, so
// without this the change would only reach storage on the next mutation.

import (
	"context"
	"time"

	"bisnispintar/internal/service"

	"github.com/rs/zerolog/log"
)

const DefaultRetryInterval = 30 * time.Second

// Flusher is the slice of service.InventoryService the cron needs.
type Flusher interface {
	Dirty() bool
	Flush(ctx context.Context) error
}

var _ Flusher = service.InventoryService(nil)

// StartRetryCron launches the goroutine and returns a channel that is closed
// once it has exited. It stops when ctx is cancelled.
func StartRetryCron(ctx context.Context, f Flusher, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = DefaultRetryInterval
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("retry_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				retryOnce(ctx, f)
			}
		}
	}()
	return done
}

// retryOnce is one tick: flush if there is an unsaved change.
func retryOnce(ctx context.Context, f Flusher) {
	if !f.Dirty() {
		return
	}
	tickCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := f.Flush(tickCtx); err != nil {
		log.Warn().Err(err).Msg("retry_cron: snapshot still not saved")
	}
}
