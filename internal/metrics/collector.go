package metrics

import (
	"context"
	"time"

	"github.com/fesdmit/portal/internal/storage"
)

// StoreCollector periodically pings the document store and feeds StoreUp.
type StoreCollector struct {
	store storage.Diagnoser
}

func NewStoreCollector(store storage.Diagnoser) *StoreCollector {
	return &StoreCollector{store: store}
}

// Start blocks, sampling every interval until ctx is cancelled. Run it in
// its own goroutine.
func (c *StoreCollector) Start(ctx context.Context, interval time.Duration) {
	c.sample(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sample(ctx)
		}
	}
}

func (c *StoreCollector) sample(ctx context.Context) {
	if c.store == nil {
		StoreUp.Set(0)
		return
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.store.Ping(pingCtx); err != nil {
		StoreUp.Set(0)
		return
	}
	StoreUp.Set(1)
}
