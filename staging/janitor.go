package staging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// Janitor runs deferred cleanup tasks. Each scheduled func fires once
// its delay expires; pending tasks are dropped when the janitor stops.
// Built on a TTL cache so the expiry loop is owned by the process
// lifecycle rather than dangling sleep goroutines.
type Janitor struct {
	cache *ttlcache.Cache[string, func()]
}

func NewJanitor() *Janitor {
	cache := ttlcache.New[string, func()]()
	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, func()]) {
		if reason == ttlcache.EvictionReasonExpired {
			item.Value()()
		}
	})

	return &Janitor{cache: cache}
}

// Schedule queues fn to run after delay. Fire-and-forget: callers get
// no handle and no completion signal.
func (j *Janitor) Schedule(delay time.Duration, fn func()) {
	j.cache.Set(uuid.NewString(), fn, delay)
}

// Run blocks until ctx is cancelled, then stops the expiry loop.
// Cleanups still pending at shutdown never fire - staged artifacts
// are scratch files, losing one is not correctness-critical.
func (j *Janitor) Run(ctx context.Context) error {
	go j.cache.Start()

	<-ctx.Done()
	j.cache.Stop()
	return nil
}
