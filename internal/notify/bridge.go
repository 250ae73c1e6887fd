// Package notify relays storage changes made by other stores (other tabs or
// processes sharing the same backend) to subscribers in this process.
package notify

import (
	"context"
	"fmt"
	"sync"

	"fantasy-books/internal/logger"
	"fantasy-books/internal/metrics"
	"fantasy-books/internal/storage"

	"go.uber.org/zap"
)

// Handler reacts to a change of a subscribed key.
type Handler func(ctx context.Context, c storage.Change)

type Bridge struct {
	watcher storage.Watcher
	origin  string

	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

// NewBridge relays changes from watcher, skipping the ones produced by the
// store identified by origin. A nil watcher gives a bridge that never fires.
func NewBridge(watcher storage.Watcher, origin string) *Bridge {
	return &Bridge{
		watcher: watcher,
		origin:  origin,
		subs:    make(map[string]map[int]Handler),
	}
}

// Subscribe registers fn for changes to key and returns a func removing it.
func (b *Bridge) Subscribe(key string, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.subs[key] == nil {
		b.subs[key] = make(map[int]Handler)
	}
	b.subs[key][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[key], id)
	}
}

// Run consumes the change feed until ctx is done or the feed closes.
func (b *Bridge) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(zap.String("component", "notify"))
	if b.watcher == nil {
		log.Info("storage backend has no change feed; cross-context sync disabled")
		return nil
	}

	changes, err := b.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch storage: %w", err)
	}
	log.Info("listening for storage changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-changes:
			if !ok {
				log.Info("storage change feed closed")
				return nil
			}
			b.dispatch(ctx, c)
		}
	}
}

func (b *Bridge) dispatch(ctx context.Context, c storage.Change) {
	if c.Origin != "" && c.Origin == b.origin {
		return
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[c.Key]))
	for _, fn := range b.subs[c.Key] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.FromCtx(ctx).Debug("storage changed elsewhere",
		zap.String("key", c.Key),
		zap.String("origin", c.Origin),
		zap.Int("handlers", len(handlers)),
	)
	for _, fn := range handlers {
		fn(ctx, c)
	}
	metrics.ChangesDispatched.WithLabelValues(c.Key).Inc()
}
