package storage

import (
	"context"
	"sync"

	"fantasy-books/internal/logger"

	"go.uber.org/zap"
)

const watchBuffer = 64

// Memory is an in-process backend. Several stores attached to the same
// Memory behave like browser tabs sharing one local storage area.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte

	subMu sync.RWMutex
	subs  map[chan Change]struct{}
}

func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
		subs: make(map[chan Change]struct{}),
	}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	m.data[key] = append([]byte(nil), value...)
	m.mu.Unlock()

	m.publish(Change{Key: key, Origin: OriginFrom(ctx)})
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	_, existed := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()

	if existed {
		m.publish(Change{Key: key, Origin: OriginFrom(ctx)})
	}
	return nil
}

func (m *Memory) Watch(ctx context.Context) (<-chan Change, error) {
	ch := make(chan Change, watchBuffer)

	m.subMu.Lock()
	m.subs[ch] = struct{}{}
	m.subMu.Unlock()

	go func() {
		<-ctx.Done()
		m.subMu.Lock()
		delete(m.subs, ch)
		close(ch)
		m.subMu.Unlock()
	}()

	return ch, nil
}

// publish never blocks a writer; a watcher that falls behind loses changes.
func (m *Memory) publish(c Change) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subs {
		select {
		case ch <- c:
		default:
			logger.L().Warn("dropping storage change for slow watcher",
				zap.String("key", c.Key))
		}
	}
}
