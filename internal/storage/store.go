package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"fantasy-books/internal/logger"
	"fantasy-books/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Operation labels of metrics.StorageFailures.
const (
	opEncode = "encode"
	opSave   = "save"
	opLoad   = "load"
	opDecode = "decode"
	opRemove = "remove"
)

func init() {
	// Amounts are persisted as plain JSON numbers, the way the browser stores them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Store is the JSON layer over a Backend. None of its methods fail: encoding
// and I/O errors are logged and the call degrades to a no-op (Save, Remove)
// or to "absent" (Load).
type Store struct {
	backend Backend
	origin  string
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend, origin: uuid.NewString()}
}

// Origin identifies this store in the changes it produces.
func (s *Store) Origin() string {
	return s.origin
}

// Watcher returns the backend change feed, or nil when the backend has none.
func (s *Store) Watcher() Watcher {
	if w, ok := s.backend.(Watcher); ok {
		return w
	}
	return nil
}

func (s *Store) Save(ctx context.Context, key string, value any) {
	log := s.log(ctx, key)

	data, err := json.Marshal(value)
	if err != nil {
		log.Error("failed to encode value", zap.Error(err))
		s.failed(opEncode)
		return
	}

	if err := s.backend.Set(WithOrigin(ctx, s.origin), key, data); err != nil {
		log.Error("failed to save value", zap.Error(err))
		s.failed(opSave)
	}
}

// Load decodes the value stored at key into out and reports whether it did.
// A missing key, an empty or null payload and undecodable content all
// report false.
func (s *Store) Load(ctx context.Context, key string, out any) bool {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		s.log(ctx, key).Error("failed to load value", zap.Error(err))
		s.failed(opLoad)
		return false
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.log(ctx, key).Error("failed to decode value", zap.Error(err))
		s.failed(opDecode)
		return false
	}
	return true
}

func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Delete(WithOrigin(ctx, s.origin), key); err != nil {
		s.log(ctx, key).Error("failed to remove value", zap.Error(err))
		s.failed(opRemove)
	}
}

func (s *Store) failed(op string) {
	metrics.StorageFailures.WithLabelValues(op, s.backend.Name()).Inc()
}

func (s *Store) log(ctx context.Context, key string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("key", key),
		zap.String("backend", s.backend.Name()),
	)
}

// LoadOr returns the value stored at key, or def when Load reports false.
func LoadOr[T any](ctx context.Context, s *Store, key string, def T) T {
	var v T
	if s.Load(ctx, key, &v) {
		return v
	}
	return def
}
