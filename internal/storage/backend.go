package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("storage key not found")
	ErrInvalidKey = errors.New("invalid storage key")
)

// Backend is the raw byte-level key-value area shared by every Store that
// points at it.
type Backend interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Change reports that key was written or deleted by the store identified by Origin.
// Origin is empty when the writer could not be identified.
type Change struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

// Watcher is implemented by backends that can push changes made through
// other stores. The channel is closed once ctx is done.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Change, error)
}

type originKey struct{}

// WithOrigin tags ctx with the id of the store performing a write.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

func OriginFrom(ctx context.Context) string {
	origin, _ := ctx.Value(originKey{}).(string)
	return origin
}
