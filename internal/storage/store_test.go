package storage

import (
	"context"
	"errors"
	"testing"

	"fantasy-books/internal/logger"
	"fantasy-books/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type line struct {
	BookID   int             `json:"bookId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// failingBackend fails every call with err.
type failingBackend struct{ err error }

func (f failingBackend) Name() string { return "failing" }
func (f failingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, f.err
}
func (f failingBackend) Set(context.Context, string, []byte) error { return f.err }
func (f failingBackend) Delete(context.Context, string) error      { return f.err }

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, observed := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return observed
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemory())

	in := []line{
		{BookID: 1, Title: "The Dragon's Heir", Price: decimal.RequireFromString("45.90"), Quantity: 2},
		{BookID: 3, Title: "The Crystal Mage", Price: decimal.RequireFromString("38.50"), Quantity: 1},
	}
	store.Save(ctx, KeyCart, in)

	var out []line
	require.True(t, store.Load(ctx, KeyCart, &out))
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].BookID, out[i].BookID)
		assert.Equal(t, in[i].Title, out[i].Title)
		assert.Equal(t, in[i].Quantity, out[i].Quantity)
		assert.True(t, in[i].Price.Equal(out[i].Price))
	}
}

func TestStore_EncodesAmountsAsNumbers(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	store := NewStore(mem)

	store.Save(ctx, KeyCart, []line{{BookID: 1, Price: decimal.RequireFromString("45.90"), Quantity: 1}})

	raw, err := mem.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"bookId":1,"title":"","price":45.9,"quantity":1}]`, string(raw))
}

func TestStore_LoadAbsent(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	store := NewStore(mem)

	t.Run("missing key", func(t *testing.T) {
		var out []line
		assert.False(t, store.Load(ctx, KeyOrders, &out))
		assert.Equal(t, []line{}, LoadOr(ctx, store, KeyOrders, []line{}))
	})

	t.Run("null payload", func(t *testing.T) {
		require.NoError(t, mem.Set(ctx, KeyOrders, []byte("null")))
		var out []line
		assert.False(t, store.Load(ctx, KeyOrders, &out))
	})

	t.Run("empty payload", func(t *testing.T) {
		require.NoError(t, mem.Set(ctx, KeyOrders, []byte("  ")))
		var out []line
		assert.False(t, store.Load(ctx, KeyOrders, &out))
	})
}

func TestStore_LoadCorrupted(t *testing.T) {
	ctx := context.Background()
	observed := observeLogs(t)
	mem := NewMemory()
	store := NewStore(mem)

	require.NoError(t, mem.Set(ctx, KeyCart, []byte(`[{"bookId": 1,`)))

	def := []line{{BookID: 9}}
	assert.Equal(t, def, LoadOr(ctx, store, KeyCart, def))

	logs := observed.FilterMessage("failed to decode value").All()
	require.Len(t, logs, 1)
	assert.Equal(t, KeyCart, logs[0].ContextMap()["key"])
	assert.Equal(t, "memory", logs[0].ContextMap()["backend"])
}

func TestStore_BackendFailures(t *testing.T) {
	ctx := context.Background()
	observed := observeLogs(t)
	store := NewStore(failingBackend{err: errors.New("quota exceeded")})
	counter := func(op string) prometheus.Counter {
		return metrics.StorageFailures.WithLabelValues(op, "failing")
	}
	before := map[string]float64{}
	for _, op := range []string{opSave, opRemove, opLoad} {
		before[op] = testutil.ToFloat64(counter(op))
	}

	assert.NotPanics(t, func() {
		store.Save(ctx, KeyCart, []line{{BookID: 1}})
		store.Remove(ctx, KeyCart)
	})

	var out []line
	assert.False(t, store.Load(ctx, KeyCart, &out))

	assert.Equal(t, 1, observed.FilterMessage("failed to save value").Len())
	assert.Equal(t, 1, observed.FilterMessage("failed to remove value").Len())
	assert.Equal(t, 1, observed.FilterMessage("failed to load value").Len())

	for op, n := range before {
		assert.Equal(t, n+1, testutil.ToFloat64(counter(op)), op)
	}
}

func TestStore_SaveUnencodable(t *testing.T) {
	ctx := context.Background()
	observed := observeLogs(t)
	mem := NewMemory()
	store := NewStore(mem)

	store.Save(ctx, KeyCustomer, make(chan int))

	_, err := mem.Get(ctx, KeyCustomer)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, observed.FilterMessage("failed to encode value").Len())
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemory())

	store.Save(ctx, KeyCart, []line{{BookID: 1}})
	store.Remove(ctx, KeyCart)

	var out []line
	assert.False(t, store.Load(ctx, KeyCart, &out))
}

func TestStore_StampsOrigin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := NewMemory()
	store := NewStore(mem)
	require.NotEmpty(t, store.Origin())
	require.NotNil(t, store.Watcher())

	changes, err := store.Watcher().Watch(ctx)
	require.NoError(t, err)

	store.Save(ctx, KeyCart, []line{})

	c := <-changes
	assert.Equal(t, Change{Key: KeyCart, Origin: store.Origin()}, c)
}

func TestStore_WatcherAbsent(t *testing.T) {
	store := NewStore(failingBackend{})
	assert.Nil(t, store.Watcher())
}
