package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fantasy-books/internal/auth"
	"fantasy-books/internal/cart"
	"fantasy-books/internal/catalog"
	"fantasy-books/internal/config"
	"fantasy-books/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, hashPassword([]string{"s3cret"}, &out))

	hash := strings.TrimSpace(out.String())
	assert.True(t, auth.CheckPassword("s3cret", hash))
	assert.False(t, auth.CheckPassword("other", hash))

	assert.Error(t, hashPassword(nil, &out))
	assert.Error(t, hashPassword([]string{""}, &out))
	assert.Error(t, hashPassword([]string{"a", "b"}, &out))
}

func TestNewBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, closeFn, err := newBackend(ctx, &config.Config{StoreBackend: config.BackendMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, "memory", b.Name())
	})

	t.Run("file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		b, closeFn, err := newBackend(ctx, &config.Config{StoreBackend: config.BackendFile, StoreDir: dir})
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, "file", b.Name())

		_, err = os.Stat(dir)
		assert.NoError(t, err, "store dir is created")
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		b, closeFn, err := newBackend(ctx, &config.Config{StoreBackend: config.BackendRedis, RedisAddr: mr.Addr()})
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, "redis", b.Name())
	})

	t.Run("redis unreachable", func(t *testing.T) {
		_, _, err := newBackend(ctx, &config.Config{StoreBackend: config.BackendRedis, RedisAddr: "127.0.0.1:1"})
		assert.ErrorContains(t, err, "failed to ping redis")
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := newBackend(ctx, &config.Config{StoreBackend: "sqlite"})
		assert.Error(t, err)
	})
}

func TestNewApp(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	a := newApp(ctx, backend, &config.Config{AllowedOrigin: "*"})

	t.Run("seeds sample orders", func(t *testing.T) {
		raw, err := backend.Get(ctx, storage.KeyOrders)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "ORD-2025-00001")
	})

	t.Run("serves routes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/books/1", nil)
		w = httptest.NewRecorder()
		a.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin disabled without credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNewApp_BadgeFollowsOtherStores(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := storage.NewMemory()
	a := newApp(ctx, backend, &config.Config{AllowedOrigin: "*"})
	require.Equal(t, 0, a.badge.Count())

	done := make(chan error, 1)
	go func() { done <- a.bridge.Run(ctx) }()

	// Another tab with its own store on the same backend.
	other := storage.NewStore(backend)
	otherCart := cart.NewService(cart.NewRepository(other), catalog.NewRepository(catalog.DefaultBooks()))

	// the bridge subscribes asynchronously; keep writing until it sees one
	require.Eventually(t, func() bool {
		_, _ = otherCart.AddToCart(ctx, 2)
		return a.badge.Count() > 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bridge did not stop")
	}
}
