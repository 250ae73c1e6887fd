package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fantasy-books/internal/api"
	"fantasy-books/internal/auth"
	"fantasy-books/internal/cart"
	"fantasy-books/internal/catalog"
	"fantasy-books/internal/config"
	"fantasy-books/internal/db"
	"fantasy-books/internal/logger"
	"fantasy-books/internal/middleware"
	"fantasy-books/internal/notify"
	"fantasy-books/internal/order"
	"fantasy-books/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.L().Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := newBackend(ctx, cfg)
	if err != nil {
		logger.L().Fatal("failed to open storage backend", zap.Error(err))
	}
	defer closeBackend()

	a := newApp(ctx, backend, cfg)

	go a.limiter.Cleanup(ctx)
	go func() {
		if err := a.bridge.Run(ctx); err != nil {
			logger.L().Error("notification bridge stopped", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.L().Info("server running",
			zap.String("addr", srv.Addr),
			zap.String("backend", backend.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

// hashPassword prints the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func hashPassword(args []string, out io.Writer) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: server hash-password <password>")
	}
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

type app struct {
	router  http.Handler
	store   *storage.Store
	badge   *cart.Badge
	bridge  *notify.Bridge
	limiter *middleware.RateLimiter
}

// newApp wires the services over one store. The cart badge is refreshed
// whenever another store writes the cart key.
func newApp(ctx context.Context, backend storage.Backend, cfg *config.Config) *app {
	store := storage.NewStore(backend)
	books := catalog.NewRepository(catalog.DefaultBooks())

	cartSvc := cart.NewService(cart.NewRepository(store), books)
	badge := cart.NewBadge(cartSvc)
	badge.Refresh(ctx)

	orders := order.NewService(order.NewRepository(store))
	orders.Initialize(ctx)

	bridge := notify.NewBridge(store.Watcher(), store.Origin())
	bridge.Subscribe(storage.KeyCart, func(ctx context.Context, _ storage.Change) {
		n := badge.Refresh(ctx)
		logger.FromCtx(ctx).Debug("cart badge refreshed", zap.Int("count", n))
	})

	limiter := middleware.NewRateLimiter(api.StrictPaths()...)
	h := api.NewHandler(books, cartSvc, badge, orders, api.AdminConfig{
		JWTSecret:    cfg.JWTSecret,
		PasswordHash: cfg.AdminPasswordHash,
	})

	return &app{
		router:  api.NewRouter(h, limiter, cfg.AllowedOrigin),
		store:   store,
		badge:   badge,
		bridge:  bridge,
		limiter: limiter,
	}
}

// newBackend opens the configured backend. The returned func releases it.
func newBackend(ctx context.Context, cfg *config.Config) (storage.Backend, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		return storage.NewMemory(), noop, nil

	case config.BackendFile:
		f, err := storage.NewFile(cfg.StoreDir)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil

	case config.BackendPostgres:
		database, err := db.NewDatabase(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewPostgres(database, db.BuildDSN(cfg)), func() { _ = database.Close() }, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("failed to ping redis: %w", err)
		}
		return storage.NewRedis(client, ""), func() { _ = client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
