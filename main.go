package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"olas-server/internal/auth"
	"olas-server/internal/cache"
	"olas-server/internal/config"
	"olas-server/internal/outbox"
	"olas-server/internal/relay"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	InitLogger(cfg.LogLevel)
	config.InitI18n(cfg.I18nDir, cfg.Language)

	keys, err := auth.DeriveKeys(cfg.ServerSecret)
	if err != nil {
		return err
	}
	if cfg.ServerSecret == "" {
		slog.Warn("SERVER_SECRET not set; sessions will not survive a restart")
	}

	cacheConfig := cache.DefaultCacheConfig()
	backend, backendType := openCache(cfg.RedisURL)
	defer backend.Close()

	store, err := outbox.Open(cfg.OutboxPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := NewServer(Deps{
		Config:      cfg,
		Relays:      relay.NewClient(cfg.FetchTimeout, cfg.PublishTimeout),
		Backend:     backend,
		BackendType: backendType,
		CacheConfig: cacheConfig,
		Outbox:      store,
		Keys:        keys,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "relays", len(cfg.Relays), "cache", backendType)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// openCache connects to redis when configured, falling back to memory
func openCache(redisURL string) (cache.Backend, string) {
	if redisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rc, err := cache.OpenRedis(ctx, redisURL, "olas:")
		if err == nil {
			return rc, "redis"
		}
		slog.Error("redis unavailable, using in-memory cache", "error", err)
	}
	return cache.NewMemory(10000, time.Minute), "memory"
}
