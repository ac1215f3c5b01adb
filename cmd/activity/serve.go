// cmd/activity/serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tamzrod/activity-status/internal/cache"
	"github.com/tamzrod/activity-status/internal/config"
	"github.com/tamzrod/activity-status/internal/metrics"
	"github.com/tamzrod/activity-status/internal/proxy"
	"github.com/tamzrod/activity-status/internal/upstream"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the status proxy HTTP endpoint.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			log := newLogger(flags.verbose || cfg.Log.Verbose)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := serve(ctx, log, cfg); err != nil {
				log.Error("serve failed", "error", err)
				return err
			}
			return nil
		},
	}
}

func serve(ctx context.Context, log *slog.Logger, cfg *config.Config) error {
	metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)

	// ---- cache store ----
	store, closeStore, err := buildStore(ctx, log, cfg.Proxy.Cache)
	if err != nil {
		return err
	}
	defer closeStore()

	// ---- upstream ----
	up, err := upstream.New(upstream.Config{
		BaseURL: cfg.Proxy.Upstream.BaseURL,
		UserID:  cfg.Proxy.Upstream.UserID,
		Timeout: time.Duration(cfg.Proxy.Upstream.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	// ---- proxy ----
	svc, err := proxy.NewService(&proxy.ServiceConfig{
		Logger:          log,
		Clock:           clockwork.NewRealClock(),
		Store:           store,
		Upstream:        up,
		FreshnessWindow: time.Duration(cfg.Proxy.Cache.FreshnessMs) * time.Millisecond,
		ValidatePayload: *cfg.Proxy.ValidatePayload,
	})
	if err != nil {
		return fmt.Errorf("proxy service: %w", err)
	}

	router := proxy.NewRouter(proxy.NewHandler(svc, log), cfg.Proxy.Path)
	server := &http.Server{
		Addr:              cfg.Proxy.Listen,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("status proxy listening",
			"addr", cfg.Proxy.Listen,
			"path", cfg.Proxy.Path,
			"upstream", up.URL(),
			"cache", cfg.Proxy.Cache.Backend,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("proxy server: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info("metrics listening", "addr", cfg.Metrics.Listen)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("proxy shutdown", "error", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics shutdown", "error", err)
		}
	}
	return runErr
}

func buildStore(ctx context.Context, log *slog.Logger, cc config.CacheConfig) (cache.Store, func(), error) {
	switch cc.Backend {
	case config.CacheBackendRedis:
		client, err := cache.Connect(ctx, log, cc.RedisURL, time.Duration(cc.RedisConnectMs)*time.Millisecond)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisStore(client, cc.RedisKey), func() { _ = client.Close() }, nil
	default:
		return cache.NewMemoryStore(), func() {}, nil
	}
}
