package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/edtlabs/edt-proxy-go/internal/api"
	"github.com/edtlabs/edt-proxy-go/internal/cache"
	"github.com/edtlabs/edt-proxy-go/internal/config"
	"github.com/edtlabs/edt-proxy-go/internal/metrics"
	"github.com/edtlabs/edt-proxy-go/internal/sanitize"
	"github.com/edtlabs/edt-proxy-go/internal/timetable"
	"github.com/edtlabs/edt-proxy-go/internal/upstream"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Parse()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	store, err := cache.New(afero.NewOsFs(), cfg.Cache.Dir, cfg.Cache.File, cfg.CacheTTL())
	if err != nil {
		slog.Error("cache error", "err", err)
		os.Exit(1)
	}

	client := upstream.New(cfg.Upstream.URL, cfg.Upstream.Token, cfg.FetchTimeout())
	service := timetable.New(client, sanitize.New(), store, metrics.New())
	handler := api.New(service)

	mux := http.NewServeMux()
	handler.Register(mux)

	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)

		shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutCancel()

		if err := srv.Shutdown(shutCtx); err != nil {
			slog.Error("shutdown error", "err", err)
		}
	}()

	slog.Info("starting proxy server",
		"addr", cfg.HTTP.Address,
		"upstream", cfg.Upstream.URL,
		"cachePath", store.Path(),
		"cacheTTL", store.TTL(),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
