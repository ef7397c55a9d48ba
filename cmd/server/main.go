package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"amrmarket/backend/internal/config"
	"amrmarket/backend/internal/httpapi"
	"amrmarket/backend/internal/logger"
	"amrmarket/backend/internal/notify"
	"amrmarket/backend/internal/service"
	"amrmarket/backend/internal/store"
	"amrmarket/backend/internal/store/memory"
	pgstore "amrmarket/backend/internal/store/postgres"
)

func main() {
	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo store.Repository
	closers := make([]func() error, 0, 2)

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres unavailable and DATABASE_URL is set; refusing in-memory fallback", zap.Error(err))
		}
		repo = pg
		closers = append(closers, pg.Close)
		log.Info("repository ready", zap.String("kind", "postgres"))
	} else {
		repo = memory.NewSeeded()
		log.Info("repository ready", zap.String("kind", "in-memory"))
	}

	var notifier notify.Notifier = notify.NewBroadcast()
	if cfg.RedisAddr != "" {
		redisNotifier := notify.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger.Named(log, "notify"))
		if err := redisNotifier.Ping(ctx); err != nil {
			log.Warn("redis unavailable, using in-process notifier", zap.Error(err))
			_ = redisNotifier.Close()
		} else {
			notifier = redisNotifier
			closers = append(closers, redisNotifier.Close)
			log.Info("notifier ready", zap.String("kind", "redis"))
		}
	} else {
		log.Info("notifier ready", zap.String("kind", "in-process"))
	}

	svc := service.New(repo, notifier, logger.Named(log, "service"))
	api := httpapi.New(svc, cfg.AllowedOrigin, logger.Named(log, "http"))

	// WriteTimeout stays unset so /api/v1/stock/events can stream.
	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("stock backend listening", zap.String("addr", cfg.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Warn("close error", zap.Error(err))
		}
	}

	log.Info("server stopped")
}
