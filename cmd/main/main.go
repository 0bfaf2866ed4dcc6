package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"padel-catalog/internal/catalog/service"
	"padel-catalog/internal/config"
	"padel-catalog/internal/storage"
	serverhttp "padel-catalog/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	st, err := storage.Open(storage.Config{Backend: cfg.CatalogBackend, Path: cfg.CatalogPath})
	if err != nil {
		logger.Fatal().Err(err).Msg("open catalog store")
	}
	defer st.Close()

	cat := service.New(st.Persister, service.Options{Threshold: cfg.MatchThreshold, Logger: &logger})
	if err := cat.Load(context.Background()); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("load catalog")
	}

	r := serverhttp.NewRouter(cfg, logger, cat)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().
		Str("addr", cfg.Addr()).
		Str("backend", cfg.CatalogBackend).
		Str("catalog", cfg.CatalogPath).
		Int("rackets", cat.Len()).
		Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	// every mutation is already saved; this covers a save that failed earlier
	if err := cat.Save(ctx); err != nil {
		logger.Error().Err(err).Msg("final save")
	}
	logger.Info().Msg("bye")
}
