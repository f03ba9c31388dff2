package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"healthinsights/internal/catalog"
	"healthinsights/internal/config"
	"healthinsights/internal/pipeline"
	"healthinsights/internal/resolver"
	"healthinsights/internal/server"
	"healthinsights/internal/store"
)

// runServe starts the HTTP surface. SIGHUP triggers a full re-ingestion with
// an atomic store swap; SIGINT/SIGTERM shut the server down gracefully.
func runServe(ctx context.Context, cfg config.Config, cat *catalog.Catalog, stores *store.Handle, res *resolver.Resolver, log zerolog.Logger) {
	reload := func() (*store.Store, error) {
		return pipeline.Run(ctx, cfg, cat, log)
	}
	srv := server.New(log, cat, stores, res, reload)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: srv.Router(cfg.HTTP.CORSOrigins),
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := srv.Reload(); err != nil {
				log.Error().Err(err).Msg("SIGHUP reload failed")
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("serving")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server")
	}
}
