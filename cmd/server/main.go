package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AngelCh415/digmar-dash/internal/config"
	"github.com/AngelCh415/digmar-dash/internal/httpx"
	"github.com/AngelCh415/digmar-dash/internal/metrics"
	"github.com/AngelCh415/digmar-dash/internal/report"
	"github.com/AngelCh415/digmar-dash/internal/telemetry"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	prom := telemetry.NewPipeline()
	svc := metrics.NewService(logger, prom)
	r := httpx.NewRouter(logger, svc, report.NewFormatter(cfg.Currency), httpx.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		Metrics:        prom.Handler(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTPTimeout,
		WriteTimeout:      cfg.HTTPTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Error("shutdown", slog.String("err", err.Error()))
		}
	}()

	logger.Info("starting server", slog.String("addr", cfg.Addr()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
