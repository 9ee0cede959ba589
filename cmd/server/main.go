package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docfreq/internal/api"
	"github.com/dgallion1/docfreq/internal/config"
	"github.com/dgallion1/docfreq/internal/logger"
	"github.com/dgallion1/docfreq/internal/parser"
	"github.com/dgallion1/docfreq/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	log := logger.New("docfreq", cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	analyzer := pipeline.NewAnalyzer(pipeline.Options{
		Parser:      parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		DefaultTopN: cfg.DefaultTopN,
	}, pipeline.NewStageStats(cfg.StatsWindow), log)

	srv := api.NewServer(analyzer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docfreq", "port", cfg.Port, "auth", cfg.APIKey != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
