package main

import (
	"net/http"
	"os"
	"time"

	"treehouse-importer/config"
	"treehouse-importer/extractor"
	"treehouse-importer/fetcher"
	"treehouse-importer/server"
	"treehouse-importer/services"
	"treehouse-importer/storage"
	"treehouse-importer/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Treehouse Importer starting ===")
	logger.Info("Config: listen=%s | source=%s | browser=%v | retries=%d",
		cfg.ListenAddr, cfg.SourceDomain, cfg.BrowserEnabled, cfg.MaxRetries)

	var store storage.PropertyStore
	pgStore, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Warn("PostgreSQL unavailable, running extract-only: %v", err)
	} else {
		store = pgStore
		defer pgStore.Close()
	}

	audit, err := storage.NewCSVWriter(cfg.CSVAuditPath)
	if err != nil {
		logger.Warn("CSV audit log disabled: %v", err)
		audit = nil
	} else {
		defer audit.Close()
	}

	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}

	strategies := []fetcher.Strategy{
		fetcher.NewHTTPFetcher(time.Duration(cfg.FetchTimeoutSec)*time.Second, cfg.UserAgent, retry),
	}
	if cfg.BrowserEnabled {
		limiter := utils.NewLimiter(cfg.BrowserConcurrency, cfg.BrowserRateMs)
		strategies = append(strategies,
			fetcher.NewBrowserFetcher(cfg.UserAgent, cfg.ChromeBin, limiter, retry, logger))
	}
	chain := fetcher.NewChain(logger, strategies...)

	engine := extractor.NewEngine(logger)
	importSvc := services.NewImportService(cfg.SourceDomain, chain, engine, store, audit, logger)
	insightSvc := services.NewInsightService(logger)

	srv := server.New(importSvc, insightSvc, store, logger)

	logger.Info("Listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
