package main

import (
	"os"
	"time"

	"sniper-agent/config"
	"sniper-agent/notify"
	"sniper-agent/scraper"
	"sniper-agent/scraper/craigslist"
	"sniper-agent/scraper/facebook"
	"sniper-agent/scraper/offerup"
	"sniper-agent/services"
	"sniper-agent/storage"
	"sniper-agent/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Marketplace Sniper Agent starting ===")
	logger.Info("Config — keywords: %v | channels: %v | proxies: %d | timeout: %ds",
		cfg.Keywords, cfg.AlertChannels, len(cfg.ProxyURLs), cfg.FetchTimeoutSec)

	store, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	csvWriter, err := storage.NewRawCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	adapters := []scraper.Adapter{
		craigslist.New(),
		offerup.New(),
		facebook.New(),
	}

	fetcher := scraper.NewFetcher(scraper.FetcherOptions{
		Rotator:  utils.NewProxyRotator(cfg.ProxyURLs),
		Logger:   logger,
		Timeout:  time.Duration(cfg.FetchTimeoutSec) * time.Second,
		DelayMin: time.Duration(cfg.DelayMinMs) * time.Millisecond,
		DelayMax: time.Duration(cfg.DelayMaxMs) * time.Millisecond,
	})

	scrapeOrch := scraper.NewOrchestrator(fetcher, adapters, store, logger, cfg.MaxRetries)
	results, scrapeCounts := scrapeOrch.RunOnce(cfg.Keywords, cfg.LocationZip)

	for source, items := range results {
		if err := csvWriter.WriteRaw(items); err != nil {
			logger.Warn("CSV dump failed for %s: %v", source, err)
		}
	}

	analysisOrch := services.NewAnalysisOrchestrator(cfg, store, logger)
	analysisCounts, err := analysisOrch.Run()
	if err != nil {
		logger.Error("Analysis run failed: %v", err)
		os.Exit(1)
	}

	channels := notify.Channels(cfg.AlertChannels, cfg, logger)
	alertOrch := services.NewAlertOrchestrator(store, channels, logger)
	alertCounts, err := alertOrch.Run()
	if err != nil {
		logger.Error("Alert run failed: %v", err)
		os.Exit(1)
	}

	reportSvc := services.NewReportService(store, logger)
	reportSvc.Print(reportSvc.Generate(scrapeCounts, analysisCounts, alertCounts))
}
