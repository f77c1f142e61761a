package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"gsadvantage-scraper/config"
	"gsadvantage-scraper/scraper/gsa"
	"gsadvantage-scraper/services"
	"gsadvantage-scraper/storage"
	"gsadvantage-scraper/utils"
)

func main() {
	// ================== Bootstrap ====================
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("GSA Advantage Part Number Price Scraper")
	logger.Info("Rate delay: %dms | Retries: %d | Max prices/page: %d",
		cfg.RateLimitDelay, cfg.MaxRetries, cfg.MaxPricesPerPage)

	partNumbers, err := utils.LoadPartNumbers(cfg.PartNumbersFile, logger)
	if err != nil {
		logger.Error("Cannot load part numbers: %v", err)
		os.Exit(1)
	}
	if len(partNumbers) == 0 {
		logger.Error("Part number list is empty, nothing to search")
		os.Exit(1)
	}

	// =================== Output Sinks ========================================
	sinks := storage.MultiSink{storage.NewCSVWriter(cfg.CSVFilePath, logger)}

	if cfg.DatabaseURL != "" {
		pgWriter, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("Cannot connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		if err := pgWriter.CreateTable(); err != nil {
			logger.Error("Failed to create DB table: %v", err)
			os.Exit(1)
		}
		sinks = append(sinks, pgWriter)
	} else {
		logger.Warn("DATABASE_URL not set, writing CSV only")
	}

	// =============== Scraping ===================================
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Minute)
	defer cancel()

	page, closePage := gsa.NewChromePage(ctx, cfg)
	defer closePage()

	scraper := gsa.NewScraper(cfg, logger)
	records, err := scraper.Scrape(ctx, page, partNumbers, sinks)
	if err != nil {
		logger.Error("Crawl aborted: %v", err)
	}

	if err := sinks.Close(); err != nil {
		logger.Error("Failed to close output sinks: %v", err)
	}

	if len(records) == 0 {
		logger.Warn("No price records scraped — check your network connection or the GSA page structure")
		os.Exit(0)
	}

	// ==== Summary ============================
	report := services.GenerateRunReport(partNumbers, records)
	services.PrintRunReport(report)

	fmt.Println(" Done! Price records →", cfg.CSVFilePath)
}
