package gsa

import (
	"context"

	"gsadvantage-scraper/config"
	"gsadvantage-scraper/models"
	"gsadvantage-scraper/storage"
	"gsadvantage-scraper/utils"
)

// Site selectors. These encode the GSA Advantage markup contract and are the
// first thing to revalidate when the site changes.
const (
	searchInputSel  = "#globalSearch"
	searchButtonSel = `button[type="submit"][name="GO"]`
	resultCardSel   = "app-ux-product-display-inline"
	partNumberSel   = "div.mfrPartNumber"
	itemLinkSel     = "div.itemName a"
	pricingRowSel   = "tr.selectedItem, tr.otherItem"
	classicLinkSel  = `a[href*="pdNewDesign=false"]`

	classicParam = "pdNewDesign"
	classicValue = "false"
)

// Scraper drives the three-stage crawl: search a part number, match exact
// result cards, then visit each matched detail page and extract price rows.
type Scraper struct {
	cfg         *config.Config
	logger      *utils.Logger
	rateLimiter *utils.RateLimiter
	dumper      *utils.HTMLDumper
}

// NewScraper creates a new Scraper
func NewScraper(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:         cfg,
		logger:      logger,
		rateLimiter: utils.NewRateLimiter(cfg.RateLimitDelay),
		dumper:      utils.NewHTMLDumper(cfg.DebugHTMLDir, logger),
	}
}

// Scrape processes partNumbers strictly in order against the one shared page,
// streaming every extracted record to sink as it is produced. Failures are
// isolated: a failed search abandons only its term, a failed detail visit only
// its URL. The returned slice holds everything that reached the sink.
func (s *Scraper) Scrape(ctx context.Context, page Page, partNumbers []string, sink storage.RecordSink) ([]*models.PriceRecord, error) {
	s.logger.Info("Starting GSA Advantage scraper for %d part number(s)...", len(partNumbers))

	var all []*models.PriceRecord
	for _, partNumber := range partNumbers {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		s.rateLimiter.Wait()
		resultsDoc, err := s.searchPart(ctx, page, partNumber)
		if err != nil {
			s.logger.Error("Search for '%s' failed: %v", partNumber, err)
			continue
		}

		cards := s.matchResults(resultsDoc, partNumber)

		// Dedup identical detail links within one term's results. Distinct
		// duplicate listings carry distinct links, so each still gets visited.
		tracker := utils.NewURLTracker()
		for _, card := range cards {
			if !tracker.Add(card.DetailURL) {
				s.logger.Debug("Skipping already-visited detail URL: %s", card.DetailURL)
				continue
			}

			s.rateLimiter.Wait()
			detailDoc := s.negotiateClassic(ctx, page, card.DetailURL)
			if detailDoc == nil {
				continue
			}

			records := s.extract(detailDoc, partNumber, card.DisplayedPartNumber)
			for _, record := range records {
				if err := sink.Write(record); err != nil {
					s.logger.Error("Failed to write record for '%s': %v", partNumber, err)
				}
				all = append(all, record)
			}
		}
	}

	s.logger.Info("Scraping complete. Total price records: %d", len(all))
	return all, nil
}
