package gsa

import (
	"context"
	"fmt"
	"time"

	"gsadvantage-scraper/models"
	"gsadvantage-scraper/utils"
)

// searchPart runs one full search cycle for partNumber: re-navigate to the
// site root (leaving the shared page in a known state), fill the global search
// box, submit, wait for result cards, and snapshot the rendered results.
func (s *Scraper) searchPart(ctx context.Context, page Page, partNumber string) (*models.RenderedDocument, error) {
	s.logger.Info("Searching for: %s", partNumber)

	selectorTimeout := time.Duration(s.cfg.SelectorTimeoutSec) * time.Second

	var doc *models.RenderedDocument
	err := utils.RetryWithBackoff(s.cfg.MaxRetries, func() error {
		if err := page.Navigate(ctx, s.cfg.GSAURL); err != nil {
			return fmt.Errorf("homepage navigation failed: %w", err)
		}
		if err := page.WaitVisible(ctx, searchInputSel, selectorTimeout); err != nil {
			return fmt.Errorf("search input did not appear: %w", err)
		}
		if err := page.Fill(ctx, searchInputSel, partNumber); err != nil {
			return fmt.Errorf("filling search input failed: %w", err)
		}
		if err := page.Click(ctx, searchButtonSel); err != nil {
			return fmt.Errorf("search submit failed: %w", err)
		}
		if err := page.WaitVisible(ctx, resultCardSel, selectorTimeout); err != nil {
			return fmt.Errorf("search results did not appear: %w", err)
		}

		var err error
		doc, err = page.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("results snapshot failed: %w", err)
		}
		return nil
	}, s.logger)

	return doc, err
}
