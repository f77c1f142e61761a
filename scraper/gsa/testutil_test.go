package gsa

import (
	"context"
	"strings"
	"testing"
	"time"

	"gsadvantage-scraper/config"
	"gsadvantage-scraper/models"
	"gsadvantage-scraper/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func newTestScraper() *Scraper {
	cfg := &config.Config{
		GSAURL:             "https://www.gsaadvantage.gov",
		RateLimitDelay:     0,
		MaxRetries:         1,
		NavTimeoutSec:      1,
		SelectorTimeoutSec: 1,
		SettleDelayMs:      0,
		MaxPricesPerPage:   10,
	}
	return NewScraper(cfg, utils.NewLogger())
}

func renderDoc(t *testing.T, rawURL, html string) *models.RenderedDocument {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return &models.RenderedDocument{URL: rawURL, Doc: doc}
}

// fakePage serves canned HTML per URL and records every interaction
type fakePage struct {
	pages    map[string]string // URL -> HTML served by Snapshot
	clickNav map[string]string // selector -> URL the click lands on

	current     string
	navigations []string
	clicks      []string
	filled      map[string]string

	navErrs   map[string]error // URL -> error
	waitErrs  map[string]error // selector -> error
	clickErrs map[string]error // selector -> error
}

func newFakePage() *fakePage {
	return &fakePage{
		pages:     make(map[string]string),
		clickNav:  make(map[string]string),
		filled:    make(map[string]string),
		navErrs:   make(map[string]error),
		waitErrs:  make(map[string]error),
		clickErrs: make(map[string]error),
	}
}

func (f *fakePage) Navigate(ctx context.Context, url string) error {
	if err := f.navErrs[url]; err != nil {
		return err
	}
	f.current = url
	f.navigations = append(f.navigations, url)
	return nil
}

func (f *fakePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return f.waitErrs[selector]
}

func (f *fakePage) Fill(ctx context.Context, selector, value string) error {
	f.filled[selector] = value
	return nil
}

func (f *fakePage) Click(ctx context.Context, selector string) error {
	if err := f.clickErrs[selector]; err != nil {
		return err
	}
	f.clicks = append(f.clicks, selector)
	if target, ok := f.clickNav[selector]; ok {
		f.current = target
	}
	return nil
}

func (f *fakePage) Snapshot(ctx context.Context) (*models.RenderedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(f.pages[f.current]))
	if err != nil {
		return nil, err
	}
	return &models.RenderedDocument{URL: f.current, Doc: doc}, nil
}

// fakeSink collects written records in order
type fakeSink struct {
	records []*models.PriceRecord
}

func (s *fakeSink) Write(record *models.PriceRecord) error {
	s.records = append(s.records, record)
	return nil
}

func (s *fakeSink) Close() error { return nil }

func resultsPage(cards ...string) string {
	return "<html><body><div>" + strings.Join(cards, "\n") + "</div></body></html>"
}

func resultCard(partNumber, href string) string {
	card := `<app-ux-product-display-inline>`
	if partNumber != "" {
		card += `<div class="mfrPartNumber"> ` + partNumber + ` </div>`
	}
	if href != "" {
		card += `<div class="itemName"><a href="` + href + `">View item</a></div>`
	}
	return card + `</app-ux-product-display-inline>`
}
