package gsa

import (
	"net/url"
	"strings"

	"gsadvantage-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// matchResults scans a rendered results document for product cards whose
// displayed part number case-insensitively equals partNumber, and resolves
// each match to an absolute detail URL forced to the classic layout. Cards
// without a displayed part number are malformed, not mismatches, and are
// skipped at debug level.
func (s *Scraper) matchResults(doc *models.RenderedDocument, partNumber string) []models.ProductCard {
	cards := doc.Doc.Find(resultCardSel)
	if cards.Length() == 0 {
		s.logger.Warn("No listings found for part number: %s", partNumber)
		return nil
	}

	var matches []models.ProductCard
	cards.Each(func(_ int, card *goquery.Selection) {
		displayed := strings.TrimSpace(card.Find(partNumberSel).First().Text())
		if displayed == "" {
			s.logger.Debug("Skipping card without a displayed part number")
			return
		}
		if !strings.EqualFold(displayed, partNumber) {
			s.logger.Debug("Skipping non-match: %s (searched for %s)", displayed, partNumber)
			return
		}

		href, ok := card.Find(itemLinkSel).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			s.logger.Debug("Exact match '%s' has no detail link", displayed)
			return
		}

		detailURL := forceClassicLayout(resolveDetailURL(strings.TrimSpace(href), doc.URL))
		s.logger.Info("Exact match found: %s for search %s", displayed, partNumber)
		s.logger.Info("Detail page (classic design): %s", detailURL)

		matches = append(matches, models.ProductCard{
			DisplayedPartNumber: displayed,
			DetailURL:           detailURL,
		})
	})

	if len(matches) == 0 {
		s.logger.Warn("No exact matches found for: %s (%d listings checked)", partNumber, cards.Length())
	} else {
		s.logger.Info("Found %d exact match(es) for %s", len(matches), partNumber)
	}
	return matches
}

// resolveDetailURL turns a card's link into an absolute URL: absolute-path
// links get the results document's scheme and host, absolute links pass
// through, anything else resolves relative to the document URL.
func resolveDetailURL(href, docURL string) string {
	switch {
	case strings.HasPrefix(href, "/"):
		base, err := url.Parse(docURL)
		if err != nil || base.Host == "" {
			return href
		}
		return base.Scheme + "://" + base.Host + href
	case strings.HasPrefix(href, "http"):
		return href
	default:
		base, err := url.Parse(docURL)
		if err != nil {
			return href
		}
		ref, err := url.Parse(href)
		if err != nil {
			return href
		}
		return base.ResolveReference(ref).String()
	}
}

// forceClassicLayout appends the classic-design query flag unless the URL
// already carries a pdNewDesign parameter in either state
func forceClassicLayout(raw string) string {
	if strings.Contains(raw, classicParam) {
		return raw
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + classicParam + "=" + classicValue
}
