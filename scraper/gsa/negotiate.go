package gsa

import (
	"context"
	"net/url"
	"strings"

	"gsadvantage-scraper/models"
)

// negotiateClassic visits detailURL and guarantees a best-effort classic
// layout document. The detail page can come up in two renderings; the
// extractor only understands the classic one. Resolution order: an in-page
// "switch to classic" link is clicked if present, otherwise the pricing rows
// are probed directly, otherwise the URL is rewritten with the classic flag
// and re-navigated. Negotiation errors are never fatal: extraction is always
// attempted on whatever document is available. Returns nil only when the
// initial visit itself fails.
func (s *Scraper) negotiateClassic(ctx context.Context, page Page, detailURL string) *models.RenderedDocument {
	if err := page.Navigate(ctx, detailURL); err != nil {
		s.logger.Error("Detail page navigation failed for %s: %v", detailURL, err)
		return nil
	}
	doc, err := page.Snapshot(ctx)
	if err != nil {
		s.logger.Error("Detail page snapshot failed for %s: %v", detailURL, err)
		return nil
	}

	resolved, err := s.resolveLayout(ctx, page, doc)
	if err != nil {
		s.logger.Warn("Error switching to classic design (will try to parse anyway): %v", err)
		return doc
	}
	return resolved
}

func (s *Scraper) resolveLayout(ctx context.Context, page Page, doc *models.RenderedDocument) (*models.RenderedDocument, error) {
	if doc.Doc.Find(classicLinkSel).Length() > 0 {
		s.logger.Info("Found new design page, switching to classic design...")
		if err := page.Click(ctx, classicLinkSel); err != nil {
			return nil, err
		}
		switched, err := page.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Switched to classic design successfully")
		return switched, nil
	}

	if doc.Doc.Find(pricingRowSel).Length() > 0 {
		// Already the classic layout
		return doc, nil
	}

	if strings.Contains(doc.URL, classicParam+"="+classicValue) {
		// Flag already set and still no rows; nothing further to negotiate
		return doc, nil
	}

	target, err := setClassicParam(doc.URL)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Modifying URL to switch to classic design: %s", target)
	if err := page.Navigate(ctx, target); err != nil {
		return nil, err
	}
	return page.Snapshot(ctx)
}

// setClassicParam rewrites raw's query string so pdNewDesign=false is set,
// replacing any existing value
func setClassicParam(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(classicParam, classicValue)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
