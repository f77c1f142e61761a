package gsa

import (
	"regexp"
	"strings"
	"time"

	"gsadvantage-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

var contractNumberRegex = regexp.MustCompile(`contractNumber=([^&]+)`)

// extract pulls price records from a resolved detail page and logs the
// outcome. When the page yields no pricing rows at all, the raw HTML is
// handed to the debug dumper (a no-op unless a dump dir is configured).
func (s *Scraper) extract(doc *models.RenderedDocument, partNumber, displayedPartNumber string) []*models.PriceRecord {
	records, rowsFound := extractRecords(doc, partNumber, displayedPartNumber, s.cfg.MaxPricesPerPage)

	if rowsFound == 0 {
		s.logger.Warn("No pricing table rows found on page: %s", doc.URL)
		if s.dumper.Enabled() {
			if html, err := doc.Doc.Html(); err == nil {
				s.dumper.Dump("detail_"+partNumber, html)
			}
		}
		return records
	}

	s.logger.Info("Found %d pricing table rows, extracted %d record(s)", rowsFound, len(records))
	if len(records) == 0 {
		s.logger.Warn("No valid prices found for %s on page: %s", partNumber, doc.URL)
	}
	return records
}

// extractRecords is the pure extraction step: rendered detail document in,
// zero or more price records out. Every field is optional except the price;
// a row without one is dropped. At most maxRows rows are read, in document
// order. The second return value is the total row count found, before the cap.
func extractRecords(doc *models.RenderedDocument, partNumber, displayedPartNumber string, maxRows int) ([]*models.PriceRecord, int) {
	mfrPartNumber := labeledValue(doc.Doc, "Manufacturer Part Number", false)
	contractorPartNumber := labeledValue(doc.Doc, "Contractor Part Number", false)
	manufacturer := labeledValue(doc.Doc, "Manufacturer", true)
	productName := strings.TrimSpace(doc.Doc.Find("h1.product-title span").First().Text())

	rows := doc.Doc.Find(pricingRowSel)
	scrapedAt := time.Now()

	var records []*models.PriceRecord
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= maxRows {
			return false
		}
		cells := row.Find("td")

		// Price sits in the 2nd cell as <strong>$106.82</strong>; it is the
		// one mandatory field
		price := strings.TrimSpace(cells.Eq(1).Find("strong").First().Text())
		price = strings.TrimSpace(strings.TrimPrefix(price, "$"))
		if price == "" {
			return true
		}

		unit := strings.TrimSpace(cells.Eq(2).Find(`a[href*="UNIT_DEFINITIONS"]`).First().Text())

		// Selected-offering rows carry the contractor in bold, other-offering
		// rows link it to the contractor detail page. Try both in order.
		vendorCell := cells.Eq(4)
		contractorLink := vendorCell.Find(`a[href*="contractor_detail"]`).First()
		contractorName := strings.TrimSpace(vendorCell.Find("b").First().Text())
		if contractorName == "" {
			contractorName = strings.TrimSpace(contractorLink.Text())
		}

		contractNumber := ""
		if href, ok := contractorLink.Attr("href"); ok {
			if m := contractNumberRegex.FindStringSubmatch(href); m != nil {
				contractNumber = m[1]
			}
		}

		records = append(records, &models.PriceRecord{
			SearchedPartNumber:   partNumber,
			DisplayedPartNumber:  displayedPartNumber,
			MfrPartNumber:        mfrPartNumber,
			ContractorPartNumber: contractorPartNumber,
			Manufacturer:         manufacturer,
			ProductName:          productName,
			Price:                price,
			Unit:                 unit,
			ContractorName:       contractorName,
			ContractNumber:       contractNumber,
			URL:                  doc.URL,
			ScrapedAt:            scrapedAt,
		})
		return true
	})

	return records, rows.Length()
}

// labeledValue finds a div.row whose strong label carries caption and returns
// the adjacent col-lg-8 value cell's text. With exact set, the label must
// equal caption ("Manufacturer" must not match "Manufacturer Part Number").
func labeledValue(doc *goquery.Document, caption string, exact bool) string {
	var value string
	doc.Find("div.row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		matched := false
		row.Find("strong").Each(func(_ int, label *goquery.Selection) {
			text := strings.TrimSpace(label.Text())
			if exact {
				matched = matched || text == caption
			} else {
				matched = matched || strings.Contains(text, caption)
			}
		})
		if !matched {
			return true
		}
		value = strings.TrimSpace(row.Find(`div[class*="col-lg-8"]`).First().Text())
		return false
	})
	return value
}
