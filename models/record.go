package models

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// RenderedDocument is a snapshot of a browser page at a well-defined point:
// the parsed HTML plus the URL it was rendered at. Matchers and extractors
// operate only on snapshots, never on the live page.
type RenderedDocument struct {
	URL string
	Doc *goquery.Document
}

// ProductCard is one entry on a search results page: the part number the site
// displays for it and the link to its detail page (already absolutized and
// forced to the classic layout).
type ProductCard struct {
	DisplayedPartNumber string
	DetailURL           string
}

// PriceRecord is one extracted vendor/price offering from a detail page's
// pricing table. All fields except SearchedPartNumber and Price may be empty
// when the page does not carry them.
type PriceRecord struct {
	SearchedPartNumber   string
	DisplayedPartNumber  string
	MfrPartNumber        string
	ContractorPartNumber string
	Manufacturer         string
	ProductName          string
	Price                string // e.g. "106.82", currency symbol stripped
	Unit                 string
	ContractorName       string
	ContractNumber       string
	URL                  string
	ScrapedAt            time.Time
}
