package gsa

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	classicRowsHTML = `<html><body><table>
<tr class="selectedItem"><td>1</td><td><strong>$50.00</strong></td></tr>
</table></body></html>`

	newDesignWithLinkHTML = `<html><body>
<div class="alert"><a href="/catalog/product_detail?itemNumber=5&pdNewDesign=false">Switch to classic view</a></div>
</body></html>`

	newDesignBareHTML = `<html><body><div class="new-shiny-layout"></div></body></html>`
)

func TestNegotiateClassic(t *testing.T) {
	ctx := context.Background()

	t.Run("already classic resolves without further driving", func(t *testing.T) {
		s := newTestScraper()
		page := newFakePage()
		url := "https://www.gsaadvantage.gov/catalog/product_detail?itemNumber=5&pdNewDesign=false"
		page.pages[url] = classicRowsHTML

		doc := s.negotiateClassic(ctx, page, url)
		require.NotNil(t, doc)
		assert.Equal(t, 1, doc.Doc.Find(pricingRowSel).Length())
		assert.Empty(t, page.clicks)
		assert.Equal(t, []string{url}, page.navigations)
	})

	t.Run("classic toggle link is clicked when present", func(t *testing.T) {
		s := newTestScraper()
		page := newFakePage()
		newURL := "https://www.gsaadvantage.gov/catalog/product_detail?itemNumber=5"
		classicURL := newURL + "&pdNewDesign=false"
		page.pages[newURL] = newDesignWithLinkHTML
		page.pages[classicURL] = classicRowsHTML
		page.clickNav[classicLinkSel] = classicURL

		doc := s.negotiateClassic(ctx, page, newURL)
		require.NotNil(t, doc)
		assert.Equal(t, []string{classicLinkSel}, page.clicks)
		assert.Equal(t, classicURL, doc.URL)
		assert.Equal(t, 1, doc.Doc.Find(pricingRowSel).Length())
	})

	t.Run("no link and no rows rewrites the URL", func(t *testing.T) {
		s := newTestScraper()
		page := newFakePage()
		newURL := "https://www.gsaadvantage.gov/catalog/product_detail?itemNumber=5"
		// url.Values.Encode emits keys in sorted order
		rewritten := "https://www.gsaadvantage.gov/catalog/product_detail?itemNumber=5&pdNewDesign=false"
		page.pages[newURL] = newDesignBareHTML
		page.pages[rewritten] = classicRowsHTML

		doc := s.negotiateClassic(ctx, page, newURL)
		require.NotNil(t, doc)
		assert.Empty(t, page.clicks)
		assert.Equal(t, []string{newURL, rewritten}, page.navigations)
		assert.Equal(t, 1, doc.Doc.Find(pricingRowSel).Length())
	})

	t.Run("flag already set with no rows stops negotiating", func(t *testing.T) {
		s := newTestScraper()
		page := newFakePage()
		url := "https://www.gsaadvantage.gov/catalog/product_detail?itemNumber=5&pdNewDesign=false"
		page.pages[url] = newDesignBareHTML

		doc := s.negotiateClassic(ctx, page, url)
		require.NotNil(t, doc)
		assert.Equal(t, []string{url}, page.navigations)
	})

	t.Run("negotiation failure falls through to the current document", func(t *testing.T) {
		s := newTestScraper()
		page := newFakePage()
		newURL := "https://www.gsaadvantage.gov/catalog/product_detail?itemNumber=5"
		page.pages[newURL] = newDesignWithLinkHTML
		page.clickErrs[classicLinkSel] = errors.New("element detached")

		doc := s.negotiateClassic(ctx, page, newURL)
		require.NotNil(t, doc)
		assert.Equal(t, newURL, doc.URL)
	})

	t.Run("initial navigation failure yields nil", func(t *testing.T) {
		s := newTestScraper()
		page := newFakePage()
		url := "https://www.gsaadvantage.gov/catalog/product_detail?itemNumber=5"
		page.navErrs[url] = errors.New("net::ERR_TIMED_OUT")

		assert.Nil(t, s.negotiateClassic(ctx, page, url))
	})
}

func TestSetClassicParam(t *testing.T) {
	t.Run("adds the flag", func(t *testing.T) {
		got, err := setClassicParam("https://x.gov/d?itemNumber=5")
		require.NoError(t, err)
		assert.Equal(t, "https://x.gov/d?itemNumber=5&pdNewDesign=false", got)
	})
	t.Run("replaces a true flag", func(t *testing.T) {
		got, err := setClassicParam("https://x.gov/d?pdNewDesign=true")
		require.NoError(t, err)
		assert.Equal(t, "https://x.gov/d?pdNewDesign=false", got)
	})
}
