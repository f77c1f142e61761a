package gsa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gsadvantage-scraper/config"
	"gsadvantage-scraper/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// Page is the rendering-engine capability the crawl runs against: navigate
// with a settle wait, drive form elements, and snapshot the rendered document.
// One Page carries the navigation state of a single browser tab, so callers
// must use it for one operation at a time.
type Page interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	Snapshot(ctx context.Context) (*models.RenderedDocument, error)
}

// ChromePage implements Page on a headless Chrome tab via chromedp
type ChromePage struct {
	ctx             context.Context
	settle          time.Duration
	navTimeout      time.Duration
	selectorTimeout time.Duration
}

// NewChromePage starts a headless browser tab. The returned cancel func shuts
// the browser down and aborts any in-flight operation.
func NewChromePage(parent context.Context, cfg *config.Config) (*ChromePage, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return &ChromePage{
		ctx:             ctx,
		settle:          time.Duration(cfg.SettleDelayMs) * time.Millisecond,
		navTimeout:      time.Duration(cfg.NavTimeoutSec) * time.Second,
		selectorTimeout: time.Duration(cfg.SelectorTimeoutSec) * time.Second,
	}, cancel
}

// Navigate loads url and sleeps the settle delay so dynamic content can render
func (p *ChromePage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(p.ctx, p.navTimeout)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(p.settle),
	)
}

func (p *ChromePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Fill clears the element matched by selector and types value into it
func (p *ChromePage) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(p.ctx, p.selectorTimeout)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
}

// Click activates the element matched by selector, then waits the settle
// delay for whatever the click triggered to render
func (p *ChromePage) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(p.ctx, p.navTimeout)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.Sleep(p.settle),
	)
}

// Snapshot returns the page's current URL and fully rendered HTML as a parsed
// document
func (p *ChromePage) Snapshot(ctx context.Context) (*models.RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var html, location string
	runCtx, cancel := context.WithTimeout(p.ctx, p.navTimeout)
	defer cancel()
	err := chromedp.Run(runCtx,
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("page snapshot failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot HTML failed: %w", err)
	}
	return &models.RenderedDocument{URL: location, Doc: doc}, nil
}
