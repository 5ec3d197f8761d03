package scraper

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"listingpilot/pkg/log"
	"listingpilot/pkg/netguard"
)

// BrowserOptions selects how Chrome is reached. RemoteURL connects to an
// already running DevTools endpoint; otherwise Chrome is started locally.
type BrowserOptions struct {
	ExecPath  string
	RemoteURL string
	MaxTabs   int
}

// BrowserPool manages a single Chrome process and bounds the number of
// open tabs.
type BrowserPool struct {
	opts      []chromedp.ExecAllocatorOption
	remoteURL string

	mu          sync.Mutex
	ctx         context.Context
	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc

	tabs tabLimiter
}

func NewBrowserPool(o BrowserOptions) (*BrowserPool, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),

		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("disable-component-update", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.UserAgent(defaultUserAgent),
	)
	if o.ExecPath != "" {
		log.GlobalInfo("browser pool using custom chrome path", "path", o.ExecPath)
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	maxTabs := o.MaxTabs
	if maxTabs <= 0 {
		maxTabs = 1
	}

	bp := &BrowserPool{
		opts:      opts,
		remoteURL: o.RemoteURL,
		tabs:      newTabLimiter(maxTabs),
	}
	if err := bp.start(); err != nil {
		return nil, err
	}
	return bp, nil
}

// start initializes or restarts the browser connection.
func (bp *BrowserPool) start() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.stopLocked()

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if bp.remoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), bp.remoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), bp.opts...)
	}
	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(ctx); err != nil {
		ctxCancel()
		allocCancel()
		return fmt.Errorf("start chrome: %w", err)
	}

	bp.ctx = ctx
	bp.allocCancel = allocCancel
	bp.ctxCancel = ctxCancel
	log.GlobalInfo("browser pool chrome started", "remote", bp.remoteURL != "")
	return nil
}

func (bp *BrowserPool) stopLocked() {
	if bp.ctxCancel != nil {
		bp.ctxCancel()
	}
	if bp.allocCancel != nil {
		bp.allocCancel()
	}
	bp.ctxCancel, bp.allocCancel = nil, nil
}

// WithTab runs fn in a fresh tab once a tab slot is free. Waiting for a
// slot and the tab itself both end when ctx is done.
func (bp *BrowserPool) WithTab(ctx context.Context, fn func(tabCtx context.Context) error) error {
	if err := bp.tabs.acquire(ctx); err != nil {
		return err
	}
	defer bp.tabs.release()

	tabCtx, tabCancel, err := bp.acquireTab()
	if err != nil {
		return err
	}
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	return fn(tabCtx)
}

// acquireTab opens a tab and restarts Chrome once if the tab is unusable.
func (bp *BrowserPool) acquireTab() (context.Context, context.CancelFunc, error) {
	bp.mu.Lock()
	tabCtx, tabCancel := chromedp.NewContext(bp.ctx)
	bp.mu.Unlock()

	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		log.GlobalWarn("browser pool tab failed, restarting chrome", "error", err)

		if restartErr := bp.start(); restartErr != nil {
			return nil, nil, restartErr
		}
		bp.mu.Lock()
		tabCtx, tabCancel = chromedp.NewContext(bp.ctx)
		bp.mu.Unlock()
	}
	return tabCtx, tabCancel, nil
}

// Close shuts down the browser.
func (bp *BrowserPool) Close() {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.ctxCancel != nil {
		bp.stopLocked()
		log.GlobalInfo("browser pool chrome stopped")
	}
}

// tabLimiter is a counting semaphore.
type tabLimiter chan struct{}

func newTabLimiter(n int) tabLimiter {
	return make(tabLimiter, n)
}

func (l tabLimiter) acquire(ctx context.Context) error {
	select {
	case l <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l tabLimiter) release() {
	<-l
}

// BrowserFetcher renders pages in Chrome so script-built content is present.
// Chrome dials on its own, so http(s) hosts are resolved and checked before
// navigation instead.
type BrowserFetcher struct {
	pool    *BrowserPool
	timeout time.Duration
	policy  netguard.Policy
}

func NewBrowserFetcher(pool *BrowserPool, timeout time.Duration) *BrowserFetcher {
	return &BrowserFetcher{pool: pool, timeout: timeout}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if u, err := url.Parse(rawURL); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if err := f.policy.CheckURL(ctx, u); err != nil {
			return "", fmt.Errorf("render page: %w", err)
		}
	}

	var page string
	err := f.pool.WithTab(ctx, func(tabCtx context.Context) error {
		if f.timeout > 0 {
			var cancel context.CancelFunc
			tabCtx, cancel = context.WithTimeout(tabCtx, f.timeout)
			defer cancel()
		}
		return chromedp.Run(tabCtx,
			chromedp.Navigate(rawURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.OuterHTML("html", &page, chromedp.ByQuery),
		)
	})
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return page, nil
}
