// Package render drives a headless browser through the per-URL capture
// protocol: navigate with fallback, settle, save the rendered HTML, and
// screenshot the dominant chart element (or the full page).
package render

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/use-agent/chartshot/config"
	"github.com/use-agent/chartshot/models"
)

// Dirs names the two output directories a capture writes into.
type Dirs struct {
	Images string
	HTML   string
}

// Engine owns the launched browser and its page pool. It is explicitly
// constructed and explicitly closed; callers pass it by reference into
// each capture. There is no package-level browser state.
type Engine struct {
	browser    *rod.Browser
	pagePool   rod.Pool[rod.Page]
	browserCfg config.BrowserConfig
	captureCfg config.CaptureConfig
}

// NewEngine launches a headless browser and initialises the reusable page
// pool.
func NewEngine(browserCfg config.BrowserConfig, captureCfg config.CaptureConfig) (*Engine, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.Proxy != "" {
		l = l.Proxy(browserCfg.Proxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	pool := rod.NewPagePool(browserCfg.MaxPages)

	return &Engine{
		browser:    browser,
		pagePool:   pool,
		browserCfg: browserCfg,
		captureCfg: captureCfg,
	}, nil
}

// acquirePage borrows a tab from the pool (creating one on demand) and
// fixes its viewport so screenshots are reproducible.
func (e *Engine) acquirePage() (*rod.Page, error) {
	page, err := e.pagePool.Get(func() (*rod.Page, error) {
		return e.browser.Page(proto.TargetCreateTarget{})
	})
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			err,
		)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             e.browserCfg.ViewportWidth,
		Height:            e.browserCfg.ViewportHeight,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		slog.Warn("failed to set viewport, using browser default", "error", err)
	}

	return page, nil
}

// releasePage navigates the tab to about:blank (dropping the page's DOM
// so pooled tabs do not accumulate memory) and returns it to the pool.
// The original page reference is used, not a context-bound one, so the
// cleanup succeeds even after the attempt's context has expired.
func (e *Engine) releasePage(page *rod.Page) {
	if err := page.Navigate("about:blank"); err != nil {
		slog.Warn("cleanup: failed to navigate to about:blank", "error", err)
	}
	e.pagePool.Put(page)
}

// Close drains the page pool and kills the browser process. Call this on
// shutdown to prevent zombie Chrome processes.
func (e *Engine) Close() {
	slog.Info("render engine shutting down: draining page pool")
	e.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	e.browser.MustClose()
	slog.Info("render engine shutdown complete")
}
