package render

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/use-agent/chartshot/models"
)

// Capture processes one URL end to end and returns its outcome record.
// It never returns an error: every failure is folded into the record's
// error/status fields. Status becomes "error" only when navigation fails
// under both wait strategies; all later failures (HTML write, chart
// screenshot) degrade gracefully and accumulate as warnings.
//
// Lifecycle:
//
//  1. Slug derivation        – deterministic output paths per URL
//  2. Acquire page           – borrow a tab from the pool
//  3. DEFER: release         – about:blank + return to pool on every exit path
//  4. Page preparation       – stealth JS, Referer header (before navigation!)
//  5. Navigate               – network idle first, DOM-loaded fallback
//  6. Settle                 – fixed delay for async chart rendering
//  7. HTML capture           – serialize document, non-fatal on failure
//  8. Chart capture          – locate largest SVG, label, strategy chain
func (e *Engine) Capture(ctx context.Context, rawURL string, dirs Dirs) *models.Record {
	rec := models.NewRecord(rawURL)
	slug := Slug(rawURL, e.captureCfg.SlugMaxLen)

	page, err := e.acquirePage()
	if err != nil {
		rec.Fail(err.Error())
		return rec
	}
	defer e.releasePage(page)

	e.preparePage(page, rawURL)

	if err := e.navigate(ctx, page, rawURL); err != nil {
		rec.Fail("goto failed: " + err.Error())
		return rec
	}

	e.settle(ctx)

	// Extraction and screenshots share one more NavTimeout budget so a
	// wedged page cannot stall the batch past its bounded suspension points.
	opCtx, cancelOp := context.WithTimeout(ctx, e.captureCfg.NavTimeout)
	defer cancelOp()
	p := page.Context(opCtx)

	saveHTML(p, dirs, slug, rec)

	c := &capture{page: p, dirs: dirs, slug: slug, rec: rec}
	c.locateChart()
	c.runStrategies(defaultStrategies())

	return rec
}

// preparePage installs per-attempt page state that must exist before
// navigation: stealth JS only takes effect for navigations after it is
// injected, and extra headers apply to the requests the navigation makes.
func (e *Engine) preparePage(page *rod.Page, rawURL string) {
	if e.captureCfg.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
		}
	}

	if e.captureCfg.SearchReferer {
		if u, err := url.Parse(rawURL); err == nil {
			_ = proto.NetworkSetExtraHTTPHeaders{
				Headers: proto.NetworkHeaders{
					"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
				},
			}.Call(page)
		}
	}
}

// navigate loads the URL with a two-tier wait strategy. Tier one waits
// for network-idle quiescence under the long timeout; if the idle wait
// times out (or navigation itself errors), tier two retries with only a
// DOM-stability wait under the shorter timeout. Only a tier-two failure
// is returned.
//
// The idle waiter is registered before Navigate: it installs a CDP
// listener, and registering it afterwards would miss in-flight requests
// and report a false idle.
func (e *Engine) navigate(ctx context.Context, page *rod.Page, rawURL string) error {
	idleCtx, cancelIdle := context.WithTimeout(ctx, e.captureCfg.NavTimeout)
	defer cancelIdle()

	p := page.Context(idleCtx)
	waitIdle := p.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	err := p.Navigate(rawURL)
	if err == nil {
		waitIdle()
		if idleCtx.Err() == nil {
			return nil
		}
	}
	slog.Debug("network-idle navigation failed, retrying with DOM wait",
		"url", rawURL, "error", err, "ctxErr", idleCtx.Err())

	domCtx, cancelDOM := context.WithTimeout(ctx, e.captureCfg.DOMTimeout)
	defer cancelDOM()

	p = page.Context(domCtx)
	if err := p.Navigate(rawURL); err != nil {
		return models.CategorizeError(err, "navigation failed under both wait strategies")
	}
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr)
	}
	return nil
}

// settle sleeps for the configured delay so chart libraries that draw
// asynchronously after load get a chance to finish.
func (e *Engine) settle(ctx context.Context) {
	if e.captureCfg.SettleDelay <= 0 {
		return
	}
	select {
	case <-time.After(e.captureCfg.SettleDelay):
	case <-ctx.Done():
	}
}

// saveHTML serializes the rendered document to <html_dir>/<slug>.html.
// A failure here is a warning, not a terminal error.
func saveHTML(p *rod.Page, dirs Dirs, slug string, rec *models.Record) {
	html, err := p.HTML()
	if err != nil {
		rec.AppendError("html error: " + err.Error())
		return
	}

	path := filepath.Join(dirs.HTML, slug+".html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		rec.AppendError("html error: " + err.Error())
		return
	}
	rec.HTMLPath = path
}
