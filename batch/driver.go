package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/use-agent/chartshot/config"
	"github.com/use-agent/chartshot/models"
	"github.com/use-agent/chartshot/render"
)

// Capturer processes a single URL into an outcome record. The render
// engine satisfies this; tests substitute a stub.
type Capturer interface {
	Capture(ctx context.Context, url string, dirs render.Dirs) *models.Record
}

// Driver runs the capture engine over a URL list, strictly sequentially,
// resuming past URLs already present in the ledger and persisting the
// ledger after every completion.
type Driver struct {
	capturer Capturer
	cfg      config.BatchConfig
	limiter  *rate.Limiter
	out      io.Writer
}

// NewDriver creates a Driver. Progress lines go to out (os.Stdout when
// nil). A token-bucket limiter throttles attempts when the config asks
// for a rate; zero or negative rates disable throttling.
func NewDriver(capturer Capturer, cfg config.BatchConfig, out io.Writer) *Driver {
	if out == nil {
		out = os.Stdout
	}
	d := &Driver{capturer: capturer, cfg: cfg, out: out}
	if cfg.RatePerSecond > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return d
}

// Run processes the URL list against the output root. Completed URLs from
// a previous run are skipped; every new completion is appended to the
// ledger and the ledger file rewritten, so a crash between two URLs loses
// at most the in-flight attempt. Cancellation is honored between URLs,
// never mid-URL.
func (d *Driver) Run(ctx context.Context, urls []string, root string) error {
	dirs := render.Dirs{
		Images: filepath.Join(root, "images"),
		HTML:   filepath.Join(root, "html"),
	}
	for _, dir := range []string{root, dirs.Images, dirs.HTML} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return models.NewCaptureError(models.ErrCodeStorage, "create output directory", err)
		}
	}

	ledger, err := LoadLedger(LedgerPath(root))
	if err != nil {
		return err
	}
	recorded := ledger.Recorded(d.cfg.RetryFailed)
	if ledger.Len() > 0 {
		fmt.Fprintf(d.out, "Resuming: %d URLs already recorded.\n", ledger.Len())
	}

	total := len(urls)
	for i, url := range urls {
		idx := i + 1
		if url == "" {
			continue
		}
		if _, done := recorded[url]; done {
			fmt.Fprintf(d.out, "[%d/%d] Skipping (already recorded): %s\n", idx, total, url)
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		fmt.Fprintf(d.out, "[%d/%d] Processing: %s\n", idx, total, url)
		start := time.Now()
		rec := d.captureSafe(ctx, url, dirs)
		rec.SetElapsed(time.Since(start).Seconds())

		glyph := "✓"
		if rec.Status != models.StatusOK {
			glyph = "✗"
		}
		fmt.Fprintf(d.out, "  %s %.2fs | has_chart=%t | has_label=%t | label='%s'\n",
			glyph, rec.ElapsedSeconds, rec.HasChart, rec.HasLabel, truncate(rec.LabelText, 60))

		ledger.Upsert(rec)
		recorded[url] = struct{}{}
		if err := ledger.Save(); err != nil {
			return err
		}
	}

	fmt.Fprintf(d.out, "\nDone. %d entries in '%s'.\n", ledger.Len(), LedgerPath(root))
	return nil
}

// captureSafe invokes the capture engine and converts anything escaping
// it, panics included, into a synthetic error record so one bad URL can
// never abort the batch.
func (d *Driver) captureSafe(ctx context.Context, url string, dirs render.Dirs) (rec *models.Record) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("capture panicked", "url", url, "panic", r)
			rec = models.NewErrorRecord(url, fmt.Sprintf("capture panic: %v", r))
		}
	}()

	rec = d.capturer.Capture(ctx, url, dirs)
	if rec == nil {
		rec = models.NewErrorRecord(url, "capture returned no record")
	}
	return rec
}

// truncate bounds label previews in progress output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
