package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser BrowserConfig
	Capture CaptureConfig
	Batch   BatchConfig
	Log     LogConfig
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL for all navigation.
	Proxy string

	// ViewportWidth and ViewportHeight fix the page viewport before
	// navigation so screenshots are reproducible across hosts.
	ViewportWidth  int // default: 1440
	ViewportHeight int // default: 900

	// MaxPages is the page pool capacity.
	MaxPages int // default: 2
}

// CaptureConfig controls per-URL capture behavior.
type CaptureConfig struct {
	// NavTimeout is the deadline for the network-idle navigation tier.
	NavTimeout time.Duration // default: 30s

	// DOMTimeout is the deadline for the DOM-content-loaded fallback tier.
	DOMTimeout time.Duration // default: 20s

	// SettleDelay is the fixed wait after a successful navigation, giving
	// chart libraries that draw asynchronously time to finish.
	SettleDelay time.Duration // default: 3s

	// SlugMaxLen bounds the length of URL-derived filenames.
	SlugMaxLen int // default: 80

	// Stealth injects automation-fingerprint masking before navigation.
	Stealth bool // default: false

	// SearchReferer sends a search-engine Referer header with navigation.
	SearchReferer bool // default: true
}

// BatchConfig controls the sequential batch driver.
type BatchConfig struct {
	// RatePerSecond throttles URL attempts; <= 0 disables throttling.
	RatePerSecond float64 // default: 0

	// RateBurst is the token bucket burst size when throttling is on.
	RateBurst int // default: 1

	// RetryFailed removes previously failed URLs from the resume skip set.
	RetryFailed bool // default: false
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:       envBoolOr("CHARTSHOT_HEADLESS", true),
			NoSandbox:      envBoolOr("CHARTSHOT_NO_SANDBOX", false),
			BrowserBin:     os.Getenv("CHARTSHOT_BROWSER_BIN"),
			Proxy:          os.Getenv("CHARTSHOT_PROXY"),
			ViewportWidth:  envIntOr("CHARTSHOT_VIEWPORT_WIDTH", 1440),
			ViewportHeight: envIntOr("CHARTSHOT_VIEWPORT_HEIGHT", 900),
			MaxPages:       envIntOr("CHARTSHOT_MAX_PAGES", 2),
		},
		Capture: CaptureConfig{
			NavTimeout:    envDurationOr("CHARTSHOT_NAV_TIMEOUT", 30*time.Second),
			DOMTimeout:    envDurationOr("CHARTSHOT_DOM_TIMEOUT", 20*time.Second),
			SettleDelay:   envDurationOr("CHARTSHOT_SETTLE_DELAY", 3*time.Second),
			SlugMaxLen:    envIntOr("CHARTSHOT_SLUG_MAX", 80),
			Stealth:       envBoolOr("CHARTSHOT_STEALTH", false),
			SearchReferer: envBoolOr("CHARTSHOT_SEARCH_REFERER", true),
		},
		Batch: BatchConfig{
			RatePerSecond: envFloatOr("CHARTSHOT_RATE_RPS", 0),
			RateBurst:     envIntOr("CHARTSHOT_RATE_BURST", 1),
			RetryFailed:   envBoolOr("CHARTSHOT_RETRY_FAILED", false),
		},
		Log: LogConfig{
			Level:  envOr("CHARTSHOT_LOG_LEVEL", "info"),
			Format: envOr("CHARTSHOT_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
