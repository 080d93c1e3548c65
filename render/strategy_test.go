package render

import (
	"errors"
	"testing"

	"github.com/use-agent/chartshot/models"
)

func TestRunStrategies_FirstApplicableWins(t *testing.T) {
	c := &capture{rec: models.NewRecord("https://example.com")}

	var attempts []string
	chain := []strategy{
		{
			name:    "skipped",
			applies: func(*capture) bool { return false },
			attempt: func(c *capture) error {
				attempts = append(attempts, "skipped")
				return nil
			},
		},
		{
			name:    "winner",
			applies: func(*capture) bool { return true },
			attempt: func(c *capture) error {
				attempts = append(attempts, "winner")
				c.rec.ImagePath = "winner.png"
				return nil
			},
		},
		{
			name:    "unreached",
			applies: func(*capture) bool { return true },
			attempt: func(c *capture) error {
				attempts = append(attempts, "unreached")
				return nil
			},
		},
	}

	c.runStrategies(chain)

	if len(attempts) != 1 || attempts[0] != "winner" {
		t.Errorf("expected only the winner to run, got %v", attempts)
	}
	if c.rec.ImagePath != "winner.png" {
		t.Errorf("unexpected image path %q", c.rec.ImagePath)
	}
}

func TestRunStrategies_FailureFallsThroughWithWarning(t *testing.T) {
	c := &capture{rec: models.NewRecord("https://example.com")}

	chain := []strategy{
		{
			name:    "chart",
			applies: func(*capture) bool { return true },
			attempt: func(*capture) error { return errors.New("element detached") },
		},
		{
			name:    "fullpage",
			applies: func(*capture) bool { return true },
			attempt: func(c *capture) error {
				c.rec.ImagePath = "page_fullpage.png"
				return nil
			},
		},
	}

	c.runStrategies(chain)

	if c.rec.Status != models.StatusOK {
		t.Errorf("a successful fallback must keep status ok, got %q", c.rec.Status)
	}
	if c.rec.Error != "chart screenshot error: element detached" {
		t.Errorf("unexpected accumulated error %q", c.rec.Error)
	}
	if c.rec.ImagePath != "page_fullpage.png" {
		t.Errorf("expected fallback image, got %q", c.rec.ImagePath)
	}
}

func TestRunStrategies_AllFail(t *testing.T) {
	c := &capture{rec: models.NewRecord("https://example.com")}

	chain := []strategy{
		{
			name:    "chart",
			applies: func(*capture) bool { return true },
			attempt: func(*capture) error { return errors.New("boom") },
		},
		{
			name:    "fullpage",
			applies: func(*capture) bool { return true },
			attempt: func(*capture) error { return errors.New("bust") },
		},
	}

	c.runStrategies(chain)

	if c.rec.Status != models.StatusOK {
		t.Errorf("screenshot failures are degraded, not fatal; got status %q", c.rec.Status)
	}
	want := "chart screenshot error: boom | fullpage screenshot error: bust"
	if c.rec.Error != want {
		t.Errorf("accumulated error = %q, want %q", c.rec.Error, want)
	}
	if c.rec.ImagePath != "" {
		t.Errorf("no strategy succeeded, image path should stay empty, got %q", c.rec.ImagePath)
	}
}

func TestDefaultStrategies_ChartRequiresElement(t *testing.T) {
	chain := defaultStrategies()
	if len(chain) != 2 {
		t.Fatalf("expected 2 strategies, got %d", len(chain))
	}

	c := &capture{rec: models.NewRecord("https://example.com")}
	if chain[0].applies(c) {
		t.Error("chart strategy must not apply without a located element")
	}
	if !chain[1].applies(c) {
		t.Error("fullpage strategy must always apply")
	}
}
