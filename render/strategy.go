package render

import (
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/use-agent/chartshot/chart"
	"github.com/use-agent/chartshot/models"
)

// capture is the per-attempt state shared by the screenshot strategies.
type capture struct {
	page *rod.Page
	dirs Dirs
	slug string
	rec  *models.Record
	el   *rod.Element // dominant chart element, nil when none was selected
}

// strategy is one way of producing the attempt's screenshot. Strategies
// are tried in order; the first applicable one that succeeds wins, and a
// failed attempt is downgraded to a warning before the next is tried.
type strategy struct {
	name    string
	applies func(*capture) bool
	attempt func(*capture) error
}

func defaultStrategies() []strategy {
	return []strategy{
		{
			name:    "chart",
			applies: func(c *capture) bool { return c.el != nil },
			attempt: (*capture).shootChart,
		},
		{
			name:    "fullpage",
			applies: func(*capture) bool { return true },
			attempt: (*capture).shootFullPage,
		},
	}
}

// locateChart runs the chart locator and, when an element was selected,
// the label extraction chain. HasChart reflects whether any SVG element
// existed at all, independent of whether one was selected.
func (c *capture) locateChart() {
	el, count, err := chart.Locate(c.page)
	c.rec.HasChart = count > 0
	if err != nil {
		c.rec.AppendError("chart scan error: " + err.Error())
		return
	}
	c.el = el
	if el == nil {
		return
	}

	outer, err := el.HTML()
	if err != nil {
		return
	}
	c.rec.LabelText = chart.Label(outer)
	c.rec.HasLabel = c.rec.LabelText != ""
}

// runStrategies walks the chain until one strategy produces an image.
// Strategy failures never flip the record's status; they accumulate in
// its error field.
func (c *capture) runStrategies(chain []strategy) {
	for _, s := range chain {
		if !s.applies(c) {
			continue
		}
		if err := s.attempt(c); err != nil {
			c.rec.AppendError(s.name + " screenshot error: " + err.Error())
			continue
		}
		return
	}
}

// shootChart scrolls the selected element into view and screenshots just
// that element.
func (c *capture) shootChart() error {
	if err := c.el.ScrollIntoView(); err != nil {
		return err
	}

	bin, err := c.el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return err
	}

	path := filepath.Join(c.dirs.Images, c.slug+"_chart.png")
	if err := os.WriteFile(path, bin, 0o644); err != nil {
		return err
	}
	c.rec.ImagePath = path
	return nil
}

// shootFullPage captures the whole page. This is both the no-chart path
// and the fallback when the element screenshot fails.
func (c *capture) shootFullPage() error {
	bin, err := c.page.Screenshot(true, nil)
	if err != nil {
		return err
	}

	path := filepath.Join(c.dirs.Images, c.slug+"_fullpage.png")
	if err := os.WriteFile(path, bin, 0o644); err != nil {
		return err
	}
	c.rec.ImagePath = path
	return nil
}
