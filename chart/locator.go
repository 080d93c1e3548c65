// Package chart locates the most visually prominent chart-like element on
// a rendered page and recovers its accessibility label. The locator is a
// pure geometric heuristic: it knows nothing about chart semantics and
// will happily pick a large decorative SVG over a small real chart.
package chart

import "github.com/go-rod/rod"

// Locate scans every SVG element on the page and returns the one with the
// largest visible bounding-box area, together with the total number of SVG
// elements found. The returned element is nil when no element reported a
// measurable box (or none existed at all).
//
// Ties keep the first-seen element, so document order wins between equally
// sized candidates. An element whose box query fails (detached, not
// rendered) is skipped rather than failing the scan.
func Locate(p *rod.Page) (*rod.Element, int, error) {
	els, err := p.Elements("svg")
	if err != nil {
		return nil, 0, err
	}

	areas := make([]float64, len(els))
	for i, el := range els {
		areas[i] = visibleArea(el)
	}

	idx := largestIndex(areas)
	if idx < 0 {
		return nil, len(els), nil
	}
	return els[idx], len(els), nil
}

// visibleArea returns the rendered bounding-box area of el in layout
// pixels, or -1 when the element has no measurable box.
func visibleArea(el *rod.Element) float64 {
	shape, err := el.Shape()
	if err != nil {
		return -1
	}
	box := shape.Box()
	if box == nil {
		return -1
	}
	area := box.Width * box.Height
	if area <= 0 {
		return -1
	}
	return area
}

// largestIndex returns the index of the strictly largest positive area, or
// -1 if no entry is positive. Equal areas keep the earlier index.
func largestIndex(areas []float64) int {
	best := -1
	var bestArea float64
	for i, a := range areas {
		if a <= 0 {
			continue
		}
		if best < 0 || a > bestArea {
			best = i
			bestArea = a
		}
	}
	return best
}
