package render

import "regexp"

var (
	schemeRe = regexp.MustCompile(`^https?://`)
	unsafeRe = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// Slug converts a URL into a filesystem-safe filename stem: the scheme is
// stripped, every character outside [A-Za-z0-9_-] becomes "_", and the
// result is truncated to maxLen (0 disables truncation).
//
// The mapping is deterministic so repeated runs against the same URL
// always target the same output paths. Two distinct URLs that only differ
// past the truncation point collide; callers accept that trade-off to
// keep paths stable across runs.
func Slug(url string, maxLen int) string {
	s := schemeRe.ReplaceAllString(url, "")
	s = unsafeRe.ReplaceAllString(s, "_")
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
