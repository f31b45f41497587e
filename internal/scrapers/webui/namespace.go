package webui

import (
	"regexp"

	"netinventory/internal/components/browser"
)

// NamespacePattern matches the per-session path segment, capture group 1 is the segment.
type NamespacePattern = *regexp.Regexp

// DiscoverNamespace returns the first namespace segment found in a frame url,
// falling back on the top level url.
func DiscoverNamespace(page browser.Page, pattern NamespacePattern) (string, error) {
	for _, frame := range page.Frames() {
		if m := pattern.FindStringSubmatch(frame.URL()); len(m) > 1 {
			return m[1], nil
		}
	}
	if m := pattern.FindStringSubmatch(page.URL()); len(m) > 1 {
		return m[1], nil
	}
	return "", ErrNamespaceNotFound
}
