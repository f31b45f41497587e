package webui

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"netinventory/internal/components/browser"
	"netinventory/internal/components/telemetry"
)

const (
	report_locator_inspect_frame = "locator.inspect-frame"
	report_locator_probe         = "locator.probe"
)

// Fingerprint recognizes a data page by tokens that survive firmware layout changes.
// Any marker or pattern hit is a match, alternates for other firmware builds are
// added to the same fingerprint.
type Fingerprint struct {
	Name     string
	Markers  []string
	Patterns []*regexp.Regexp
}

func (f Fingerprint) Match(markup string) bool {
	if markup == "" {
		return false
	}
	for _, marker := range f.Markers {
		if strings.Contains(markup, marker) {
			return true
		}
	}
	for _, pattern := range f.Patterns {
		if pattern.MatchString(markup) {
			return true
		}
	}
	return false
}

// Locator finds a data page whose path varies between firmware builds.
type Locator struct {
	// Candidates are absolute urls, probed in order.
	Candidates  []string
	Fingerprint Fingerprint
	Tel         telemetry.API
}

func (l Locator) tel() telemetry.API {
	if l.Tel == nil {
		return telemetry.NoopAPI{}
	}
	return l.Tel
}

// Locate returns the markup of the first document matching the fingerprint.
//
// Frames already loaded are checked first and cost no request. Candidates are
// then navigated to one by one; a failed or timed out probe moves on to the
// next candidate. ok is false when every candidate was exhausted, which is an
// answer rather than an error.
func (l Locator) Locate(ctx context.Context, page browser.Page) (markup string, ok bool) {
	tel := l.tel()

	for _, frame := range page.Frames() {
		content, err := frame.Content()
		if err != nil {
			tel.ReportDebug(report_locator_inspect_frame, l.Fingerprint.Name, frame.URL(), err)
			continue
		}
		if l.Fingerprint.Match(content) {
			tel.ReportDebug(report_locator_inspect_frame, l.Fingerprint.Name, "matched loaded frame", frame.URL())
			return content, true
		}
	}

	for _, candidate := range l.Candidates {
		if ctx.Err() != nil {
			return "", false
		}

		err := page.Goto(ctx, candidate)
		if errors.Is(err, browser.ErrNavigationTimeout) {
			tel.ReportDebug(report_locator_probe, l.Fingerprint.Name, candidate, "timeout, checking partial document")
		} else if err != nil {
			tel.ReportDebug(report_locator_probe, l.Fingerprint.Name, candidate, err)
			continue
		}

		content, err := page.Content()
		if err != nil {
			tel.ReportDebug(report_locator_probe, l.Fingerprint.Name, candidate, err)
			continue
		}
		if l.Fingerprint.Match(content) {
			tel.ReportDebug(report_locator_probe, l.Fingerprint.Name, "matched candidate", candidate)
			return content, true
		}
	}

	tel.ReportWarning(report_locator_probe, l.Fingerprint.Name, "exhausted candidates", len(l.Candidates))
	return "", false
}
