package webui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"netinventory/internal/components/browser"
	"netinventory/internal/components/browser/browsertest"
	"netinventory/internal/components/telemetry/telemetrytest"

	"github.com/stretchr/testify/require"
)

var summaryFingerprint = Fingerprint{
	Name:    "test.system-summary",
	Markers: []string{"rlPhdUnitGenParamSerialNum$repeat?1"},
}

const summaryMarkup = `<input type="hidden" name="rlPhdUnitGenParamSerialNum$repeat?1" value="DNI161702F3">`

func TestFingerprintMatch(t *testing.T) {
	fp := Fingerprint{
		Markers:  []string{"System Summary"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`rndImage\dVersion`)},
	}
	require.True(t, fp.Match("<h1>System Summary</h1>"))
	require.True(t, fp.Match(`<input name="rndImage2Version$repeat?1">`))
	require.False(t, fp.Match("<h1>Port Settings</h1>"))
	require.False(t, fp.Match(""))
}

func TestLocateLoadedFrameSkipsNavigation(t *testing.T) {
	page := &browsertest.Page{
		Top: browsertest.Frame{Url: "http://sw/csb1/home.htm"},
		Nested: []*browsertest.Frame{
			{Url: "http://sw/csb1/banner.htm", Markup: "<html></html>"},
			{Url: "http://sw/csb1/sysinfo/x.htm", Markup: summaryMarkup},
		},
	}
	l := Locator{
		Candidates:  []string{"http://sw/csb1/a.htm", "http://sw/csb1/b.htm"},
		Fingerprint: summaryFingerprint,
	}

	markup, ok := l.Locate(context.Background(), page)
	require.True(t, ok)
	require.Equal(t, summaryMarkup, markup)
	require.Zero(t, page.Navigations())
}

func TestLocateProbesInOrderAndToleratesFailures(t *testing.T) {
	page := &browsertest.Page{
		Routes: map[string]browsertest.Route{
			"http://sw/csb1/a.htm": {Err: fmt.Errorf("a: %w", browser.ErrNavigationTimeout)},
			"http://sw/csb1/b.htm": {Err: errors.New("net::ERR_CONNECTION_RESET")},
			"http://sw/csb1/c.htm": {Markup: summaryMarkup},
			"http://sw/csb1/d.htm": {Markup: summaryMarkup},
		},
	}
	l := Locator{
		Candidates: []string{
			"http://sw/csb1/a.htm",
			"http://sw/csb1/b.htm",
			"http://sw/csb1/missing.htm",
			"http://sw/csb1/c.htm",
			"http://sw/csb1/d.htm",
		},
		Fingerprint: summaryFingerprint,
	}

	markup, ok := l.Locate(context.Background(), page)
	require.True(t, ok)
	require.Equal(t, summaryMarkup, markup)
	require.Equal(t, l.Candidates[:4], page.Visited)
}

func TestLocateTimedOutCandidateStillMatches(t *testing.T) {
	page := &browsertest.Page{
		Routes: map[string]browsertest.Route{
			"http://sw/csb1/a.htm": {
				Markup: summaryMarkup,
				Err:    fmt.Errorf("a: %w", browser.ErrNavigationTimeout),
			},
		},
	}
	l := Locator{Candidates: []string{"http://sw/csb1/a.htm"}, Fingerprint: summaryFingerprint}

	_, ok := l.Locate(context.Background(), page)
	require.True(t, ok)
}

func TestLocateExhaustedIsNotAnError(t *testing.T) {
	rec := &telemetrytest.Recorder{}
	page := &browsertest.Page{}
	l := Locator{
		Candidates:  []string{"http://sw/csb1/a.htm", "http://sw/csb1/b.htm"},
		Fingerprint: summaryFingerprint,
		Tel:         rec,
	}

	markup, ok := l.Locate(context.Background(), page)
	require.False(t, ok)
	require.Empty(t, markup)
	require.Equal(t, 2, page.Navigations())
	require.True(t, rec.Has(telemetrytest.Warning, report_locator_probe))
}

func TestLocateStopsOnCancel(t *testing.T) {
	page := &browsertest.Page{}
	l := Locator{Candidates: []string{"http://sw/csb1/a.htm"}, Fingerprint: summaryFingerprint}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := l.Locate(ctx, page)
	require.False(t, ok)
	require.Zero(t, page.Navigations())
}
