// Package browser is the narrow surface the scrapers drive a web UI through.
// It knows nothing about any device; see playwright.go for the real implementation
// and browsertest for a scripted one.
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrNavigationTimeout is wrapped by Goto and Fetch when the document did not
// finish loading in time. What was loaded so far stays readable through Content.
var ErrNavigationTimeout = errors.New("navigation timeout")

// Element is a handle on a single node matched by a selector.
type Element interface {
	Fill(value string) error
	Click() error
	// Press sends a single key, e.g. "Enter".
	Press(key string) error
}

// Frame is a document, either the top level page or a nested frame.
type Frame interface {
	URL() string
	Content() (string, error)
	// QuerySelector returns the first element matching a css selector,
	// or (nil, nil) when nothing matches.
	QuerySelector(selector string) (Element, error)
}

// Page is one browser tab and the request context it is authenticated with.
type Page interface {
	Frame

	// Frames returns every frame on the page, the top level document first.
	Frames() []Frame
	Goto(ctx context.Context, url string) error
	// Fetch requests url with the page's cookies without navigating.
	Fetch(ctx context.Context, url string) (string, error)
	Close() error
}

// Launcher creates a fresh, isolated page. Each call owns what it launches.
type Launcher interface {
	Launch(ctx context.Context) (Page, error)
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
