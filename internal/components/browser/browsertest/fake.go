// Package browsertest provides a scripted browser.Page for exercising scrapers
// without a real browser or device.
package browsertest

import (
	"context"
	"fmt"
	"sync"

	"netinventory/internal/components/browser"
)

// Element records what was done to it.
type Element struct {
	mutex   sync.Mutex
	Filled  []string
	Clicks  int
	Presses []string

	// OnSubmit runs after Click, or after Press("Enter").
	OnSubmit func()
}

func (e *Element) Fill(value string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.Filled = append(e.Filled, value)
	return nil
}

func (e *Element) Click() error {
	e.mutex.Lock()
	e.Clicks++
	submit := e.OnSubmit
	e.mutex.Unlock()
	if submit != nil {
		submit()
	}
	return nil
}

func (e *Element) Press(key string) error {
	e.mutex.Lock()
	e.Presses = append(e.Presses, key)
	submit := e.OnSubmit
	e.mutex.Unlock()
	if submit != nil && key == "Enter" {
		submit()
	}
	return nil
}

// Frame is a document with a fixed url and markup. Selectors are matched
// literally against the Elements map, there is no css engine.
type Frame struct {
	Url        string
	Markup     string
	ContentErr error
	Elements   map[string]*Element
}

func (f *Frame) URL() string {
	return f.Url
}

func (f *Frame) Content() (string, error) {
	if f.ContentErr != nil {
		return "", f.ContentErr
	}
	return f.Markup, nil
}

func (f *Frame) QuerySelector(selector string) (browser.Element, error) {
	el, ok := f.Elements[selector]
	if !ok {
		return nil, nil
	}
	return el, nil
}

// Route is what the fake serves when a url is navigated to or fetched.
type Route struct {
	Markup string
	// Err is returned by Goto/Fetch, the markup is still loaded on Goto like a
	// real browser that timed out after the document arrived.
	Err error
	// Frames replace the nested frames of the page after navigation.
	Frames []*Frame
}

// Page is a scripted browser.Page. The zero value is an empty about:blank page.
type Page struct {
	mutex sync.Mutex

	Top    Frame
	Nested []*Frame
	Routes map[string]Route

	Visited []string
	Fetched []string
	Closed  bool
}

func (p *Page) URL() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.Top.URL()
}

func (p *Page) Content() (string, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.Top.Content()
}

func (p *Page) QuerySelector(selector string) (browser.Element, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.Top.QuerySelector(selector)
}

func (p *Page) Frames() []browser.Frame {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	frames := []browser.Frame{&p.Top}
	for _, f := range p.Nested {
		frames = append(frames, f)
	}
	return frames
}

// SetFrames replaces the nested frames, for use from Element.OnSubmit.
func (p *Page) SetFrames(frames ...*Frame) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.Nested = frames
}

func (p *Page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.Visited = append(p.Visited, url)
	route, ok := p.Routes[url]
	if !ok {
		p.Top = Frame{Url: url, Markup: "<html><body>404 Not Found</body></html>"}
		p.Nested = nil
		return nil
	}
	p.Top = Frame{Url: url, Markup: route.Markup}
	p.Nested = route.Frames
	return route.Err
}

func (p *Page) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.Fetched = append(p.Fetched, url)
	route, ok := p.Routes[url]
	if !ok {
		return "", fmt.Errorf("%s: unexpected status 404", url)
	}
	if route.Err != nil {
		return "", route.Err
	}
	return route.Markup, nil
}

func (p *Page) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.Closed = true
	return nil
}

// Navigations returns how many times Goto was called.
func (p *Page) Navigations() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.Visited)
}

// Launcher hands out Page, or fails with Err.
type Launcher struct {
	Page     *Page
	Err      error
	Launches int
}

func (l *Launcher) Launch(ctx context.Context) (browser.Page, error) {
	l.Launches++
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Page, nil
}
