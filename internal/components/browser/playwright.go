package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightLauncher launches headless chromium through playwright.
// Device UIs are served over plain HTTP or self signed TLS, so certificate
// errors are always ignored.
type PlaywrightLauncher struct {
	Headless          bool
	NavigationTimeout time.Duration
	// SkipInstall assumes the playwright driver and chromium are already installed.
	SkipInstall bool
}

func (l PlaywrightLauncher) Launch(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run(&playwright.RunOptions{
		SkipInstallBrowsers: l.SkipInstall,
		Browsers:            []string{"chromium"},
	})
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("new page: %w", err)
	}

	timeout := l.NavigationTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &playwrightPage{
		pw:      pw,
		browser: b,
		bctx:    bctx,
		page:    page,
		timeout: timeout,
	}, nil
}

type playwrightPage struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page
	timeout time.Duration
}

// timeoutMs returns the navigation timeout, shortened to the ctx deadline.
func (p *playwrightPage) timeoutMs(ctx context.Context) float64 {
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout < time.Millisecond {
		timeout = time.Millisecond
	}
	return float64(timeout.Milliseconds())
}

func wrapTimeout(err error, url string) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%s: %w", url, ErrNavigationTimeout)
	}
	return fmt.Errorf("%s: %w", url, err)
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Content() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) QuerySelector(selector string) (Element, error) {
	return playwrightFrame{frame: p.page.MainFrame()}.QuerySelector(selector)
}

func (p *playwrightPage) Frames() []Frame {
	main := p.page.MainFrame()
	frames := []Frame{playwrightFrame{frame: main}}
	for _, f := range p.page.Frames() {
		if f == main {
			continue
		}
		frames = append(frames, playwrightFrame{frame: f})
	}
	return frames
}

func (p *playwrightPage) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(p.timeoutMs(ctx)),
	})
	if err != nil {
		return wrapTimeout(err, url)
	}
	return nil
}

func (p *playwrightPage) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res, err := p.bctx.Request().Get(url, playwright.APIRequestContextGetOptions{
		Timeout: playwright.Float(p.timeoutMs(ctx)),
	})
	if err != nil {
		return "", wrapTimeout(err, url)
	}
	defer res.Dispose()
	if !res.Ok() {
		return "", fmt.Errorf("%s: unexpected status %d", url, res.Status())
	}
	return res.Text()
}

func (p *playwrightPage) Close() error {
	var errlist []error
	if err := p.bctx.Close(); err != nil {
		errlist = append(errlist, err)
	}
	if err := p.browser.Close(); err != nil {
		errlist = append(errlist, err)
	}
	if err := p.pw.Stop(); err != nil {
		errlist = append(errlist, err)
	}
	return errors.Join(errlist...)
}

type playwrightFrame struct {
	frame playwright.Frame
}

func (f playwrightFrame) URL() string {
	return f.frame.URL()
}

func (f playwrightFrame) Content() (string, error) {
	return f.frame.Content()
}

func (f playwrightFrame) QuerySelector(selector string) (Element, error) {
	handle, err := f.frame.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	return playwrightElement{handle: handle}, nil
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e playwrightElement) Fill(value string) error {
	return e.handle.Fill(value)
}

func (e playwrightElement) Click() error {
	return e.handle.Click()
}

func (e playwrightElement) Press(key string) error {
	return e.handle.Press(key)
}
