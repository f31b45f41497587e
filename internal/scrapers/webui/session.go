package webui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"netinventory/internal/components/assert"
	"netinventory/internal/components/browser"
	"netinventory/internal/components/telemetry"

	"github.com/google/uuid"
)

const report_session_open = "session.open"

// Timing holds the fixed waits firmware needs, most of the UI has no load signal.
type Timing struct {
	// LoginSettle is waited after submitting the login form.
	LoginSettle time.Duration
	// PostLogin is waited after login, before looking for the namespace.
	PostLogin time.Duration
}

// DefaultTiming matches what SG200 firmware needs on a loaded switch.
var DefaultTiming = Timing{
	LoginSettle: 4 * time.Second,
	PostLogin:   3 * time.Second,
}

type SessionOptions struct {
	Launcher    browser.Launcher
	Address     string
	Credentials Credentials
	Timing      Timing
	// Namespace is matched against frame urls after login.
	Namespace NamespacePattern
	Tel       telemetry.API
}

// Session is one authenticated browser session against one device. It is owned
// by the operation that opened it and must be closed on every exit path.
type Session struct {
	ID        string
	Address   string
	Namespace string
	Page      browser.Page

	tel telemetry.API
}

// BaseURL returns the http root of a device address, the address may carry a port.
func BaseURL(address string) string {
	return fmt.Sprintf("http://%s/", strings.TrimSuffix(address, "/"))
}

// OpenSession launches a browser, loads the device root, logs in and learns the
// session namespace.
func OpenSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	assert.NotNil(opts.Launcher)
	assert.NotNil(opts.Namespace)
	if opts.Address == "" {
		return nil, fmt.Errorf("open session: empty device address")
	}
	tel := opts.Tel
	if tel == nil {
		tel = telemetry.NoopAPI{}
	}

	page, err := opts.Launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	s := &Session{
		ID:      uuid.NewString(),
		Address: opts.Address,
		Page:    page,
		tel:     tel,
	}

	err = s.open(ctx, opts)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) open(ctx context.Context, opts SessionOptions) error {
	base := BaseURL(s.Address)
	err := s.Page.Goto(ctx, base)
	if errors.Is(err, browser.ErrNavigationTimeout) {
		// some firmware serves a usable login frameset long before it signals load
		s.tel.ReportWarning(report_session_open, s.ID, s.Address, err)
	} else if err != nil {
		return fmt.Errorf("load %s: %w", base, err)
	}

	err = Login(ctx, s.Page, opts.Credentials, opts.Timing.LoginSettle)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	err = browser.Sleep(ctx, opts.Timing.PostLogin)
	if err != nil {
		return err
	}

	ns, err := DiscoverNamespace(s.Page, opts.Namespace)
	if err != nil {
		return err
	}
	s.Namespace = ns
	s.tel.ReportDebug(report_session_open, s.ID, s.Address, "namespace", ns)
	return nil
}

// URL resolves a path under the session namespace.
func (s *Session) URL(path string) string {
	return fmt.Sprintf("%s%s/%s", BaseURL(s.Address), s.Namespace, strings.TrimPrefix(path, "/"))
}

func (s *Session) Close() error {
	err := s.Page.Close()
	if err != nil {
		s.tel.ReportWarning(report_session_open, s.ID, "close", err)
	}
	return err
}
