package webui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"netinventory/internal/components/browser"
	"netinventory/internal/components/browser/browsertest"
	"netinventory/internal/components/telemetry/telemetrytest"

	"github.com/stretchr/testify/require"
)

const testAddress = "192.168.0.221"

// newLoginPage serves a login frame at the device root; submitting it swaps in
// a frameset under the given namespace.
func newLoginPage(namespace string, rootErr error) (*browsertest.Page, *browsertest.Element) {
	page := &browsertest.Page{}
	button := &browsertest.Element{
		OnSubmit: func() {
			page.SetFrames(&browsertest.Frame{
				Url: fmt.Sprintf("http://%s/%s/home.htm", testAddress, namespace),
			})
		},
	}
	page.Routes = map[string]browsertest.Route{
		BaseURL(testAddress): {
			Err: rootErr,
			Frames: []*browsertest.Frame{{
				Url: fmt.Sprintf("http://%s/config/log_off_page.htm", testAddress),
				Elements: map[string]*browsertest.Element{
					passwordSelector: {},
					identitySelector: {},
					submitSelector:   button,
				},
			}},
		},
	}
	return page, button
}

func testSessionOptions(launcher browser.Launcher) SessionOptions {
	return SessionOptions{
		Launcher:    launcher,
		Address:     testAddress,
		Credentials: testCreds,
		Namespace:   csbPattern,
	}
}

func TestOpenSession(t *testing.T) {
	page, button := newLoginPage("csb4f1a27e0", nil)
	launcher := &browsertest.Launcher{Page: page}

	s, err := OpenSession(context.Background(), testSessionOptions(launcher))
	require.NoError(t, err)
	require.Equal(t, "csb4f1a27e0", s.Namespace)
	require.NotEmpty(t, s.ID)
	require.Equal(t, 1, button.Clicks)
	require.Equal(t, "http://192.168.0.221/csb4f1a27e0/device/portDB.xml", s.URL("/device/portDB.xml"))

	require.False(t, page.Closed)
	require.NoError(t, s.Close())
	require.True(t, page.Closed)
}

func TestOpenSessionToleratesRootTimeout(t *testing.T) {
	rec := &telemetrytest.Recorder{}
	page, _ := newLoginPage("csb99", fmt.Errorf("root: %w", browser.ErrNavigationTimeout))
	opts := testSessionOptions(&browsertest.Launcher{Page: page})
	opts.Tel = rec

	s, err := OpenSession(context.Background(), opts)
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, "csb99", s.Namespace)
	require.True(t, rec.Has(telemetrytest.Warning, report_session_open))
}

func TestOpenSessionFailures(t *testing.T) {
	refused := errors.New("net::ERR_CONNECTION_REFUSED")

	t.Run("connection refused closes session", func(t *testing.T) {
		page, _ := newLoginPage("csb1", refused)
		_, err := OpenSession(context.Background(), testSessionOptions(&browsertest.Launcher{Page: page}))
		require.ErrorIs(t, err, refused)
		require.True(t, page.Closed)
	})

	t.Run("no namespace after login", func(t *testing.T) {
		page := &browsertest.Page{
			Routes: map[string]browsertest.Route{
				BaseURL(testAddress): {Frames: []*browsertest.Frame{{Url: "http://192.168.0.221/config/main.htm"}}},
			},
		}
		_, err := OpenSession(context.Background(), testSessionOptions(&browsertest.Launcher{Page: page}))
		require.ErrorIs(t, err, ErrNamespaceNotFound)
		require.True(t, page.Closed)
	})

	t.Run("launch failure", func(t *testing.T) {
		launchErr := errors.New("chromium not installed")
		_, err := OpenSession(context.Background(), testSessionOptions(&browsertest.Launcher{Err: launchErr}))
		require.ErrorIs(t, err, launchErr)
	})

	t.Run("empty address", func(t *testing.T) {
		opts := testSessionOptions(&browsertest.Launcher{Page: &browsertest.Page{}})
		opts.Address = ""
		_, err := OpenSession(context.Background(), opts)
		require.Error(t, err)
	})
}

func TestBaseURL(t *testing.T) {
	require.Equal(t, "http://10.0.0.1/", BaseURL("10.0.0.1"))
	require.Equal(t, "http://10.0.0.1:8080/", BaseURL("10.0.0.1:8080/"))
}

func TestDeviceError(t *testing.T) {
	err := error(&DeviceError{
		Family:  "sg200",
		Address: testAddress,
		Op:      "fetch system summary",
		Err:     fmt.Errorf("locate: %w", ErrPageNotFound),
	})
	require.ErrorIs(t, err, ErrPageNotFound)
	require.Equal(t, "sg200 192.168.0.221: fetch system summary: locate: page not found", err.Error())

	var deviceErr *DeviceError
	require.True(t, errors.As(err, &deviceErr))
	require.Equal(t, "sg200", deviceErr.Family)
}
