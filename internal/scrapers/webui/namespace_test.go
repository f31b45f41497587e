package webui

import (
	"regexp"
	"testing"

	"netinventory/internal/components/browser/browsertest"

	"github.com/stretchr/testify/require"
)

var csbPattern = regexp.MustCompile(`/(csb[0-9a-fA-F]+)/`)

func TestDiscoverNamespace(t *testing.T) {
	table := []struct {
		name     string
		page     *browsertest.Page
		expected string
		err      error
	}{
		{
			name: "nested frame",
			page: &browsertest.Page{
				Top: browsertest.Frame{Url: "http://192.168.0.221/"},
				Nested: []*browsertest.Frame{
					{Url: "http://192.168.0.221/csb4f1a27e0/home.htm"},
				},
			},
			expected: "csb4f1a27e0",
		},
		{
			name: "top level only",
			page: &browsertest.Page{
				Top: browsertest.Frame{Url: "http://192.168.0.221/csbABC123/config/main.htm"},
			},
			expected: "csbABC123",
		},
		{
			name: "absent",
			page: &browsertest.Page{
				Top:    browsertest.Frame{Url: "http://192.168.0.221/config/log_off_page.htm"},
				Nested: []*browsertest.Frame{{Url: "about:blank"}},
			},
			err: ErrNamespaceNotFound,
		},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			ns, err := DiscoverNamespace(test.page, csbPattern)
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, ns)
		})
	}
}
