package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestDumpRedactsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Set-Cookie", "session=abc123")
		w.Write([]byte(`var access_control_device0="Allowed*192.168.1.199*000c29b294c0*wired";`))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dump")
	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	client := resty.New()
	Dump(client, output)
	_, err = client.R().
		SetBasicAuth("admin", "password").
		SetHeader("X-Collector-Token", "shared").
		SetBody(map[string]string{"pass": "hunter2"}).
		Post(server.URL + "/AccessControl_show.htm")
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "1"))
	require.NoError(t, err)
	dump := string(contents)

	require.Contains(t, dump, "POST "+server.URL+"/AccessControl_show.htm")
	require.Contains(t, dump, "access_control_device0")
	require.Contains(t, dump, "Authorization: <redacted>")
	require.Contains(t, dump, "X-Collector-Token: <redacted>")
	require.NotContains(t, dump, "abc123")
	require.NotContains(t, dump, "hunter2")
	require.NotContains(t, dump, "shared")
}
