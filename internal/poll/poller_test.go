package poll

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"netinventory/internal/components/telemetry/telemetrytest"

	"github.com/stretchr/testify/require"
)

type fakeCollector struct {
	mutex    sync.Mutex
	requests []collectRequest
	paths    []string
}

func (f *fakeCollector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(tokenHeader) != "shared" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "missing or invalid collector token"})
		return
	}
	var req collectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mutex.Lock()
	f.requests = append(f.requests, req)
	f.paths = append(f.paths, r.URL.Path)
	f.mutex.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case req.IP == "10.0.0.99":
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "sg200 10.0.0.99: fetch mac table: page not found"}`))
	case req.IP == "10.0.0.98":
		w.Write([]byte(`not json`))
	case r.URL.Path == "/netgear/access-control":
		w.Write([]byte(`{"router_ip": "` + req.IP + `", "entries": [
			{"router_ip": "` + req.IP + `", "ip": "192.168.1.199", "mac": "00:0c:29:b2:94:c0", "status": "Allowed", "conn_type": "wired"}
		]}`))
	default:
		w.Write([]byte(`{"switch_ip": "` + req.IP + `", "entries": [
			{"vlan": 1, "mac": "aa:bb:cc:dd:ee:ff", "port_index": "GE1", "switch_ip": "` + req.IP + `"}
		]}`))
	}
}

func newTestPoller(t *testing.T, kind Kind, token string) (*Poller, *fakeCollector) {
	collector := &fakeCollector{}
	server := httptest.NewServer(collector)
	t.Cleanup(server.Close)

	rec := &telemetrytest.Recorder{}
	poller := NewPoller(Options{
		Client:      NewCollectorClient(server.URL, token, 5*time.Second, rec),
		Kind:        kind,
		Concurrency: 2,
		Tel:         rec,
	})
	return poller, collector
}

func TestPollSwitches(t *testing.T) {
	poller, collector := newTestPoller(t, KindSG200, "shared")

	result := poller.Poll(context.Background(), []Device{
		{Address: "10.0.0.1", Username: "cisco", Password: "secret"},
		{Address: "10.0.0.99", Username: "cisco", Password: "secret"},
		{Address: "10.0.0.98", Username: "cisco", Password: "secret"},
		{Address: "10.0.0.2", Username: "cisco", Password: "secret"},
	})
	require.Empty(t, result.Error)
	require.Len(t, result.Endpoints, 2)
	require.Equal(t, "10.0.0.1", result.Endpoints[0].Properties[propSwitchIP])
	require.Equal(t, "10.0.0.2", result.Endpoints[1].Properties[propSwitchIP])
	require.Equal(t, "aabbccddeeff", result.Endpoints[0].Mac)
	require.Equal(t, "GE1", result.Endpoints[0].Properties[propPortIndex])
	require.Equal(t, "1", result.Endpoints[0].Properties[propVlan])

	require.Len(t, collector.requests, 4)
	for _, path := range collector.paths {
		require.Equal(t, "/sg200/mac-table", path)
	}
}

func TestPollRouters(t *testing.T) {
	poller, collector := newTestPoller(t, KindNetgear, "shared")

	result := poller.Poll(context.Background(), []Device{
		{Address: "192.168.1.7", Username: "admin", Password: "password"},
	})
	require.Len(t, result.Endpoints, 1)
	require.Equal(t, "000c29b294c0", result.Endpoints[0].Mac)
	require.Equal(t, "192.168.1.7", result.Endpoints[0].Properties[propRouterIP])
	require.Equal(t, []string{"/netgear/access-control"}, collector.paths)
}

func TestPollNoEndpoints(t *testing.T) {
	poller, _ := newTestPoller(t, KindSG200, "wrong")

	result := poller.Poll(context.Background(), []Device{
		{Address: "10.0.0.1", Username: "cisco", Password: "secret"},
	})
	require.Empty(t, result.Endpoints)
	require.Equal(t, "No endpoints collected from Cisco SG200 collector.", result.Error)

	result = poller.Poll(context.Background(), nil)
	require.NotEmpty(t, result.Error)
}

func TestPollResultJSON(t *testing.T) {
	out, err := json.Marshal(Result{Error: "No endpoints collected from Cisco SG200 collector."})
	require.NoError(t, err)
	require.JSONEq(t, `{"error": "No endpoints collected from Cisco SG200 collector."}`, string(out))
}

func TestConnectionTest(t *testing.T) {
	poller, collector := newTestPoller(t, KindSG200, "shared")

	result := poller.Test(context.Background(), []Device{
		{Address: "10.0.0.1", Username: "cisco", Password: "secret"},
		{Address: "10.0.0.2", Username: "cisco", Password: "secret"},
	})
	require.True(t, result.Succeeded)
	require.Equal(t, "Successfully contacted collector and retrieved 1 entries from Cisco SG200 10.0.0.1.", result.ResultMsg)
	require.Len(t, collector.requests, 1)

	result = poller.Test(context.Background(), []Device{{Address: "10.0.0.99", Username: "cisco", Password: "secret"}})
	require.False(t, result.Succeeded)
	require.Contains(t, result.Error, "500")
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Netgear ")
	require.NoError(t, err)
	require.Equal(t, KindNetgear, kind)

	_, err = ParseKind("mikrotik")
	require.Error(t, err)
}
