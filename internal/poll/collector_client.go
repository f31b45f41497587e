package poll

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"netinventory/internal/components/assert"
	"netinventory/internal/components/telemetry"
	"netinventory/internal/scrapers/netgear"
	"netinventory/internal/scrapers/sg200"
	"netinventory/pkg/restyutil"

	"github.com/go-resty/resty/v2"
)

const DefaultCollectorTimeout = 45 * time.Second

const tokenHeader = "X-Collector-Token"

// Kind is the device family a poll targets.
type Kind string

const (
	KindSG200   Kind = "sg200"
	KindNetgear Kind = "netgear"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSG200:
		return KindSG200, nil
	case KindNetgear:
		return KindNetgear, nil
	}
	return "", fmt.Errorf("unknown device kind %q, expected sg200 or netgear", s)
}

func (k Kind) path() string {
	if k == KindNetgear {
		return "/netgear/access-control"
	}
	return "/sg200/mac-table"
}

// Label is how results name the device family.
func (k Kind) Label() string {
	if k == KindNetgear {
		return "Netgear"
	}
	return "Cisco SG200"
}

// CollectorClient talks to a collector's http api.
type CollectorClient struct {
	http *resty.Client
}

func NewCollectorClient(baseURL, token string, timeout time.Duration, tel telemetry.API) *CollectorClient {
	assert.NotNil(tel)
	assert.NotEmptyStr(baseURL)

	if timeout <= 0 {
		timeout = DefaultCollectorTimeout
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	httpClient.SetTimeout(timeout)
	if token = strings.TrimSpace(token); token != "" {
		httpClient.SetHeader(tokenHeader, token)
	}
	telemetry.InstrumentResty(httpClient, "netinventory/poll", tel)

	return &CollectorClient{http: httpClient}
}

// DumpHTTP writes every exchange with the collector to output.
func (c *CollectorClient) DumpHTTP(output restyutil.Output) {
	restyutil.Dump(c.http, output)
}

type collectRequest struct {
	IP   string `json:"ip"`
	User string `json:"user"`
	Pass string `json:"pass"`
}

type macTableResponse struct {
	Entries []sg200.MacEntry `json:"entries"`
}

type accessControlResponse struct {
	Entries []netgear.AccessEntry `json:"entries"`
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (c *CollectorClient) post(ctx context.Context, kind Kind, dev Device, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(collectRequest{IP: dev.Address, User: dev.Username, Pass: dev.Password}).
		Post(kind.path())
	if err != nil {
		return fmt.Errorf("contact collector for %s: %w", dev.Address, err)
	}
	if res.IsError() {
		return fmt.Errorf(
			"collector returned %s for %s (body: %s)",
			res.Status(), dev.Address, truncate(string(res.Body()), 200),
		)
	}
	err = json.Unmarshal(res.Body(), out)
	if err != nil {
		return fmt.Errorf("invalid json from collector for %s: %w", dev.Address, err)
	}
	return nil
}

func (c *CollectorClient) MacTable(ctx context.Context, dev Device) ([]sg200.MacEntry, error) {
	var out macTableResponse
	err := c.post(ctx, KindSG200, dev, &out)
	return out.Entries, err
}

func (c *CollectorClient) AccessControl(ctx context.Context, dev Device) ([]netgear.AccessEntry, error) {
	var out accessControlResponse
	err := c.post(ctx, KindNetgear, dev, &out)
	return out.Entries, err
}
