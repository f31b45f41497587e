// Package netgear collects the access control list of Netgear WNDR class
// routers, which serve it behind HTTP basic auth with the data in inline script.
package netgear

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"netinventory/internal/components/assert"
	"netinventory/internal/components/telemetry"
	"netinventory/internal/scrapers/webui"
	"netinventory/pkg/restyutil"

	"github.com/go-resty/resty/v2"
)

const Family = "netgear"

const accessControlPath = "AccessControl_show.htm"

const report_client_fetch_access_control = "client.fetch-access-control"

const DefaultTimeout = 10 * time.Second

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(timeout time.Duration, tel telemetry.API) *Client {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("netgear_scraper", tel)

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := resty.New()
	httpClient.SetTimeout(timeout)
	httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	telemetry.InstrumentResty(httpClient, "netinventory/netgear", tel)

	return &Client{
		http: httpClient,
		tel:  tel,
	}
}

// DumpHTTP writes every exchange with a router to output.
func (c *Client) DumpHTTP(output restyutil.Output) {
	restyutil.Dump(c.http, output)
}

// FetchAccessControlEntries reads the router's access control list, a router
// with no devices yields an empty slice.
func (c *Client) FetchAccessControlEntries(ctx context.Context, address, username, password string) ([]AccessEntry, error) {
	fetchError := func(err error) error {
		c.tel.ReportBroken(report_client_fetch_access_control, address, err)
		return &webui.DeviceError{
			Family:  Family,
			Address: address,
			Op:      "fetch access control",
			Err:     err,
		}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(username, password).
		Get(webui.BaseURL(address) + accessControlPath)
	if err != nil {
		return nil, fetchError(err)
	}
	if res.IsError() {
		return nil, fetchError(fmt.Errorf("unexpected status %s", res.Status()))
	}

	entries := DecodeAccessControl(string(res.Body()), address)
	c.tel.ReportCount(report_client_fetch_access_control, int64(len(entries)))
	return entries, nil
}
