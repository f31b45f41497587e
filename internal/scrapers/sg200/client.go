// Package sg200 collects the mac table and system summary of Cisco SG200 class
// switches through their frameset web UI.
package sg200

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"netinventory/internal/components/assert"
	"netinventory/internal/components/browser"
	"netinventory/internal/components/telemetry"
	"netinventory/internal/scrapers/webui"
)

const Family = "sg200"

const (
	report_client_open_session         = "client.open-session"
	report_client_fetch_mac_table      = "client.fetch-mac-table"
	report_client_fetch_system_summary = "client.fetch-system-summary"
	report_client_interface_names      = "client.interface-names"
)

var namespacePattern = regexp.MustCompile(`/(csb[0-9a-fA-F]+)/`)

const (
	homePath   = "home.htm"
	portDBPath = "device/portDB.xml?Filter:(ifOperStatus!=6)"
)

var summaryPaths = []string{
	"sysinfo/system_general_description_Sx200_m.htm",
	"sysinfo/system_general_description_Sx200.htm",
	"sysinfo/system_general_description_m.htm",
	"sysinfo/system_general_description.htm",
	"sysinfo/system_information_m.htm",
	"sysinfo/system_information.htm",
	"sysinfo/system_summary_m.htm",
	"sysinfo/system_summary.htm",
	"sysinfo/systemSummary.htm",
	"Status/system_summary_m.htm",
	"Status/system_summary.htm",
}

var summaryFingerprint = webui.Fingerprint{
	Name: "sg200.system-summary",
	Markers: []string{
		"rlPhdUnitGenParamSerialNum$repeat?1",
		"rlPhdUnitGenParamSwVer$repeat?1",
	},
	// older builds render only the label/value table. Menu frames carry the
	// page title as a link, so the title alone is not a match.
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)<t[dh][^>]*>(?:\s|&nbsp;|\x{00a0})*(?:Serial Number|Firmware Version)(?:\s|&nbsp;|\x{00a0})*:?(?:\s|&nbsp;|\x{00a0})*</t[dh]>`),
	},
}

var macTablePaths = []string{
	"Adrs_tbl/bridg_frdData_dynamicAddress_m.htm",
	"Adrs_tbl/bridg_frdData_dynamicAddress.htm",
}

var macTableFingerprint = webui.Fingerprint{
	Name:    "sg200.mac-table",
	Markers: []string{fieldMac, fieldVlan, fieldPort},
	// an empty table has no row inputs, the form is named after the page
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)<form[^>]+(?:name|id|action)="[^"]*bridg_frdData_dynamicAddress[^"]*"`),
	},
}

// Client runs collections against any number of switches, every call opens
// and closes its own browser session.
type Client struct {
	launcher browser.Launcher
	timing   webui.Timing
	tel      telemetry.API
}

func NewClient(launcher browser.Launcher, timing webui.Timing, tel telemetry.API) *Client {
	assert.NotNil(launcher)
	assert.NotNil(tel)

	return &Client{
		launcher: launcher,
		timing:   timing,
		tel:      telemetry.NewScopedAPI("sg200_scraper", tel),
	}
}

func (c *Client) deviceError(address, op string, err error) error {
	return &webui.DeviceError{
		Family:  Family,
		Address: address,
		Op:      op,
		Err:     err,
	}
}

func (c *Client) open(ctx context.Context, address, username, password string) (*webui.Session, error) {
	s, err := webui.OpenSession(ctx, webui.SessionOptions{
		Launcher: c.launcher,
		Address:  address,
		Credentials: webui.Credentials{
			Username: username,
			Password: password,
		},
		Timing:    c.timing,
		Namespace: namespacePattern,
		Tel:       c.tel,
	})
	if err != nil {
		c.tel.ReportBroken(report_client_open_session, address, err)
		return nil, err
	}
	return s, nil
}

func (c *Client) locator(s *webui.Session, paths []string, fp webui.Fingerprint) webui.Locator {
	candidates := make([]string, len(paths))
	for i, path := range paths {
		candidates[i] = s.URL(path)
	}
	return webui.Locator{
		Candidates:  candidates,
		Fingerprint: fp,
		Tel:         c.tel,
	}
}

func notFound(ctx context.Context, fp webui.Fingerprint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%s: %w", fp.Name, webui.ErrPageNotFound)
}

// interfaceNames fetches the port database with the session's cookies. It never
// fails, ports simply stay unresolved.
func (c *Client) interfaceNames(ctx context.Context, s *webui.Session) InterfaceNameMap {
	xml, err := s.Page.Fetch(ctx, s.URL(portDBPath))
	if err != nil {
		c.tel.ReportWarning(report_client_interface_names, s.Address, err)
		return InterfaceNameMap{}
	}
	names, err := ParseInterfaceNames(xml)
	if err != nil {
		c.tel.ReportWarning(report_client_interface_names, s.Address, err)
		return InterfaceNameMap{}
	}
	return names
}

// FetchMacTable returns the dynamic mac table with ports resolved to interface names.
func (c *Client) FetchMacTable(ctx context.Context, address, username, password string) ([]MacEntry, error) {
	const op = "fetch mac table"

	s, err := c.open(ctx, address, username, password)
	if err != nil {
		return nil, c.deviceError(address, op, err)
	}
	defer s.Close()

	names := c.interfaceNames(ctx, s)

	markup, ok := c.locator(s, macTablePaths, macTableFingerprint).Locate(ctx, s.Page)
	if !ok {
		err = notFound(ctx, macTableFingerprint)
		c.tel.ReportBroken(report_client_fetch_mac_table, address, err)
		return nil, c.deviceError(address, op, err)
	}

	entries, err := DecodeMacTable(markup, address)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_mac_table, address, err)
		return nil, c.deviceError(address, op, err)
	}
	entries = ResolvePorts(entries, names)

	c.tel.ReportCount(report_client_fetch_mac_table, int64(len(entries)))
	return entries, nil
}

// FetchSystemSummary returns the identity fields of the switch.
func (c *Client) FetchSystemSummary(ctx context.Context, address, username, password string) (SystemSummary, error) {
	const op = "fetch system summary"

	s, err := c.open(ctx, address, username, password)
	if err != nil {
		return nil, c.deviceError(address, op, err)
	}
	defer s.Close()

	// loading home populates the frameset, the summary is often one of its frames
	err = s.Page.Goto(ctx, s.URL(homePath))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, c.deviceError(address, op, err)
	}
	if err != nil {
		c.tel.ReportWarning(report_client_fetch_system_summary, address, err)
	}

	markup, ok := c.locator(s, summaryPaths, summaryFingerprint).Locate(ctx, s.Page)
	if !ok {
		err = notFound(ctx, summaryFingerprint)
		c.tel.ReportBroken(report_client_fetch_system_summary, address, err)
		return nil, c.deviceError(address, op, err)
	}

	summary, err := DecodeSystemSummary(markup, c.tel)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_system_summary, address, err)
		return nil, c.deviceError(address, op, err)
	}
	if len(summary) == 0 {
		err = fmt.Errorf("%s: %w", summaryFingerprint.Name, webui.ErrDecodeEmpty)
		c.tel.ReportBroken(report_client_fetch_system_summary, address, err)
		return nil, c.deviceError(address, op, err)
	}

	c.tel.ReportCount(report_client_fetch_system_summary, int64(len(summary)))
	return summary, nil
}
