package netgear

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"netinventory/pkg/macaddr"
)

// AccessEntry is one device on the router's access control list.
type AccessEntry struct {
	RouterIP string `json:"router_ip"`
	IP       string `json:"ip"`
	Mac      string `json:"mac"`
	Status   string `json:"status"`
	ConnType string `json:"conn_type"`
	Name     string `json:"name,omitempty"`
}

var (
	deviceRegex = regexp.MustCompile(`(?i)var\s+access_control_device(\d+)\s*=\s*"([^"]*)"`)
	nameRegex   = regexp.MustCompile(`(?i)var\s+access_control_device_name(\d+)\s*=\s*"([^"]*)"`)
)

// DecodeAccessControl joins the device and device name script variables of
// AccessControl_show.htm on their ordinal. Entries come out in the order their
// device variable first appears, names without a device are dropped.
func DecodeAccessControl(markup, routerAddress string) []AccessEntry {
	var order []int
	devices := map[int]*AccessEntry{}

	for _, m := range deviceRegex.FindAllStringSubmatch(markup, -1) {
		ordinal, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		// status*ip*mac[*conn_type]
		parts := strings.Split(m[2], "*")
		if len(parts) < 3 {
			continue
		}
		mac, ok := macaddr.NormalizeStrict(parts[2])
		if !ok {
			continue
		}
		entry := &AccessEntry{
			RouterIP: routerAddress,
			Status:   strings.TrimSpace(parts[0]),
			IP:       strings.TrimSpace(parts[1]),
			Mac:      mac,
		}
		if len(parts) > 3 {
			entry.ConnType = strings.TrimSpace(parts[3])
		}

		if _, seen := devices[ordinal]; !seen {
			order = append(order, ordinal)
		}
		devices[ordinal] = entry
	}

	for _, m := range nameRegex.FindAllStringSubmatch(markup, -1) {
		ordinal, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entry, ok := devices[ordinal]
		if !ok {
			continue
		}
		// "<Unknown>" is what the router shows for unnamed devices
		name := strings.Trim(strings.TrimSpace(html.UnescapeString(m[2])), "<>")
		if name != "" {
			entry.Name = name
		}
	}

	entries := make([]AccessEntry, 0, len(order))
	for _, ordinal := range order {
		entries = append(entries, *devices[ordinal])
	}
	return entries
}
