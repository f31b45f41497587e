package poll

import (
	"strconv"

	"netinventory/internal/scrapers/netgear"
	"netinventory/internal/scrapers/sg200"
	"netinventory/pkg/macaddr"
)

// Endpoint is one discovered host in the shape the NAC poll consumes.
type Endpoint struct {
	// Mac is 12 lowercase hex digits without separators.
	Mac        string            `json:"mac"`
	Properties map[string]string `json:"properties"`
}

const (
	propSwitchIP  = "connect_ciscosg200_switch_ip"
	propVlan      = "connect_ciscosg200_vlan"
	propPortIndex = "connect_ciscosg200_port_index"

	propRouterIP = "connect_netgear_router_ip"
	propIP       = "connect_netgear_ip"
	propStatus   = "connect_netgear_status"
	propConnType = "connect_netgear_conn_type"
	propName     = "connect_netgear_name"
)

// SwitchEndpoints attributes every learned mac to the switch it was polled from.
func SwitchEndpoints(address string, entries []sg200.MacEntry) []Endpoint {
	var out []Endpoint
	for _, entry := range entries {
		if entry.Mac == "" {
			continue
		}
		out = append(out, Endpoint{
			Mac: macaddr.Hex(entry.Mac),
			Properties: map[string]string{
				propSwitchIP:  address,
				propVlan:      strconv.Itoa(entry.Vlan),
				propPortIndex: entry.PortIndex,
			},
		})
	}
	return out
}

func RouterEndpoints(address string, entries []netgear.AccessEntry) []Endpoint {
	var out []Endpoint
	for _, entry := range entries {
		if entry.Mac == "" {
			continue
		}
		props := map[string]string{
			propRouterIP: address,
			propIP:       entry.IP,
			propStatus:   entry.Status,
			propConnType: entry.ConnType,
		}
		if entry.Name != "" {
			props[propName] = entry.Name
		}
		out = append(out, Endpoint{Mac: macaddr.Hex(entry.Mac), Properties: props})
	}
	return out
}
