package sg200

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clbanning/mxj"
)

// ParseInterfaceNames reads the ifIndex to port name table of device/portDB.xml.
// Ports without a usable index or name are skipped.
func ParseInterfaceNames(xml string) (InterfaceNameMap, error) {
	out := InterfaceNameMap{}
	if strings.TrimSpace(xml) == "" {
		return out, nil
	}

	mapXML, err := mxj.NewMapXml([]byte(xml))
	if err != nil {
		return out, fmt.Errorf("parse port database: %w", err)
	}
	ports, err := mapXML.ValuesForKey("port")
	if err != nil {
		return out, fmt.Errorf("read port database: %w", err)
	}

	for _, value := range ports {
		port, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		rawIndex, ok := leafText(port["ifIndex"])
		if !ok {
			continue
		}
		name, ok := leafText(port["portName"])
		if !ok || name == "" {
			continue
		}
		idx, err := strconv.Atoi(rawIndex)
		if err != nil {
			continue
		}
		out[idx] = name
	}
	return out, nil
}

// leafText returns the text of an element that was decoded by mxj either as
// a plain string or, when it carries attributes, as a map with "#text".
func leafText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case map[string]interface{}:
		text, ok := v["#text"].(string)
		return strings.TrimSpace(text), ok
	}
	return "", false
}

// ResolvePorts replaces the port of every entry with its interface name,
// entries whose index is unknown keep the raw index.
func ResolvePorts(entries []MacEntry, names InterfaceNameMap) []MacEntry {
	for i, entry := range entries {
		if name, ok := names[entry.IfIndex]; ok {
			entries[i].PortIndex = name
		} else {
			entries[i].PortIndex = strconv.Itoa(entry.IfIndex)
		}
	}
	return entries
}
