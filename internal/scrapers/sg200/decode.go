package sg200

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"netinventory/internal/components/telemetry"
	"netinventory/internal/scrapers/webui"
	"netinventory/pkg/htmlutil"
	"netinventory/pkg/macaddr"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
)

const (
	fieldVlan = "dot1qFdbId"
	fieldMac  = "dot1qTpFdbAddress"
	fieldPort = "dot1qTpFdbPort"
)

const report_decode_summary_label = "decode.summary-label"

// labels this close to a known one are most likely a firmware rewording
const nearMissThreshold = 0.93

func parseDocument(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// DecodeMacTable joins the vlan, mac and port hidden inputs of the dynamic
// address page on their repeat index, in ascending index order. Rows missing
// any of the three, or whose vlan or port is not numeric, are dropped.
func DecodeMacTable(markup, switchAddress string) ([]MacEntry, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}
	fields := webui.IndexedFields(doc)
	vlans := fields[fieldVlan]
	macs := fields[fieldMac]
	ports := fields[fieldPort]

	indexes := make([]int, 0, len(macs))
	for idx := range macs {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	entries := []MacEntry{}
	for _, idx := range indexes {
		mac := macs[idx]
		rawVlan, ok := vlans[idx]
		if !ok || mac == "" {
			continue
		}
		rawPort, ok := ports[idx]
		if !ok {
			continue
		}
		vlan, err := strconv.Atoi(rawVlan)
		if err != nil || vlan <= 0 {
			continue
		}
		port, err := strconv.Atoi(rawPort)
		if err != nil {
			continue
		}

		entries = append(entries, MacEntry{
			Vlan:      vlan,
			Mac:       macaddr.Normalize(mac),
			PortIndex: strconv.Itoa(port),
			SwitchIP:  switchAddress,
			IfIndex:   port,
		})
	}
	return entries, nil
}

func normalizeLabel(s string) string {
	return strings.TrimSuffix(htmlutil.NormalizeText(s), ":")
}

var defaultValueRegex = regexp.MustCompile(`Default value=([^;]+)`)

// hiddenSummary reads the summary fields newer firmware only keeps in hidden inputs.
func hiddenSummary(doc *goquery.Document) SystemSummary {
	first := func(names ...string) string {
		for _, name := range names {
			if value, ok := webui.InputValue(doc, name); ok {
				return value
			}
		}
		return ""
	}

	out := SystemSummary{}
	set := func(field, value string) {
		value = htmlutil.NormalizeText(value)
		if value != "" {
			out[field] = value
		}
	}

	set(FieldHostName, first("sysName"))
	set(FieldSystemContact, first("sysContact"))
	set(FieldSystemLocation, first("sysLocation"))
	set(FieldModelDescription, first(
		"sysDescr$scalar",
		"sysDescr",
		"rlPhdUnitGenParamDeviceDescr$repeat?1",
	))
	set(FieldFirmwareVersion, first(
		"rndImage1Version$repeat?1",
		"rndImage2Version$repeat?1",
		"rlPhdUnitGenParamSwVer$repeat?1",
	))

	serial := first("rlPhdUnitGenParamSerialNum$repeat?1")
	if serial == "" {
		if m := defaultValueRegex.FindStringSubmatch(first("rlPhdUnitGenParamSerialNum$VT")); len(m) > 1 {
			serial = m[1]
		}
	}
	set(FieldSerialNumber, serial)

	return out
}

func nearMiss(label string) (string, bool) {
	if label == "" || len(label) > 64 {
		return "", false
	}
	for known := range summaryLabels {
		if matchr.JaroWinkler(label, known, false) >= nearMissThreshold {
			return known, true
		}
	}
	return "", false
}

// DecodeSystemSummary reads the label/value cells of the summary page and
// overlays the hidden input values on them.
func DecodeSystemSummary(markup string, tel telemetry.API) (SystemSummary, error) {
	if tel == nil {
		tel = telemetry.NoopAPI{}
	}
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}

	out := SystemSummary{}
	doc.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		label := normalizeLabel(htmlutil.GetText(cell.Get(0)))
		field, ok := summaryLabels[label]
		if !ok {
			if known, miss := nearMiss(label); miss {
				tel.ReportWarning(report_decode_summary_label, "unmapped label", label, "resembles", known)
			}
			return
		}
		next := cell.NextAllFiltered("td, th").First()
		if next.Length() == 0 {
			return
		}
		value := htmlutil.NormalizeText(htmlutil.GetText(next.Get(0)))
		if value != "" {
			out[field] = value
		}
	})

	for field, value := range hiddenSummary(doc) {
		out[field] = value
	}
	return out, nil
}
