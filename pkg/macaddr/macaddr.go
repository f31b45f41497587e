// Package macaddr renders hardware addresses scraped from device UIs in one canonical form:
// lowercase hex octets separated by colons.
package macaddr

import (
	"strings"
)

var separators = strings.NewReplacer(":", "", "-", "", ".", "", " ", "")

// Hex strips separators and lowercases s.
func Hex(s string) string {
	return strings.ToLower(separators.Replace(strings.TrimSpace(s)))
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func colonize(hex string) string {
	var out strings.Builder
	out.Grow(len(hex) + len(hex)/2)
	for i := 0; i < len(hex); i += 2 {
		if i > 0 {
			out.WriteByte(':')
		}
		out.WriteString(hex[i : i+2])
	}
	return out.String()
}

// Normalize renders any even-length hex string as colon separated octets.
// Input that is empty, odd-length or not hex after stripping separators is returned
// trimmed but otherwise unmodified.
func Normalize(raw string) string {
	hex := Hex(raw)
	if hex == "" || len(hex)%2 != 0 || !isHex(hex) {
		return strings.TrimSpace(raw)
	}
	return colonize(hex)
}

// NormalizeStrict is Normalize, but only accepts exactly 6 octets.
func NormalizeStrict(raw string) (string, bool) {
	hex := Hex(raw)
	if len(hex) != 12 || !isHex(hex) {
		return "", false
	}
	return colonize(hex), true
}
