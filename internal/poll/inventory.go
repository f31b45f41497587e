package poll

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"netinventory/internal/components/telemetry"
)

const report_inventory_parse = "inventory.parse"

// Device is one inventory line.
type Device struct {
	Address  string
	Username string
	Password string
}

func (d Device) String() string {
	return fmt.Sprintf("Device{Address: %q, Username: %q}", d.Address, d.Username)
}

// ParseInventory reads `ip,username,password` lines. Blank lines are ignored,
// malformed lines are reported and skipped.
func ParseInventory(r io.Reader, tel telemetry.API) ([]Device, error) {
	var devices []Device
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			tel.ReportWarning(report_inventory_parse, lineno, "expected 'ip,username,password'")
			continue
		}
		dev := Device{
			Address:  strings.TrimSpace(parts[0]),
			Username: strings.TrimSpace(parts[1]),
			Password: strings.TrimSpace(parts[2]),
		}
		if dev.Address == "" || dev.Username == "" || dev.Password == "" {
			tel.ReportWarning(report_inventory_parse, lineno, "missing ip, username or password")
			continue
		}
		devices = append(devices, dev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	return devices, nil
}

func ReadInventoryFile(path string, tel telemetry.API) ([]Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseInventory(f, tel)
}
