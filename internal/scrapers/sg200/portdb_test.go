package sg200

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const portDB = `<?xml version="1.0" encoding="UTF-8"?>
<portDB>
  <ports>
    <port><ifIndex>49</ifIndex><portName>GE1</portName><ifOperStatus>1</ifOperStatus></port>
    <port><ifIndex> 50 </ifIndex><portName type="physical">GE2</portName></port>
    <port><ifIndex>1000</ifIndex><portName></portName></port>
    <port><ifIndex>lag</ifIndex><portName>LAG1</portName></port>
    <port><portName>orphan</portName></port>
  </ports>
</portDB>`

func TestParseInterfaceNames(t *testing.T) {
	names, err := ParseInterfaceNames(portDB)
	require.NoError(t, err)

	expected := InterfaceNameMap{49: "GE1", 50: "GE2"}
	if diff := cmp.Diff(expected, names); diff != "" {
		t.Fatalf("ParseInterfaceNames mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInterfaceNamesSinglePort(t *testing.T) {
	names, err := ParseInterfaceNames(`<portDB><port><ifIndex>73</ifIndex><portName>GE25</portName></port></portDB>`)
	require.NoError(t, err)
	require.Equal(t, InterfaceNameMap{73: "GE25"}, names)
}

func TestParseInterfaceNamesInvalid(t *testing.T) {
	names, err := ParseInterfaceNames("<portDB><port></ports></portDB>")
	require.Error(t, err)
	require.Empty(t, names)

	names, err = ParseInterfaceNames("  ")
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestResolvePorts(t *testing.T) {
	entries := []MacEntry{
		{Vlan: 1, Mac: "aa:bb:cc:dd:ee:ff", PortIndex: "49", IfIndex: 49},
		{Vlan: 1, Mac: "aa:bb:cc:dd:ee:00", PortIndex: "52", IfIndex: 52},
	}

	resolved := ResolvePorts(entries, InterfaceNameMap{49: "GE1"})
	require.Equal(t, "GE1", resolved[0].PortIndex)
	require.Equal(t, "52", resolved[1].PortIndex)

	resolved = ResolvePorts(resolved, nil)
	require.Equal(t, "49", resolved[0].PortIndex)
}
