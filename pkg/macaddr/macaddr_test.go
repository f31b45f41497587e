package macaddr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "aabbccddeeff", expected: "aa:bb:cc:dd:ee:ff"},
		{input: "AABBCCDDEEFF", expected: "aa:bb:cc:dd:ee:ff"},
		{input: "AA-BB-CC-DD-EE-FF", expected: "aa:bb:cc:dd:ee:ff"},
		{input: "aabb.ccdd.eeff", expected: "aa:bb:cc:dd:ee:ff"},
		{input: " 000c29b294c0 ", expected: "00:0c:29:b2:94:c0"},
		// pass-through cases
		{input: "abc", expected: "abc"},
		{input: "zzbbccddeeff", expected: "zzbbccddeeff"},
		{input: "  ", expected: ""},
	}

	for _, row := range table {
		require.Equal(t, row.expected, Normalize(row.input), row.input)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"aa:bb:cc:dd:ee:ff",
		"AABBCCDDEEFF",
		"0011.2233.4455",
		"abc",
		"00112233445566778899",
	}
	for _, input := range inputs {
		once := Normalize(input)
		require.Equal(t, once, Normalize(once), input)
	}
}

func TestNormalizeStrict(t *testing.T) {
	mac, ok := NormalizeStrict("00:0C:29:B2:94:C0")
	require.True(t, ok)
	require.Equal(t, "00:0c:29:b2:94:c0", mac)

	for _, bad := range []string{"", "000c29b294", "000c29b294c0aa", "000c29b294cg"} {
		_, ok := NormalizeStrict(bad)
		require.False(t, ok, bad)
	}
}
