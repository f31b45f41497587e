package webui

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestIndexedFields(t *testing.T) {
	doc := parse(t, `<form>
		<input type="hidden" name="dot1qFdbId$repeat?2" value="20">
		<input type="hidden" name="dot1qFdbId?1" value=" 10 ">
		<input type="hidden" name="dot1qTpFdbAddress$repeat?1" value="aabbccddeeff">
		<input type="hidden" name="dot1qTpFdbPort?x" value="7">
		<input type="hidden" name="sysName" value="switch01">
		<input type="hidden" name="?3" value="orphan">
	</form>`)

	expected := map[string]map[int]string{
		"dot1qFdbId":        {1: "10", 2: "20"},
		"dot1qTpFdbAddress": {1: "aabbccddeeff"},
	}
	if diff := cmp.Diff(expected, IndexedFields(doc)); diff != "" {
		t.Fatalf("IndexedFields mismatch (-want +got):\n%s", diff)
	}
}

func TestInputValue(t *testing.T) {
	doc := parse(t, `<input name="sysName" value="  switch01 ">
		<input name="sysContact" value="">
		<input name="sysContact" value="ignored, first input wins">`)

	value, ok := InputValue(doc, "sysName")
	require.True(t, ok)
	require.Equal(t, "switch01", value)

	_, ok = InputValue(doc, "sysContact")
	require.False(t, ok)

	_, ok = InputValue(doc, "sysLocation")
	require.False(t, ok)
}
