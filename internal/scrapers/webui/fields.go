package webui

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const repeatSuffix = "$repeat"

// IndexedFields groups `<family>[$repeat]?<index>` inputs by family then index.
// Inputs whose index is not an integer are ignored.
func IndexedFields(doc *goquery.Document) map[string]map[int]string {
	out := map[string]map[int]string{}
	doc.Find("input[name]").Each(func(_ int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		sep := strings.LastIndexByte(name, '?')
		if sep <= 0 {
			return
		}
		idx, err := strconv.Atoi(name[sep+1:])
		if err != nil {
			return
		}
		family := strings.TrimSuffix(name[:sep], repeatSuffix)

		values, ok := out[family]
		if !ok {
			values = map[int]string{}
			out[family] = values
		}
		values[idx] = strings.TrimSpace(input.AttrOr("value", ""))
	})
	return out
}

// InputValue returns the trimmed value of the first input named name,
// empty values count as absent.
func InputValue(doc *goquery.Document, name string) (string, bool) {
	var value string
	var found bool
	doc.Find("input[name]").EachWithBreak(func(_ int, input *goquery.Selection) bool {
		if input.AttrOr("name", "") != name {
			return true
		}
		value = strings.TrimSpace(input.AttrOr("value", ""))
		found = value != ""
		return false
	})
	return value, found
}
