package htmlutil

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rendered on their own line, so their text never runs into a neighbour's
var blockElements = map[atom.Atom]bool{
	atom.Br:    true,
	atom.Div:   true,
	atom.P:     true,
	atom.Li:    true,
	atom.Tr:    true,
	atom.Td:    true,
	atom.Th:    true,
	atom.Table: true,
	atom.H1:    true,
	atom.H2:    true,
	atom.H3:    true,
}

// GetText concatenates every text node under node. Block elements are
// separated by a space, inline markup is joined as is.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
		if child.Type == html.ElementNode && blockElements[child.DataAtom] {
			buffer.WriteByte(' ')
		}
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeText replaces non-breaking spaces, collapses internal whitespace and trims.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
