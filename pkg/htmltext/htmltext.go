package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strip returns the text content of an HTML fragment with all markup removed.
// Rich-text widgets emit HTML strings; length rules apply to the visible text.
func Strip(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// The html5 parser is lenient; if it does fail, fall back to the raw
		// string so a length rule never passes on markup-only input.
		return html
	}
	return doc.Text()
}

// StrippedLen returns the rune count of the markup-stripped text.
func StrippedLen(html string) int {
	return len([]rune(Strip(html)))
}
