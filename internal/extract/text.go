package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanText unescapes entities and collapses whitespace runs to one space
func CleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
