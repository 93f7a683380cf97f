package command

import (
	"strings"

	"github.com/rivo/uniseg"
)

// maxQuoteGraphemes bounds how much text content a description quotes.
const maxQuoteGraphemes = 24

// quote shortens s to at most maxQuoteGraphemes user-perceived characters
// and wraps it in quotes. Grapheme clusters are never split.
func quote(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if uniseg.GraphemeClusterCount(s) <= maxQuoteGraphemes {
		return `"` + s + `"`
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < maxQuoteGraphemes-1 && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return `"` + b.String() + `…"`
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
