// Package content holds the pure text transformations applied to workspace
// drafts before they are stored: slug derivation, block flattening, excerpt
// extraction and category lookup.
package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug derives the URL path segment the site uses for an article title.
//
// The title is lowercased, decomposed and stripped of combining marks, then
// every run of whitespace, hyphens or underscores becomes a single hyphen
// and any other non [a-z0-9] character is dropped. The result never starts
// or ends with a hyphen, so Slug(Slug(t)) == Slug(t).
//
// The site's own slug helper keeps underscores, so a title containing "_"
// produces a different path there than in the exported slugs.json.
func Slug(title string) string {
	folded := foldDiacritics(strings.ToLower(title))

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	return b.String()
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeTitle is the comparison key for the duplicate guard: trimmed and
// lowercased, nothing else.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
