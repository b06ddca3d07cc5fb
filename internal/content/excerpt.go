package content

import (
	"strings"

	"github.com/growth4u/contentflow/internal/models"
)

// Excerpt returns the first non-blank, non-heading line of body, cut to
// models.MaxExcerptLength runes. The title is used when body has no such
// line.
func Excerpt(body, title string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return truncateRunes(line, models.MaxExcerptLength)
	}
	return truncateRunes(strings.TrimSpace(title), models.MaxExcerptLength)
}

func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
