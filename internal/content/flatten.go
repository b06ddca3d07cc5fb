package content

import (
	"strings"

	"github.com/growth4u/contentflow/internal/models"
)

// Flatten renders workspace blocks as markdown-like text.
//
// Headings get a blank line before them and dividers are wrapped in blank
// lines. Numbered items all use the literal "1. " marker so the output stays
// byte-compatible with articles published before the rewrite. Empty
// paragraphs and unknown block types are dropped.
func Flatten(blocks []models.Block) string {
	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		switch block.Type {
		case models.BlockHeading1:
			lines = append(lines, "\n# "+block.Text)
		case models.BlockHeading2:
			lines = append(lines, "\n## "+block.Text)
		case models.BlockHeading3:
			lines = append(lines, "\n### "+block.Text)
		case models.BlockBulleted:
			lines = append(lines, "- "+block.Text)
		case models.BlockNumbered:
			lines = append(lines, "1. "+block.Text)
		case models.BlockParagraph:
			if block.Text != "" {
				lines = append(lines, block.Text)
			}
		case models.BlockDivider:
			lines = append(lines, "\n---\n")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
