package content

import (
	"strings"

	"github.com/growth4u/contentflow/internal/models"
)

// typeCategories maps the content calendar "Type" select options onto blog
// categories.
var typeCategories = map[string]string{
	"💡 Aha":        "Estrategia",
	"⚔️ Conflicto": "Marketing",
	"⚙️ Sistema":   "Growth",
	"🔥 Opinión":    "Estrategia",
	"🏆 Victoria":   "Growth",
}

// CategoryForType resolves a workspace type tag to a blog category. Unknown
// or empty tags fall back to models.DefaultCategory.
func CategoryForType(tag string) string {
	if category, ok := typeCategories[strings.TrimSpace(tag)]; ok {
		return category
	}
	return models.DefaultCategory
}
