package content_test

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/growth4u/contentflow/internal/content"
	"github.com/growth4u/contentflow/internal/models"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"¡Cómo Reducir el CAC!", "como-reducir-el-cac"},
		{"Cómo reducir CAC", "como-reducir-cac"},
		{"  Growth   Hacks  ", "growth-hacks"},
		{"B2B -- SaaS", "b2b-saas"},
		{"snake_case_title", "snake-case-title"},
		{"__init__ en Python", "init-en-python"},
		{"¿Qué es el PMF?", "que-es-el-pmf"},
		{"Año 2025: ñandú", "ano-2025-nandu"},
		{"a/b testing", "ab-testing"},
		{"- leading and trailing -", "leading-and-trailing"},
		{"🔥🔥", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, content.Slug(tt.in))
		})
	}
}

func TestSlug_Properties(t *testing.T) {
	titles := []string{
		"¡Cómo Reducir el CAC!",
		"David vs. Goliat: el 80/20 del growth",
		"__init__",
		"Ünïcödé — tëst",
		"   ",
		"x",
		"Meseta de crecimiento (parte 2)",
		"tab\tand\nnewline",
	}
	for _, title := range titles {
		s := content.Slug(title)
		assert.Equal(t, s, content.Slug(s), "slug must be idempotent for %q", title)
		if s != "" {
			assert.Regexp(t, slugShape, s, "slug shape for %q", title)
		}
		assert.Equal(t, hasWordChar(title), s != "", "non-empty iff word character in %q", title)
	}
}

func hasWordChar(s string) bool {
	return regexp.MustCompile(`[A-Za-z0-9À-ÿ]`).MatchString(s)
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, content.NormalizeTitle("growth hacks"), content.NormalizeTitle("  Growth Hacks  "))
	assert.NotEqual(t, content.NormalizeTitle("growth hacks"), content.NormalizeTitle("growth  hacks"))
}

func TestFlatten(t *testing.T) {
	blocks := []models.Block{
		{Type: models.BlockHeading1, Text: "Intro"},
		{Type: models.BlockParagraph, Text: "hello"},
		{Type: models.BlockDivider},
		{Type: models.BlockBulleted, Text: "x"},
	}
	assert.Equal(t, "# Intro\nhello\n\n---\n\n- x", content.Flatten(blocks))
}

func TestFlatten_AllTypes(t *testing.T) {
	blocks := []models.Block{
		{Type: models.BlockParagraph, Text: "lead"},
		{Type: models.BlockHeading2, Text: "Two"},
		{Type: models.BlockHeading3, Text: "Three"},
		{Type: models.BlockNumbered, Text: "first"},
		{Type: models.BlockNumbered, Text: "second"},
		{Type: models.BlockParagraph, Text: ""},
		{Type: "image", Text: "ignored"},
		{Type: "callout", Text: "ignored too"},
	}
	want := "lead\n\n## Two\n\n### Three\n1. first\n1. second"
	assert.Equal(t, want, content.Flatten(blocks))
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, content.Flatten(nil))
	assert.Empty(t, content.Flatten([]models.Block{
		{Type: models.BlockParagraph},
		{Type: "image"},
		{Type: "child_database", Text: "x"},
	}))
}

func TestExcerpt(t *testing.T) {
	body := "## Respuesta directa\n\nReducir el CAC exige foco.\n## Otra"
	assert.Equal(t, "Reducir el CAC exige foco.", content.Excerpt(body, "title"))
}

func TestExcerpt_Truncates(t *testing.T) {
	line := strings.Repeat("ñ", 250)
	got := content.Excerpt("# H\n"+line, "t")
	assert.Equal(t, models.MaxExcerptLength, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestExcerpt_FallsBackToTitle(t *testing.T) {
	assert.Equal(t, "Only headings", content.Excerpt("# A\n## B\n\n", "Only headings"))
}

func TestCategoryForType(t *testing.T) {
	assert.Equal(t, "Estrategia", content.CategoryForType("💡 Aha"))
	assert.Equal(t, "Marketing", content.CategoryForType("⚔️ Conflicto"))
	assert.Equal(t, "Growth", content.CategoryForType("⚙️ Sistema"))
	assert.Equal(t, "Estrategia", content.CategoryForType("🔥 Opinión"))
	assert.Equal(t, "Growth", content.CategoryForType("🏆 Victoria"))
	assert.Equal(t, models.DefaultCategory, content.CategoryForType("Unknown"))
	assert.Equal(t, models.DefaultCategory, content.CategoryForType(""))
}

func TestRewriteUserPrompt(t *testing.T) {
	got := content.RewriteUserPrompt("Cómo reducir CAC", "Estrategia", "draft body")
	assert.Equal(t, "Título: Cómo reducir CAC\nCategoría: Estrategia\n\nBorrador:\ndraft body", got)
}
