package services

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/growth4u/contentflow/internal/content"
)

// refusalPhrases are openings a model uses when it declines the request.
// Only the start of the first non-blank line is compared, so an article
// that mentions one of them in passing still passes.
var refusalPhrases = []string{
	"i am unable to",
	"i cannot fulfill",
	"i cannot help with",
	"i'm sorry, but i can't",
	"as a large language model",
	"as an ai",
	"lo siento, no puedo",
	"no puedo ayudarte con",
	"como modelo de lenguaje, no puedo",
}

func refusal(body string) (string, bool) {
	first := strings.TrimSpace(body)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	first = strings.ToLower(strings.TrimSpace(first))
	for _, phrase := range refusalPhrases {
		if !strings.HasPrefix(first, phrase) {
			continue
		}
		rest, _ := utf8.DecodeRuneInString(first[len(phrase):])
		if rest == utf8.RuneError || !(unicode.IsLetter(rest) || unicode.IsDigit(rest)) {
			return phrase, true
		}
	}
	return "", false
}

// PassthroughRewriter publishes the draft as written. It is used when no
// model credentials are configured.
type PassthroughRewriter struct{}

func (PassthroughRewriter) Rewrite(_ context.Context, _, draft, _ string) (string, error) {
	return draft, nil
}

// Completer sends a single user prompt to a chat model whose system prompt
// is already configured.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompletionRewriter adapts a Completer to Rewriter by building the user
// prompt from the candidate.
type CompletionRewriter struct {
	completer Completer
}

func NewCompletionRewriter(c Completer) *CompletionRewriter {
	return &CompletionRewriter{completer: c}
}

func (r *CompletionRewriter) Rewrite(ctx context.Context, title, draft, category string) (string, error) {
	return r.completer.Complete(ctx, content.RewriteUserPrompt(title, category, draft))
}
