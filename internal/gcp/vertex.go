package gcp

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/growth4u/contentflow/internal/content"
)

// VertexRewriter rewrites drafts with a Gemini model on Vertex AI.
type VertexRewriter struct {
	model      *genai.GenerativeModel
	baseClient *genai.Client
}

// NewVertexRewriter creates the client and configures the rewriter model with
// the GEO system instruction.
func NewVertexRewriter(ctx context.Context, projectID, region, modelName string, opts ...option.ClientOption) (*VertexRewriter, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexRewriter: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region, opts...)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := baseClient.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(content.RewriteSystemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: genai.Ptr[int32](4096),
		Temperature:     genai.Ptr[float32](0.7),
	}

	return &VertexRewriter{model: model, baseClient: baseClient}, nil
}

// Rewrite sends the draft and returns the generated markdown.
func (v *VertexRewriter) Rewrite(ctx context.Context, title, draft, category string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(content.RewriteUserPrompt(title, category, draft)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content from gemini: %w", err)
	}
	return ExtractText(resp), nil
}

// ExtractText concatenates the text parts of the first candidate as the
// model produced them.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
