package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

// Rewriter providers understood by REWRITER_PROVIDER.
const (
	ProviderAnthropic = "anthropic"
	ProviderVertex    = "vertex"
)

// placeholderAPIKey is the value shipped in the sample .env file.
const placeholderAPIKey = "tu_clave_aqui"

// Config holds every setting the content-sync and exporter functions read
// from the environment. It is built once at process start and passed into
// constructors; business logic never reads the environment directly.
type Config struct {
	NotionToken      string `envconfig:"NOTION_TOKEN"`
	NotionDatabaseID string `envconfig:"NOTION_DATABASE_ID"`
	NotionBaseURL    string `envconfig:"NOTION_BASE_URL" default:"https://api.notion.com"`

	ProjectID           string `envconfig:"GCP_PROJECT_ID"`
	FirestoreDatabaseID string `envconfig:"FIRESTORE_DATABASE_ID"`
	BlogPostsCollection string `envconfig:"BLOG_POSTS_COLLECTION"`
	DeployHookURL       string `envconfig:"DEPLOY_HOOK_URL"`
	PostsCacheBucket    string `envconfig:"POSTS_CACHE_BUCKET"`

	RewriterProvider       string `envconfig:"REWRITER_PROVIDER" default:"anthropic"`
	AnthropicAPIKey        string `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL       string `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com"`
	AnthropicModel         string `envconfig:"ANTHROPIC_MODEL" default:"claude-sonnet-4-6"`
	VertexAIRegion         string `envconfig:"VERTEX_AI_REGION" default:"us-central1"`
	VertexModel            string `envconfig:"VERTEX_MODEL" default:"gemini-1.5-pro"`
	RewriteFallbackOnError bool   `envconfig:"REWRITE_FALLBACK_ON_ERROR" default:"false"`

	CandidateDelay time.Duration `envconfig:"CANDIDATE_DELAY" default:"1s"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	LLMTimeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"90s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and then the process environment.
// Validation is left to the caller since each function needs a different
// subset of the settings.
func Load() (*Config, error) {
	// Ignore errors, env vars might be set by the runtime
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings required by the content-sync pipeline.
// A missing NOTION_TOKEN is reported first so the run aborts before any
// other work.
func (c *Config) Validate() error {
	if c.NotionToken == "" {
		return fmt.Errorf("%w: NOTION_TOKEN", ErrMissingRequired)
	}
	if c.NotionDatabaseID == "" {
		return fmt.Errorf("%w: NOTION_DATABASE_ID", ErrMissingRequired)
	}
	if c.ProjectID == "" {
		return fmt.Errorf("%w: GCP_PROJECT_ID", ErrMissingRequired)
	}
	if c.BlogPostsCollection == "" {
		return fmt.Errorf("%w: BLOG_POSTS_COLLECTION", ErrMissingRequired)
	}
	if c.DeployHookURL == "" {
		return fmt.Errorf("%w: DEPLOY_HOOK_URL", ErrMissingRequired)
	}
	switch c.RewriterProvider {
	case ProviderAnthropic, ProviderVertex:
	default:
		return fmt.Errorf("unknown REWRITER_PROVIDER %q", c.RewriterProvider)
	}
	return nil
}

// ValidateExporter checks the settings required by the posts cache exporter.
func (c *Config) ValidateExporter() error {
	if c.ProjectID == "" {
		return fmt.Errorf("%w: GCP_PROJECT_ID", ErrMissingRequired)
	}
	if c.BlogPostsCollection == "" {
		return fmt.Errorf("%w: BLOG_POSTS_COLLECTION", ErrMissingRequired)
	}
	if c.PostsCacheBucket == "" {
		return fmt.Errorf("%w: POSTS_CACHE_BUCKET", ErrMissingRequired)
	}
	return nil
}

// RewriteEnabled reports whether the configured provider has what it needs
// to call a model. When false the pipeline publishes raw drafts.
func (c *Config) RewriteEnabled() bool {
	if c.RewriterProvider == ProviderVertex {
		return c.ProjectID != ""
	}
	key := strings.TrimSpace(c.AnthropicAPIKey)
	return key != "" && key != placeholderAPIKey
}
