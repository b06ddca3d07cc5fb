package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/growth4u/contentflow/internal/anthropic"
	"github.com/growth4u/contentflow/internal/config"
	"github.com/growth4u/contentflow/internal/content"
	"github.com/growth4u/contentflow/internal/deploy"
	"github.com/growth4u/contentflow/internal/gcp"
	"github.com/growth4u/contentflow/internal/logger"
	"github.com/growth4u/contentflow/internal/models"
	"github.com/growth4u/contentflow/internal/notion"
	"github.com/growth4u/contentflow/internal/store"
)

// deployTimeout bounds the build hook call, which runs on a context detached
// from the run so that a cancelled run still reports what it published.
const deployTimeout = 15 * time.Second

var ErrEmptyRewrite = errors.New("rewriter returned empty content")

// Workspace is the content calendar: source of candidates and owner of
// their status.
type Workspace interface {
	ReadyCandidates(ctx context.Context) ([]models.Candidate, error)
	PageBlocks(ctx context.Context, pageID string) ([]models.Block, error)
	MarkPublished(ctx context.Context, c models.Candidate) error
}

// ArticleRepository is the destination store. ExistsByTitle must compare
// titles trimmed and case-insensitively; how it finds them is up to the
// implementation.
type ArticleRepository interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, a models.Article) (string, error)
}

// Rewriter turns a flattened draft into the long-form article body.
type Rewriter interface {
	Rewrite(ctx context.Context, title, draft, category string) (string, error)
}

// Deployer triggers the site rebuild.
type Deployer interface {
	Notify(ctx context.Context) error
}

// SyncDeps wires the collaborators of a content-sync run.
type SyncDeps struct {
	Workspace Workspace
	Articles  ArticleRepository
	Rewriter  Rewriter
	Deployer  Deployer
	// Throttle is waited on before every candidate. Nil means no delay.
	Throttle Throttle
	// Clock stamps createdAt/updatedAt. Nil means time.Now in UTC.
	Clock func() time.Time
	// FallbackOnError publishes the raw draft when the rewriter fails
	// instead of leaving the candidate for the next run.
	FallbackOnError bool
}

// ContentSyncFunction publishes Ready workspace pages as blog articles.
type ContentSyncFunction struct {
	workspace       Workspace
	articles        ArticleRepository
	rewriter        Rewriter
	deployer        Deployer
	throttle        Throttle
	clock           func() time.Time
	fallbackOnError bool
}

type outcome int

const (
	outcomePublished outcome = iota
	outcomeDuplicate
	outcomeSkippedEmpty
	outcomeFailed
)

// NewContentSync validates cfg and builds a ContentSyncFunction backed by the
// real workspace, Firestore, rewriter and build hook.
func NewContentSync(ctx context.Context, cfg *config.Config) (*ContentSyncFunction, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	notionClient := notion.NewClient(cfg.NotionBaseURL, cfg.NotionToken, cfg.HTTPTimeout)

	firestoreClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID, cfg.FirestoreDatabaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	rewriter, err := newRewriter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create rewriter: %w", err)
	}

	f := NewContentSyncWithDeps(SyncDeps{
		Workspace:       notion.NewWorkspace(notionClient, cfg.NotionDatabaseID),
		Articles:        store.NewFirestoreRepository(firestoreClient, cfg.BlogPostsCollection),
		Rewriter:        rewriter,
		Deployer:        deploy.NewWebhook(cfg.DeployHookURL, cfg.HTTPTimeout),
		Throttle:        NewThrottle(cfg.CandidateDelay),
		FallbackOnError: cfg.RewriteFallbackOnError,
	})
	slog.Info("Content sync initialized.",
		"collection", cfg.BlogPostsCollection,
		"rewriter", cfg.RewriterProvider,
		"rewriteEnabled", cfg.RewriteEnabled(),
	)
	return f, nil
}

func newRewriter(ctx context.Context, cfg *config.Config) (Rewriter, error) {
	if !cfg.RewriteEnabled() {
		slog.Warn("No rewriter credentials configured; drafts will be published unmodified.", "provider", cfg.RewriterProvider)
		return PassthroughRewriter{}, nil
	}
	if cfg.RewriterProvider == config.ProviderVertex {
		return gcp.NewVertexRewriter(ctx, cfg.ProjectID, cfg.VertexAIRegion, cfg.VertexModel)
	}
	client := anthropic.NewClient(cfg.AnthropicBaseURL, cfg.AnthropicAPIKey, cfg.AnthropicModel, content.RewriteSystemPrompt, cfg.LLMTimeout)
	return NewCompletionRewriter(client), nil
}

// NewContentSyncWithDeps builds a ContentSyncFunction from explicit
// collaborators.
func NewContentSyncWithDeps(deps SyncDeps) *ContentSyncFunction {
	throttle := deps.Throttle
	if throttle == nil {
		throttle = NoThrottle{}
	}
	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &ContentSyncFunction{
		workspace:       deps.Workspace,
		articles:        deps.Articles,
		rewriter:        deps.Rewriter,
		deployer:        deps.Deployer,
		throttle:        throttle,
		clock:           clock,
		fallbackOnError: deps.FallbackOnError,
	}
}

// Process runs one sync. Candidates are handled strictly one after another;
// any failure inside a candidate is logged and the run moves on. Only a
// failure to read candidates is returned as an error.
//
// The duplicate check and the create are not atomic. Two overlapping runs
// can both miss an existing title and publish it twice; the scheduler must
// not start a run while another is in flight.
func (f *ContentSyncFunction) Process(ctx context.Context, req *models.SyncRequest) (*models.SyncResponse, error) {
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	logCtx := slog.With("trigger", req.Trigger, "executionId", req.ExecutionID)
	logCtx.InfoContext(ctx, "Starting content sync.")

	res := &models.SyncResponse{Status: "success", RunID: runID}

	candidates, err := f.workspace.ReadyCandidates(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to read candidates from workspace", "error", err)
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	res.Candidates = len(candidates)
	logCtx.InfoContext(ctx, "Fetched ready candidates.", "count", len(candidates))

	for _, c := range candidates {
		if err := f.throttle.Wait(ctx); err != nil {
			logCtx.WarnContext(ctx, "Run interrupted before all candidates were processed", "error", err)
			res.Status = "interrupted"
			break
		}

		switch f.processCandidate(ctx, logCtx, c) {
		case outcomePublished:
			res.Published++
		case outcomeDuplicate:
			res.Duplicates++
		case outcomeSkippedEmpty:
			res.SkippedEmpty++
		case outcomeFailed:
			res.Failed++
		}
	}

	if res.Published > 0 {
		res.DeployTriggered = f.triggerDeploy(ctx, logCtx)
	} else {
		logCtx.InfoContext(ctx, "No new articles published; deploy not triggered.")
	}

	logCtx.InfoContext(ctx, "Content sync complete.",
		"published", res.Published,
		"duplicates", res.Duplicates,
		"skippedEmpty", res.SkippedEmpty,
		"failed", res.Failed,
		"deployTriggered", res.DeployTriggered,
	)
	return res, nil
}

func (f *ContentSyncFunction) processCandidate(ctx context.Context, logCtx *slog.Logger, c models.Candidate) outcome {
	category := content.CategoryForType(c.Type)
	logCtx = logCtx.With("pageId", c.PageID, "title", titlePrefix(c.Title), "type", c.Type, "category", category)

	if strings.TrimSpace(c.Title) == "" {
		logCtx.WarnContext(ctx, "Candidate has no title. Skipping.")
		return outcomeFailed
	}

	exists, err := f.articles.ExistsByTitle(ctx, c.Title)
	if err != nil {
		logCtx.ErrorContext(ctx, "Duplicate check failed. Skipping.", "error", err)
		return outcomeFailed
	}
	if exists {
		logCtx.InfoContext(ctx, "Article already exists. Marking candidate as published.")
		f.reconcile(ctx, logCtx, c)
		return outcomeDuplicate
	}

	blocks, err := f.workspace.PageBlocks(ctx, c.PageID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to fetch page content. Skipping.", "error", err)
		return outcomeFailed
	}
	draft := content.Flatten(blocks)
	if draft == "" {
		logCtx.WarnContext(ctx, "Candidate has no content. Skipping.", "blockCount", len(blocks))
		return outcomeSkippedEmpty
	}

	body, err := f.rewrite(ctx, c.Title, draft, category)
	if err != nil {
		if !f.fallbackOnError {
			logCtx.ErrorContext(ctx, "Rewrite failed. Candidate left for the next run.", "error", err)
			return outcomeFailed
		}
		logCtx.WarnContext(ctx, "Rewrite failed. Publishing original draft.", "error", err)
		body = draft
	}

	now := f.clock()
	article := models.Article{
		Title:     c.Title,
		Category:  category,
		Excerpt:   content.Excerpt(body, c.Title),
		Content:   body,
		Image:     "",
		ReadTime:  models.DefaultReadTime,
		Author:    models.DefaultAuthor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	docID, err := f.articles.Create(ctx, article)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish article. Candidate left for the next run.", "error", err)
		return outcomeFailed
	}
	logCtx.InfoContext(ctx, "Article published.", "docId", docID, "path", "/blog/"+content.Slug(c.Title)+"/")

	f.reconcile(ctx, logCtx, c)
	return outcomePublished
}

// rewrite returns the article body. Model output is checked for empty and
// refusal responses; a passthrough draft is published as written.
func (f *ContentSyncFunction) rewrite(ctx context.Context, title, draft, category string) (string, error) {
	body, err := f.rewriter.Rewrite(ctx, title, draft, category)
	if err != nil {
		return "", err
	}
	if _, passthrough := f.rewriter.(PassthroughRewriter); passthrough {
		return body, nil
	}
	if strings.TrimSpace(body) == "" {
		return "", ErrEmptyRewrite
	}
	if phrase, ok := refusal(body); ok {
		return "", fmt.Errorf("rewriter response indicates refusal: %q", phrase)
	}
	return body, nil
}

// reconcile marks the source page as published. A failure leaves the page
// Ready; the next run finds the article through the duplicate check and
// retries the update.
func (f *ContentSyncFunction) reconcile(ctx context.Context, logCtx *slog.Logger, c models.Candidate) {
	if err := f.workspace.MarkPublished(ctx, c); err != nil {
		logCtx.WarnContext(ctx, "Failed to mark candidate as published", "error", err)
		return
	}
	logCtx.InfoContext(ctx, "Candidate marked as published.")
}

func (f *ContentSyncFunction) triggerDeploy(ctx context.Context, logCtx *slog.Logger) bool {
	deployCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deployTimeout)
	defer cancel()

	if err := f.deployer.Notify(deployCtx); err != nil {
		logCtx.ErrorContext(ctx, "Failed to trigger deploy", "error", err)
		return false
	}
	logCtx.InfoContext(ctx, "Deploy triggered.")
	return true
}

func titlePrefix(title string) string {
	r := []rune(title)
	if len(r) > 55 {
		return string(r[:55])
	}
	return title
}
