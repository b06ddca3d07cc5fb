package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"

	"github.com/growth4u/contentflow/internal/config"
	"github.com/growth4u/contentflow/internal/content"
	"github.com/growth4u/contentflow/internal/gcp"
	"github.com/growth4u/contentflow/internal/models"
	"github.com/growth4u/contentflow/internal/store"
)

const (
	postsObject     = "posts.json"
	slugsObject     = "slugs.json"
	jsonContentType = "application/json; charset=utf-8"
)

// ArticleLister reads every published article, newest first.
type ArticleLister interface {
	List(ctx context.Context) ([]store.StoredArticle, error)
}

// ObjectWriter stores a named object and reports where it lives.
type ObjectWriter interface {
	Write(ctx context.Context, objectName, contentType string, data []byte) error
	URI(objectName string) string
}

// PostsExporterFunction snapshots the blog collection into the static posts
// cache read by the site build.
type PostsExporterFunction struct {
	articles ArticleLister
	objects  ObjectWriter
}

// NewPostsExporter validates cfg and builds the exporter on Firestore and
// Cloud Storage.
func NewPostsExporter(ctx context.Context, cfg *config.Config) (*PostsExporterFunction, error) {
	if err := cfg.ValidateExporter(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	firestoreClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID, cfg.FirestoreDatabaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return NewPostsExporterWithDeps(
		store.NewFirestoreRepository(firestoreClient, cfg.BlogPostsCollection),
		gcp.NewBucketWriter(storageClient, cfg.PostsCacheBucket),
	), nil
}

func NewPostsExporterWithDeps(articles ArticleLister, objects ObjectWriter) *PostsExporterFunction {
	return &PostsExporterFunction{articles: articles, objects: objects}
}

// Process writes posts.json and slugs.json. Either upload failing fails the
// export; the other object may already have been replaced.
func (f *PostsExporterFunction) Process(ctx context.Context, req *models.PostsExportRequest) (*models.PostsExportResponse, error) {
	logCtx := slog.With("executionId", req.ExecutionID)
	logCtx.InfoContext(ctx, "Starting posts export.")

	stored, err := f.articles.List(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to read articles", "error", err)
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	posts := make([]models.CachedPost, 0, len(stored))
	slugs := make([]string, 0, len(stored))
	for _, a := range stored {
		p := ToCachedPost(a)
		posts = append(posts, p)
		slugs = append(slugs, p.Slug)
	}

	postsJSON, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode posts: %w", err)
	}
	slugsJSON, err := json.MarshalIndent(slugs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode slugs: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return f.objects.Write(gctx, postsObject, jsonContentType, postsJSON)
	})
	g.Go(func() error {
		return f.objects.Write(gctx, slugsObject, jsonContentType, slugsJSON)
	})
	if err := g.Wait(); err != nil {
		logCtx.ErrorContext(ctx, "Failed to upload posts cache", "error", err)
		return nil, fmt.Errorf("failed to upload posts cache: %w", err)
	}

	res := &models.PostsExportResponse{
		Status:      "success",
		PostCount:   len(posts),
		PostsGCSUri: f.objects.URI(postsObject),
		SlugsGCSUri: f.objects.URI(slugsObject),
	}
	logCtx.InfoContext(ctx, "Posts export complete.", "count", res.PostCount, "posts", res.PostsGCSUri)
	return res, nil
}

// ToCachedPost derives the slug and fills the fields older documents may
// lack with the defaults the site applies when reading.
func ToCachedPost(a store.StoredArticle) models.CachedPost {
	p := models.CachedPost{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      content.Slug(a.Title),
		Category:  a.Category,
		Excerpt:   a.Excerpt,
		Content:   a.Content,
		Image:     a.Image,
		ReadTime:  a.ReadTime,
		Author:    a.Author,
		CreatedAt: timestamp(a.CreatedAt),
		UpdatedAt: timestamp(a.UpdatedAt),
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	if p.ReadTime == "" {
		p.ReadTime = models.FallbackReadTime
	}
	if p.Author == "" {
		p.Author = models.DefaultAuthor
	}
	return p
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
